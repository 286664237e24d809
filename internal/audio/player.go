package audio

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
)

// Playback errors.
var (
	ErrNoBackend      = errors.New("no audio playback backend available")
	ErrUnknownBackend = errors.New("unknown playback backend")
	ErrAudioContext   = errors.New("audio context unavailable")
)

// Player plays an audio file at a path, blocking until playback completes
// or the context is canceled.
type Player interface {
	PlayFile(ctx context.Context, path string) error
	Name() string
}

// New selects a playback backend. "oto" and "command" force a backend;
// "auto" prefers the in-process oto backend and falls back to an external
// player command when the audio context cannot be created.
func New(backend string) (Player, error) {
	switch backend {
	case "oto":
		return NewOtoPlayer()
	case "command":
		return NewCommandPlayer()
	case "auto", "":
		oto, err := NewOtoPlayer()
		if err != nil {
			return NewCommandPlayer()
		}
		return &autoPlayer{oto: oto}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// autoPlayer tries the oto backend first and switches permanently to an
// external player command if the audio context cannot be created. The oto
// context only fails on machines without a usable sound device, so the
// decision sticks for the process lifetime.
type autoPlayer struct {
	mu     sync.Mutex
	oto    *OtoPlayer
	active Player
}

// Name returns the name of the backend currently in use.
func (p *autoPlayer) Name() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active != nil {
		return p.active.Name()
	}
	return "auto"
}

// PlayFile plays path with the active backend, selecting one on first use.
func (p *autoPlayer) PlayFile(ctx context.Context, path string) error {
	p.mu.Lock()
	active := p.active
	p.mu.Unlock()

	if active != nil {
		return active.PlayFile(ctx, path)
	}

	err := p.oto.PlayFile(ctx, path)
	if err == nil {
		p.setActive(p.oto)
		log.Debug("Using oto playback backend")
		return nil
	}
	if !errors.Is(err, ErrAudioContext) {
		return err
	}

	log.Warn("Audio context unavailable, falling back to external player", "err", err)
	cmd, cmdErr := NewCommandPlayer()
	if cmdErr != nil {
		return fmt.Errorf("%w: oto: %v; command: %v", ErrNoBackend, err, cmdErr)
	}
	p.setActive(cmd)
	log.Debug("Using command playback backend", "player", cmd.Name())
	return cmd.PlayFile(ctx, path)
}

func (p *autoPlayer) setActive(pl Player) {
	p.mu.Lock()
	p.active = pl
	p.mu.Unlock()
}
