package audio

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Format is the oto sample format for our 16-bit PCM audio.
const Format = oto.FormatSignedInt16LE

// OtoPlayer plays WAV files through an in-process oto audio context. The
// context is created lazily on the first file and is fixed to that file's
// format for the rest of the process; engine output format never changes
// within a run.
type OtoPlayer struct {
	mu         sync.Mutex
	context    *oto.Context
	sampleRate int
	channels   int
}

// NewOtoPlayer creates the oto-backed player. Context creation is deferred
// to the first PlayFile call because the sample rate comes from the file.
func NewOtoPlayer() (*OtoPlayer, error) {
	return &OtoPlayer{}, nil
}

// Name returns the backend name.
func (p *OtoPlayer) Name() string {
	return "oto"
}

// PlayFile decodes the WAV at path and blocks until playback finishes or
// ctx is canceled.
func (p *OtoPlayer) PlayFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading audio file: %w", err)
	}

	info, err := ParseWAV(data)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}

	octx, err := p.contextFor(info.SampleRate, info.Channels)
	if err != nil {
		return err
	}

	player := octx.NewPlayer(bytes.NewReader(info.Data))
	defer player.Close()
	player.Play()

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}

	return nil
}

// contextFor returns the shared oto context, creating it on first use.
func (p *OtoPlayer) contextFor(sampleRate, channels int) (*oto.Context, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.context != nil {
		if sampleRate != p.sampleRate || channels != p.channels {
			return nil, fmt.Errorf("audio context is %dHz/%dch, file is %dHz/%dch",
				p.sampleRate, p.channels, sampleRate, channels)
		}
		return p.context, nil
	}

	octx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       Format,
		BufferSize:   50 * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAudioContext, err)
	}
	<-ready

	p.context = octx
	p.sampleRate = sampleRate
	p.channels = channels
	return octx, nil
}
