// Package mock provides a synthetic engine for tests and demos. It fabricates
// valid WAV audio without any external runtime and supports failure injection
// for every engine operation.
package mock

import (
	"context"
	"fmt"
	"time"

	"github.com/simplespeak/simplespeak/internal/audio"
	"github.com/simplespeak/simplespeak/pkg/tts"
)

// Config controls mock behavior. Zero value yields an engine that always
// succeeds at 24kHz mono.
type Config struct {
	CloneErr    error
	LoadErr     error
	GenerateErr error

	// Latency is slept before each operation returns, honoring ctx.
	Latency time.Duration

	// KnownVoices overrides the voice list; nil means the defaults.
	KnownVoices []string

	SampleRate int
}

// Engine is a fake tts.Engine with per-operation call counters.
type Engine struct {
	cfg Config

	CloneCalls    int
	LoadCalls     int
	GenerateCalls int
}

// New creates a mock engine.
func New(cfg Config) *Engine {
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 24000
	}
	return &Engine{cfg: cfg}
}

// Name returns the engine name.
func (e *Engine) Name() string {
	return "Mock"
}

// Available always reports true.
func (e *Engine) Available() bool {
	return true
}

// Voices returns the configured or default voice list.
func (e *Engine) Voices() []string {
	if e.cfg.KnownVoices != nil {
		return e.cfg.KnownVoices
	}
	return []string{tts.DefaultVoice, "EN-MALE-1-NEUTRAL"}
}

// CreateSpeaker pretends to clone a voice from voiceFile.
func (e *Engine) CreateSpeaker(ctx context.Context, voiceFile string) (*tts.Speaker, error) {
	e.CloneCalls++
	if err := e.wait(ctx); err != nil {
		return nil, err
	}
	if e.cfg.CloneErr != nil {
		return nil, e.cfg.CloneErr
	}
	return &tts.Speaker{Source: tts.SourceCloned, ProfilePath: voiceFile}, nil
}

// LoadSpeaker loads a built-in speaker, rejecting identifiers outside the
// configured voice list.
func (e *Engine) LoadSpeaker(ctx context.Context, id string) (*tts.Speaker, error) {
	e.LoadCalls++
	if err := e.wait(ctx); err != nil {
		return nil, err
	}
	if e.cfg.LoadErr != nil {
		return nil, e.cfg.LoadErr
	}
	for _, v := range e.Voices() {
		if v == id {
			return &tts.Speaker{ID: id}, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", tts.ErrVoiceNotFound, id)
}

// Generate returns a silent WAV whose duration grows with the text length,
// roughly one second per 15 characters.
func (e *Engine) Generate(ctx context.Context, req tts.GenerationRequest) (*tts.Audio, error) {
	e.GenerateCalls++
	if err := e.wait(ctx); err != nil {
		return nil, err
	}
	if e.cfg.GenerateErr != nil {
		return nil, e.cfg.GenerateErr
	}

	samples := e.cfg.SampleRate * (len(req.Text)/15 + 1)
	pcm := make([]byte, samples*2)
	data := audio.EncodeWAV(pcm, e.cfg.SampleRate, 1)

	return &tts.Audio{
		Data:       data,
		SampleRate: e.cfg.SampleRate,
		Channels:   1,
		Duration:   time.Duration(samples) * time.Second / time.Duration(e.cfg.SampleRate),
	}, nil
}

func (e *Engine) wait(ctx context.Context) error {
	if e.cfg.Latency <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(e.cfg.Latency):
		return nil
	}
}
