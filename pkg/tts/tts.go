// Package tts provides the synthesis handler for simplespeak: speaker
// resolution, the engine abstraction, and the per-request speak pipeline.
// The heavy lifting (acoustic modeling, vocoding) happens inside an external
// engine; this package only decides which voice to use and shepherds one
// request through generation and persistence.
package tts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultVoice is the built-in speaker identifier used when neither a voice
// file nor a speaker ID is configured.
const DefaultVoice = "EN-FEMALE-1-NEUTRAL"

// Engine defines the operations consumed from an external TTS engine.
// Every call is opaque, fallible, and potentially slow; the first call may
// trigger a model download.
type Engine interface {
	// CreateSpeaker derives a speaker profile by cloning a voice sample.
	CreateSpeaker(ctx context.Context, voiceFile string) (*Speaker, error)

	// LoadSpeaker loads a built-in speaker profile by identifier.
	LoadSpeaker(ctx context.Context, id string) (*Speaker, error)

	// Generate synthesizes audio from text using a resolved speaker and
	// sampler parameters.
	Generate(ctx context.Context, req GenerationRequest) (*Audio, error)

	// Voices returns the identifiers of the built-in speakers the engine
	// knows about. Used for suggestions only; may be empty.
	Voices() []string

	// Name returns the human-readable name of the engine.
	Name() string

	// Available reports whether the engine is ready for use.
	Available() bool
}

// SpeakerSource records how a speaker profile was obtained.
type SpeakerSource int

const (
	// SourceUnknown means no speaker was resolved.
	SourceUnknown SpeakerSource = iota
	// SourceCloned means the profile was cloned from a voice sample.
	SourceCloned
	// SourceProvidedID means a configured built-in identifier was loaded.
	SourceProvidedID
	// SourceDefaultID means the fallback DefaultVoice identifier was loaded.
	SourceDefaultID
)

// String implements fmt.Stringer.
func (s SpeakerSource) String() string {
	switch s {
	case SourceCloned:
		return "cloned file"
	case SourceProvidedID:
		return "provided ID"
	case SourceDefaultID:
		return "default ID"
	default:
		return "unknown"
	}
}

// Speaker is an opaque voice profile produced by the engine. Exactly one
// speaker is resolved per synthesis call; ownership is local to that call.
type Speaker struct {
	// Source records which resolution branch produced this profile.
	Source SpeakerSource

	// ID is the built-in speaker identifier. Empty for cloned profiles.
	ID string

	// ProfilePath points at the cloned profile file. Empty for built-ins.
	ProfilePath string
}

// GenerationRequest carries one synthesis call into the engine.
type GenerationRequest struct {
	Text    string
	Speaker *Speaker
	Sampler SamplerConfig
}

// Audio is an in-memory WAV produced by Engine.Generate.
type Audio struct {
	Data       []byte
	SampleRate int
	Channels   int
	Duration   time.Duration
}

// Save persists the audio to path, creating the parent directory if needed.
func (a *Audio) Save(path string) error {
	if len(a.Data) == 0 {
		return ErrNoAudioData
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, a.Data, 0o644); err != nil {
		return fmt.Errorf("writing audio file: %w", err)
	}
	return nil
}
