package tts

import "errors"

// Common errors for the TTS system.
var (
	// Handler errors
	ErrEngineNotReady = errors.New("TTS engine is not initialized")
	ErrHandlerFailed  = errors.New("TTS handler failed to initialize")
	ErrEmptyText      = errors.New("input text is empty")
	ErrNoOutputPath   = errors.New("output path not specified")

	// Speaker resolution errors
	ErrNoSpeaker     = errors.New("no speaker profile could be resolved")
	ErrVoiceNotFound = errors.New("requested voice not found")

	// Engine errors
	ErrNoAudioData      = errors.New("no audio data generated")
	ErrUnknownEngine    = errors.New("unknown TTS engine")
	ErrGenerationFailed = errors.New("audio generation failed")

	// Configuration errors
	ErrInvalidConfig = errors.New("invalid configuration")
)
