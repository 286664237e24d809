package tts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sahilm/fuzzy"
)

// State describes the handler lifecycle. There is no Ready -> Failed
// transition at runtime: a bad request affects only that call, and a Failed
// handler never retries initialization.
type State int

const (
	// StateUninitialized is the zero value before construction completes.
	StateUninitialized State = iota
	// StateReady means the engine and sampler are usable.
	StateReady
	// StateFailed means engine construction failed; every Speak call
	// short-circuits.
	StateFailed
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "uninitialized"
	}
}

// Handler owns the engine and the sampler parameters for the process
// lifetime and exposes one operation, Speak.
type Handler struct {
	engine       Engine
	sampler      SamplerConfig
	defaultVoice string
	state        State
	initErr      error
}

// SpeakRequest describes one synthesis call. Constructed per input line,
// consumed immediately.
type SpeakRequest struct {
	Text       string
	OutputPath string

	// SpeakerID names a built-in speaker. Used when VoiceFile is absent
	// or cloning fails.
	SpeakerID string

	// VoiceFile is an audio sample to clone. Takes precedence.
	VoiceFile string
}

// SpeakResult is the explicit outcome of a Speak call. Speak never panics;
// every failure is captured here and logged.
type SpeakResult struct {
	OK         bool
	Err        error
	Source     SpeakerSource
	OutputPath string
	AudioBytes int
	Elapsed    time.Duration
}

// NewHandler wires a constructed engine to a handler. A nil or unavailable
// engine yields a Failed handler rather than an error so callers can decide
// whether the failure is fatal.
func NewHandler(engine Engine, cfg Config) *Handler {
	h := &Handler{
		engine:       engine,
		sampler:      cfg.Sampler,
		defaultVoice: cfg.DefaultVoice,
	}
	if h.defaultVoice == "" {
		h.defaultVoice = DefaultVoice
	}

	if engine == nil {
		h.state = StateFailed
		h.initErr = ErrEngineNotReady
		log.Error("TTS handler initialized without an engine")
		return h
	}
	if !engine.Available() {
		h.state = StateFailed
		h.initErr = fmt.Errorf("%w: %s", ErrEngineNotReady, engine.Name())
		log.Error("TTS engine is not available", "engine", engine.Name())
		return h
	}

	h.state = StateReady
	log.Info("TTS handler ready", "engine", engine.Name(), "defaultVoice", h.defaultVoice)
	return h
}

// NewFailedHandler records an engine construction failure. Every Speak call
// on the returned handler short-circuits with a failure result.
func NewFailedHandler(err error, cfg Config) *Handler {
	h := &Handler{
		sampler:      cfg.Sampler,
		defaultVoice: cfg.DefaultVoice,
		state:        StateFailed,
		initErr:      fmt.Errorf("%w: %v", ErrHandlerFailed, err),
	}
	log.Error("TTS handler initialization failed", "err", err)
	return h
}

// State returns the handler lifecycle state.
func (h *Handler) State() State {
	return h.state
}

// InitErr returns the construction error for a Failed handler, nil otherwise.
func (h *Handler) InitErr() error {
	return h.initErr
}

// Speak synthesizes speech for one request and persists it to the request's
// output path. It returns an explicit result and never panics; the caller
// only ever inspects SpeakResult.OK and, for diagnostics, SpeakResult.Err.
func (h *Handler) Speak(ctx context.Context, req SpeakRequest) *SpeakResult {
	start := time.Now()
	res := &SpeakResult{OutputPath: req.OutputPath}

	fail := func(err error) *SpeakResult {
		res.Err = err
		res.Elapsed = time.Since(start)
		log.Error("Speech generation failed", "err", err, "path", req.OutputPath)
		return res
	}

	if h.state != StateReady {
		if h.initErr != nil {
			return fail(h.initErr)
		}
		return fail(ErrEngineNotReady)
	}
	if strings.TrimSpace(req.Text) == "" {
		return fail(ErrEmptyText)
	}
	if req.OutputPath == "" {
		return fail(ErrNoOutputPath)
	}

	if dir := filepath.Dir(req.OutputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fail(fmt.Errorf("creating output directory %s: %w", dir, err))
		}
	}

	speaker, err := h.resolveSpeaker(ctx, req.SpeakerID, req.VoiceFile)
	if err != nil {
		return fail(err)
	}

	log.Debug("Generating speech",
		"source", speaker.Source,
		"textLength", len(req.Text),
		"path", req.OutputPath)

	audio, err := h.engine.Generate(ctx, GenerationRequest{
		Text:    req.Text,
		Speaker: speaker,
		Sampler: h.sampler,
	})
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrGenerationFailed, err))
	}

	if err := audio.Save(req.OutputPath); err != nil {
		return fail(err)
	}

	res.OK = true
	res.Source = speaker.Source
	res.AudioBytes = len(audio.Data)
	res.Elapsed = time.Since(start)
	logSynthesis(h.engine.Name(), res)
	return res
}

// resolveSpeaker implements the voice selection policy:
//
//  1. A voice file that exists is cloned. On cloning failure fall through
//     once; cloning is never retried.
//  2. Otherwise load the provided speaker ID, or the default identifier
//     when none was provided.
//  3. A load failure is terminal, even for the default identifier.
func (h *Handler) resolveSpeaker(ctx context.Context, speakerID, voiceFile string) (*Speaker, error) {
	if voiceFile != "" {
		if _, err := os.Stat(voiceFile); err == nil {
			log.Info("Attempting voice cloning", "voiceFile", voiceFile)
			speaker, err := h.engine.CreateSpeaker(ctx, voiceFile)
			if err == nil {
				speaker.Source = SourceCloned
				log.Info("Speaker profile created from file", "voiceFile", filepath.Base(voiceFile))
				return speaker, nil
			}
			log.Error("Voice cloning failed, trying speaker ID",
				"voiceFile", voiceFile, "err", err)
		} else {
			log.Warn("Voice file not found, trying speaker ID", "voiceFile", voiceFile)
		}
	}

	id, source := speakerID, SourceProvidedID
	if id == "" {
		id, source = h.defaultVoice, SourceDefaultID
	}

	log.Info("Loading built-in speaker", "id", id, "source", source)
	speaker, err := h.engine.LoadSpeaker(ctx, id)
	if err != nil {
		if source == SourceDefaultID {
			log.Error("Failed to load the default voice; check the engine installation and model data",
				"id", id, "err", err)
		}
		if suggestions := suggestVoices(id, h.engine.Voices()); len(suggestions) > 0 {
			log.Warn("Speaker ID not loadable, similar voices exist",
				"id", id, "suggestions", strings.Join(suggestions, ", "))
		}
		return nil, fmt.Errorf("%w: loading speaker %q: %v", ErrNoSpeaker, id, err)
	}

	speaker.Source = source
	speaker.ID = id
	return speaker, nil
}

// suggestVoices returns up to three known voice identifiers resembling id.
func suggestVoices(id string, voices []string) []string {
	matches := fuzzy.Find(id, voices)
	limit := 3
	if len(matches) < limit {
		limit = len(matches)
	}
	out := make([]string, 0, limit)
	for _, m := range matches[:limit] {
		out = append(out, m.Str)
	}
	return out
}
