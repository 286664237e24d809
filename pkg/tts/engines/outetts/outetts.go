// Package outetts integrates the OuteTTS command-line runtime as a
// simplespeak engine. Every operation shells out to the `outetts` binary;
// model weights are downloaded by the CLI on first use, so the first call
// of a fresh install can be very slow.
package outetts

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/simplespeak/simplespeak/internal/audio"
	"github.com/simplespeak/simplespeak/pkg/tts"
)

// builtinVoices are the speaker identifiers shipped with the OuteTTS
// models, used for suggestions when `speaker list` is unavailable.
var builtinVoices = []string{
	"EN-FEMALE-1-NEUTRAL",
	"EN-FEMALE-2-NEUTRAL",
	"EN-MALE-1-NEUTRAL",
	"EN-MALE-2-NEUTRAL",
}

// EngineError represents OuteTTS-specific errors.
type EngineError struct {
	Op      string
	Message string
	Cause   error
}

func (e *EngineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("outetts %s: %s: %v", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("outetts %s: %s", e.Op, e.Message)
}

func (e *EngineError) Unwrap() error {
	return e.Cause
}

// Engine implements the tts.Engine interface over the OuteTTS CLI.
type Engine struct {
	binaryPath string
	cfg        tts.OuteTTSConfig
	speakerDir string

	voicesOnce sync.Once
	voices     []string
}

// New creates an OuteTTS engine. It locates the binary and prepares the
// speaker profile directory but does not touch the model; downloads happen
// inside the CLI on the first generation.
func New(cfg tts.OuteTTSConfig) (*Engine, error) {
	e := &Engine{cfg: cfg}

	if err := e.findBinary(cfg.Binary); err != nil {
		return nil, err
	}

	speakerDir := cfg.SpeakerDir
	if speakerDir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			base = os.TempDir()
		}
		speakerDir = filepath.Join(base, "simplespeak", "speakers")
	}
	if err := os.MkdirAll(speakerDir, 0o755); err != nil {
		return nil, &EngineError{
			Op:      "init",
			Message: fmt.Sprintf("cannot create speaker directory %s", speakerDir),
			Cause:   err,
		}
	}
	e.speakerDir = speakerDir

	log.Debug("OuteTTS engine created",
		"binary", e.binaryPath,
		"model", cfg.Model,
		"quantization", cfg.Quantization)
	return e, nil
}

// findBinary locates the outetts executable.
func (e *Engine) findBinary(binary string) error {
	if binary == "" {
		binary = "outetts"
	}

	if path, err := exec.LookPath(binary); err == nil {
		e.binaryPath = path
		return nil
	}

	commonPaths := []string{
		"/usr/local/bin/outetts",
		"/usr/bin/outetts",
		"/opt/outetts/outetts",
		filepath.Join(os.Getenv("HOME"), ".local/bin/outetts"),
		filepath.Join(os.Getenv("HOME"), "bin/outetts"),
	}
	for _, path := range commonPaths {
		if _, err := os.Stat(path); err == nil {
			e.binaryPath = path
			return nil
		}
	}

	return &EngineError{
		Op:      "dependency",
		Message: fmt.Sprintf("%s binary not found; install the OuteTTS runtime", binary),
	}
}

// Name returns the engine name.
func (e *Engine) Name() string {
	return fmt.Sprintf("OuteTTS (%s/%s)", e.cfg.Model, e.cfg.Quantization)
}

// Available reports whether the binary is still reachable.
func (e *Engine) Available() bool {
	if e.binaryPath == "" {
		return false
	}
	_, err := os.Stat(e.binaryPath)
	return err == nil
}

// CreateSpeaker clones a voice from an audio sample by exporting a speaker
// profile next to the store's other profiles.
func (e *Engine) CreateSpeaker(ctx context.Context, voiceFile string) (*tts.Speaker, error) {
	base := strings.TrimSuffix(filepath.Base(voiceFile), filepath.Ext(voiceFile))
	profilePath := filepath.Join(e.speakerDir, base+".speaker.json")

	args := append(e.modelArgs(),
		"speaker", "create",
		"--input", voiceFile,
		"--output", profilePath,
	)
	if _, err := e.run(ctx, nil, args...); err != nil {
		return nil, err
	}

	if _, err := os.Stat(profilePath); err != nil {
		return nil, &EngineError{
			Op:      "speaker",
			Message: fmt.Sprintf("profile was not written to %s", profilePath),
			Cause:   err,
		}
	}

	return &tts.Speaker{Source: tts.SourceCloned, ProfilePath: profilePath}, nil
}

// LoadSpeaker validates that a built-in speaker identifier exists.
func (e *Engine) LoadSpeaker(ctx context.Context, id string) (*tts.Speaker, error) {
	args := append(e.modelArgs(), "speaker", "show", id)
	if _, err := e.run(ctx, nil, args...); err != nil {
		return nil, err
	}
	return &tts.Speaker{ID: id}, nil
}

// Generate synthesizes text into an in-memory WAV. Text goes in on stdin
// and the WAV comes back on stdout.
func (e *Engine) Generate(ctx context.Context, req tts.GenerationRequest) (*tts.Audio, error) {
	if req.Speaker == nil {
		return nil, &EngineError{Op: "generate", Message: "no speaker profile provided"}
	}

	out, err := e.run(ctx, strings.NewReader(req.Text), e.generateArgs(req)...)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, &EngineError{Op: "generate", Message: "no audio data generated"}
	}

	info, err := audio.ParseWAV(out)
	if err != nil {
		return nil, &EngineError{
			Op:      "generate",
			Message: "engine produced unreadable audio",
			Cause:   err,
		}
	}

	return &tts.Audio{
		Data:       out,
		SampleRate: info.SampleRate,
		Channels:   info.Channels,
		Duration:   info.Duration,
	}, nil
}

// generateArgs builds the CLI invocation for one generation call.
func (e *Engine) generateArgs(req tts.GenerationRequest) []string {
	args := append(e.modelArgs(),
		"generate",
		"--text", "-",
		"--output", "-",
	)

	if req.Speaker.ProfilePath != "" {
		args = append(args, "--speaker-profile", req.Speaker.ProfilePath)
	} else {
		args = append(args, "--speaker-id", req.Speaker.ID)
	}

	s := req.Sampler
	args = append(args,
		"--temperature", formatFloat(s.Temperature),
		"--repetition-penalty", formatFloat(s.RepetitionPenalty),
		"--repetition-range", strconv.Itoa(s.RepetitionRange),
		"--top-k", strconv.Itoa(s.TopK),
		"--top-p", formatFloat(s.TopP),
		"--min-p", formatFloat(s.MinP),
	)

	return args
}

// formatFloat renders sampler values the way the CLI expects them.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// modelArgs returns the model selection flags shared by every subcommand.
func (e *Engine) modelArgs() []string {
	return []string{
		"--model", e.cfg.Model,
		"--quantization", e.cfg.Quantization,
	}
}

// Voices lists the built-in speaker identifiers. The CLI is asked once per
// process; on failure the packaged list is used.
func (e *Engine) Voices() []string {
	e.voicesOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		out, err := e.run(ctx, nil, append(e.modelArgs(), "speaker", "list")...)
		if err != nil {
			log.Debug("Could not list speakers, using packaged identifiers", "err", err)
			e.voices = builtinVoices
			return
		}
		for _, line := range strings.Split(string(out), "\n") {
			if v := strings.TrimSpace(line); v != "" {
				e.voices = append(e.voices, v)
			}
		}
		if len(e.voices) == 0 {
			e.voices = builtinVoices
		}
	})
	return e.voices
}

// run executes the outetts binary with args, returning stdout. Stderr is
// captured for error reporting only.
func (e *Engine) run(ctx context.Context, stdin io.Reader, args ...string) ([]byte, error) {
	timeout := e.cfg.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, e.binaryPath, args...)
	cmd.Stdin = stdin

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	log.Debug("OuteTTS subprocess finished",
		"args", strings.Join(args, " "),
		"duration", time.Since(start).Round(time.Millisecond),
		"err", err)

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, &EngineError{
				Op:      "timeout",
				Message: fmt.Sprintf("operation timed out after %v", timeout),
				Cause:   err,
			}
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = "subprocess failed"
		}
		return nil, &EngineError{Op: "subprocess", Message: msg, Cause: err}
	}

	return stdout.Bytes(), nil
}
