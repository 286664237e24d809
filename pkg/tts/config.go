package tts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config contains all simplespeak configuration options.
type Config struct {
	// Engine selects the synthesis backend.
	Engine string `yaml:"engine" env:"SIMPLESPEAK_ENGINE" envDefault:"outetts"`

	// CacheDir holds generated audio artifacts. Empty means the platform
	// user cache directory.
	CacheDir string `yaml:"cache_dir" env:"SIMPLESPEAK_CACHE_DIR"`

	// VoiceConfigPath is the JSON voice configuration (speaker_id,
	// voice_file) loaded once at startup.
	VoiceConfigPath string `yaml:"voice_config" env:"SIMPLESPEAK_VOICE_CONFIG" envDefault:"config.json"`

	// DefaultVoice is the built-in speaker used when the voice
	// configuration provides neither a voice file nor a speaker ID.
	DefaultVoice string `yaml:"default_voice" env:"SIMPLESPEAK_DEFAULT_VOICE" envDefault:"EN-FEMALE-1-NEUTRAL"`

	// Playback selects the audio backend: auto, oto, or command.
	Playback string `yaml:"playback" env:"SIMPLESPEAK_PLAYBACK" envDefault:"auto"`

	// Engine-specific configuration
	OuteTTS OuteTTSConfig `yaml:"outetts"`

	// Sampler parameters passed unchanged to every generation call.
	Sampler SamplerConfig `yaml:"sampler"`
}

// OuteTTSConfig contains OuteTTS engine specific settings.
type OuteTTSConfig struct {
	Binary       string        `yaml:"binary" env:"SIMPLESPEAK_OUTETTS_BINARY" envDefault:"outetts"`
	Model        string        `yaml:"model" env:"SIMPLESPEAK_OUTETTS_MODEL" envDefault:"1b"`
	Quantization string        `yaml:"quantization" env:"SIMPLESPEAK_OUTETTS_QUANTIZATION" envDefault:"fp16"`
	SpeakerDir   string        `yaml:"speaker_dir" env:"SIMPLESPEAK_OUTETTS_SPEAKER_DIR"`
	Timeout      time.Duration `yaml:"timeout" env:"SIMPLESPEAK_OUTETTS_TIMEOUT" envDefault:"120s"`
}

// SamplerConfig holds the numeric knobs controlling generation. The values
// mirror the engine vendor's recommended settings; the windowed repetition
// penalty in particular matters for output stability.
type SamplerConfig struct {
	Temperature       float64 `yaml:"temperature" env:"SIMPLESPEAK_SAMPLER_TEMPERATURE" envDefault:"0.4"`
	RepetitionPenalty float64 `yaml:"repetition_penalty" env:"SIMPLESPEAK_SAMPLER_REPETITION_PENALTY" envDefault:"1.1"`
	RepetitionRange   int     `yaml:"repetition_range" env:"SIMPLESPEAK_SAMPLER_REPETITION_RANGE" envDefault:"64"`
	TopK              int     `yaml:"top_k" env:"SIMPLESPEAK_SAMPLER_TOP_K" envDefault:"40"`
	TopP              float64 `yaml:"top_p" env:"SIMPLESPEAK_SAMPLER_TOP_P" envDefault:"0.9"`
	MinP              float64 `yaml:"min_p" env:"SIMPLESPEAK_SAMPLER_MIN_P" envDefault:"0.05"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Engine:          "outetts",
		CacheDir:        defaultCacheDir(),
		VoiceConfigPath: "config.json",
		DefaultVoice:    DefaultVoice,
		Playback:        "auto",
		OuteTTS:         DefaultOuteTTSConfig(),
		Sampler:         DefaultSamplerConfig(),
	}
}

// DefaultOuteTTSConfig returns default OuteTTS configuration.
func DefaultOuteTTSConfig() OuteTTSConfig {
	return OuteTTSConfig{
		Binary:       "outetts",
		Model:        "1b",
		Quantization: "fp16",
		Timeout:      120 * time.Second,
	}
}

// DefaultSamplerConfig returns the recommended sampler parameters.
func DefaultSamplerConfig() SamplerConfig {
	return SamplerConfig{
		Temperature:       0.4,
		RepetitionPenalty: 1.1,
		RepetitionRange:   64,
		TopK:              40,
		TopP:              0.9,
		MinP:              0.05,
	}
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil || dir == "" {
		return "cache"
	}
	return filepath.Join(dir, "simplespeak")
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	validEngines := []string{"outetts", "mock"}
	engineValid := false
	for _, e := range validEngines {
		if strings.EqualFold(c.Engine, e) {
			engineValid = true
			c.Engine = strings.ToLower(c.Engine)
			break
		}
	}
	if !engineValid {
		return fmt.Errorf("invalid TTS engine '%s': must be one of %v", c.Engine, validEngines)
	}

	validBackends := []string{"auto", "oto", "command"}
	backendValid := false
	for _, b := range validBackends {
		if strings.EqualFold(c.Playback, b) {
			backendValid = true
			c.Playback = strings.ToLower(c.Playback)
			break
		}
	}
	if !backendValid {
		return fmt.Errorf("invalid playback backend '%s': must be one of %v", c.Playback, validBackends)
	}

	if c.DefaultVoice == "" {
		return fmt.Errorf("default_voice cannot be empty")
	}

	if c.Engine == "outetts" {
		if err := c.OuteTTS.Validate(); err != nil {
			return fmt.Errorf("outetts config: %w", err)
		}
	}

	if err := c.Sampler.Validate(); err != nil {
		return fmt.Errorf("sampler config: %w", err)
	}

	return nil
}

// Validate checks if the OuteTTS configuration is valid.
func (c *OuteTTSConfig) Validate() error {
	if c.Binary == "" {
		return fmt.Errorf("outetts binary path cannot be empty")
	}

	if c.Model == "" {
		return fmt.Errorf("outetts model cannot be empty")
	}

	if c.Timeout < time.Second {
		return fmt.Errorf("timeout must be at least 1 second, got %v", c.Timeout)
	}

	return nil
}

// Validate checks if the sampler parameters are valid.
func (c *SamplerConfig) Validate() error {
	if c.Temperature <= 0 || c.Temperature > 2.0 {
		return fmt.Errorf("temperature must be between 0.0 and 2.0, got %f", c.Temperature)
	}

	if c.RepetitionPenalty < 0.5 || c.RepetitionPenalty > 2.0 {
		return fmt.Errorf("repetition_penalty must be between 0.5 and 2.0, got %f", c.RepetitionPenalty)
	}

	if c.RepetitionRange < 0 {
		return fmt.Errorf("repetition_range must be non-negative, got %d", c.RepetitionRange)
	}

	if c.TopK < 0 {
		return fmt.Errorf("top_k must be non-negative, got %d", c.TopK)
	}

	if c.TopP <= 0 || c.TopP > 1.0 {
		return fmt.Errorf("top_p must be between 0.0 and 1.0, got %f", c.TopP)
	}

	if c.MinP < 0 || c.MinP >= 1.0 {
		return fmt.Errorf("min_p must be between 0.0 and 1.0, got %f", c.MinP)
	}

	return nil
}
