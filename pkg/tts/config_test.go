package tts

import (
	"strings"
	"testing"
	"time"
)

// TestDefaultConfig tests that default configuration is valid.
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}

	if cfg.Engine != "outetts" {
		t.Errorf("Default engine should be outetts, got %s", cfg.Engine)
	}

	if cfg.DefaultVoice != DefaultVoice {
		t.Errorf("Default voice should be %s, got %s", DefaultVoice, cfg.DefaultVoice)
	}

	if cfg.Playback != "auto" {
		t.Errorf("Default playback should be auto, got %s", cfg.Playback)
	}
}

// TestDefaultSamplerConfig pins the recommended sampler parameters.
func TestDefaultSamplerConfig(t *testing.T) {
	s := DefaultSamplerConfig()

	if s.Temperature != 0.4 {
		t.Errorf("Temperature should be 0.4, got %f", s.Temperature)
	}
	if s.RepetitionPenalty != 1.1 {
		t.Errorf("RepetitionPenalty should be 1.1, got %f", s.RepetitionPenalty)
	}
	if s.RepetitionRange != 64 {
		t.Errorf("RepetitionRange should be 64, got %d", s.RepetitionRange)
	}
	if s.TopK != 40 {
		t.Errorf("TopK should be 40, got %d", s.TopK)
	}
	if s.TopP != 0.9 {
		t.Errorf("TopP should be 0.9, got %f", s.TopP)
	}
	if s.MinP != 0.05 {
		t.Errorf("MinP should be 0.05, got %f", s.MinP)
	}
}

// TestConfigValidation tests configuration validation.
func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "invalid engine",
			modify: func(c *Config) {
				c.Engine = "espeak"
			},
			wantErr: true,
			errMsg:  "invalid TTS engine",
		},
		{
			name: "case insensitive engine",
			modify: func(c *Config) {
				c.Engine = "OUTETTS"
			},
			wantErr: false,
		},
		{
			name: "invalid playback backend",
			modify: func(c *Config) {
				c.Playback = "sndio"
			},
			wantErr: true,
			errMsg:  "invalid playback backend",
		},
		{
			name: "empty default voice",
			modify: func(c *Config) {
				c.DefaultVoice = ""
			},
			wantErr: true,
			errMsg:  "default_voice",
		},
		{
			name: "empty outetts binary",
			modify: func(c *Config) {
				c.OuteTTS.Binary = ""
			},
			wantErr: true,
			errMsg:  "binary path cannot be empty",
		},
		{
			name: "timeout too short",
			modify: func(c *Config) {
				c.OuteTTS.Timeout = 100 * time.Millisecond
			},
			wantErr: true,
			errMsg:  "timeout must be at least",
		},
		{
			name: "outetts config ignored for mock engine",
			modify: func(c *Config) {
				c.Engine = "mock"
				c.OuteTTS.Binary = ""
			},
			wantErr: false,
		},
		{
			name: "temperature too high",
			modify: func(c *Config) {
				c.Sampler.Temperature = 3.0
			},
			wantErr: true,
			errMsg:  "temperature must be between",
		},
		{
			name: "temperature zero",
			modify: func(c *Config) {
				c.Sampler.Temperature = 0
			},
			wantErr: true,
			errMsg:  "temperature must be between",
		},
		{
			name: "repetition penalty out of range",
			modify: func(c *Config) {
				c.Sampler.RepetitionPenalty = 0.1
			},
			wantErr: true,
			errMsg:  "repetition_penalty must be between",
		},
		{
			name: "negative repetition range",
			modify: func(c *Config) {
				c.Sampler.RepetitionRange = -1
			},
			wantErr: true,
			errMsg:  "repetition_range must be non-negative",
		},
		{
			name: "top_p out of range",
			modify: func(c *Config) {
				c.Sampler.TopP = 1.5
			},
			wantErr: true,
			errMsg:  "top_p must be between",
		},
		{
			name: "min_p out of range",
			modify: func(c *Config) {
				c.Sampler.MinP = 1.0
			},
			wantErr: true,
			errMsg:  "min_p must be between",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && tt.errMsg != "" && !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("Validate() error = %v, should contain %q", err, tt.errMsg)
			}
		})
	}
}

// TestValidateNormalizesCase checks that validation lowercases accepted values.
func TestValidateNormalizesCase(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Engine = "Mock"
	cfg.Playback = "COMMAND"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Engine != "mock" {
		t.Errorf("Engine should be normalized to mock, got %s", cfg.Engine)
	}
	if cfg.Playback != "command" {
		t.Errorf("Playback should be normalized to command, got %s", cfg.Playback)
	}
}
