package tts

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// LoadConfigFromViper loads simplespeak configuration from Viper, starting
// from the given base (usually the env-parsed defaults). Values set in the
// configuration file or bound flags win over the base.
func LoadConfigFromViper(base Config) (Config, error) {
	cfg := base

	if viper.IsSet("engine") {
		cfg.Engine = viper.GetString("engine")
	}
	if viper.IsSet("cache_dir") {
		cfg.CacheDir = viper.GetString("cache_dir")
	}
	if viper.IsSet("voice_config") {
		cfg.VoiceConfigPath = viper.GetString("voice_config")
	}
	if viper.IsSet("default_voice") {
		cfg.DefaultVoice = viper.GetString("default_voice")
	}
	if viper.IsSet("playback") {
		cfg.Playback = viper.GetString("playback")
	}

	cfg.OuteTTS = loadOuteTTSConfig(cfg.OuteTTS)
	cfg.Sampler = loadSamplerConfig(cfg.Sampler)

	if cfg.CacheDir == "" {
		cfg.CacheDir = defaultCacheDir()
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return cfg, nil
}

// loadOuteTTSConfig loads OuteTTS-specific configuration from Viper.
func loadOuteTTSConfig(cfg OuteTTSConfig) OuteTTSConfig {
	if viper.IsSet("outetts.binary") {
		cfg.Binary = viper.GetString("outetts.binary")
	}
	if viper.IsSet("outetts.model") {
		cfg.Model = viper.GetString("outetts.model")
	}
	if viper.IsSet("outetts.quantization") {
		cfg.Quantization = viper.GetString("outetts.quantization")
	}
	if viper.IsSet("outetts.speaker_dir") {
		cfg.SpeakerDir = viper.GetString("outetts.speaker_dir")
	}
	if viper.IsSet("outetts.timeout") {
		if d, err := time.ParseDuration(viper.GetString("outetts.timeout")); err == nil {
			cfg.Timeout = d
		}
	}

	return cfg
}

// loadSamplerConfig loads sampler parameters from Viper.
func loadSamplerConfig(cfg SamplerConfig) SamplerConfig {
	if viper.IsSet("sampler.temperature") {
		cfg.Temperature = viper.GetFloat64("sampler.temperature")
	}
	if viper.IsSet("sampler.repetition_penalty") {
		cfg.RepetitionPenalty = viper.GetFloat64("sampler.repetition_penalty")
	}
	if viper.IsSet("sampler.repetition_range") {
		cfg.RepetitionRange = viper.GetInt("sampler.repetition_range")
	}
	if viper.IsSet("sampler.top_k") {
		cfg.TopK = viper.GetInt("sampler.top_k")
	}
	if viper.IsSet("sampler.top_p") {
		cfg.TopP = viper.GetFloat64("sampler.top_p")
	}
	if viper.IsSet("sampler.min_p") {
		cfg.MinP = viper.GetFloat64("sampler.min_p")
	}

	return cfg
}

// SetDefaults sets default values in Viper for simplespeak configuration.
func SetDefaults() {
	defaults := DefaultConfig()

	viper.SetDefault("engine", defaults.Engine)
	viper.SetDefault("cache_dir", "")
	viper.SetDefault("voice_config", defaults.VoiceConfigPath)
	viper.SetDefault("default_voice", defaults.DefaultVoice)
	viper.SetDefault("playback", defaults.Playback)

	viper.SetDefault("outetts.binary", defaults.OuteTTS.Binary)
	viper.SetDefault("outetts.model", defaults.OuteTTS.Model)
	viper.SetDefault("outetts.quantization", defaults.OuteTTS.Quantization)
	viper.SetDefault("outetts.speaker_dir", "")
	viper.SetDefault("outetts.timeout", defaults.OuteTTS.Timeout.String())

	viper.SetDefault("sampler.temperature", defaults.Sampler.Temperature)
	viper.SetDefault("sampler.repetition_penalty", defaults.Sampler.RepetitionPenalty)
	viper.SetDefault("sampler.repetition_range", defaults.Sampler.RepetitionRange)
	viper.SetDefault("sampler.top_k", defaults.Sampler.TopK)
	viper.SetDefault("sampler.top_p", defaults.Sampler.TopP)
	viper.SetDefault("sampler.min_p", defaults.Sampler.MinP)
}
