package tts

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"

	"github.com/simplespeak/simplespeak/internal/utils"
)

// VoiceConfig selects the voice used for every synthesis request. Loaded
// once at startup and read-only afterwards.
type VoiceConfig struct {
	// SpeakerID names a built-in speaker shipped with the engine.
	SpeakerID string `json:"speaker_id"`

	// VoiceFile points at an audio sample to clone a voice from. Takes
	// precedence over SpeakerID.
	VoiceFile string `json:"voice_file"`
}

// LoadVoiceConfig reads the JSON voice configuration at path. It never
// fails: a missing file or malformed document yields the zero configuration,
// and a voice file that does not exist on disk is cleared. All recoveries
// are logged.
func LoadVoiceConfig(path string) VoiceConfig {
	var cfg VoiceConfig

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Info("Voice configuration not found, using defaults", "path", path)
		} else {
			log.Error("Could not read voice configuration, using defaults", "path", path, "err", err)
		}
		return VoiceConfig{}
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		log.Error("Could not parse voice configuration, using defaults", "path", path, "err", err)
		return VoiceConfig{}
	}

	if cfg.VoiceFile != "" {
		expanded := utils.ExpandPath(cfg.VoiceFile)
		if _, err := os.Stat(expanded); err != nil {
			log.Warn("Voice file not found, it will be ignored", "path", cfg.VoiceFile)
			cfg.VoiceFile = ""
		} else {
			cfg.VoiceFile = expanded
		}
	}

	return cfg
}
