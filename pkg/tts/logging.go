package tts

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
)

// InitializeLogging sets the process log level. User-facing output stays on
// stdout; logs go to the charmbracelet/log default logger.
func InitializeLogging(debug bool) {
	if debug {
		log.SetLevel(log.DebugLevel)
		log.Debug("Debug logging enabled")
		return
	}
	log.SetLevel(log.InfoLevel)
}

// logSynthesis records a completed synthesis call.
func logSynthesis(engine string, res *SpeakResult) {
	log.Info("Speech generated",
		"engine", engine,
		"source", res.Source,
		"audio", humanize.Bytes(uint64(res.AudioBytes)),
		"duration", res.Elapsed.Round(time.Millisecond),
		"path", res.OutputPath)
}
