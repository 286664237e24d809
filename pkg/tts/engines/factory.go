// Package engines constructs synthesis backends by name.
package engines

import (
	"fmt"

	"github.com/simplespeak/simplespeak/pkg/tts"
	"github.com/simplespeak/simplespeak/pkg/tts/engines/mock"
	"github.com/simplespeak/simplespeak/pkg/tts/engines/outetts"
)

// New creates the engine selected by cfg.Engine.
func New(cfg tts.Config) (tts.Engine, error) {
	switch cfg.Engine {
	case "outetts":
		return outetts.New(cfg.OuteTTS)
	case "mock":
		return mock.New(mock.Config{}), nil
	default:
		return nil, fmt.Errorf("%w: %q", tts.ErrUnknownEngine, cfg.Engine)
	}
}
