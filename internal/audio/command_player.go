package audio

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// CommandPlayer plays audio files through an external player binary. Used
// where the in-process audio context cannot initialize (headless machines,
// containers, missing ALSA devices).
type CommandPlayer struct {
	binary string
	args   []string
}

// playerCandidate describes an external player invocation; extraArgs come
// before the file path.
type playerCandidate struct {
	binary    string
	extraArgs []string
}

// playerCandidates returns the external players to probe for the given OS,
// in preference order.
func playerCandidates(goos string) []playerCandidate {
	switch goos {
	case "darwin":
		return []playerCandidate{
			{binary: "afplay"},
			{binary: "ffplay", extraArgs: []string{"-nodisp", "-autoexit", "-loglevel", "quiet"}},
		}
	case "windows":
		return []playerCandidate{
			{binary: "ffplay", extraArgs: []string{"-nodisp", "-autoexit", "-loglevel", "quiet"}},
		}
	default:
		return []playerCandidate{
			{binary: "paplay"},
			{binary: "aplay", extraArgs: []string{"-q"}},
			{binary: "ffplay", extraArgs: []string{"-nodisp", "-autoexit", "-loglevel", "quiet"}},
		}
	}
}

// NewCommandPlayer locates the first available external player.
func NewCommandPlayer() (*CommandPlayer, error) {
	candidates := playerCandidates(runtime.GOOS)
	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if path, err := exec.LookPath(c.binary); err == nil {
			return &CommandPlayer{binary: path, args: c.extraArgs}, nil
		}
		names = append(names, c.binary)
	}
	return nil, fmt.Errorf("%w: none of %s found in PATH", ErrNoBackend, strings.Join(names, ", "))
}

// Name returns the player binary name.
func (p *CommandPlayer) Name() string {
	return p.binary
}

// PlayFile runs the player on path and blocks until it exits.
func (p *CommandPlayer) PlayFile(ctx context.Context, path string) error {
	args := append(append([]string{}, p.args...), path)
	cmd := exec.CommandContext(ctx, p.binary, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("playback command failed: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}
