package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/simplespeak/simplespeak/internal/audio"
	"github.com/simplespeak/simplespeak/internal/cache"
	"github.com/simplespeak/simplespeak/pkg/tts"
)

// speaker is the slice of the handler the loop needs.
type speaker interface {
	Speak(ctx context.Context, req tts.SpeakRequest) *tts.SpeakResult
}

// loopDeps carries everything the interactive loop touches. player may be
// nil; generation still runs and files still land in the cache.
type loopDeps struct {
	handler speaker
	store   *cache.Store
	player  audio.Player
	voice   tts.VoiceConfig

	// interactive enables the banner and the prompt. Off for piped input.
	interactive bool

	// now stamps cache artifacts; nil means time.Now.
	now func() time.Time
}

// runLoop reads lines from in until EOF, an exit word, or ctx cancellation.
// Every failure inside an iteration is reported and the prompt comes back;
// only input exhaustion ends the loop.
func runLoop(ctx context.Context, in io.Reader, out io.Writer, deps loopDeps) error {
	now := deps.now
	if now == nil {
		now = time.Now
	}

	if deps.interactive {
		fmt.Fprintln(out, paragraph("Type text to speak it. Enter \"quit\" or \"exit\" to leave."))
	}

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		if deps.interactive {
			fmt.Fprint(out, "> ")
		}

		var line string
		var open bool
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return exitSummary(out, deps.store)
		case line, open = <-lines:
			if !open {
				select {
				case err := <-scanErr:
					if err != nil && !errors.Is(err, io.EOF) {
						return fmt.Errorf("reading input: %w", err)
					}
				default:
				}
				fmt.Fprintln(out)
				return exitSummary(out, deps.store)
			}
		}

		text := strings.TrimSpace(line)
		if text == "" {
			fmt.Fprintln(out, "Please enter some text.")
			continue
		}
		if isExitWord(text) {
			return exitSummary(out, deps.store)
		}

		requestID := uuid.NewString()
		path := deps.store.ArtifactPath(now())
		log.Debug("Handling request", "id", requestID, "path", path)

		res := deps.handler.Speak(ctx, tts.SpeakRequest{
			Text:       text,
			OutputPath: path,
			SpeakerID:  deps.voice.SpeakerID,
			VoiceFile:  deps.voice.VoiceFile,
		})
		if !res.OK {
			fmt.Fprintln(out, "Sorry, failed to generate audio for the text (check logs).")
			continue
		}

		if deps.player == nil {
			fmt.Fprintf(out, "Saved to %s (no playback device).\n", res.OutputPath)
			continue
		}
		if err := deps.player.PlayFile(ctx, res.OutputPath); err != nil {
			if ctx.Err() != nil {
				return exitSummary(out, deps.store)
			}
			log.Error("Playback failed", "id", requestID, "path", res.OutputPath, "err", err)
			fmt.Fprintf(out, "Saved to %s but playback failed (check logs).\n", res.OutputPath)
		}
	}
}

// isExitWord reports whether text asks to leave the loop, ignoring case.
func isExitWord(text string) bool {
	return strings.EqualFold(text, "quit") || strings.EqualFold(text, "exit")
}

// exitSummary prints the goodbye line and, in debug logs, the cache totals.
func exitSummary(out io.Writer, store *cache.Store) error {
	fmt.Fprintln(out, "Goodbye!")
	count, total, err := store.Summary()
	if err != nil {
		log.Debug("Could not summarize cache", "err", err)
		return nil
	}
	log.Debug("Cache summary", "dir", store.Dir(), "files", count, "size", humanize.Bytes(uint64(total)))
	return nil
}
