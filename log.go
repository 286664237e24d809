package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
)

// setupLog routes logs to SIMPLESPEAK_LOGFILE when set, keeping stdout clean
// for the interactive prompt. The returned closer flushes the file on exit.
func setupLog() (func() error, error) {
	if logFile := os.Getenv("SIMPLESPEAK_LOGFILE"); logFile != "" {
		f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, fmt.Errorf("error opening log file: %w", err)
		}
		log.SetOutput(f)
		log.SetReportTimestamp(true)
		return f.Close, nil
	}

	log.SetOutput(os.Stderr)
	return func() error { return nil }, nil
}
