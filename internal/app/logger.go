package app

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the structured logger for the assistant. Logs go to a
// file under the data dir so they never bleed into the TUI.
func NewLogger(dataDir string) zerolog.Logger {
	var out io.Writer = io.Discard
	if dataDir != "" {
		if err := os.MkdirAll(dataDir, 0o755); err == nil {
			if f, err := os.OpenFile(filepath.Join(dataDir, "gmb.log"),
				os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
				out = f
			}
		}
	}
	return zerolog.New(out).With().Timestamp().Logger()
}

// NewConsoleLogger is used by the waitlist service, which logs to stderr.
func NewConsoleLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
}
