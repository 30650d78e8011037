// Package logging builds the application's zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Config captures options for the application logger.
type Config struct {
	Level   zerolog.Level
	File    string    // log file, created with its directory when missing
	Output  io.Writer // used instead of File when set
	Service string    // attached to every entry (default: "mediakit")
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a JSON logger. The closer releases the log file.
func New(cfg Config) (zerolog.Logger, io.Closer, error) {
	var (
		w      = cfg.Output
		closer io.Closer = nopCloser{}
	)
	if w == nil {
		if cfg.File == "" {
			return zerolog.Nop(), closer, nil
		}
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, f
	}

	service := cfg.Service
	if service == "" {
		service = "mediakit"
	}

	zerolog.TimeFieldFormat = time.RFC3339
	logger := zerolog.New(w).
		Level(cfg.Level).
		With().
		Timestamp().
		Str("service", service).
		Logger()
	return logger, closer, nil
}
