// Package logging builds the zerolog logger. The TUI owns the terminal, so
// logs only go to a file when one is configured.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Options struct {
	Path    string
	Level   string
	Console io.Writer
}

// New returns a logger writing JSON lines to opts.Path, or human-readable
// lines to Console. With neither it returns a disabled logger. The returned
// closer releases the log file.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	level := ParseLevel(opts.Level)
	path := strings.TrimSpace(opts.Path)
	switch {
	case path != "":
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return zerolog.Nop(), nopCloser{}, err
			}
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), nopCloser{}, err
		}
		return build(f, level), f, nil
	case opts.Console != nil:
		out := zerolog.ConsoleWriter{Out: opts.Console, TimeFormat: time.Kitchen, NoColor: true}
		return build(out, level), nopCloser{}, nil
	default:
		return zerolog.Nop(), nopCloser{}, nil
	}
}

func build(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("app", "selesai").
		Logger()
}

// ParseLevel converts a level name to a zerolog level, defaulting to info.
func ParseLevel(raw string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "off", "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
