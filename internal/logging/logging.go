// Package logging sets up the slog logger shared by tvnav commands.
//
// The terminal belongs to the UI while browsing, so logs go to a file under
// the tvnav state directory instead of stderr.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileName is the log file created in the state directory
const FileName = "debug.log"

// Logger is a slog.Logger bound to a log file whose level can change at
// runtime, e.g. when the config file is edited.
type Logger struct {
	*slog.Logger
	level *slog.LevelVar
	file  io.Closer
	path  string
}

// ParseLevel maps a config level name to a slog level. Unknown names give
// info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Open creates (or appends to) dir/debug.log
func Open(dir, level string) (*Logger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, FileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	l := New(f, level)
	l.file = f
	l.path = path
	return l, nil
}

// New returns a Logger writing text records to w
func New(w io.Writer, level string) *Logger {
	lv := new(slog.LevelVar)
	lv.Set(ParseLevel(level))
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lv})
	return &Logger{Logger: slog.New(handler), level: lv}
}

// Discard returns a Logger that drops everything
func Discard() *Logger {
	return New(io.Discard, "error")
}

// SetLevel changes the minimum level
func (l *Logger) SetLevel(name string) {
	l.level.Set(ParseLevel(name))
}

// Level returns the current minimum level
func (l *Logger) Level() slog.Level {
	return l.level.Level()
}

// Path returns the log file path, empty for writer-backed loggers
func (l *Logger) Path() string {
	return l.path
}

// Screen returns a child logger tagged with the screen name and a fresh
// mount id.
func (l *Logger) Screen(name string) (*slog.Logger, string) {
	id := uuid.NewString()[:8]
	return l.With("screen", name, "mount", id), id
}

// Close closes the log file
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
