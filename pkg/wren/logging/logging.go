// Package logging provides structured logging for wren with per-component
// loggers. Logs go to a file under the XDG state directory so they never
// fight the TUI for the terminal; console output is opt-in for the
// non-interactive subcommands.
//
// Basic usage:
//
//	if err := logging.Init(logging.Config{Level: "info"}); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Close()
//
//	logger := logging.Get("engine")
//	logger.Info("deleted", "count", 3)
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
)

// ErrInvalidLevel is returned when an invalid log level string is provided.
var ErrInvalidLevel = errors.New("invalid log level")

// ParseLevel parses a level string into a charmbracelet/log level.
func ParseLevel(s string) (log.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return log.DebugLevel, nil
	case "info", "":
		return log.InfoLevel, nil
	case "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	default:
		return log.InfoLevel, fmt.Errorf("%w: %s", ErrInvalidLevel, s)
	}
}

// Config configures the logging system.
type Config struct {
	// Level is the default log level (debug, info, warn, error).
	Level string

	// Path is the log file path. Empty uses DefaultLogPath().
	Path string

	// Components maps component names to level overrides.
	Components map[string]string

	// Console mirrors log output to stderr. Must stay off while the TUI
	// owns the terminal.
	Console bool
}

// Logger is a component-tagged structured logger.
type Logger struct {
	inner *log.Logger
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }

// Info logs an info message.
func (l *Logger) Info(msg string, args ...any) { l.inner.Info(msg, args...) }

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...any) { l.inner.Warn(msg, args...) }

// Error logs an error message.
func (l *Logger) Error(msg string, args ...any) { l.inner.Error(msg, args...) }

// With returns a logger with additional context attached.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{inner: l.inner.With(args...)}
}

// state holds the global logging state. Before Init all loggers write to
// io.Discard.
type state struct {
	mu         sync.Mutex
	file       *os.File
	out        io.Writer
	level      log.Level
	components map[string]log.Level
	loggers    map[string]*Logger
	console    bool
}

var globalState = &state{
	out:        io.Discard,
	level:      log.InfoLevel,
	components: make(map[string]log.Level),
	loggers:    make(map[string]*Logger),
}

// DefaultLogPath returns the default log file location.
func DefaultLogPath() string {
	return filepath.Join(xdg.StateHome, "wren", "wren.log")
}

// Init initializes the logging system. Loggers obtained before Init are
// rebound to the new output.
func Init(cfg Config) error {
	globalState.mu.Lock()
	defer globalState.mu.Unlock()

	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}
	globalState.level = level

	globalState.components = make(map[string]log.Level, len(cfg.Components))
	for comp, lvl := range cfg.Components {
		parsed, err := ParseLevel(lvl)
		if err != nil {
			return fmt.Errorf("parsing level for component %s: %w", comp, err)
		}
		globalState.components[comp] = parsed
	}

	path := cfg.Path
	if path == "" {
		path = DefaultLogPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}

	if globalState.file != nil {
		globalState.file.Close()
	}
	globalState.file = file
	globalState.out = file
	globalState.console = cfg.Console

	for component := range globalState.loggers {
		globalState.loggers[component].inner = newInner(component)
	}
	return nil
}

// Close flushes and closes the log file. Loggers fall back to io.Discard.
func Close() error {
	globalState.mu.Lock()
	defer globalState.mu.Unlock()

	globalState.out = io.Discard
	for component := range globalState.loggers {
		globalState.loggers[component].inner = newInner(component)
	}

	if globalState.file == nil {
		return nil
	}
	err := globalState.file.Close()
	globalState.file = nil
	return err
}

// Get returns the logger for the given component, creating it on first
// use. Component level overrides from the config apply.
func Get(component string) *Logger {
	globalState.mu.Lock()
	defer globalState.mu.Unlock()

	if logger, ok := globalState.loggers[component]; ok {
		return logger
	}
	logger := &Logger{inner: newInner(component)}
	globalState.loggers[component] = logger
	return logger
}

// newInner builds the charmbracelet logger for a component. Must be
// called with globalState.mu held.
func newInner(component string) *log.Logger {
	level := globalState.level
	if override, ok := globalState.components[component]; ok {
		level = override
	}

	out := globalState.out
	if globalState.console && globalState.file != nil {
		out = io.MultiWriter(globalState.out, os.Stderr)
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          component,
	})
	logger.SetLevel(level)
	return logger
}
