// Package logger provides leveled logging for muralis.
// When MURALIS_DEBUG=1, logs at Debug level are written to stderr and to muralis-debug.log
// in the directory passed to Init (or the temp dir).
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

var (
	mu    sync.Mutex
	level = new(slog.LevelVar)
	log   *slog.Logger
	file  *os.File
	debug bool
)

// Init sets up the logger. dir is where the debug log file goes when MURALIS_DEBUG=1.
// Calling Init again replaces the previous logger.
func Init(dir string) {
	mu.Lock()
	defer mu.Unlock()
	closeFile()

	debug = os.Getenv("MURALIS_DEBUG") == "1"
	if debug {
		level.Set(slog.LevelDebug)
	}

	var w io.Writer = os.Stderr
	if debug {
		if dir == "" {
			dir = os.TempDir()
		}
		if err := os.MkdirAll(dir, 0755); err == nil {
			f, err := os.OpenFile(filepath.Join(dir, "muralis-debug.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
			if err == nil {
				file = f
				w = io.MultiWriter(os.Stderr, f)
			}
		}
	}
	log = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	}))
}

// SetOutput sends log output to w with no debug file. Used by tests and --quiet style callers.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	closeFile()
	log = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// SetVerbose lowers the level to Debug (true) or restores Info (false, unless MURALIS_DEBUG=1).
func SetVerbose(v bool) {
	switch {
	case v || debug:
		level.Set(slog.LevelDebug)
	default:
		level.Set(slog.LevelInfo)
	}
}

// IsDebug reports whether debug records are emitted.
func IsDebug() bool {
	return level.Level() <= slog.LevelDebug
}

func get() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if log == nil {
		log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	}
	return log
}

// Debug logs at Debug level. Keys must be string; values can be any type.
func Debug(msg string, keyvals ...any) {
	get().Debug(msg, keyvals...)
}

// Info logs at Info level.
func Info(msg string, keyvals ...any) {
	get().Info(msg, keyvals...)
}

// Warn logs at Warn level.
func Warn(msg string, keyvals ...any) {
	get().Warn(msg, keyvals...)
}

// Error logs at Error level.
func Error(msg string, keyvals ...any) {
	get().Error(msg, keyvals...)
}

// Close closes the debug log file if one was opened.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeFile()
}

func closeFile() {
	if file != nil {
		_ = file.Close()
		file = nil
	}
}
