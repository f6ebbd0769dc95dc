// Package logging provides the leveled, optionally colored logger used by
// every stage. Console output goes through a tint handler; an optional log
// file receives the same records as plain slog text.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/x/ansi"
	"github.com/lmittmann/tint"

	"github.com/backmassage/ffxrename/internal/config"
	"github.com/backmassage/ffxrename/internal/term"
)

// LevelSuccess sits between Info and Warn so it is never filtered while Info is shown.
const LevelSuccess = slog.LevelInfo + 2

// Logger provides printf-style leveled logging with an optional file sink.
type Logger struct {
	mu      sync.Mutex
	console *slog.Logger
	file    *os.File
	fileLog *slog.Logger
}

// NewLogger configures colors from cfg, writes console output to stderr and
// optionally appends to cfg.LogFile. Call Close when done.
func NewLogger(cfg *config.Config) (*Logger, error) {
	term.Configure(cfg.ColorMode)
	return newLogger(os.Stderr, cfg)
}

func newLogger(w io.Writer, cfg *config.Config) (*Logger, error) {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}

	l := &Logger{
		console: slog.New(tint.NewHandler(w, &tint.Options{
			Level:       level,
			TimeFormat:  "15:04:05",
			NoColor:     !term.Enabled(),
			ReplaceAttr: consoleLevel,
		})),
	}

	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		l.file = f
		l.fileLog = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: fileLevel,
		}))
	}
	return l, nil
}

// consoleLevel renders the level column with the shared term styles so the
// custom SUCCESS level is colored like the built-in ones.
func consoleLevel(groups []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey || len(groups) > 0 {
		return a
	}
	lvl, ok := a.Value.Any().(slog.Level)
	if !ok {
		return a
	}
	switch {
	case lvl < slog.LevelInfo:
		return slog.String(a.Key, term.Cyan.Render("DBG"))
	case lvl < LevelSuccess:
		return slog.String(a.Key, term.Blue.Render("INF"))
	case lvl < slog.LevelWarn:
		return slog.String(a.Key, term.Green.Render("OK "))
	case lvl < slog.LevelError:
		return slog.String(a.Key, term.Yellow.Render("WRN"))
	default:
		return slog.String(a.Key, term.Red.Render("ERR"))
	}
}

// fileLevel names the custom level in the plain-text sink.
func fileLevel(groups []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey || len(groups) > 0 {
		return a
	}
	if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelSuccess {
		return slog.String(a.Key, "SUCCESS")
	}
	return a
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		l.fileLog = nil
		return err
	}
	return nil
}

func (l *Logger) log(level slog.Level, text string) {
	ctx := context.Background()
	l.console.Log(ctx, level, text)
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fileLog != nil {
		l.fileLog.Log(ctx, level, ansi.Strip(text))
	}
}

// Info logs at INFO level.
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(slog.LevelInfo, fmt.Sprintf(format, args...))
}

// Success logs at SUCCESS level.
func (l *Logger) Success(format string, args ...interface{}) {
	l.log(LevelSuccess, fmt.Sprintf(format, args...))
}

// Warn logs at WARN level.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(slog.LevelWarn, fmt.Sprintf(format, args...))
}

// Error logs at ERROR level.
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(slog.LevelError, fmt.Sprintf(format, args...))
}

// Debug logs at DEBUG level; dropped unless the logger was built with Verbose.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(slog.LevelDebug, fmt.Sprintf(format, args...))
}
