package logging

import (
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
)

const (
	DEBUG = "DEBUG"
	INFO  = "INFO"
	WARN  = "WARN"
	ERROR = "ERROR"
)

//Logger is the structured logging contract used across the discovery
//and binding services for non-fatal diagnostics.
type Logger interface {
	IsDebugEnabled() bool
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type slogger struct {
	logger *slog.Logger
	level  slog.Level
}

// New creates a structured logger using the JSON Handler. Creating this
// logger sets it as the default logger, so any logging after this which
// goes through the standard logging package will also produce JSON
// structured logs.
func New(level string, dest io.Writer) Logger {
	if dest == nil {
		dest = os.Stdout
	}

	logLevel := slog.LevelInfo
	switch strings.ToUpper(level) {
	case DEBUG:
		logLevel = slog.LevelDebug
	case WARN:
		logLevel = slog.LevelWarn
	case ERROR:
		logLevel = slog.LevelError
	}

	handler := slog.NewJSONHandler(dest, &slog.HandlerOptions{
		AddSource: false,
		Level:     logLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Rename the time key to "timestamp"
			if a.Key == slog.TimeKey {
				a.Key = "timestamp"
			}
			return a
		},
	})
	sl := slog.New(handler)
	slog.SetDefault(sl)
	return &slogger{sl, logLevel}
}

//Default returns a logger writing WARN and above to stderr
func Default() Logger {
	return New(WARN, os.Stderr)
}

func (s *slogger) IsDebugEnabled() bool {
	return s.level.Level() <= slog.LevelDebug
}

func (s *slogger) IsInfoEnabled() bool {
	return s.level.Level() <= slog.LevelInfo
}

func (s *slogger) IsWarnEnabled() bool {
	return s.level.Level() <= slog.LevelWarn
}

func (s *slogger) IsErrorEnabled() bool {
	return s.level.Level() <= slog.LevelError
}

// getCallerInfo uses runtime to get the caller's program counter
// and extract info from the stack frame to get the function name, etc.
func (s *slogger) getCallerInfo() []any {
	callers := make([]uintptr, 1)
	count := runtime.Callers(3, callers[:]) // skip to actual caller
	if count == 0 {
		return nil
	}

	frames := runtime.CallersFrames(callers)
	var frame runtime.Frame
	var more bool
	for {
		frame, more = frames.Next()
		if !more {
			break
		}
	}

	return []any{
		"function", frame.Function, "file", frame.File, "line", frame.Line,
	}
}

// Debug wraps a call to slog.Debug, inserting details for the calling function.
func (s *slogger) Debug(msg string, args ...any) {
	if !s.IsDebugEnabled() {
		return
	}
	caller := s.getCallerInfo()
	caller = append(caller, args...)
	s.logger.Debug(msg, caller...)
}

// Info wraps a call to slog.Info, inserting details for the calling function.
func (s *slogger) Info(msg string, args ...any) {
	if !s.IsInfoEnabled() {
		return
	}
	caller := s.getCallerInfo()
	caller = append(caller, args...)
	s.logger.Info(msg, caller...)
}

// Warn wraps a call to slog.Warn, inserting details for the calling function.
func (s *slogger) Warn(msg string, args ...any) {
	if !s.IsWarnEnabled() {
		return
	}
	caller := s.getCallerInfo()
	caller = append(caller, args...)
	s.logger.Warn(msg, caller...)
}

// Error wraps a call to slog.Error, inserting details for the calling function.
func (s *slogger) Error(msg string, args ...any) {
	if !s.IsErrorEnabled() {
		return
	}
	caller := s.getCallerInfo()
	caller = append(caller, args...)
	s.logger.Error(msg, caller...)
}
