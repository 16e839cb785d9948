// Package utils provides the leveled logging shared across the
// enrichment pipeline. Components receive a Logger at construction;
// the verbosity is fixed when the logger is built from configuration.
package utils

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// LogLevel orders verbosity from silent to debug. It unmarshals from
// the LLM_LOG_LEVEL environment variable.
type LogLevel int

const (
	LogLevelOff LogLevel = iota
	LogLevelError
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// Logger is the structured key/value logger the pipeline components
// log through.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// levelOff sits above slog.LevelError so an Off logger drops
// everything, errors included.
const levelOff = slog.LevelError + 4

func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LogLevelOff:
		return levelOff
	case LogLevelError:
		return slog.LevelError
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelDebug:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// DefaultLogger writes slog text lines to stderr. Filtering lives in
// the handler, so every method shares one level check.
type DefaultLogger struct {
	logger *slog.Logger
}

func NewLogger(level LogLevel) *DefaultLogger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level.slogLevel(),
	})
	return &DefaultLogger{logger: slog.New(handler)}
}

func (l *DefaultLogger) Debug(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l *DefaultLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Info(msg, keysAndValues...)
}

func (l *DefaultLogger) Warn(msg string, keysAndValues ...any) {
	l.logger.Warn(msg, keysAndValues...)
}

func (l *DefaultLogger) Error(msg string, keysAndValues ...any) {
	l.logger.Error(msg, keysAndValues...)
}

func (l LogLevel) String() string {
	switch l {
	case LogLevelOff:
		return "OFF"
	case LogLevelError:
		return "ERROR"
	case LogLevelWarn:
		return "WARN"
	case LogLevelInfo:
		return "INFO"
	case LogLevelDebug:
		return "DEBUG"
	default:
		return fmt.Sprintf("LogLevel(%d)", int(l))
	}
}

func (l *LogLevel) UnmarshalText(text []byte) error {
	switch strings.ToUpper(strings.TrimSpace(string(text))) {
	case "OFF":
		*l = LogLevelOff
	case "ERROR":
		*l = LogLevelError
	case "WARN":
		*l = LogLevelWarn
	case "INFO":
		*l = LogLevelInfo
	case "DEBUG":
		*l = LogLevelDebug
	default:
		return fmt.Errorf("invalid log level: %s", string(text))
	}
	return nil
}
