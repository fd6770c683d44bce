// Package observability provides structured logging for the nativ client
// and CLI. Logs never include the API key.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Log formats accepted by New.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// New creates a logger writing to w at the given level.
// The console format is meant for terminals, json for log collectors.
func New(w io.Writer, level, format string) (zerolog.Logger, error) {
	parsedLevel, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("parse log level %q: %w", level, err)
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatConsole:
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}
	case FormatJSON:
	default:
		return zerolog.Logger{}, fmt.Errorf("unknown log format %q (want %s or %s)", format, FormatConsole, FormatJSON)
	}

	logger := zerolog.New(w).
		Level(parsedLevel).
		With().
		Timestamp().
		Str("service", "nativ").
		Logger()

	return logger, nil
}

// RestyLogger adapts a zerolog.Logger to the logger interface of the HTTP
// client library.
type RestyLogger struct {
	logger zerolog.Logger
}

// NewRestyLogger wraps logger.
func NewRestyLogger(logger zerolog.Logger) *RestyLogger {
	return &RestyLogger{logger: logger.With().Str("source", "resty").Logger()}
}

func (l *RestyLogger) Errorf(format string, v ...interface{}) {
	l.logger.Error().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l *RestyLogger) Warnf(format string, v ...interface{}) {
	l.logger.Warn().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l *RestyLogger) Debugf(format string, v ...interface{}) {
	l.logger.Debug().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
