// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

// Package log writes structured log messages as JSON lines.
package log

import (
	"io"

	"github.com/rs/zerolog"
)

// SimpleLogger writes each message as a JSON object on its own line.
type SimpleLogger struct {
	logger zerolog.Logger
}

// Log writes the message with the given fields.
// Later fields overwrite earlier fields with the same key.
func (l *SimpleLogger) Log(msg string, fields ...map[string]interface{}) error {
	event := l.logger.Log()
	for _, f := range fields {
		event = event.Fields(f)
	}
	event.Msg(msg)
	return nil
}

// Logger returns the underlying zerolog logger.
func (l *SimpleLogger) Logger() zerolog.Logger {
	return l.logger
}

func NewSimpleLogger(w io.Writer) *SimpleLogger {
	return &SimpleLogger{
		logger: zerolog.New(zerolog.SyncWriter(w)).With().Timestamp().Logger(),
	}
}
