package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rs/xid"
)

// LogRecorder is a callback that stores events in an external datastore.
type LogRecorder func(le *LogEntry) error

// EventRecorder records events for a single session.
type EventRecorder interface {
	Record(event LogType) error
}

// Logger captures interaction event logs for the interpreter.
type Logger struct {
	Record LogRecorder
}

// NewJsonLinesLogRecorder creates a Logger that exports logs in newline
// delimited JSON object format.
func NewJsonLinesLogRecorder(w io.Writer) *Logger {
	return &Logger{
		Record: func(le *LogEntry) error {
			entry, err := json.Marshal(le)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(w, string(entry))
			return err
		},
	}
}

func (l *Logger) recordLogType(sessionID string, event LogType) error {
	le := &LogEntry{}
	le.TimestampMicros = time.Now().UnixNano() / int64(time.Microsecond)
	le.SessionID = sessionID
	le.setLogType(event)

	return l.Record(le)
}

// NewSession creates a logger with a fresh session ID.
func (l *Logger) NewSession() *SessionLogger {
	return &SessionLogger{Logger: l, sessionID: xid.New().String()}
}

// SessionLogger logs messages with a shared session ID.
type SessionLogger struct {
	*Logger
	sessionID string
}

var _ EventRecorder = (*SessionLogger)(nil)

// SessionID returns the ID attached to every event.
func (l *SessionLogger) SessionID() string {
	return l.sessionID
}

// Record implements EventRecorder.
func (l *SessionLogger) Record(event LogType) error {
	return l.recordLogType(l.sessionID, event)
}

// NopRecorder discards all events.
type NopRecorder struct{}

var _ EventRecorder = (*NopRecorder)(nil)

// Record implements EventRecorder.
func (*NopRecorder) Record(LogType) error {
	return nil
}
