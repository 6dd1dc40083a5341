// Package ttylog records the terminal output of a session and plays it back.
package ttylog

import (
	"io"
	"sync"
	"time"
)

// FD identifies the stream an entry was written to.
type FD int

const (
	FDStdin  FD = 0
	FDStdout FD = 1
	FDStderr FD = 2
)

// Entry is a chunk of data written to a stream at a point in time.
type Entry struct {
	TimestampMicros int64
	Fd              FD
	Data            []byte
}

// LogSink receives log events.
type LogSink func(e *Entry) error

// LogSource adapts log readers.
type LogSource interface {
	// Next fetches the next available log entry. It returns io.EOF if the source
	// has no more log entries.
	Next() (*Entry, error)
}

// Replay reads a stream of events to a callback.
func Replay(recording LogSource, callback LogSink) (err error) {
	for {
		entry, err := recording.Next()
		switch {
		case err == io.EOF:
			return nil
		case err != nil:
			return err
		}

		if err := callback(entry); err != nil {
			return err
		}
	}
}

// NewClientOutput writes stdout and stderr to the given writer
func NewClientOutput(w io.Writer) LogSink {
	return func(entry *Entry) error {
		if entry.Fd == FDStdin {
			return nil
		}
		_, err := w.Write(entry.Data)
		return err
	}
}

// NewRealTimePlayback plays back the results in real-time.
// If maxSleep > 0, it's used as the maximum duration to pause.
func NewRealTimePlayback(maxSleep time.Duration, next LogSink) LogSink {
	var once sync.Once
	var prevTimeMicros int64

	return func(entry *Entry) error {
		once.Do(func() {
			prevTimeMicros = entry.TimestampMicros
		})

		delta := entry.TimestampMicros - prevTimeMicros
		prevTimeMicros = entry.TimestampMicros

		if maxSleep > 0 {
			sleepDuration := time.Duration(delta) * time.Microsecond
			if sleepDuration > maxSleep {
				sleepDuration = maxSleep
			}
			time.Sleep(sleepDuration)
		}

		return next(entry)
	}
}
