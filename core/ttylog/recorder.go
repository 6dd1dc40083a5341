package ttylog

import (
	"io"
	"log"
	"sync"
	"time"

	"github.com/josephlewis42/minish/core/vos"
)

// Recorder is a VIO that copies everything written to stdout and stderr into
// a LogSink. Stdin is passed through untouched so child processes can still
// be handed the real file.
type Recorder struct {
	*vos.VIOAdapter
	mutex  sync.Mutex
	output LogSink
	// Log receives sink errors, writes to the wrapped streams never fail
	// because of the recording.
	Log *log.Logger
}

var _ vos.VIO = (*Recorder)(nil)

// NewRecorder creates a recorder that forwards output events to output.
func NewRecorder(toWrap vos.VIO, output LogSink) *Recorder {
	recorder := &Recorder{
		output: output,
		Log:    log.New(io.Discard, "", 0),
	}

	recorder.VIOAdapter = &vos.VIOAdapter{
		IStdin:  toWrap.Stdin(),
		IStdout: &recorderWriteCloser{r: recorder, mockFd: FDStdout, wrapped: toWrap.Stdout()},
		IStderr: &recorderWriteCloser{r: recorder, mockFd: FDStderr, wrapped: toWrap.Stderr()},
	}

	return recorder
}

func (r *Recorder) recordWrite(mockFd FD, data []byte, dest io.Writer) (int, error) {
	eventTime := time.Now()
	amount, err := dest.Write(data)
	if amount > 0 {
		r.mutex.Lock()
		sinkErr := r.output(&Entry{
			TimestampMicros: eventTime.UnixMicro(),
			Fd:              mockFd,
			Data:            append([]byte(nil), data[:amount]...),
		})
		r.mutex.Unlock()
		if sinkErr != nil {
			r.Log.Print(sinkErr)
		}
	}
	return amount, err
}

type recorderWriteCloser struct {
	r       *Recorder
	mockFd  FD
	wrapped io.WriteCloser
}

var _ io.WriteCloser = (*recorderWriteCloser)(nil)

func (rc *recorderWriteCloser) Write(p []byte) (int, error) {
	return rc.r.recordWrite(rc.mockFd, p, rc.wrapped)
}

func (rc *recorderWriteCloser) Close() error {
	return rc.wrapped.Close()
}

// Fd reports the descriptor of the wrapped stream so terminal detection keeps
// working while recording. It returns ^uintptr(0) if there is none.
func (rc *recorderWriteCloser) Fd() uintptr {
	if f, ok := vos.UnwrapWriter(rc.wrapped).(interface{ Fd() uintptr }); ok {
		return f.Fd()
	}
	return ^uintptr(0)
}
