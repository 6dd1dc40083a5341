package ttylog

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/josephlewis42/minish/core/vos"
	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	var stdout, stderr bytes.Buffer
	var entries []*Entry
	recorder := NewRecorder(vos.NewVIOAdapter(nil, &stdout, &stderr), func(e *Entry) error {
		entries = append(entries, e)
		return nil
	})

	fmt.Fprint(recorder.Stdout(), "hello")
	fmt.Fprint(recorder.Stderr(), "oops")

	assert.Equal(t, "hello", stdout.String())
	assert.Equal(t, "oops", stderr.String())
	if assert.Len(t, entries, 2) {
		assert.Equal(t, FDStdout, entries[0].Fd)
		assert.Equal(t, "hello", string(entries[0].Data))
		assert.Equal(t, FDStderr, entries[1].Fd)
		assert.Equal(t, "oops", string(entries[1].Data))
	}
}

func TestRecorder_sinkErrorIgnored(t *testing.T) {
	var stdout bytes.Buffer
	recorder := NewRecorder(vos.NewVIOAdapter(nil, &stdout, nil), func(*Entry) error {
		return fmt.Errorf("disk full")
	})

	n, err := fmt.Fprint(recorder.Stdout(), "hello")

	assert.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello", stdout.String())
}
