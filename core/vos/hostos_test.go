package vos

import (
	"bytes"
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHostOS_Run(t *testing.T) {
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("no sh on this system")
	}

	t.Run("exit status is not an error", func(t *testing.T) {
		out := &bytes.Buffer{}
		host := NewHostOS(NewVIOAdapter(nil, out, out))

		status, err := host.Run(context.Background(), &Cmd{
			Path:   sh,
			Args:   []string{"sh", "-c", "echo hi; exit 3"},
			Stdout: host.Stdout(),
			Stderr: host.Stderr(),
		})

		assert.Nil(t, err)
		assert.Equal(t, 3, status)
		assert.Equal(t, "hi\n", out.String())
	})

	t.Run("spawn failure is an error", func(t *testing.T) {
		host := NewHostOS(NewNullIO())

		_, err := host.Run(context.Background(), Command("/does/not/exist", "nope"))
		assert.Error(t, err)
	})
}

func TestHostOS_Executable(t *testing.T) {
	host := NewHostOS(NewNullIO())

	exe, err := host.Executable()
	assert.Nil(t, err)
	assert.NotEmpty(t, exe)
}
