package vos

import (
	"context"
	"errors"
	"os"
	"os/exec"

	"github.com/spf13/afero"
)

// HostOS is the VOS backed by the real operating system.
type HostOS struct {
	HostEnv
	VIO
	VFS
}

var _ VOS = (*HostOS)(nil)

// NewHostOS creates a VOS over the host filesystem, environment and process
// table using files as the standard streams.
func NewHostOS(files VIO) *HostOS {
	return &HostOS{
		VIO: files,
		VFS: afero.NewOsFs(),
	}
}

// Getwd implements VOS.Getwd.
func (*HostOS) Getwd() (string, error) {
	return os.Getwd()
}

// Chdir implements VOS.Chdir.
func (*HostOS) Chdir(dir string) error {
	return os.Chdir(dir)
}

// Executable implements VOS.Executable.
func (*HostOS) Executable() (string, error) {
	return os.Executable()
}

// Run implements VOS.Run.
func (*HostOS) Run(ctx context.Context, c *Cmd) (int, error) {
	argv := c.Argv()

	cmd := exec.CommandContext(ctx, c.Path, argv[1:]...)
	cmd.Args = argv
	cmd.Env = c.Env
	cmd.Dir = c.Dir
	if c.Stdin != nil {
		cmd.Stdin = UnwrapReader(c.Stdin)
	}
	if c.Stdout != nil {
		cmd.Stdout = UnwrapWriter(c.Stdout)
	}
	if c.Stderr != nil {
		cmd.Stderr = UnwrapWriter(c.Stderr)
	}

	err := cmd.Run()

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return -1, err
	}
	return 0, nil
}
