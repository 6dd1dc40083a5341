package vos

import (
	"context"

	"github.com/spf13/afero"
)

// VFS is the filesystem of the virtual OS.
type VFS = afero.Fs

// VProc holds the process state the interpreter reads and mutates.
type VProc interface {
	// Getwd returns the absolute path of the current working directory.
	Getwd() (string, error)

	// Chdir changes the current working directory.
	Chdir(dir string) error

	// Executable returns the path of the running interpreter.
	Executable() (string, error)

	// Run starts cmd and waits for it to complete. A non-zero exit status is
	// returned as the status, not as an error; the error is only set when the
	// process couldn't be started or waited on.
	Run(ctx context.Context, cmd *Cmd) (status int, err error)
}

// VOS provides a virtual OS interface.
type VOS interface {
	VEnv
	VIO
	VProc
	VFS
}
