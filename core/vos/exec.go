package vos

import (
	"io"
	"os/exec"
	"path/filepath"
)

const (
	EnvHome = "HOME"
	EnvPath = "PATH"
)

// ErrNotFound is the error resulting if a path search failed to find a file.
var ErrNotFound = exec.ErrNotFound

// LookPath searches for a file named file in the directories named by the
// PATH environment variable, in order. Only existence is checked, the first
// directory holding an entry with that name wins. An unset PATH finds nothing.
// Absolute names are checked as they are instead of being searched for.
func LookPath(vos VOS, file string) (string, error) {
	if filepath.IsAbs(file) {
		if _, err := vos.Stat(file); err != nil {
			return "", ErrNotFound
		}
		return file, nil
	}

	path, ok := vos.LookupEnv(EnvPath)
	if !ok {
		return "", ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		path := filepath.Join(dir, file)
		if _, err := vos.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", ErrNotFound
}

// Cmd is similar to go's os/exec.Cmd.
type Cmd struct {
	// Path is the path of the command to run.
	Path string

	// Args holds command line arguments, including the command as Args[0].
	// If the Args field is empty or nil, Run uses {Path}.
	Args []string

	// Env specifies the environment of the process.
	// Each entry is of the form "key=value".
	// If Env is nil, the new process uses the current process's
	// environment.
	Env []string

	// Dir specifies the working directory of the command.
	// If Dir is the empty string, Run runs the command in the
	// calling process's current directory.
	Dir string

	// Stdin specifies the process's standard input.
	Stdin io.Reader

	// Stdout and Stderr specify the process's standard output and error.
	Stdout io.Writer
	Stderr io.Writer
}

// Command returns the Cmd struct to execute the program at path with the
// given arguments, argv[0] is set to name.
func Command(path, name string, arg ...string) *Cmd {
	return &Cmd{
		Path: path,
		Args: append([]string{name}, arg...),
	}
}

// Argv returns the argument vector, defaulting to {Path}.
func (c *Cmd) Argv() []string {
	if len(c.Args) == 0 {
		return []string{c.Path}
	}
	return c.Args
}
