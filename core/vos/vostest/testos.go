package vostest

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"testing"

	"github.com/josephlewis42/minish/core/vos"
	"github.com/spf13/afero"
)

// ProcessFunc is a fake program that can be run by TestOS.
type ProcessFunc func(ctx context.Context, cmd *vos.Cmd) int

const (
	// DefaultPath is the search path new test systems start with.
	DefaultPath = "/usr/local/bin:/usr/bin:/bin"
	// DefaultHome is the home directory new test systems start with.
	DefaultHome = "/home/tester"
	// DefaultExecutable is the path reported for the interpreter.
	DefaultExecutable = "/opt/minish/bin/minish"
)

// TestOS is a deterministic, in-memory VOS.
type TestOS struct {
	*vos.MapEnv
	vos.VIO
	vos.VFS

	// Out collects both stdout and stderr.
	Out *bytes.Buffer
	// Dir is the current working directory.
	Dir string
	// ExecutablePath is returned from Executable, errors if blank.
	ExecutablePath string
	// Processes maps executable paths to fake programs.
	Processes map[string]ProcessFunc
	// Ran holds every command passed to Run, in order.
	Ran []*vos.Cmd
}

var _ vos.VOS = (*TestOS)(nil)

// New creates a test system with a home directory, a search path and a few
// standard directories.
func New(t testing.TB) *TestOS {
	t.Helper()

	out := &bytes.Buffer{}
	testOS := &TestOS{
		MapEnv:         vos.NewMapEnvFromEnvList([]string{"PATH=" + DefaultPath, "HOME=" + DefaultHome}),
		VIO:            vos.NewVIOAdapter(nil, out, out),
		Out:            out,
		Dir:            "/",
		ExecutablePath: DefaultExecutable,
		Processes:      make(map[string]ProcessFunc),
	}
	testOS.VFS = vos.NewRelativeFs(afero.NewMemMapFs(), func() string { return testOS.Dir })

	for _, dir := range []string{"/bin", "/usr/bin", "/usr/local/bin", "/tmp", DefaultHome} {
		if err := testOS.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
	}

	return testOS
}

// Getwd implements VOS.Getwd.
func (o *TestOS) Getwd() (string, error) {
	return o.Dir, nil
}

// Chdir implements VOS.Chdir.
func (o *TestOS) Chdir(dir string) error {
	if !path.IsAbs(dir) {
		dir = path.Join(o.Dir, dir)
	}
	dir = path.Clean(dir)

	stat, err := o.Stat(dir)
	switch {
	case err != nil:
		return err
	case !stat.IsDir():
		return &os.PathError{Op: "chdir", Path: dir, Err: fmt.Errorf("not a directory")}
	default:
		o.Dir = dir
		return nil
	}
}

// Executable implements VOS.Executable.
func (o *TestOS) Executable() (string, error) {
	if o.ExecutablePath == "" {
		return "", os.ErrNotExist
	}
	return o.ExecutablePath, nil
}

// Run implements VOS.Run by dispatching to the registered fake program.
func (o *TestOS) Run(ctx context.Context, cmd *vos.Cmd) (int, error) {
	o.Ran = append(o.Ran, cmd)

	proc, ok := o.Processes[cmd.Path]
	if !ok {
		return -1, &os.PathError{Op: "fork/exec", Path: cmd.Path, Err: fmt.Errorf("exec format error")}
	}
	return proc(ctx, cmd), nil
}

// WriteFile creates name and its parents with the given contents and mode.
func (o *TestOS) WriteFile(t testing.TB, name, contents string, perm os.FileMode) {
	t.Helper()

	if err := o.MkdirAll(path.Dir(name), 0755); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(o, name, []byte(contents), perm); err != nil {
		t.Fatal(err)
	}
	// WriteFile only applies perm on creation.
	if err := o.Chmod(name, perm); err != nil {
		t.Fatal(err)
	}
}

// AddProgram installs an executable at name backed by proc.
func (o *TestOS) AddProgram(t testing.TB, name string, proc ProcessFunc) {
	t.Helper()

	o.WriteFile(t, name, "#!fake\n", 0755)
	o.Processes[name] = proc
}

// PrintArgs is a fake program that writes its arguments, one per line.
func PrintArgs(ctx context.Context, cmd *vos.Cmd) int {
	for _, arg := range cmd.Argv() {
		fmt.Fprintln(cmd.Stdout, arg)
	}
	return 0
}

// ExitWith creates a fake program that exits with the given status.
func ExitWith(status int) ProcessFunc {
	return func(context.Context, *vos.Cmd) int {
		return status
	}
}
