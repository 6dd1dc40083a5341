package vos

import (
	"io/fs"
	"path"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

// FSTestSuite checks that a filesystem behaves the way the interpreter
// expects for cd, exec and path lookups. The in-memory filesystems used by
// tests must pass the same suite as the host.
type FSTestSuite struct {
	// MakeFS creates an FS for a single test. In is the FS that will be operated
	// on with the test. out is the FS checked for data.
	MakeFS func(t *testing.T) (in, out VFS)

	// Prefixer rewrites a test path before it's passed to the in FS. Input
	// paths will ALWAYS be absolute and slash delimited.
	Prefixer func(name string) (outname string)
}

type FSTestCaseSetup struct {
	check *FSTestCaseCheck

	t        *testing.T
	fs       VFS
	testPath string
	prefixer func(string) string
}

type FSTestCaseCheck struct {
	t    *testing.T
	fs   VFS
	name string
	err  error
	info fs.FileInfo
}

func FSTestCase(t *testing.T, suite FSTestSuite, testPath string) *FSTestCaseSetup {
	testFS, checkFS := suite.MakeFS(t)

	prefixer := func(in string) string {
		return in
	}
	if suite.Prefixer != nil {
		prefixer = suite.Prefixer
	}

	return &FSTestCaseSetup{
		check: &FSTestCaseCheck{
			t:    t,
			fs:   checkFS,
			name: testPath,
		},

		t:        t,
		fs:       testFS,
		testPath: testPath,
		prefixer: prefixer,
	}
}

func (tc *FSTestCaseSetup) MkdirTestPath(perm fs.FileMode) *FSTestCaseSetup {
	if err := tc.fs.MkdirAll(tc.prefixer(tc.testPath), perm); err != nil {
		tc.t.Fatal(err)
	}
	return tc
}

func (tc *FSTestCaseSetup) WriteTestPath(contents string, perm fs.FileMode) *FSTestCaseSetup {
	name := tc.prefixer(tc.testPath)
	if dir := path.Dir(tc.testPath); dir != "/" {
		if err := tc.fs.MkdirAll(tc.prefixer(dir), 0755); err != nil {
			tc.t.Fatal(err)
		}
	}
	if err := afero.WriteFile(tc.fs, name, []byte(contents), perm); err != nil {
		tc.t.Fatal(err)
	}
	if err := tc.fs.Chmod(name, perm); err != nil {
		tc.t.Fatal(err)
	}
	return tc
}

// Stat stats the test path and moves on to checks.
func (tc *FSTestCaseSetup) Stat() *FSTestCaseCheck {
	tc.check.info, tc.check.err = tc.fs.Stat(tc.prefixer(tc.testPath))
	return tc.check
}

func (tc *FSTestCaseSetup) AssertAfter(callback func(fs VFS, name string) error) *FSTestCaseCheck {
	tc.check.err = callback(tc.fs, tc.prefixer(tc.testPath))
	return tc.check
}

func (tc *FSTestCaseCheck) NoError() *FSTestCaseCheck {
	assert.Nil(tc.t, tc.err)
	return tc
}

func (tc *FSTestCaseCheck) ErrorIs(desired error) *FSTestCaseCheck {
	assert.ErrorIs(tc.t, tc.err, desired)
	return tc
}

func (tc *FSTestCaseCheck) IsDir(expected bool) *FSTestCaseCheck {
	if assert.NotNil(tc.t, tc.info) {
		assert.Equal(tc.t, expected, tc.info.IsDir(), "IsDir()")
	}
	return tc
}

func (tc *FSTestCaseCheck) Executable(expected bool) *FSTestCaseCheck {
	if assert.NotNil(tc.t, tc.info) {
		assert.Equal(tc.t, expected, tc.info.Mode().Perm()&0111 != 0, "mode: %v", tc.info.Mode())
	}
	return tc
}

func (tc *FSTestCaseCheck) Contents(expected string) *FSTestCaseCheck {
	actual, err := afero.ReadFile(tc.fs, tc.name)
	if err != nil {
		tc.t.Errorf("read %q: %v", tc.name, err)
	}
	assert.Equal(tc.t, expected, string(actual))
	return tc
}

func RunFsTest(t *testing.T, suite FSTestSuite) {
	t.Run("Stat", func(t *testing.T) {
		t.Run("file", func(t *testing.T) {
			FSTestCase(t, suite, "/bin/tool").
				WriteTestPath("#!", 0755).
				Stat().
				NoError().
				IsDir(false).
				Executable(true)
		})
		t.Run("not executable", func(t *testing.T) {
			FSTestCase(t, suite, "/notes.txt").
				WriteTestPath("hi", 0644).
				Stat().
				NoError().
				Executable(false)
		})
		t.Run("group executable", func(t *testing.T) {
			FSTestCase(t, suite, "/run.sh").
				WriteTestPath("echo", 0610).
				Stat().
				NoError().
				Executable(true)
		})
		t.Run("dir", func(t *testing.T) {
			FSTestCase(t, suite, "/usr/bin").
				MkdirTestPath(0755).
				Stat().
				NoError().
				IsDir(true)
		})
		t.Run("missing", func(t *testing.T) {
			FSTestCase(t, suite, "/does/not/exist").
				Stat().
				ErrorIs(fs.ErrNotExist)
		})
	})

	t.Run("Open", func(t *testing.T) {
		read := func(fs VFS, name string) error {
			_, err := afero.ReadFile(fs, name)
			return err
		}

		t.Run("nominal", func(t *testing.T) {
			FSTestCase(t, suite, "/scripts/a.sh").
				WriteTestPath("echo a\n", 0755).
				AssertAfter(read).
				NoError().
				Contents("echo a\n")
		})
		t.Run("missing", func(t *testing.T) {
			FSTestCase(t, suite, "/scripts/missing.sh").
				AssertAfter(read).
				ErrorIs(fs.ErrNotExist)
		})
	})
}

func TestRelativeFs_suite(t *testing.T) {
	suite := FSTestSuite{
		MakeFS: func(t *testing.T) (VFS, VFS) {
			mem := afero.NewMemMapFs()
			if err := mem.MkdirAll("/work", 0755); err != nil {
				t.Fatal(err)
			}
			return NewRelativeFs(mem, func() string { return "/work" }), afero.NewBasePathFs(mem, "/work")
		},
		// All operations use names relative to the working directory.
		Prefixer: func(name string) string {
			return strings.TrimPrefix(name, "/")
		},
	}

	RunFsTest(t, suite)
}

func TestOSFs(t *testing.T) {
	suite := FSTestSuite{
		MakeFS: func(t *testing.T) (VFS, VFS) {
			fs := afero.NewBasePathFs(afero.NewOsFs(), t.TempDir())
			return fs, fs
		},
	}

	RunFsTest(t, suite)
}
