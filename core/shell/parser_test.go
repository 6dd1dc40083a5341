package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	cases := map[string]struct {
		line     string
		expected Command
	}{
		"exit":               {"exit", Exit{Code: 0}},
		"exit ignores args":  {"exit 3", Exit{Code: 0}},
		"echo":               {"echo  a   b", Echo{Args: []string{"a", "b"}}},
		"echo no args":       {"echo", Echo{}},
		"type":               {"type cd", Type{Target: "cd"}},
		"type no args":       {"type", Type{}},
		"type extra args":    {"type ls cat", Type{Target: "ls"}},
		"cd":                 {"cd /tmp", ChangeDirectory{Dir: "/tmp"}},
		"cd home":            {"cd", ChangeDirectory{}},
		"shell":              {"shell", ShellLocation{}},
		"shell ignores args": {"shell now", ShellLocation{}},
		"exec":               {"exec run.sh", RunScript{File: "run.sh"}},
		"exec args":          {"exec run.sh a b", RunScript{File: "run.sh", Args: []string{"a", "b"}}},
		"exec no args":       {"exec", RunScript{}},
		"external":           {"ls -l /", External{Name: "ls", Args: []string{"-l", "/"}}},
		"external no args":   {"  ls  ", External{Name: "ls"}},
		"case sensitive":     {"ECHO hi", External{Name: "ECHO", Args: []string{"hi"}}},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			actual, err := Parse(tc.line)

			assert.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestParse_empty(t *testing.T) {
	for _, line := range []string{"", " ", "\n", "   \t"} {
		_, err := Parse(line)
		assert.ErrorIs(t, err, ErrEmptyLine, "line: %q", line)
	}
}

func TestCommand_Argv(t *testing.T) {
	cases := map[string]struct {
		line     string
		expected []string
	}{
		"echo":     {"echo  a   b", []string{"echo", "a", "b"}},
		"exit":     {"exit 3", []string{"exit"}},
		"type":     {"type", []string{"type"}},
		"cd":       {"cd /tmp", []string{"cd", "/tmp"}},
		"exec":     {"exec run.sh a", []string{"exec", "run.sh", "a"}},
		"external": {"ls  -l", []string{"ls", "-l"}},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			cmd, err := Parse(tc.line)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, cmd.Argv())
		})
	}
}

func TestBuiltinNames(t *testing.T) {
	names := BuiltinNames()

	assert.Equal(t, []string{"cd", "echo", "exec", "exit", "shell", "type"}, names)
	for _, name := range names {
		assert.True(t, IsBuiltin(name), name)

		cmd, err := Parse(name)
		assert.NoError(t, err)
		assert.NotEqual(t, KindExternal, cmd.Kind(), name)
	}
	assert.False(t, IsBuiltin("ls"))
}
