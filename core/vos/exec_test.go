package vos_test

import (
	"testing"

	"github.com/josephlewis42/minish/core/vos"
	"github.com/josephlewis42/minish/core/vos/vostest"
	"github.com/stretchr/testify/assert"
)

func TestLookPath(t *testing.T) {
	cases := map[string]struct {
		path     *string
		files    []string
		lookup   string
		expected string
		err      error
	}{
		"first directory wins": {
			path:     strPtr("/usr/local/bin:/usr/bin:/bin"),
			files:    []string{"/bin/tool", "/usr/bin/tool"},
			lookup:   "tool",
			expected: "/usr/bin/tool",
		},
		"search order follows PATH not filesystem": {
			path:     strPtr("/bin:/usr/bin"),
			files:    []string{"/bin/tool", "/usr/bin/tool"},
			lookup:   "tool",
			expected: "/bin/tool",
		},
		"missing": {
			path:   strPtr("/usr/bin:/bin"),
			lookup: "nonexistent123",
			err:    vos.ErrNotFound,
		},
		"unset PATH": {
			files:  []string{"/bin/tool"},
			lookup: "tool",
			err:    vos.ErrNotFound,
		},
		"empty element is the working directory": {
			path:     strPtr(":/bin"),
			files:    []string{"/tool"},
			lookup:   "tool",
			expected: "tool",
		},
		"absolute name": {
			path:     strPtr("/usr/bin"),
			files:    []string{"/opt/tool", "/usr/bin/opt/tool"},
			lookup:   "/opt/tool",
			expected: "/opt/tool",
		},
		"absolute name without PATH": {
			files:    []string{"/opt/tool"},
			lookup:   "/opt/tool",
			expected: "/opt/tool",
		},
		"missing absolute name": {
			path:   strPtr("/usr/bin"),
			files:  []string{"/usr/bin/opt/tool"},
			lookup: "/opt/tool",
			err:    vos.ErrNotFound,
		},
		"existence only": {
			path:     strPtr("/bin"),
			files:    []string{"/bin/data.txt"},
			lookup:   "data.txt",
			expected: "/bin/data.txt",
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			testOS := vostest.New(t)
			testOS.Unsetenv(vos.EnvPath)
			if tc.path != nil {
				testOS.Setenv(vos.EnvPath, *tc.path)
			}
			for _, f := range tc.files {
				testOS.WriteFile(t, f, "", 0644)
			}

			actual, err := vos.LookPath(testOS, tc.lookup)
			assert.Equal(t, tc.err, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestCmd_Argv(t *testing.T) {
	assert.Equal(t, []string{"/bin/ls"}, (&vos.Cmd{Path: "/bin/ls"}).Argv())
	assert.Equal(t, []string{"ls", "-l"}, vos.Command("/bin/ls", "ls", "-l").Argv())
}

func strPtr(s string) *string {
	return &s
}
