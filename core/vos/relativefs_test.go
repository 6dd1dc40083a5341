package vos

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func TestRelativeFs(t *testing.T) {
	wd := "/home/u"
	fs := NewRelativeFs(afero.NewMemMapFs(), func() string { return wd })

	assert.Nil(t, fs.MkdirAll("/home/u/docs", 0755))
	assert.Nil(t, afero.WriteFile(fs, "docs/notes.txt", []byte("hi"), 0644))

	t.Run("relative resolves against wd", func(t *testing.T) {
		contents, err := afero.ReadFile(fs, "/home/u/docs/notes.txt")
		assert.Nil(t, err)
		assert.Equal(t, "hi", string(contents))
	})

	t.Run("dot-dot is cleaned", func(t *testing.T) {
		_, err := fs.Stat("../u/docs/notes.txt")
		assert.Nil(t, err)
	})

	t.Run("name is preserved", func(t *testing.T) {
		fd, err := fs.Open("docs/notes.txt")
		assert.Nil(t, err)
		defer fd.Close()
		assert.Equal(t, "docs/notes.txt", fd.Name())
	})

	t.Run("wd changes are observed", func(t *testing.T) {
		wd = "/home/u/docs"
		defer func() { wd = "/home/u" }()

		_, err := fs.Stat("notes.txt")
		assert.Nil(t, err)
	})
}
