package vos

import (
	"os"
	"path"
	"time"

	"github.com/spf13/afero"
)

// RelativeFs resolves relative names against a working directory before
// passing them to the base filesystem. Filesystems like afero.MemMapFs have no
// notion of a working directory so this backfills it.
type RelativeFs struct {
	base  VFS
	getwd func() string
}

var _ VFS = (*RelativeFs)(nil)

// NewRelativeFs creates a filesystem that resolves relative names against the
// directory returned by getwd.
func NewRelativeFs(base VFS, getwd func() string) *RelativeFs {
	return &RelativeFs{base: base, getwd: getwd}
}

// Resolve returns the absolute, cleaned form of name.
func (r *RelativeFs) Resolve(name string) string {
	if path.IsAbs(name) {
		return path.Clean(name)
	}
	return path.Join(r.getwd(), name)
}

// relativeFile keeps the caller supplied name for Name().
type relativeFile struct {
	afero.File
	name string
}

func (f *relativeFile) Name() string {
	return f.name
}

func (r *RelativeFs) wrap(name string, f afero.File, err error) (afero.File, error) {
	if err != nil {
		return nil, err
	}
	return &relativeFile{File: f, name: name}, nil
}

func (r *RelativeFs) Name() string {
	return "RelativeFs"
}

func (r *RelativeFs) Create(name string) (afero.File, error) {
	f, err := r.base.Create(r.Resolve(name))
	return r.wrap(name, f, err)
}

func (r *RelativeFs) Open(name string) (afero.File, error) {
	f, err := r.base.Open(r.Resolve(name))
	return r.wrap(name, f, err)
}

func (r *RelativeFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	f, err := r.base.OpenFile(r.Resolve(name), flag, perm)
	return r.wrap(name, f, err)
}

func (r *RelativeFs) Mkdir(name string, perm os.FileMode) error {
	return r.base.Mkdir(r.Resolve(name), perm)
}

func (r *RelativeFs) MkdirAll(name string, perm os.FileMode) error {
	return r.base.MkdirAll(r.Resolve(name), perm)
}

func (r *RelativeFs) Remove(name string) error {
	return r.base.Remove(r.Resolve(name))
}

func (r *RelativeFs) RemoveAll(name string) error {
	return r.base.RemoveAll(r.Resolve(name))
}

func (r *RelativeFs) Rename(oldname, newname string) error {
	return r.base.Rename(r.Resolve(oldname), r.Resolve(newname))
}

func (r *RelativeFs) Stat(name string) (os.FileInfo, error) {
	return r.base.Stat(r.Resolve(name))
}

func (r *RelativeFs) Chmod(name string, mode os.FileMode) error {
	return r.base.Chmod(r.Resolve(name), mode)
}

func (r *RelativeFs) Chown(name string, uid, gid int) error {
	return r.base.Chown(r.Resolve(name), uid, gid)
}

func (r *RelativeFs) Chtimes(name string, atime, mtime time.Time) error {
	return r.base.Chtimes(r.Resolve(name), atime, mtime)
}
