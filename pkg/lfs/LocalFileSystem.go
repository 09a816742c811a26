// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package lfs

import (
	"context"
	"os"
	"time"

	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"

	"github.com/navwar/gofs/pkg/fs"
)

type LocalFileSystem struct {
	root string
	fs   afero.Fs
}

func (lfs *LocalFileSystem) Chtimes(ctx context.Context, name string, atime time.Time, mtime time.Time) error {
	return lfs.fs.Chtimes(name, atime, mtime)
}

func (lfs *LocalFileSystem) IsNotExist(err error) bool {
	return os.IsNotExist(err) || errors.Is(err, os.ErrNotExist)
}

func (lfs *LocalFileSystem) Mkdir(ctx context.Context, name string, perm os.FileMode) error {
	return lfs.fs.Mkdir(name, perm)
}

func (lfs *LocalFileSystem) Open(ctx context.Context, name string) (fs.File, error) {
	f, err := lfs.fs.Open(name)
	if err != nil {
		return nil, err
	}
	return NewLocalFile(f), nil
}

func (lfs *LocalFileSystem) OpenFile(ctx context.Context, name string, flag int, perm os.FileMode) (fs.File, error) {
	f, err := lfs.fs.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return NewLocalFile(f), nil
}

func (lfs *LocalFileSystem) ReadDir(ctx context.Context, name string) ([]string, error) {
	f, err := lfs.fs.Open(name)
	if err != nil {
		return nil, err
	}
	names, err := f.Readdirnames(-1)
	if err != nil {
		_ = f.Close() // silently close directory
		return nil, errors.Errorf("error reading directory %q: %w", name, err)
	}
	err = f.Close()
	if err != nil {
		return nil, errors.Errorf("error closing directory %q: %w", name, err)
	}
	return names, nil
}

func (lfs *LocalFileSystem) Remove(ctx context.Context, name string) error {
	return lfs.fs.Remove(name)
}

func (lfs *LocalFileSystem) Rename(ctx context.Context, oldname string, newname string) error {
	return lfs.fs.Rename(oldname, newname)
}

func (lfs *LocalFileSystem) Root() string {
	return lfs.root
}

func (lfs *LocalFileSystem) Stat(ctx context.Context, name string) (fs.FileInfo, error) {
	var fi os.FileInfo
	var err error
	if lstater, ok := lfs.fs.(afero.Lstater); ok {
		fi, _, err = lstater.LstatIfPossible(name)
	} else {
		fi, err = lfs.fs.Stat(name)
	}
	if err != nil {
		return nil, err
	}
	return NewLocalFileInfo(fi), nil
}

// NewLocalFileSystem returns a file system for the directory at rootPath on the local disk.
// Names are resolved relative to rootPath.
func NewLocalFileSystem(rootPath string) *LocalFileSystem {
	if rootPath == "" || rootPath == "/" {
		return &LocalFileSystem{
			root: "/",
			fs:   afero.NewOsFs(),
		}
	}
	return &LocalFileSystem{
		root: rootPath,
		fs:   afero.NewBasePathFs(afero.NewOsFs(), rootPath),
	}
}

// NewReadOnlyLocalFileSystem returns a file system for the directory at rootPath that rejects all mutations.
func NewReadOnlyLocalFileSystem(rootPath string) *LocalFileSystem {
	if rootPath == "" || rootPath == "/" {
		return &LocalFileSystem{
			root: "/",
			fs:   afero.NewReadOnlyFs(afero.NewOsFs()),
		}
	}
	return &LocalFileSystem{
		root: rootPath,
		fs:   afero.NewBasePathFs(afero.NewReadOnlyFs(afero.NewOsFs()), rootPath),
	}
}

// NewMemoryFileSystem returns an empty in-memory file system.
func NewMemoryFileSystem() *LocalFileSystem {
	return NewFileSystem(afero.NewMemMapFs())
}

// NewFileSystem wraps an existing afero file system.
func NewFileSystem(fs afero.Fs) *LocalFileSystem {
	return &LocalFileSystem{
		root: "/",
		fs:   fs,
	}
}
