// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

//go:build !windows

package lfs

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navwar/gofs/pkg/fs"
)

func TestLocalFileSystemMemory(t *testing.T) {
	ctx := context.Background()
	mfs := afero.NewMemMapFs()
	require.NoError(t, mfs.MkdirAll("/a/b", 0755))
	require.NoError(t, afero.WriteFile(mfs, "/a/c.txt", []byte("hello"), 0640))

	lfs := NewFileSystem(mfs)
	assert.Equal(t, "/", lfs.Root())

	names, err := lfs.ReadDir(ctx, "/a")
	require.NoError(t, err)
	sort.Strings(names)
	assert.Equal(t, []string{"b", "c.txt"}, names)

	fi, err := lfs.Stat(ctx, "/a/b")
	require.NoError(t, err)
	assert.Equal(t, fs.KindDir, fi.Kind())
	assert.True(t, fi.IsDir())
	assert.Equal(t, "b", fi.Name())

	fi, err = lfs.Stat(ctx, "/a/c.txt")
	require.NoError(t, err)
	assert.Equal(t, fs.KindFile, fi.Kind())
	assert.Equal(t, int64(5), fi.Size())
	assert.Equal(t, uint32(0640), fi.Perm())
	assert.Equal(t, -1, fi.UID())

	_, err = lfs.Stat(ctx, "/a/missing")
	require.Error(t, err)
	assert.True(t, lfs.IsNotExist(err))

	f, err := lfs.Open(ctx, "/a/c.txt")
	require.NoError(t, err)
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.NoError(t, f.Close())
	assert.Equal(t, "hello", string(data))
}

func TestLocalFileSystemDisk(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "file"), []byte("x"), 0600))
	require.NoError(t, os.Symlink(filepath.Join(dir, "file"), filepath.Join(dir, "link")))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0700))

	lfs := NewLocalFileSystem(dir)
	assert.Equal(t, dir, lfs.Root())

	fi, err := lfs.Stat(ctx, "/link")
	require.NoError(t, err)
	assert.Equal(t, fs.KindSymlink, fi.Kind())

	fi, err = lfs.Stat(ctx, "/file")
	require.NoError(t, err)
	assert.Equal(t, fs.KindFile, fi.Kind())
	assert.Equal(t, os.Geteuid(), fi.UID())
	assert.NotZero(t, fi.Inode())

	fi, err = lfs.Stat(ctx, "/sub")
	require.NoError(t, err)
	assert.Equal(t, fs.KindDir, fi.Kind())
	assert.Equal(t, uint32(0700), fi.Perm())

	require.NoError(t, lfs.Rename(ctx, "/file", "/sub/file"))
	names, err := lfs.ReadDir(ctx, "/sub")
	require.NoError(t, err)
	assert.Equal(t, []string{"file"}, names)

	require.NoError(t, lfs.Remove(ctx, "/sub/file"))
	_, err = lfs.Stat(ctx, "/sub/file")
	assert.True(t, lfs.IsNotExist(err))
}

func TestReadOnlyLocalFileSystem(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	lfs := NewReadOnlyLocalFileSystem(dir)
	err := lfs.Mkdir(ctx, "/a", 0755)
	assert.Error(t, err)
	_, err = os.Stat(filepath.Join(dir, "a"))
	assert.True(t, os.IsNotExist(err))
}
