// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

//go:build !windows

package predicate

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navwar/gofs/pkg/fs"
	"github.com/navwar/gofs/pkg/lfs"
)

var (
	oldTime = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	newTime = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
)

func newMemoryCompiler(t *testing.T) *Compiler {
	t.Helper()
	mfs := afero.NewMemMapFs()
	require.NoError(t, mfs.MkdirAll("/data/dir", 0o755))
	require.NoError(t, afero.WriteFile(mfs, "/data/empty.txt", []byte{}, 0o600))
	require.NoError(t, afero.WriteFile(mfs, "/data/hello.txt", []byte("hello world\n"), 0o644))
	require.NoError(t, afero.WriteFile(mfs, "/data/run.sh", []byte("#!/bin/sh\necho hello\n"), 0o755))
	require.NoError(t, afero.WriteFile(mfs, "/data/page.html", []byte("<!DOCTYPE html><html><body></body></html>"), 0o644))
	require.NoError(t, mfs.Chtimes("/data/empty.txt", oldTime, oldTime))
	require.NoError(t, mfs.Chtimes("/data/hello.txt", newTime, newTime))
	return &Compiler{
		FileSystem: lfs.NewFileSystem(mfs),
		UID:        -1,
		GID:        -1,
		Cwd:        "/data",
	}
}

func evaluate(t *testing.T, c *Compiler, test Test, name string) bool {
	t.Helper()
	e, err := c.Compile(test)
	require.NoError(t, err)
	return e(context.Background(), name)
}

func TestCompileConstants(t *testing.T) {
	c := newMemoryCompiler(t)
	for _, name := range []string{"/data/hello.txt", "/data/missing", "missing", ""} {
		assert.True(t, evaluate(t, c, True(), name))
		assert.False(t, evaluate(t, c, False(), name))
		assert.False(t, evaluate(t, c, And(True(), Not(True())), name))
		assert.True(t, evaluate(t, c, Or(False(), Not(False())), name))
		assert.True(t, evaluate(t, c, All(), name))
		assert.False(t, evaluate(t, c, Any(), name))
	}
}

func TestCompileShortCircuit(t *testing.T) {
	c := newMemoryCompiler(t)
	calls := 0
	counter := Custom(func(name string) bool {
		calls++
		return true
	})
	assert.False(t, evaluate(t, c, And(False(), counter), "/data"))
	assert.True(t, evaluate(t, c, Or(True(), counter), "/data"))
	assert.Equal(t, 0, calls)
	assert.True(t, evaluate(t, c, And(True(), counter), "/data"))
	assert.Equal(t, 1, calls)
}

func TestCompileMissing(t *testing.T) {
	c := newMemoryCompiler(t)
	for _, test := range []Test{
		Exists(),
		IsFile(),
		IsDir(),
		IsReadable(),
		SizeEqualTo(0),
		SizeSmallerThan(1),
		IsOlderThanDate(newTime),
		IsNewerThan("missing", "/data/empty.txt"),
		IsOlderThan("missing", "/data/hello.txt"),
		HasMimeType("text/plain"),
	} {
		assert.False(t, evaluate(t, c, test, "/data/missing"))
		assert.False(t, evaluate(t, c, test, "missing"))
	}
	assert.True(t, evaluate(t, c, Not(IsFile()), "/data/missing"))
}

func TestCompileKind(t *testing.T) {
	c := newMemoryCompiler(t)
	assert.True(t, evaluate(t, c, Exists(), "/data/dir"))
	assert.True(t, evaluate(t, c, IsDir(), "/data/dir"))
	assert.True(t, evaluate(t, c, IsDir(), "dir"))
	assert.False(t, evaluate(t, c, IsFile(), "dir"))
	assert.True(t, evaluate(t, c, IsFile(), "hello.txt"))
	assert.True(t, evaluate(t, c, IsFile(), "dir/../hello.txt"))
	assert.False(t, evaluate(t, c, IsLink(), "hello.txt"))
	assert.False(t, evaluate(t, c, IsPipe(), "hello.txt"))
	assert.False(t, evaluate(t, c, IsSocket(), "hello.txt"))
	assert.False(t, evaluate(t, c, IsBlockDevice(), "hello.txt"))
	assert.False(t, evaluate(t, c, IsCharDevice(), "hello.txt"))
}

func TestCompilePerm(t *testing.T) {
	c := newMemoryCompiler(t)
	assert.True(t, evaluate(t, c, IsExecutable(), "run.sh"))
	assert.False(t, evaluate(t, c, IsExecutable(), "hello.txt"))
	assert.True(t, evaluate(t, c, IsReadable(), "empty.txt"))
	assert.True(t, evaluate(t, c, IsWritable(), "empty.txt"))
	assert.True(t, evaluate(t, c, HasPerm(0o004), "hello.txt"))
	assert.False(t, evaluate(t, c, HasPerm(0o004), "empty.txt"))
	assert.False(t, evaluate(t, c, HasSetUID(), "run.sh"))
	assert.False(t, evaluate(t, c, HasSetGID(), "run.sh"))
	assert.False(t, evaluate(t, c, HasStickyBit(), "dir"))
}

func TestCompileSize(t *testing.T) {
	c := newMemoryCompiler(t)
	assert.False(t, evaluate(t, c, SizeNotNull(), "empty.txt"))
	assert.True(t, evaluate(t, c, SizeNotNull(), "hello.txt"))
	assert.True(t, evaluate(t, c, SizeEqualTo(12), "hello.txt"))
	assert.True(t, evaluate(t, c, SizeBiggerThan(11), "hello.txt"))
	assert.False(t, evaluate(t, c, SizeBiggerThan(12), "hello.txt"))
	assert.True(t, evaluate(t, c, SizeSmallerThan(13), "hello.txt"))
	assert.False(t, evaluate(t, c, SizeSmallerThan(12), "hello.txt"))
}

func TestCompileTime(t *testing.T) {
	c := newMemoryCompiler(t)
	middle := time.Date(2010, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.True(t, evaluate(t, c, IsNewerThanDate(middle), "hello.txt"))
	assert.False(t, evaluate(t, c, IsNewerThanDate(middle), "empty.txt"))
	assert.True(t, evaluate(t, c, IsOlderThanDate(middle), "empty.txt"))
	assert.False(t, evaluate(t, c, IsOlderThanDate(middle), "hello.txt"))

	// two-path tests ignore the evaluated path
	for _, name := range []string{"/data/dir", "/data/missing"} {
		assert.True(t, evaluate(t, c, IsNewerThan("hello.txt", "empty.txt"), name))
		assert.False(t, evaluate(t, c, IsNewerThan("empty.txt", "hello.txt"), name))
		assert.True(t, evaluate(t, c, IsOlderThan("/data/empty.txt", "/data/hello.txt"), name))
		assert.False(t, evaluate(t, c, IsOlderThan("hello.txt", "hello.txt"), name))
	}
}

func TestCompileName(t *testing.T) {
	c := newMemoryCompiler(t)
	assert.True(t, evaluate(t, c, HasExtension("txt"), "a/b.txt"))
	assert.True(t, evaluate(t, c, HasExtension(".txt"), "a/b.txt"))
	assert.False(t, evaluate(t, c, HasExtension("txt"), "a/b.txt.gz"))
	assert.False(t, evaluate(t, c, HasExtension("txt"), "a/txt"))
	assert.True(t, evaluate(t, c, HasNoExtension(), "a/Makefile"))
	assert.True(t, evaluate(t, c, HasNoExtension(), "a/.profile"))
	assert.False(t, evaluate(t, c, HasNoExtension(), "a/b.txt"))
	assert.True(t, evaluate(t, c, IsCurrentDir(), "a/."))
	assert.True(t, evaluate(t, c, IsCurrentDir(), "."))
	assert.False(t, evaluate(t, c, IsCurrentDir(), "a/.."))
	assert.True(t, evaluate(t, c, IsParentDir(), "a/.."))
	assert.False(t, evaluate(t, c, IsParentDir(), "a/b"))
	assert.True(t, evaluate(t, c, BasenameIs("b.txt"), "/a/b.txt"))
	assert.False(t, evaluate(t, c, BasenameIs("a"), "/a/b.txt"))
}

func TestCompileMatch(t *testing.T) {
	c := newMemoryCompiler(t)
	assert.True(t, evaluate(t, c, NameMatch("*.txt"), "/a/b/c.txt"))
	assert.False(t, evaluate(t, c, NameMatch("*.txt"), "/a/b/c.md"))
	assert.True(t, evaluate(t, c, Match("/a/**/*.txt"), "/a/b/c/d.txt"))
	assert.False(t, evaluate(t, c, Match("/a/*.txt"), "/a/b/c.txt"))

	c.Matcher = RegexpMatcher{}
	assert.True(t, evaluate(t, c, NameMatch(`^c\.(txt|md)$`), "/a/b/c.md"))
	assert.False(t, evaluate(t, c, NameMatch(`^c\.(txt|md)$`), "/a/b/cc.md"))
	assert.True(t, evaluate(t, c, Match(`/b/`), "/a/b/c.md"))

	_, err := c.Compile(And(True(), Match("(")))
	require.Error(t, err)

	c.Matcher = GlobMatcher{}
	_, err = c.Compile(Not(NameMatch("[")))
	require.Error(t, err)
}

func TestCompileMimeType(t *testing.T) {
	c := newMemoryCompiler(t)
	assert.True(t, evaluate(t, c, HasMimeType("text/plain"), "hello.txt"))
	assert.True(t, evaluate(t, c, HasMimeType("text/html"), "page.html"))
	// parents of the detected type also match
	assert.True(t, evaluate(t, c, HasMimeType("text/plain"), "page.html"))
	assert.False(t, evaluate(t, c, HasMimeType("image/png"), "hello.txt"))
	assert.False(t, evaluate(t, c, HasMimeType("text/plain"), "dir"))
}

func TestCompileCustom(t *testing.T) {
	c := newMemoryCompiler(t)
	assert.True(t, evaluate(t, c, Custom(func(name string) bool { return name == "x" }), "x"))
	_, err := c.Compile(Custom(nil))
	require.Error(t, err)
	assert.Panics(t, func() {
		c.MustCompile(Custom(nil))
	})
}

func TestCompileDisk(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	require.NoError(t, os.WriteFile(a, []byte("a"), 0o644))
	require.NoError(t, os.Link(a, filepath.Join(dir, "hard")))
	require.NoError(t, os.Symlink(a, filepath.Join(dir, "soft")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b"), []byte("b"), 0o644))
	require.NoError(t, os.Chmod(filepath.Join(dir, "b"), 0o644|os.ModeSetgid))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sticky"), 0o755))
	require.NoError(t, os.Chmod(filepath.Join(dir, "sticky"), 0o755|os.ModeSticky))

	c := &Compiler{
		FileSystem: lfs.NewLocalFileSystem("/"),
		UID:        os.Geteuid(),
		GID:        os.Getegid(),
		Cwd:        dir,
	}

	assert.True(t, evaluate(t, c, IsOwnedByUser(), "a"))
	assert.True(t, evaluate(t, c, IsLink(), "soft"))
	assert.False(t, evaluate(t, c, IsFile(), "soft"))
	assert.True(t, evaluate(t, c, HasSameDeviceAndInode("a", "hard"), "ignored"))
	assert.False(t, evaluate(t, c, HasSameDeviceAndInode("a", "b"), "ignored"))
	assert.False(t, evaluate(t, c, HasSameDeviceAndInode("a", "soft"), "ignored"))
	assert.True(t, evaluate(t, c, HasStickyBit(), "sticky"))
	assert.False(t, evaluate(t, c, HasStickyBit(), "a"))

	c.UID = os.Geteuid() + 1
	assert.False(t, evaluate(t, c, IsOwnedByUser(), "a"))

	info, err := c.FileSystem.Stat(context.Background(), a)
	require.NoError(t, err)
	// a new file may take the group of its directory instead of the effective group
	assert.Equal(t, info.GID() == os.Getegid(), evaluate(t, c, IsOwnedByGroup(), "a"))
	c.GID = info.GID()
	assert.True(t, evaluate(t, c, IsOwnedByGroup(), "a"))
	c.GID = info.GID() + 1
	assert.False(t, evaluate(t, c, IsOwnedByGroup(), "a"))
	c.GID = -1
	assert.False(t, evaluate(t, c, IsOwnedByGroup(), "a"))

	fi, err := c.FileSystem.Stat(context.Background(), filepath.Join(dir, "b"))
	require.NoError(t, err)
	// setgid may be cleared by the kernel when the group does not match
	assert.Equal(t, fi.Perm()&fs.PermSetGID != 0, evaluate(t, c, HasSetGID(), "b"))
}
