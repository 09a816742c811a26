// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package lfs

import (
	"os"
	"time"

	"github.com/navwar/gofs/pkg/fs"
)

// LocalFileInfo is the metadata for an entry on the local disk or in memory.
type LocalFileInfo struct {
	name    string
	kind    fs.Kind
	perm    uint32
	size    int64
	modTime time.Time
	uid     int
	gid     int
	dev     uint64
	rdev    uint64
	ino     uint64
}

func (lfi *LocalFileInfo) Name() string {
	return lfi.name
}

func (lfi *LocalFileInfo) Kind() fs.Kind {
	return lfi.kind
}

func (lfi *LocalFileInfo) IsDir() bool {
	return lfi.kind == fs.KindDir
}

func (lfi *LocalFileInfo) Perm() uint32 {
	return lfi.perm
}

func (lfi *LocalFileInfo) Size() int64 {
	return lfi.size
}

func (lfi *LocalFileInfo) ModTime() time.Time {
	return lfi.modTime
}

func (lfi *LocalFileInfo) UID() int {
	return lfi.uid
}

func (lfi *LocalFileInfo) GID() int {
	return lfi.gid
}

func (lfi *LocalFileInfo) Device() uint64 {
	return lfi.dev
}

func (lfi *LocalFileInfo) Rdev() uint64 {
	return lfi.rdev
}

func (lfi *LocalFileInfo) Inode() uint64 {
	return lfi.ino
}

func (lfi *LocalFileInfo) String() string {
	return lfi.name
}

// NewLocalFileInfo converts the os.FileInfo returned by afero.
// Ownership, device and inode are read from the underlying system stat structure when one is available.
func NewLocalFileInfo(fi os.FileInfo) *LocalFileInfo {
	lfi := &LocalFileInfo{
		name:    fi.Name(),
		kind:    fs.KindOf(fi.Mode()),
		perm:    fs.PermOf(fi.Mode()),
		size:    fi.Size(),
		modTime: fi.ModTime(),
		uid:     -1,
		gid:     -1,
	}
	fillSys(lfi, fi.Sys())
	return lfi
}
