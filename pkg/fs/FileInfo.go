// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fs

import (
	"os"
	"time"
)

// Raw unix permission bits, as returned by FileInfo.Perm.
const (
	PermSetUID uint32 = 0o4000
	PermSetGID uint32 = 0o2000
	PermSticky uint32 = 0o1000
	PermRead   uint32 = 0o444
	PermWrite  uint32 = 0o222
	PermExec   uint32 = 0o111
)

// FileInfo is the metadata of a single filesystem entry.
// A final symbolic link is not followed.
// Backends that cannot report an id return -1 for UID and GID and 0 for Device, Rdev and Inode.
type FileInfo interface {
	Name() string
	Kind() Kind
	IsDir() bool
	Perm() uint32
	Size() int64
	ModTime() time.Time
	UID() int
	GID() int
	Device() uint64
	Rdev() uint64
	Inode() uint64
	String() string
}

// PermOf converts the permission bits of a go file mode into raw unix permission bits.
func PermOf(mode os.FileMode) uint32 {
	perm := uint32(mode.Perm())
	if mode&os.ModeSetuid != 0 {
		perm |= PermSetUID
	}
	if mode&os.ModeSetgid != 0 {
		perm |= PermSetGID
	}
	if mode&os.ModeSticky != 0 {
		perm |= PermSticky
	}
	return perm
}

// FileModeOf converts raw unix permission bits into a go file mode without type bits.
func FileModeOf(perm uint32) os.FileMode {
	mode := os.FileMode(perm & 0o777)
	if perm&PermSetUID != 0 {
		mode |= os.ModeSetuid
	}
	if perm&PermSetGID != 0 {
		mode |= os.ModeSetgid
	}
	if perm&PermSticky != 0 {
		mode |= os.ModeSticky
	}
	return mode
}
