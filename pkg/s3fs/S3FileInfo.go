// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package s3fs

import (
	"encoding/json"
	"os"
	"time"

	"github.com/navwar/gofs/pkg/fs"
)

const (
	FilePerm      uint32 = 0o644
	DirectoryPerm uint32 = 0o755
)

// S3FileInfo is the metadata of an object or a directory.
// S3 has no owners, devices or inodes, so UID and GID are -1 and the rest are 0.
type S3FileInfo struct {
	name    string
	dir     bool
	modTime time.Time
	size    int64
}

func (fi *S3FileInfo) Name() string {
	return fi.name
}

func (fi *S3FileInfo) Kind() fs.Kind {
	if fi.dir {
		return fs.KindDir
	}
	return fs.KindFile
}

func (fi *S3FileInfo) IsDir() bool {
	return fi.dir
}

func (fi *S3FileInfo) Perm() uint32 {
	if fi.dir {
		return DirectoryPerm
	}
	return FilePerm
}

func (fi *S3FileInfo) Mode() os.FileMode {
	if fi.dir {
		return os.ModeDir | fs.FileModeOf(DirectoryPerm)
	}
	return fs.FileModeOf(FilePerm)
}

func (fi *S3FileInfo) ModTime() time.Time {
	return fi.modTime
}

func (fi *S3FileInfo) Size() int64 {
	return fi.size
}

func (fi *S3FileInfo) UID() int {
	return -1
}

func (fi *S3FileInfo) GID() int {
	return -1
}

func (fi *S3FileInfo) Device() uint64 {
	return 0
}

func (fi *S3FileInfo) Rdev() uint64 {
	return 0
}

func (fi *S3FileInfo) Inode() uint64 {
	return 0
}

func (fi *S3FileInfo) String() string {
	return fi.name
}

func (fi *S3FileInfo) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"dir":     fi.dir,
		"modTime": fi.modTime,
		"name":    fi.name,
		"size":    fi.size,
	})
}

func NewS3FileInfo(name string, modTime time.Time, dir bool, size int64) *S3FileInfo {
	return &S3FileInfo{
		name:    name,
		dir:     dir,
		modTime: modTime,
		size:    size,
	}
}
