// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fs

import (
	"context"
	"os"
	"time"
)

// FileSystem is the metadata, listing and mutation provider used by the file operations.
// Names are absolute paths within the file system.
type FileSystem interface {
	Chtimes(ctx context.Context, name string, atime time.Time, mtime time.Time) error
	IsNotExist(err error) bool
	Mkdir(ctx context.Context, name string, perm os.FileMode) error
	Open(ctx context.Context, name string) (File, error)
	OpenFile(ctx context.Context, name string, flag int, perm os.FileMode) (File, error)
	// ReadDir returns the names of the entries in the directory, in no particular order.
	ReadDir(ctx context.Context, name string) ([]string, error)
	Remove(ctx context.Context, name string) error
	Rename(ctx context.Context, oldname string, newname string) error
	Root() string
	// Stat returns the metadata for name without following a final symbolic link.
	Stat(ctx context.Context, name string) (FileInfo, error)
}
