// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fs

import (
	"io"
)

// File is an open file returned by a FileSystem.
// Files opened read-only return an error on Write and files opened write-only return an error on Read.
type File interface {
	io.ReadWriteCloser
	Name() string
}
