// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fs

import (
	"gitlab.com/tozd/go/errors"
)

// Errors returned by the path algebra and the file operations.
// Operations wrap these with the offending path, so use errors.Is to test for them.
var (
	ErrPathRelative         = errors.Base("path is relative")
	ErrFileDoesNotExist     = errors.Base("file does not exist")
	ErrNotFound             = errors.Base("not found in search path")
	ErrMissingComponentPath = errors.Base("missing component of path")
	ErrDirnameAlreadyUsed   = errors.Base("directory name already used by a file")
	ErrDirNotEmpty          = errors.Base("directory not empty")
	ErrCannotCopyDirToDir   = errors.Base("cannot copy directory to directory")
	ErrCannotCopyDirToFile  = errors.Base("cannot copy directory to file")
	ErrCannotCopy           = errors.Base("cannot copy file of this kind")
	ErrNoSourceFile         = errors.Base("source file does not exist")
)
