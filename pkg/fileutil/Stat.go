// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fileutil

import (
	"context"

	"gitlab.com/tozd/go/errors"

	"github.com/navwar/gofs/pkg/fs"
)

// Stat returns the metadata for the path without following a final symbolic link.
// Returns fs.ErrFileDoesNotExist if the path does not exist.
func (fu *FileUtil) Stat(ctx context.Context, name string) (fs.FileInfo, error) {
	cwd, err := fu.cwd()
	if err != nil {
		return nil, err
	}
	p, err := abs(cwd, name)
	if err != nil {
		return nil, err
	}
	fi, err := fu.lookup(ctx, p)
	if err != nil {
		return nil, err
	}
	if fi == nil {
		return nil, errors.Errorf("%w: %q", fs.ErrFileDoesNotExist, name)
	}
	return fi, nil
}

// Size returns the size of the path in bytes.
func (fu *FileUtil) Size(ctx context.Context, name string) (int64, error) {
	fi, err := fu.Stat(ctx, name)
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}
