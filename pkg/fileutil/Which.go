// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fileutil

import (
	"context"
	"path/filepath"

	"gitlab.com/tozd/go/errors"

	"github.com/navwar/gofs/pkg/fpath"
	"github.com/navwar/gofs/pkg/fs"
	"github.com/navwar/gofs/pkg/predicate"
)

// Which returns the first path in the search path named input.Name that is executable and not a directory.
// Returns fs.ErrNotFound if there is no such path.
func (fu *FileUtil) Which(ctx context.Context, input *WhichInput) (string, error) {
	cwd, err := fu.cwd()
	if err != nil {
		return "", err
	}
	e, err := fu.compile(cwd, predicate.And(predicate.IsExecutable(), predicate.Not(predicate.IsDir())))
	if err != nil {
		return "", err
	}
	for _, dir := range input.SearchPath {
		// an empty element is the current directory
		if dir == "" {
			dir = fpath.CurrentDir
		}
		p := fpath.Concat(dir, input.Name)
		if e(ctx, p) {
			return p, nil
		}
	}
	return "", errors.Errorf("%w: %q", fs.ErrNotFound, input.Name)
}

// SearchPathFromEnv splits a value formatted like the PATH environment variable into its directories.
func SearchPathFromEnv(value string) []string {
	return filepath.SplitList(value)
}
