// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fileutil

import (
	"context"
	"sort"

	"gitlab.com/tozd/go/errors"

	"github.com/navwar/gofs/pkg/fpath"
	"github.com/navwar/gofs/pkg/fs"
)

// Ls returns the paths of the immediate entries of the directory in lexical order.
func (fu *FileUtil) Ls(ctx context.Context, dir string) ([]string, error) {
	cwd, err := fu.cwd()
	if err != nil {
		return nil, err
	}
	p, err := abs(cwd, dir)
	if err != nil {
		return nil, err
	}
	fi, err := fu.lookup(ctx, p)
	if err != nil {
		return nil, err
	}
	if fi == nil {
		return nil, errors.Errorf("%w: %q", fs.ErrFileDoesNotExist, dir)
	}
	if !isDir(fi) {
		return []string{dir}, nil
	}
	names, err := fu.fileSystem.ReadDir(ctx, p)
	if err != nil {
		return nil, errors.Errorf("error reading directory %q: %w", p, err)
	}
	sort.Strings(names)
	paths := make([]string, 0, len(names))
	for _, name := range names {
		if isMarker(name) {
			continue
		}
		paths = append(paths, fpath.Concat(dir, name))
	}
	return paths, nil
}
