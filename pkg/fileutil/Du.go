// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fileutil

import (
	"context"

	"github.com/navwar/gofs/pkg/predicate"
)

// DiskUsage is the total size of the regular files under a path.
type DiskUsage struct {
	Path  string
	Files int
	Size  int64
}

// Du returns the disk usage of each path and the total size of all of them.
// Returns fs.ErrFileDoesNotExist if a path does not exist.
func (fu *FileUtil) Du(ctx context.Context, paths ...string) ([]DiskUsage, int64, error) {
	cwd, err := fu.cwd()
	if err != nil {
		return nil, 0, err
	}
	e, err := fu.compile(cwd, predicate.IsFile())
	if err != nil {
		return nil, 0, err
	}
	usage := make([]DiskUsage, 0, len(paths))
	total := int64(0)
	for _, p := range paths {
		if _, err := fu.Stat(ctx, p); err != nil {
			return nil, 0, err
		}
		files, err := fu.find(ctx, cwd, e, p)
		if err != nil {
			return nil, 0, err
		}
		u := DiskUsage{Path: p, Files: len(files)}
		for _, f := range files {
			size, err := fu.Size(ctx, f)
			if err != nil {
				return nil, 0, err
			}
			u.Size += size
		}
		usage = append(usage, u)
		total += u.Size
	}
	return usage, total, nil
}
