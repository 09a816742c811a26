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
	"github.com/navwar/gofs/pkg/predicate"
)

// Remove removes the path.
// A directory must be empty unless input.Recursive is true, in which case its descendants are
// removed first, deepest first.  A path declined by input.Interactive is skipped.
// The first error stops the removal and nothing is restored.
func (fu *FileUtil) Remove(ctx context.Context, input *RemoveInput) error {
	cwd, err := fu.cwd()
	if err != nil {
		return err
	}
	p, err := abs(cwd, input.Path)
	if err != nil {
		return err
	}

	fi, err := fu.lookup(ctx, p)
	if err != nil {
		return err
	}
	if fi == nil {
		return errors.Errorf("%w: %q", fs.ErrFileDoesNotExist, input.Path)
	}

	if input.Recursive && isDir(fi) {
		e, err := fu.compile(cwd, predicate.True())
		if err != nil {
			return err
		}
		descendants, err := fu.find(ctx, cwd, e, p)
		if err != nil {
			return err
		}
		sortDeepestFirst(descendants)
		for _, d := range descendants {
			if err := fu.remove(ctx, d, input.Interactive); err != nil {
				return err
			}
		}
	}

	return fu.remove(ctx, p, input.Interactive)
}

// sortDeepestFirst sorts the paths so that no directory comes before its descendants.
func sortDeepestFirst(paths []string) {
	sort.SliceStable(paths, func(i, j int) bool {
		return fpath.Depth(paths[i]) > fpath.Depth(paths[j])
	})
}

// remove removes a single file or empty directory.
func (fu *FileUtil) remove(ctx context.Context, p string, interactive fs.Interactive) error {
	if !fs.Confirm(interactive, p) {
		return nil
	}

	fi, err := fu.lookup(ctx, p)
	if err != nil {
		return err
	}
	if fi == nil {
		return errors.Errorf("%w: %q", fs.ErrFileDoesNotExist, p)
	}

	if isDir(fi) {
		names, err := fu.fileSystem.ReadDir(ctx, p)
		if err != nil {
			return errors.Errorf("error reading directory %q: %w", p, err)
		}
		for _, name := range names {
			if !isMarker(name) {
				return errors.Errorf("%w: %q", fs.ErrDirNotEmpty, p)
			}
		}
	}

	fu.log("Removing file", map[string]interface{}{
		"path": p,
		"kind": fi.Kind().String(),
	})

	if err := fu.fileSystem.Remove(ctx, p); err != nil {
		return errors.Errorf("error removing %q: %w", p, err)
	}
	return nil
}
