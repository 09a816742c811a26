// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fileutil

import (
	"context"
	"os"

	"gitlab.com/tozd/go/errors"

	"github.com/navwar/gofs/pkg/fpath"
	"github.com/navwar/gofs/pkg/fs"
)

const DefaultDirectoryMode os.FileMode = 0o755

// Mkdir creates a directory.  Does nothing if the directory already exists.
// Returns fs.ErrDirnameAlreadyUsed if a file that is not a directory is in the way.
// If input.Parents is false, then returns fs.ErrMissingComponentPath if the parent directory does not exist.
// If input.Parents is true, then creates the missing ancestors first.
func (fu *FileUtil) Mkdir(ctx context.Context, input *MkdirInput) error {
	cwd, err := fu.cwd()
	if err != nil {
		return err
	}
	p, err := abs(cwd, input.Path)
	if err != nil {
		return err
	}
	mode := input.Mode
	if mode == 0 {
		mode = DefaultDirectoryMode
	}
	return fu.mkdir(ctx, p, input.Parents, mode)
}

func (fu *FileUtil) mkdir(ctx context.Context, p string, parents bool, mode os.FileMode) error {
	fi, err := fu.lookup(ctx, p)
	if err != nil {
		return err
	}
	if fi != nil {
		if isDir(fi) {
			return nil
		}
		return errors.Errorf("%w: %q", fs.ErrDirnameAlreadyUsed, p)
	}

	if parent := fpath.Dirname(p); parent != p {
		if parents {
			if err := fu.mkdir(ctx, parent, true, mode); err != nil {
				return err
			}
		} else {
			parentInfo, err := fu.lookup(ctx, parent)
			if err != nil {
				return err
			}
			if parentInfo == nil {
				return errors.Errorf("%w: %q", fs.ErrMissingComponentPath, parent)
			}
			if !isDir(parentInfo) {
				return errors.Errorf("%w: %q", fs.ErrDirnameAlreadyUsed, parent)
			}
		}
	}

	fu.log("Creating directory", map[string]interface{}{
		"path": p,
		"mode": mode.String(),
	})

	if err := fu.fileSystem.Mkdir(ctx, p, mode); err != nil {
		return errors.Errorf("error creating directory %q: %w", p, err)
	}
	return nil
}
