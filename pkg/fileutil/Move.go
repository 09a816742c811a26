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

	"github.com/navwar/gofs/pkg/fpath"
	"github.com/navwar/gofs/pkg/fs"
)

// Move renames input.Source to input.Destination.
// If the destination is an existing directory, then the source is moved inside it.
// An existing destination that is not a directory is removed first, if input.Interactive allows it.
// Moving a path onto itself does nothing.
func (fu *FileUtil) Move(ctx context.Context, input *MoveInput) error {
	cwd, err := fu.cwd()
	if err != nil {
		return err
	}
	src, err := abs(cwd, input.Source)
	if err != nil {
		return err
	}
	dst, err := abs(cwd, input.Destination)
	if err != nil {
		return err
	}
	return fu.move(ctx, src, dst, input.Interactive, true)
}

func (fu *FileUtil) move(ctx context.Context, src string, dst string, interactive fs.Interactive, descend bool) error {
	if fpath.Equal(src, dst) {
		return nil
	}

	dstInfo, err := fu.lookup(ctx, dst)
	if err != nil {
		return err
	}

	if descend && isDir(dstInfo) {
		return fu.move(ctx, src, fpath.Concat(dst, fpath.Basename(src)), interactive, false)
	}

	srcInfo, err := fu.lookup(ctx, src)
	if err != nil {
		return err
	}
	if srcInfo == nil {
		return errors.Errorf("%w: %q", fs.ErrNoSourceFile, src)
	}

	if dstInfo != nil {
		if !fs.Confirm(interactive, dst) {
			return nil
		}
		if err := fu.remove(ctx, dst, fs.Force); err != nil {
			return err
		}
		return fu.move(ctx, src, dst, interactive, false)
	}

	fu.log("Moving file", map[string]interface{}{
		"src": src,
		"dst": dst,
	})

	if err := fu.fileSystem.Rename(ctx, src, dst); err != nil {
		return errors.Errorf("error renaming %q to %q: %w", src, dst, err)
	}
	return nil
}
