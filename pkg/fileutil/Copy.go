// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fileutil

import (
	"context"
	"io"
	"os"

	"gitlab.com/tozd/go/errors"

	"github.com/navwar/gofs/pkg/fpath"
	"github.com/navwar/gofs/pkg/fs"
	"github.com/navwar/gofs/pkg/predicate"
)

// Copy copies input.Source to input.Destination.
//
//   - A file copied to an existing directory is created inside the directory with the same name.
//   - A directory is only copied if input.Recursive is true.  Its descendants are then copied
//     to the same relative location under the destination, which is created if it does not exist.
//   - Returns fs.ErrCannotCopyDirToFile if a directory is copied onto an existing file.
//   - Returns fs.ErrCannotCopy for symbolic links, named pipes, sockets and devices.
//
// Copying a path onto itself does nothing.
func (fu *FileUtil) Copy(ctx context.Context, input *CopyInput) error {
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

	srcInfo, err := fu.lookup(ctx, src)
	if err != nil {
		return err
	}
	dstInfo, err := fu.lookup(ctx, dst)
	if err != nil {
		return err
	}

	switch {
	case isDir(srcInfo) && !input.Recursive:
		return errors.Errorf("%w: %q to %q", fs.ErrCannotCopyDirToDir, src, dst)
	case isDir(srcInfo) && isDir(dstInfo):
		return fu.copyTree(ctx, cwd, src, dst, input)
	case isDir(srcInfo):
		if dstInfo != nil {
			return errors.Errorf("%w: %q to %q", fs.ErrCannotCopyDirToFile, src, dst)
		}
		if err := fu.copyEntry(ctx, src, dst, input); err != nil {
			return err
		}
		return fu.copyTree(ctx, cwd, src, dst, input)
	case isDir(dstInfo):
		return fu.copyEntry(ctx, src, fpath.Concat(dst, fpath.Basename(src)), input)
	}
	return fu.copyEntry(ctx, src, dst, input)
}

// copyTree copies every descendant of src to the same relative location under dst.
func (fu *FileUtil) copyTree(ctx context.Context, cwd string, src string, dst string, input *CopyInput) error {
	e, err := fu.compile(cwd, predicate.True())
	if err != nil {
		return err
	}
	// directories are always returned before their descendants
	descendants, err := fu.find(ctx, cwd, e, src)
	if err != nil {
		return err
	}
	for _, d := range descendants {
		rel, err := fpath.MakeRelative(src, d)
		if err != nil {
			return errors.Errorf("error relativizing %q to %q: %w", d, src, err)
		}
		if err := fu.copyEntry(ctx, d, fpath.Concat(dst, rel), input); err != nil {
			return err
		}
	}
	return nil
}

// copyEntry copies a single file or creates a single directory.
func (fu *FileUtil) copyEntry(ctx context.Context, src string, dst string, input *CopyInput) error {
	if fpath.Equal(src, dst) {
		return nil
	}

	srcInfo, err := fu.lookup(ctx, src)
	if err != nil {
		return err
	}
	if srcInfo == nil {
		return errors.Errorf("%w: %q", fs.ErrNoSourceFile, src)
	}

	dstInfo, err := fu.lookup(ctx, dst)
	if err != nil {
		return err
	}
	// an existing directory is merged into, not overwritten
	if isDir(srcInfo) && isDir(dstInfo) {
		return nil
	}

	if dstInfo != nil && !fs.Confirm(input.Interactive, dst) {
		return nil
	}

	switch srcInfo.Kind() {
	case fs.KindDir:
		return fu.mkdir(ctx, dst, false, fs.FileModeOf(srcInfo.Perm()))
	case fs.KindFile:
		if err := fu.copyFile(ctx, src, srcInfo, dst); err != nil {
			return err
		}
		if input.PreserveTimestamps {
			if err := fu.fileSystem.Chtimes(ctx, dst, srcInfo.ModTime(), srcInfo.ModTime()); err != nil {
				return errors.Errorf("error changing times of %q: %w", dst, err)
			}
		}
		return nil
	}

	return errors.Errorf("%w: %q is a %s", fs.ErrCannotCopy, src, srcInfo.Kind())
}

func (fu *FileUtil) copyFile(ctx context.Context, src string, srcInfo fs.FileInfo, dst string) error {
	fu.log("Copying file", map[string]interface{}{
		"src": src,
		"dst": dst,
	})

	// open source file
	sourceFile, err := fu.fileSystem.Open(ctx, src)
	if err != nil {
		return errors.Errorf("error opening source file at %q: %w", src, err)
	}

	// open destination file
	destinationFile, err := fu.fileSystem.OpenFile(ctx, dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fs.FileModeOf(srcInfo.Perm()))
	if err != nil {
		_ = sourceFile.Close() // silently close source file
		return errors.Errorf("error creating destination file at %q: %w", dst, err)
	}

	// copy bytes from source to destination
	written, err := io.Copy(destinationFile, sourceFile)
	if err != nil {
		_ = sourceFile.Close()      // silently close source file
		_ = destinationFile.Close() // silently close destination file
		return errors.Errorf("error copying from %q to %q: %w", src, dst, err)
	}

	err = sourceFile.Close()
	if err != nil {
		_ = destinationFile.Close() // silently close destination file
		return errors.Errorf("error closing source file after copying: %w", err)
	}

	err = destinationFile.Close()
	if err != nil {
		return errors.Errorf("error closing destination file after copying: %w", err)
	}

	fu.log("Done copying file", map[string]interface{}{
		"src":     src,
		"dst":     dst,
		"written": written,
	})

	return nil
}
