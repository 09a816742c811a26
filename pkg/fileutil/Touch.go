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
	"time"

	"gitlab.com/tozd/go/errors"
)

// Touch sets the access and modification times of the path.
// The content of an existing file is not changed.
// If the path does not exist, then creates an empty file unless input.NoCreate is true.
func (fu *FileUtil) Touch(ctx context.Context, input *TouchInput) error {
	cwd, err := fu.cwd()
	if err != nil {
		return err
	}
	p, err := abs(cwd, input.Path)
	if err != nil {
		return err
	}

	t := input.Time
	if t.IsZero() {
		t = time.Now()
	}

	fi, err := fu.lookup(ctx, p)
	if err != nil {
		return err
	}

	if fi == nil {
		if input.NoCreate {
			return nil
		}
		fu.log("Creating file", map[string]interface{}{
			"path": p,
		})
		f, err := fu.fileSystem.OpenFile(ctx, p, os.O_WRONLY|os.O_CREATE, 0o666)
		if err != nil {
			return errors.Errorf("error creating file %q: %w", p, err)
		}
		if err := f.Close(); err != nil {
			return errors.Errorf("error closing file %q: %w", p, err)
		}
	}

	if err := fu.fileSystem.Chtimes(ctx, p, t, t); err != nil {
		return errors.Errorf("error changing times of %q: %w", p, err)
	}
	return nil
}
