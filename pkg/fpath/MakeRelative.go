// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fpath

import (
	"gitlab.com/tozd/go/errors"

	"github.com/navwar/gofs/pkg/fs"
)

// MakeRelative returns the path relative to the absolute base.
// If the path is already relative, then returns the path unchanged.
func MakeRelative(base string, p string) (string, error) {
	if !IsAbs(p) {
		return p, nil
	}
	if !IsAbs(base) {
		return "", errors.Errorf("%w: base %q", fs.ErrPathRelative, base)
	}
	baseComponents := reduce(Explode(base))
	pathComponents := reduce(Explode(p))
	i := 0
	for ; i < len(baseComponents) && i < len(pathComponents); i++ {
		if baseComponents[i] != pathComponents[i] {
			break
		}
	}
	relative := make([]string, 0, len(baseComponents)-i+len(pathComponents)-i)
	for range baseComponents[i:] {
		relative = append(relative, ParentDir)
	}
	relative = append(relative, pathComponents[i:]...)
	if len(relative) == 0 {
		return CurrentDir, nil
	}
	return Implode(relative), nil
}
