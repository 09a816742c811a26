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

// MakeAbsolute resolves a relative path against the absolute base.
// If the path is already absolute, then returns the path unchanged.
func MakeAbsolute(base string, p string) (string, error) {
	if IsAbs(p) {
		return p, nil
	}
	if !IsAbs(base) {
		return "", errors.Errorf("%w: base %q", fs.ErrPathRelative, base)
	}
	return Implode(reduce(append(reduce(Explode(base)), Explode(p)...))), nil
}
