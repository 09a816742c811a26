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

// reduce removes current directory markers and collapses parent directory markers in a single pass.
// A parent directory marker collapses with the component before it
// only if that component is itself preceded by another component.
func reduce(components []string) []string {
	reduced := make([]string, 0, len(components))
	for _, c := range components {
		switch {
		case c == CurrentDir && len(reduced) > 0:
			continue
		case c == ParentDir && len(reduced) > 1:
			reduced = reduced[0 : len(reduced)-1]
			continue
		}
		reduced = append(reduced, c)
	}
	return reduced
}

// Reduce normalizes an absolute path.
// Returns an error wrapping fs.ErrPathRelative if the path is relative.
//
// A parent directory marker directly under the root is kept, so "/.." reduces to itself.
func Reduce(p string) (string, error) {
	if !IsAbs(p) {
		return "", errors.Errorf("%w: %q", fs.ErrPathRelative, p)
	}
	return Implode(reduce(Explode(p))), nil
}

// Equal returns true if both absolute paths reduce to the same path.
func Equal(a string, b string) bool {
	reducedA, err := Reduce(a)
	if err != nil {
		return false
	}
	reducedB, err := Reduce(b)
	if err != nil {
		return false
	}
	return reducedA == reducedB
}
