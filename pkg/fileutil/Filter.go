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

// Filter returns the paths that satisfy the test, in their original order.
func (fu *FileUtil) Filter(ctx context.Context, t predicate.Test, paths []string) ([]string, error) {
	cwd, err := fu.cwd()
	if err != nil {
		return nil, err
	}
	e, err := fu.compile(cwd, t)
	if err != nil {
		return nil, err
	}
	filtered := make([]string, 0, len(paths))
	for _, p := range paths {
		if e(ctx, p) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// Test returns true if the path satisfies the test.
func (fu *FileUtil) Test(ctx context.Context, t predicate.Test, p string) (bool, error) {
	filtered, err := fu.Filter(ctx, t, []string{p})
	if err != nil {
		return false, err
	}
	return len(filtered) == 1, nil
}
