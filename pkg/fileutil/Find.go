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
	"github.com/navwar/gofs/pkg/predicate"
)

// Find returns the paths under input.Root that satisfy input.Test.
// If the root is not a directory, then returns the root if it satisfies the test.
// The root itself is never returned when it is a directory.
// Matches in a directory are returned before the matches of its subdirectories,
// and every subdirectory is descended whether or not it matches.
// Entries are visited in lexical order.  Symbolic links are not followed.
func (fu *FileUtil) Find(ctx context.Context, input *FindInput) ([]string, error) {
	cwd, err := fu.cwd()
	if err != nil {
		return nil, err
	}
	e, err := fu.compile(cwd, input.Test)
	if err != nil {
		return nil, err
	}
	return fu.find(ctx, cwd, e, input.Root)
}

func (fu *FileUtil) find(ctx context.Context, cwd string, e predicate.Evaluator, root string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rootPath, err := abs(cwd, root)
	if err != nil {
		return nil, err
	}

	rootInfo, err := fu.lookup(ctx, rootPath)
	if err != nil {
		return nil, err
	}

	if !isDir(rootInfo) {
		if e(ctx, root) {
			return []string{root}, nil
		}
		return []string{}, nil
	}

	names, err := fu.fileSystem.ReadDir(ctx, rootPath)
	if err != nil {
		return nil, errors.Errorf("error reading directory %q: %w", rootPath, err)
	}
	sort.Strings(names)

	matches := []string{}
	directories := []string{}
	for _, name := range names {
		if isMarker(name) {
			continue
		}
		p := fpath.Concat(root, name)
		if e(ctx, p) {
			matches = append(matches, p)
		}
		fi, err := fu.lookup(ctx, fpath.Concat(rootPath, name))
		if err != nil {
			return nil, err
		}
		if isDir(fi) {
			directories = append(directories, p)
		}
	}

	for _, d := range directories {
		m, err := fu.find(ctx, cwd, e, d)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m...)
	}

	return matches, nil
}
