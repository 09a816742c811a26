// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

// Package fileutil implements tree walking and file operations on top of a file system.
package fileutil

import (
	"context"

	"gitlab.com/tozd/go/errors"

	"github.com/navwar/gofs/pkg/fpath"
	"github.com/navwar/gofs/pkg/fs"
	"github.com/navwar/gofs/pkg/predicate"
)

// FileUtil runs file operations against a single file system.
type FileUtil struct {
	fileSystem fs.FileSystem
	matcher    predicate.Matcher
	logger     fs.Logger
	getwd      func() (string, error)
	uid        int
	gid        int
}

// FileSystem returns the file system the operations run against.
func (fu *FileUtil) FileSystem() fs.FileSystem {
	return fu.fileSystem
}

// NewFileUtil returns a new FileUtil.
// If input.Matcher is nil, then name patterns are shell globs.
// If input.Getwd is nil, then relative paths are resolved against the root of the file system.
func NewFileUtil(input *NewFileUtilInput) *FileUtil {
	fu := &FileUtil{
		fileSystem: input.FileSystem,
		matcher:    input.Matcher,
		logger:     input.Logger,
		getwd:      input.Getwd,
		uid:        input.UID,
		gid:        input.GID,
	}
	if fu.matcher == nil {
		fu.matcher = predicate.GlobMatcher{}
	}
	if fu.getwd == nil {
		fu.getwd = func() (string, error) {
			return fpath.Separator, nil
		}
	}
	return fu
}

func (fu *FileUtil) log(msg string, fields map[string]interface{}) {
	if fu.logger != nil {
		_ = fu.logger.Log(msg, fields)
	}
}

// cwd returns the current working directory, which must be absolute.
func (fu *FileUtil) cwd() (string, error) {
	cwd, err := fu.getwd()
	if err != nil {
		return "", errors.Errorf("error getting current working directory: %w", err)
	}
	if !fpath.IsAbs(cwd) {
		return "", errors.Errorf("%w: %q", fs.ErrPathRelative, cwd)
	}
	return cwd, nil
}

// abs resolves name against cwd.
func abs(cwd string, name string) (string, error) {
	p, err := fpath.MakeAbsolute(cwd, name)
	if err != nil {
		return "", errors.Errorf("error resolving path %q: %w", name, err)
	}
	return fpath.Reduce(p)
}

func (fu *FileUtil) compile(cwd string, t predicate.Test) (predicate.Evaluator, error) {
	c := &predicate.Compiler{
		FileSystem: fu.fileSystem,
		Matcher:    fu.matcher,
		UID:        fu.uid,
		GID:        fu.gid,
		Cwd:        cwd,
	}
	e, err := c.Compile(t)
	if err != nil {
		return nil, errors.Errorf("error compiling test: %w", err)
	}
	return e, nil
}

// lookup returns the metadata for name, or nil if name does not exist.
func (fu *FileUtil) lookup(ctx context.Context, name string) (fs.FileInfo, error) {
	fi, err := fu.fileSystem.Stat(ctx, name)
	if err != nil {
		if fu.fileSystem.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Errorf("error stating %q: %w", name, err)
	}
	return fi, nil
}

func isDir(fi fs.FileInfo) bool {
	return fi != nil && fi.Kind() == fs.KindDir
}

func isMarker(name string) bool {
	return name == fpath.CurrentDir || name == fpath.ParentDir
}
