// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package predicate

import (
	"context"

	"github.com/gabriel-vasile/mimetype"
	"gitlab.com/tozd/go/errors"

	"github.com/navwar/gofs/pkg/fpath"
	"github.com/navwar/gofs/pkg/fs"
)

// Evaluator reports whether a path satisfies a compiled test.
// Evaluators never return errors.  A test that needs the metadata of a missing path is false.
type Evaluator func(ctx context.Context, name string) bool

// Compiler compiles tests against a file system.
type Compiler struct {
	FileSystem fs.FileSystem
	// Matcher compiles the patterns of Match and NameMatch.  Defaults to GlobMatcher.
	Matcher Matcher
	// UID and GID are the effective ids compared by IsOwnedByUser and IsOwnedByGroup.
	UID int
	GID int
	// Cwd is the absolute directory that relative names are resolved against.
	Cwd string
}

// Compile compiles the test and all of its operands.
// Returns an error if a pattern cannot be compiled.
func (c *Compiler) Compile(t Test) (Evaluator, error) {
	switch t.op {
	case opTrue:
		return func(ctx context.Context, name string) bool {
			return true
		}, nil
	case opFalse:
		return func(ctx context.Context, name string) bool {
			return false
		}, nil
	case opAnd, opOr:
		a, err := c.Compile(t.operands[0])
		if err != nil {
			return nil, err
		}
		b, err := c.Compile(t.operands[1])
		if err != nil {
			return nil, err
		}
		if t.op == opAnd {
			return func(ctx context.Context, name string) bool {
				return a(ctx, name) && b(ctx, name)
			}, nil
		}
		return func(ctx context.Context, name string) bool {
			return a(ctx, name) || b(ctx, name)
		}, nil
	case opNot:
		a, err := c.Compile(t.operands[0])
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context, name string) bool {
			return !a(ctx, name)
		}, nil
	case opExists:
		return c.withInfo(func(fi fs.FileInfo) bool {
			return true
		}), nil
	case opKind:
		kind := t.kind
		return c.withInfo(func(fi fs.FileInfo) bool {
			return fi.Kind() == kind
		}), nil
	case opPerm:
		mask := t.mask
		return c.withInfo(func(fi fs.FileInfo) bool {
			return fi.Perm()&mask != 0
		}), nil
	case opOwnedByUser:
		uid := c.UID
		return c.withInfo(func(fi fs.FileInfo) bool {
			return fi.UID() >= 0 && fi.UID() == uid
		}), nil
	case opOwnedByGroup:
		gid := c.GID
		return c.withInfo(func(fi fs.FileInfo) bool {
			return fi.GID() >= 0 && fi.GID() == gid
		}), nil
	case opSizeNotNull:
		return c.withInfo(func(fi fs.FileInfo) bool {
			return fi.Size() > 0
		}), nil
	case opSizeBiggerThan:
		size := t.size
		return c.withInfo(func(fi fs.FileInfo) bool {
			return fi.Size() > size
		}), nil
	case opSizeSmallerThan:
		size := t.size
		return c.withInfo(func(fi fs.FileInfo) bool {
			return fi.Size() < size
		}), nil
	case opSizeEqualTo:
		size := t.size
		return c.withInfo(func(fi fs.FileInfo) bool {
			return fi.Size() == size
		}), nil
	case opNewerThanDate:
		date := t.date
		return c.withInfo(func(fi fs.FileInfo) bool {
			return fi.ModTime().After(date)
		}), nil
	case opOlderThanDate:
		date := t.date
		return c.withInfo(func(fi fs.FileInfo) bool {
			return fi.ModTime().Before(date)
		}), nil
	case opNewerThan:
		return c.withInfoPair(t.paths, func(a fs.FileInfo, b fs.FileInfo) bool {
			return a.ModTime().After(b.ModTime())
		}), nil
	case opOlderThan:
		return c.withInfoPair(t.paths, func(a fs.FileInfo, b fs.FileInfo) bool {
			return a.ModTime().Before(b.ModTime())
		}), nil
	case opSameDeviceAndInode:
		return c.withInfoPair(t.paths, func(a fs.FileInfo, b fs.FileInfo) bool {
			return a.Inode() != 0 && a.Device() == b.Device() && a.Inode() == b.Inode()
		}), nil
	case opHasExtension:
		extension := t.text
		return func(ctx context.Context, name string) bool {
			return fpath.Extension(name) == extension
		}, nil
	case opHasNoExtension:
		return func(ctx context.Context, name string) bool {
			return fpath.Extension(name) == ""
		}, nil
	case opIsCurrentDir:
		return func(ctx context.Context, name string) bool {
			return fpath.IsCurrentDir(name)
		}, nil
	case opIsParentDir:
		return func(ctx context.Context, name string) bool {
			return fpath.IsParentDir(name)
		}, nil
	case opBasenameIs:
		basename := t.text
		return func(ctx context.Context, name string) bool {
			return fpath.Basename(name) == basename
		}, nil
	case opMatch, opNameMatch:
		matcher := c.Matcher
		if matcher == nil {
			matcher = GlobMatcher{}
		}
		pattern, err := matcher.Compile(t.text)
		if err != nil {
			return nil, errors.Errorf("error compiling pattern: %w", err)
		}
		if t.op == opNameMatch {
			return func(ctx context.Context, name string) bool {
				return pattern.Match(fpath.Basename(name))
			}, nil
		}
		return func(ctx context.Context, name string) bool {
			return pattern.Match(name)
		}, nil
	case opMimeType:
		return c.compileMimeType(t.text), nil
	case opCustom:
		if t.custom == nil {
			return nil, errors.New("custom test has no function")
		}
		fn := t.custom
		return func(ctx context.Context, name string) bool {
			return fn(name)
		}, nil
	}
	return nil, errors.Errorf("unknown test %d", t.op)
}

// MustCompile is like Compile but panics if the test cannot be compiled.
func (c *Compiler) MustCompile(t Test) Evaluator {
	e, err := c.Compile(t)
	if err != nil {
		panic(err)
	}
	return e
}

func (c *Compiler) resolve(name string) string {
	if c.Cwd == "" {
		return name
	}
	if absolute, err := fpath.MakeAbsolute(c.Cwd, name); err == nil {
		return absolute
	}
	return name
}

// stat returns false if the metadata for name cannot be retrieved.
func (c *Compiler) stat(ctx context.Context, name string) (fs.FileInfo, bool) {
	fi, err := c.FileSystem.Stat(ctx, c.resolve(name))
	if err != nil {
		return nil, false
	}
	return fi, true
}

func (c *Compiler) withInfo(fn func(fi fs.FileInfo) bool) Evaluator {
	return func(ctx context.Context, name string) bool {
		fi, ok := c.stat(ctx, name)
		if !ok {
			return false
		}
		return fn(fi)
	}
}

func (c *Compiler) withInfoPair(paths [2]string, fn func(a fs.FileInfo, b fs.FileInfo) bool) Evaluator {
	return func(ctx context.Context, name string) bool {
		a, ok := c.stat(ctx, paths[0])
		if !ok {
			return false
		}
		b, ok := c.stat(ctx, paths[1])
		if !ok {
			return false
		}
		return fn(a, b)
	}
}

func (c *Compiler) compileMimeType(expected string) Evaluator {
	return func(ctx context.Context, name string) bool {
		fi, ok := c.stat(ctx, name)
		if !ok || fi.Kind() != fs.KindFile {
			return false
		}
		f, err := c.FileSystem.Open(ctx, c.resolve(name))
		if err != nil {
			return false
		}
		detected, err := mimetype.DetectReader(f)
		_ = f.Close() // silently close file
		if err != nil {
			return false
		}
		for m := detected; m != nil; m = m.Parent() {
			if m.Is(expected) {
				return true
			}
		}
		return false
	}
}
