// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

// Package predicate builds boolean tests over file paths and compiles them into evaluators.
package predicate

import (
	"strings"
	"time"

	"github.com/navwar/gofs/pkg/fs"
)

type op int

const (
	opTrue op = iota
	opFalse
	opAnd
	opOr
	opNot
	opExists
	opKind
	opPerm
	opOwnedByUser
	opOwnedByGroup
	opSizeNotNull
	opSizeBiggerThan
	opSizeSmallerThan
	opSizeEqualTo
	opNewerThanDate
	opOlderThanDate
	opNewerThan
	opOlderThan
	opSameDeviceAndInode
	opHasExtension
	opHasNoExtension
	opIsCurrentDir
	opIsParentDir
	opBasenameIs
	opMatch
	opNameMatch
	opMimeType
	opCustom
)

// Test is an immutable boolean test over a path.
// Build tests with the functions in this package and compile them with a Compiler.
type Test struct {
	op       op
	operands []Test
	kind     fs.Kind
	mask     uint32
	size     int64
	date     time.Time
	paths    [2]string
	text     string
	custom   func(name string) bool
}

func True() Test {
	return Test{op: opTrue}
}

func False() Test {
	return Test{op: opFalse}
}

// And is true if both a and b are true.  b is not evaluated if a is false.
func And(a Test, b Test) Test {
	return Test{op: opAnd, operands: []Test{a, b}}
}

// Or is true if either a or b is true.  b is not evaluated if a is true.
func Or(a Test, b Test) Test {
	return Test{op: opOr, operands: []Test{a, b}}
}

func Not(a Test) Test {
	return Test{op: opNot, operands: []Test{a}}
}

// All combines the tests with And.  All() is True.
func All(tests ...Test) Test {
	if len(tests) == 0 {
		return True()
	}
	t := tests[len(tests)-1]
	for i := len(tests) - 2; i >= 0; i-- {
		t = And(tests[i], t)
	}
	return t
}

// Any combines the tests with Or.  Any() is False.
func Any(tests ...Test) Test {
	if len(tests) == 0 {
		return False()
	}
	t := tests[len(tests)-1]
	for i := len(tests) - 2; i >= 0; i-- {
		t = Or(tests[i], t)
	}
	return t
}

func Exists() Test {
	return Test{op: opExists}
}

func IsKind(kind fs.Kind) Test {
	return Test{op: opKind, kind: kind}
}

func IsFile() Test {
	return IsKind(fs.KindFile)
}

func IsDir() Test {
	return IsKind(fs.KindDir)
}

func IsLink() Test {
	return IsKind(fs.KindSymlink)
}

func IsPipe() Test {
	return IsKind(fs.KindFifo)
}

func IsSocket() Test {
	return IsKind(fs.KindSocket)
}

func IsBlockDevice() Test {
	return IsKind(fs.KindBlockDevice)
}

func IsCharDevice() Test {
	return IsKind(fs.KindCharDevice)
}

// HasPerm is true if any of the bits in mask are set in the raw permission bits.
func HasPerm(mask uint32) Test {
	return Test{op: opPerm, mask: mask}
}

func IsReadable() Test {
	return HasPerm(fs.PermRead)
}

func IsWritable() Test {
	return HasPerm(fs.PermWrite)
}

func IsExecutable() Test {
	return HasPerm(fs.PermExec)
}

func HasSetUID() Test {
	return HasPerm(fs.PermSetUID)
}

func HasSetGID() Test {
	return HasPerm(fs.PermSetGID)
}

func HasStickyBit() Test {
	return HasPerm(fs.PermSticky)
}

// IsOwnedByUser is true if the owner is the effective user of the compiler.
func IsOwnedByUser() Test {
	return Test{op: opOwnedByUser}
}

// IsOwnedByGroup is true if the group is the effective group of the compiler.
func IsOwnedByGroup() Test {
	return Test{op: opOwnedByGroup}
}

func SizeNotNull() Test {
	return Test{op: opSizeNotNull}
}

func SizeBiggerThan(size int64) Test {
	return Test{op: opSizeBiggerThan, size: size}
}

func SizeSmallerThan(size int64) Test {
	return Test{op: opSizeSmallerThan, size: size}
}

func SizeEqualTo(size int64) Test {
	return Test{op: opSizeEqualTo, size: size}
}

// IsNewerThanDate is true if the modification time is after date.
func IsNewerThanDate(date time.Time) Test {
	return Test{op: opNewerThanDate, date: date}
}

// IsOlderThanDate is true if the modification time is before date.
func IsOlderThanDate(date time.Time) Test {
	return Test{op: opOlderThanDate, date: date}
}

// IsNewerThan is true if a was modified after b.
// The result does not depend on the evaluated path.
func IsNewerThan(a string, b string) Test {
	return Test{op: opNewerThan, paths: [2]string{a, b}}
}

// IsOlderThan is true if a was modified before b.
// The result does not depend on the evaluated path.
func IsOlderThan(a string, b string) Test {
	return Test{op: opOlderThan, paths: [2]string{a, b}}
}

// HasSameDeviceAndInode is true if a and b are the same file.
// The result does not depend on the evaluated path.
func HasSameDeviceAndInode(a string, b string) Test {
	return Test{op: opSameDeviceAndInode, paths: [2]string{a, b}}
}

// HasExtension is true if the last component has the extension, with or without a leading dot.
func HasExtension(extension string) Test {
	return Test{op: opHasExtension, text: strings.TrimPrefix(extension, ".")}
}

func HasNoExtension() Test {
	return Test{op: opHasNoExtension}
}

func IsCurrentDir() Test {
	return Test{op: opIsCurrentDir}
}

func IsParentDir() Test {
	return Test{op: opIsParentDir}
}

func BasenameIs(name string) Test {
	return Test{op: opBasenameIs, text: name}
}

// Match tests the whole path with the pattern of the compiler's matcher.
func Match(pattern string) Test {
	return Test{op: opMatch, text: pattern}
}

// NameMatch tests the last component with the pattern of the compiler's matcher.
func NameMatch(pattern string) Test {
	return Test{op: opNameMatch, text: pattern}
}

// HasMimeType is true if the content of a regular file is detected as the given MIME type or one of its aliases or descendants.
func HasMimeType(mime string) Test {
	return Test{op: opMimeType, text: mime}
}

// Custom calls fn with the path.
func Custom(fn func(name string) bool) Test {
	return Test{op: opCustom, custom: fn}
}
