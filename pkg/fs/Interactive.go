// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fs

// Interactive decides whether an operation may proceed on a path,
// e.g., overwriting an existing destination or removing a file.
type Interactive interface {
	Confirm(path string) bool
}

type force struct{}

func (force) Confirm(path string) bool {
	return true
}

// Force always proceeds.
var Force Interactive = force{}

// AskFunc asks the wrapped function for every path.
type AskFunc func(path string) bool

func (f AskFunc) Confirm(path string) bool {
	return f(path)
}

// Confirm returns true if interactive is nil or approves the path.
func Confirm(interactive Interactive, path string) bool {
	if interactive == nil {
		return true
	}
	return interactive.Confirm(path)
}
