// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

// Package fpath splits, joins, normalizes and converts paths between absolute and relative forms.
// A path is handled as a sequence of components.  An absolute path begins with an empty component.
package fpath

import (
	"os"
	"strings"
)

const (
	CurrentDir = "."
	ParentDir  = ".."
)

// Separator is the path separator for the local operating system.
const Separator = string(os.PathSeparator)

// Explode splits the path into components using the path separator for the local operating system.
// The components of an absolute path begin with an empty component.
// Empty components caused by repeated or trailing separators are dropped.
func Explode(p string) []string {
	components := []string{}
	if len(p) == 0 {
		return components
	}
	if os.IsPathSeparator(p[0]) {
		components = append(components, "")
	}
	start := 0
	for i := 0; i <= len(p); i++ {
		if i == len(p) || os.IsPathSeparator(p[i]) {
			if i > start {
				components = append(components, p[start:i])
			}
			start = i + 1
		}
	}
	return components
}

// Implode joins the components into a path.
// A leading empty component creates a leading separator.
func Implode(components []string) string {
	if len(components) == 1 && components[0] == "" {
		return Separator
	}
	return strings.Join(components, Separator)
}

// IsAbs returns true if the path begins with a separator.
func IsAbs(p string) bool {
	return len(p) > 0 && os.IsPathSeparator(p[0])
}

// Concat appends the components of name to base without normalizing the result.
// If name is absolute, then returns name.
func Concat(base string, name string) string {
	if IsAbs(name) || len(base) == 0 {
		return name
	}
	return Implode(append(Explode(base), Explode(name)...))
}

// Basename returns the last component of the path.
func Basename(p string) string {
	components := Explode(p)
	if len(components) == 0 {
		return ""
	}
	return components[len(components)-1]
}

// Dirname returns all but the last component of the path.
func Dirname(p string) string {
	components := Explode(p)
	switch len(components) {
	case 0:
		return CurrentDir
	case 1:
		if components[0] == "" {
			return Separator
		}
		return CurrentDir
	}
	if len(components) == 2 && components[0] == "" {
		return Separator
	}
	return Implode(components[0 : len(components)-1])
}

// Depth returns the number of named components in the path.
func Depth(p string) int {
	depth := 0
	for _, c := range Explode(p) {
		if c != "" {
			depth++
		}
	}
	return depth
}

// Extension returns the extension of the last component without the leading dot.
// Returns an empty string if the last component has no extension.
func Extension(p string) string {
	name := Basename(p)
	i := strings.LastIndex(name, ".")
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return name[i+1:]
}

// IsCurrentDir returns true if the last component is the current directory marker.
func IsCurrentDir(p string) bool {
	return Basename(p) == CurrentDir
}

// IsParentDir returns true if the last component is the parent directory marker.
func IsParentDir(p string) bool {
	return Basename(p) == ParentDir
}
