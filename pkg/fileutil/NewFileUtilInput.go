// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fileutil

import (
	"github.com/navwar/gofs/pkg/fs"
	"github.com/navwar/gofs/pkg/predicate"
)

type NewFileUtilInput struct {
	FileSystem fs.FileSystem
	Getwd      func() (string, error)
	// GID is the group id compared by predicate.IsOwnedByGroup.
	// Zero is the root group.  Use -1 to match no group.
	GID    int
	Logger fs.Logger
	// Matcher defaults to shell globs.
	Matcher predicate.Matcher
	// UID is the user id compared by predicate.IsOwnedByUser.
	// Zero is the root user.  Use -1 to match no user.
	UID int
}
