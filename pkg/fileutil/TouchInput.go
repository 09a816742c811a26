// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fileutil

import (
	"time"
)

type TouchInput struct {
	// NoCreate skips paths that do not exist instead of creating an empty file.
	NoCreate bool
	Path     string
	// Time defaults to the current time.
	Time time.Time
}
