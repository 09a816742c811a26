// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fileutil

import (
	"github.com/navwar/gofs/pkg/fs"
)

type CopyInput struct {
	Destination string
	// Interactive is asked before an existing destination is overwritten.  If nil, then it is overwritten.
	Interactive fs.Interactive
	// PreserveTimestamps sets the modification time of copied files to that of their source.
	PreserveTimestamps bool
	Recursive          bool
	Source             string
}
