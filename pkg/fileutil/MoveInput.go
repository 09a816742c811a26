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

type MoveInput struct {
	Destination string
	// Interactive is asked before an existing destination is replaced.  If nil, then it is replaced.
	Interactive fs.Interactive
	Source      string
}
