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

type RemoveInput struct {
	// Interactive is asked before each path is removed.  If nil, then every path is removed.
	Interactive fs.Interactive
	Path        string
	Recursive   bool
}
