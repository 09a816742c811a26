// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fileutil

import (
	"os"
)

type MkdirInput struct {
	// Mode defaults to 0755.
	Mode    os.FileMode
	Parents bool
	Path    string
}
