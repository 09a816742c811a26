// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fileutil

type WhichInput struct {
	Name string
	// SearchPath is the ordered list of directories to search.
	SearchPath []string
}
