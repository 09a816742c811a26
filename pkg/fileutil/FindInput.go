// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fileutil

import (
	"github.com/navwar/gofs/pkg/predicate"
)

type FindInput struct {
	Root string
	Test predicate.Test
}
