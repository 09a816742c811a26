// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fs

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindFile, KindOf(0o644))
	assert.Equal(t, KindDir, KindOf(os.ModeDir|0o755))
	assert.Equal(t, KindSymlink, KindOf(os.ModeSymlink|0o777))
	assert.Equal(t, KindFifo, KindOf(os.ModeNamedPipe|0o644))
	assert.Equal(t, KindSocket, KindOf(os.ModeSocket|0o755))
	assert.Equal(t, KindBlockDevice, KindOf(os.ModeDevice|0o660))
	assert.Equal(t, KindCharDevice, KindOf(os.ModeDevice|os.ModeCharDevice|0o666))
	assert.Equal(t, KindUnknown, KindOf(os.ModeIrregular))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "file", KindFile.String())
	assert.Equal(t, "dir", KindDir.String())
	assert.Equal(t, "link", KindSymlink.String())
	assert.Equal(t, "unknown", Kind(100).String())
}

func TestPermOf(t *testing.T) {
	assert.Equal(t, uint32(0o755), PermOf(os.ModeDir|0o755))
	assert.Equal(t, uint32(0o4755), PermOf(os.ModeSetuid|0o755))
	assert.Equal(t, uint32(0o2755), PermOf(os.ModeSetgid|0o755))
	assert.Equal(t, uint32(0o1777), PermOf(os.ModeSticky|0o777))
}

func TestFileModeOf(t *testing.T) {
	assert.Equal(t, os.FileMode(0o644), FileModeOf(0o644))
	assert.Equal(t, os.ModeSetuid|os.ModeSetgid|os.ModeSticky|0o700, FileModeOf(0o7700))
	for _, perm := range []uint32{0o644, 0o4755, 0o2750, 0o1777} {
		assert.Equal(t, perm, PermOf(FileModeOf(perm)))
	}
}
