// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

//go:build !windows && !plan9 && !js && !wasip1

package lfs

import (
	"syscall"
)

func fillSys(lfi *LocalFileInfo, sys interface{}) {
	st, ok := sys.(*syscall.Stat_t)
	if !ok || st == nil {
		return
	}
	lfi.perm = uint32(st.Mode) & 0o7777
	lfi.uid = int(st.Uid)
	lfi.gid = int(st.Gid)
	lfi.dev = uint64(st.Dev)
	lfi.rdev = uint64(st.Rdev)
	lfi.ino = uint64(st.Ino)
}
