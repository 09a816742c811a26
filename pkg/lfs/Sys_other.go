// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

//go:build windows || plan9 || js || wasip1

package lfs

// fillSys leaves ownership, device and inode unknown.
func fillSys(lfi *LocalFileInfo, sys interface{}) {
}
