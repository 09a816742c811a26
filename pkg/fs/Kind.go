// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fs

import (
	"os"
)

// Kind is the type of a filesystem entry.
type Kind int

const (
	KindUnknown Kind = iota
	KindFile
	KindDir
	KindSymlink
	KindFifo
	KindBlockDevice
	KindCharDevice
	KindSocket
)

var kindNames = map[Kind]string{
	KindUnknown:     "unknown",
	KindFile:        "file",
	KindDir:         "dir",
	KindSymlink:     "link",
	KindFifo:        "fifo",
	KindBlockDevice: "block",
	KindCharDevice:  "char",
	KindSocket:      "socket",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindUnknown]
}

// KindOf returns the kind encoded in the type bits of the file mode.
func KindOf(mode os.FileMode) Kind {
	switch {
	case mode&os.ModeSymlink != 0:
		return KindSymlink
	case mode.IsDir():
		return KindDir
	case mode&os.ModeNamedPipe != 0:
		return KindFifo
	case mode&os.ModeSocket != 0:
		return KindSocket
	case mode&os.ModeDevice != 0:
		if mode&os.ModeCharDevice != 0 {
			return KindCharDevice
		}
		return KindBlockDevice
	case mode&os.ModeCharDevice != 0:
		return KindCharDevice
	case mode.IsRegular():
		return KindFile
	}
	return KindUnknown
}
