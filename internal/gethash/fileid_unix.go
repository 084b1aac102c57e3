//go:build unix

package gethash

import (
	"os"
	"syscall"
)

// fileID extracts the (device, inode) identity of a file, when the
// underlying filesystem exposes one.
func fileID(info os.FileInfo) (dev, ino uint64, ok bool) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, 0, false
	}
	return uint64(st.Dev), uint64(st.Ino), true
}
