//go:build !unix

package gethash

import "os"

func fileID(info os.FileInfo) (dev, ino uint64, ok bool) {
	return 0, 0, false
}
