//go:build linux

package sparsehash

import "golang.org/x/sys/unix"

const openNoatime = unix.O_NOATIME
