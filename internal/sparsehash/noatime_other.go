//go:build !linux

package sparsehash

const openNoatime = 0
