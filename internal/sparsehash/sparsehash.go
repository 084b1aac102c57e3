// Package sparsehash computes approximate 64-bit fingerprints for large
// media files by sampling fixed-size windows instead of reading the whole
// file. The fingerprint is the FNV-1a 64 digest of the file's size followed
// by up to three 16 KiB windows (head, middle, tail), so a multi-gigabyte
// file costs at most 48 KiB of reads. The result distinguishes distinct
// files and flags likely-identical ones; it is not a content guarantee and
// carries no cryptographic strength.
package sparsehash

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"os"

	"github.com/spf13/afero"
)

// ChunkSize is the number of bytes sampled per window.
const ChunkSize = 16384

// ErrNotRegular is returned when the path names something other than a
// regular file (a directory, device, socket, ...).
var ErrNotRegular = errors.New("not a regular file")

// Result is a computed fingerprint together with the measured file size.
type Result struct {
	Sum  uint64
	Size uint64
}

// A Hasher computes sparse fingerprints over a filesystem. It is stateless
// across calls and safe for concurrent use.
type Hasher struct {
	fs     afero.Fs
	realFs bool
}

func New(fs afero.Fs) *Hasher {
	_, realFs := fs.(*afero.OsFs)
	return &Hasher{fs: fs, realFs: realFs}
}

// Hash fingerprints the file at path. The size is mixed in first, so files
// of different sizes never collide even when their sampled windows happen to
// match (e.g. truncated copies). The head window always covers the start of
// the file; the tail window is only sampled when the file is larger than one
// chunk, and the middle window (at size/2) only when the file is larger than
// three chunks, so windows never overlap. Short reads contribute whatever
// was read; read errors after a successful open are tolerated and simply
// contribute nothing. Open and stat failures are returned to the caller.
func (h *Hasher) Hash(path string) (Result, error) {
	f, err := h.open(path)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return Result{}, err
	}
	if !info.Mode().IsRegular() {
		return Result{}, fmt.Errorf("%s: %w", path, ErrNotRegular)
	}
	size := uint64(info.Size())

	acc := fnv.New64a()
	var szBuf [8]byte
	binary.LittleEndian.PutUint64(szBuf[:], size)
	acc.Write(szBuf[:])

	buf := make([]byte, ChunkSize)

	// head
	if n, _ := f.Read(buf); n > 0 {
		acc.Write(buf[:n])
	}
	// middle, skipped for small files so the windows don't overlap
	if size > 3*ChunkSize {
		if _, err := f.Seek(int64(size/2), io.SeekStart); err == nil {
			if n, _ := f.Read(buf); n > 0 {
				acc.Write(buf[:n])
			}
		}
	}
	// tail, skipped when the head window already covers the whole file
	if size > ChunkSize {
		if _, err := f.Seek(-ChunkSize, io.SeekEnd); err == nil {
			if n, _ := f.Read(buf); n > 0 {
				acc.Write(buf[:n])
			}
		}
	}

	return Result{Sum: acc.Sum64(), Size: size}, nil
}

// open opens path read-only. On the real filesystem it first tries to skip
// the access-time update; O_NOATIME is restricted to the file owner, so a
// permission failure falls back to a plain open.
func (h *Hasher) open(path string) (afero.File, error) {
	if h.realFs && openNoatime != 0 {
		f, err := h.fs.OpenFile(path, os.O_RDONLY|openNoatime, 0)
		if err == nil || !os.IsPermission(err) {
			return f, err
		}
	}
	return h.fs.Open(path)
}

// FormatSum renders a fingerprint in its textual form: 16 lowercase hex
// digits, zero-padded.
func FormatSum(sum uint64) string {
	return fmt.Sprintf("%016x", sum)
}
