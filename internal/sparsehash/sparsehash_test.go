package sparsehash

import (
	"encoding/binary"
	"errors"
	"os"
	"testing"

	"github.com/spf13/afero"
)

// reference FNV-1a 64 mixer, written out from the documented constants so
// the tests don't share an implementation with the code under test
func refMix(acc uint64, data []byte) uint64 {
	for _, b := range data {
		acc ^= uint64(b)
		acc *= 0x100000001b3
	}
	return acc
}

// refFingerprint mixes the little-endian size and then each window, in order
func refFingerprint(size uint64, windows ...[]byte) uint64 {
	var szBuf [8]byte
	binary.LittleEndian.PutUint64(szBuf[:], size)
	acc := refMix(0xcbf29ce484222325, szBuf[:])
	for _, w := range windows {
		acc = refMix(acc, w)
	}
	return acc
}

func pattern(n int) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte(i*31 + 7)
	}
	return buf
}

func mkfs(t *testing.T, path string, content []byte) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	return fs
}

func TestHashEmptyFile(t *testing.T) {
	fs := mkfs(t, "/empty.mp4", nil)
	got, err := New(fs).Hash("/empty.mp4")
	if err != nil {
		t.Fatal(err)
	}
	if got.Size != 0 {
		t.Fatalf("expected size 0, got %d", got.Size)
	}
	if expected := refFingerprint(0); got.Sum != expected {
		t.Fatalf("expected %016x, got %016x", expected, got.Sum)
	}
}

func TestHashSmallFile(t *testing.T) {
	content := []byte("hello world")
	fs := mkfs(t, "/a.mp4", content)
	got, err := New(fs).Hash("/a.mp4")
	if err != nil {
		t.Fatal(err)
	}
	if got.Size != uint64(len(content)) {
		t.Fatalf("expected size %d, got %d", len(content), got.Size)
	}
	if expected := refFingerprint(uint64(len(content)), content); got.Sum != expected {
		t.Fatalf("expected %016x, got %016x", expected, got.Sum)
	}
}

func TestHashExactlyOneChunk(t *testing.T) {
	// at exactly ChunkSize the head window covers the whole file and the
	// tail window is skipped
	content := pattern(ChunkSize)
	fs := mkfs(t, "/a.mp4", content)
	got, err := New(fs).Hash("/a.mp4")
	if err != nil {
		t.Fatal(err)
	}
	if expected := refFingerprint(ChunkSize, content); got.Sum != expected {
		t.Fatalf("expected %016x, got %016x", expected, got.Sum)
	}
}

func TestHashThreeChunks(t *testing.T) {
	// at exactly 3*ChunkSize the middle window is still skipped; head and
	// tail are sampled
	size := 3 * ChunkSize
	content := pattern(size)
	fs := mkfs(t, "/a.mp4", content)
	got, err := New(fs).Hash("/a.mp4")
	if err != nil {
		t.Fatal(err)
	}
	expected := refFingerprint(uint64(size), content[:ChunkSize], content[size-ChunkSize:])
	if got.Sum != expected {
		t.Fatalf("expected %016x, got %016x", expected, got.Sum)
	}
}

func TestHashThreeChunksPlusOne(t *testing.T) {
	// one byte past 3*ChunkSize all three windows are sampled
	size := 3*ChunkSize + 1
	content := pattern(size)
	fs := mkfs(t, "/a.mp4", content)
	got, err := New(fs).Hash("/a.mp4")
	if err != nil {
		t.Fatal(err)
	}
	mid := size / 2
	expected := refFingerprint(uint64(size),
		content[:ChunkSize],
		content[mid:mid+ChunkSize],
		content[size-ChunkSize:])
	if got.Sum != expected {
		t.Fatalf("expected %016x, got %016x", expected, got.Sum)
	}
}

func TestHashDeterministic(t *testing.T) {
	fs := mkfs(t, "/a.mkv", pattern(100000))
	h := New(fs)
	first, err := h.Hash("/a.mkv")
	if err != nil {
		t.Fatal(err)
	}
	second, err := h.Hash("/a.mkv")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatalf("expected identical results, got %v and %v", first, second)
	}
}

func TestHashDifferentSizesDiffer(t *testing.T) {
	// a truncated copy shares every sampled byte with its prefix; the size
	// mix keeps the fingerprints apart
	content := pattern(2 * ChunkSize)
	fs := afero.NewMemMapFs()
	afero.WriteFile(fs, "/full.mp4", content, 0o644)
	afero.WriteFile(fs, "/tail.mp4", content[:ChunkSize], 0o644)
	h := New(fs)
	full, err := h.Hash("/full.mp4")
	if err != nil {
		t.Fatal(err)
	}
	truncated, err := h.Hash("/tail.mp4")
	if err != nil {
		t.Fatal(err)
	}
	if full.Sum == truncated.Sum {
		t.Fatal("files of different sizes must not collide")
	}
}

func TestHashUnsampledRegionIgnored(t *testing.T) {
	// for a 3-chunk file the bytes between head and tail are never read
	size := 3 * ChunkSize
	a := pattern(size)
	b := pattern(size)
	b[2*ChunkSize-100] ^= 0xff
	fs := afero.NewMemMapFs()
	afero.WriteFile(fs, "/a.mp4", a, 0o644)
	afero.WriteFile(fs, "/b.mp4", b, 0o644)
	h := New(fs)
	ra, err := h.Hash("/a.mp4")
	if err != nil {
		t.Fatal(err)
	}
	rb, err := h.Hash("/b.mp4")
	if err != nil {
		t.Fatal(err)
	}
	if ra.Sum != rb.Sum {
		t.Fatal("bytes outside the sampled windows must not affect the fingerprint")
	}
}

func TestHashMiddleWindowSampled(t *testing.T) {
	// one byte past the 3-chunk threshold the midpoint is sampled, so a
	// change there shows up
	size := 3*ChunkSize + 1
	a := pattern(size)
	b := pattern(size)
	b[size/2] ^= 0xff
	fs := afero.NewMemMapFs()
	afero.WriteFile(fs, "/a.mp4", a, 0o644)
	afero.WriteFile(fs, "/b.mp4", b, 0o644)
	h := New(fs)
	ra, err := h.Hash("/a.mp4")
	if err != nil {
		t.Fatal(err)
	}
	rb, err := h.Hash("/b.mp4")
	if err != nil {
		t.Fatal(err)
	}
	if ra.Sum == rb.Sum {
		t.Fatal("a change at the midpoint must affect the fingerprint")
	}
}

func TestHashNotFound(t *testing.T) {
	fs := afero.NewMemMapFs()
	_, err := New(fs).Hash("/nope.mp4")
	if err == nil {
		t.Fatal("expected error")
	}
	if !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %s", err)
	}
}

func TestHashDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	fs.Mkdir("/dir", 0o755)
	_, err := New(fs).Hash("/dir")
	if !errors.Is(err, ErrNotRegular) {
		t.Fatalf("expected ErrNotRegular, got %v", err)
	}
}

func TestFormatSum(t *testing.T) {
	for sum, expected := range map[uint64]string{
		0xdeadbeef:         "00000000deadbeef",
		0:                  "0000000000000000",
		0xcbf29ce484222325: "cbf29ce484222325",
	} {
		if got := FormatSum(sum); got != expected {
			t.Fatalf("expected %q, got %q", expected, got)
		}
	}
}
