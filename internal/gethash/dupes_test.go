package gethash

import (
	"strings"
	"testing"

	"github.com/inojacob/gethash/internal/testfs"
)

func TestDupesOutput(t *testing.T) {
	fs := testfs.Read(`
/movies/a.mp4 [50000 1]
/movies/copy.mp4 [50000 1]
/movies/unique.mkv [60000 2]
	`).Mkfs()
	g, out, _ := newTest(fs)
	_, err := g.Scan([]string{"/movies"}, &ScanOptions{Recursive: true})
	check(t, err)
	out.Reset()
	check(t, g.Dupes(&DupesOptions{}))
	got := out.String()
	if !strings.Contains(got, "/movies/a.mp4") || !strings.Contains(got, "/movies/copy.mp4") {
		t.Fatalf("expected both duplicates listed:\n%s", got)
	}
	if strings.Contains(got, "/movies/unique.mkv") {
		t.Fatalf("unique file should not be listed:\n%s", got)
	}
	if !strings.Contains(got, "50 kB") {
		t.Fatalf("expected humanized size:\n%s", got)
	}
}

func TestDupesEmptyCatalog(t *testing.T) {
	fs := testfs.Read(`
/movies/a.mp4 [1024 1]
	`).Mkfs()
	g, out, _ := newTest(fs)
	check(t, g.Dupes(&DupesOptions{}))
	if out.Len() != 0 {
		t.Fatalf("expected no output for an empty catalog, got:\n%s", out.String())
	}
}
