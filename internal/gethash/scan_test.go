package gethash

import (
	"strings"
	"testing"

	"github.com/inojacob/gethash/internal/testfs"
)

func TestScanCatalogsFingerprints(t *testing.T) {
	fs := testfs.Read(`
/movies/a.mp4 [50000 1]
/movies/copy.mp4 [50000 1]
/movies/other.mkv [50000 2]
/movies/notes.txt [100 3]
	`).Mkfs()
	g, out, _ := newTest(fs)
	stats, err := g.Scan([]string{"/movies"}, &ScanOptions{Recursive: true})
	check(t, err)
	if stats.Total != 3 || stats.Succeeded != 3 {
		t.Fatalf("expected total=3 succeeded=3, got %+v", stats)
	}
	if !strings.Contains(out.String(), "scanned 3 of 3 files") {
		t.Fatalf("missing scan summary:\n%s", out.String())
	}
	sets, herr := g.db.Duplicates()
	check(t, herr)
	if len(sets) != 1 {
		t.Fatalf("expected 1 duplicate set, got %d", len(sets))
	}
	if len(sets[0].Paths) != 2 {
		t.Fatalf("expected 2 duplicates, got %v", sets[0].Paths)
	}
}

func TestScanRescanReplaces(t *testing.T) {
	fs := testfs.Read(`
/movies/a.mp4 [50000 1]
/movies/b.mkv [60000 2]
	`).Mkfs()
	g, _, _ := newTest(fs)
	_, err := g.Scan([]string{"/movies"}, &ScanOptions{Recursive: true})
	check(t, err)
	_, err = g.Scan([]string{"/movies"}, &ScanOptions{Recursive: true})
	check(t, err)
	summary, herr := g.db.CatalogSummary()
	check(t, herr)
	if summary.Files != 2 {
		t.Fatalf("rescan should not duplicate records, got %d files", summary.Files)
	}
}

func TestScanRecordsAreRetrievable(t *testing.T) {
	fs := testfs.Read(`
/movies/a.mp4 [50000 1]
	`).Mkfs()
	g, _, _ := newTest(fs)
	_, err := g.Scan([]string{"/movies"}, &ScanOptions{Recursive: true})
	check(t, err)
	record, herr := g.db.Get("/movies/a.mp4")
	check(t, herr)
	if record == nil {
		t.Fatal("expected a cataloged record")
	}
	if record.Size != 50000 || record.Sum == 0 {
		t.Fatalf("unexpected record: %+v", record)
	}
}

func TestScanSkipsFailures(t *testing.T) {
	fs := testfs.Read(`
/movies/a.mp4 [50000 1]
	`).Mkfs()
	g, _, _ := newTest(fs)
	stats, err := g.Scan([]string{"/movies/a.mp4", "/gone.mp4"}, &ScanOptions{})
	check(t, err)
	if stats.Total != 2 || stats.Succeeded != 1 {
		t.Fatalf("expected total=2 succeeded=1, got %+v", stats)
	}
	summary, herr := g.db.CatalogSummary()
	check(t, herr)
	if summary.Files != 1 {
		t.Fatalf("failed files must not be cataloged, got %d", summary.Files)
	}
}
