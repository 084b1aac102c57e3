package gethash

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/inojacob/gethash/internal/catalog"
	"github.com/inojacob/gethash/internal/herror"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
)

type ScanOptions struct {
	Recursive       bool
	IgnoreExtension bool
	Jobs            int
}

// Scan fingerprints paths like Hash but records successes into the catalog
// (keyed by absolute path) instead of rendering per-file blocks, so that
// later runs of Dupes can report likely-identical files.
func (g *Gethash) Scan(paths []string, options *ScanOptions) (Stats, herror.Interface) {
	tx, herr := g.db.Begin()
	if herr != nil {
		return Stats{}, herr
	}
	reporter := &scanReporter{g: g, tx: tx, scannedAt: time.Now()}
	stats, herr := g.Hash(paths, &HashOptions{
		Recursive:       options.Recursive,
		IgnoreExtension: options.IgnoreExtension,
		Jobs:            options.Jobs,
	}, reporter)
	if herr != nil {
		tx.Rollback()
		return stats, herr
	}
	if herr := tx.Commit(); herr != nil {
		return stats, herr
	}
	fmt.Fprintf(g.outStream, "scanned %s of %s files (%s)\n",
		humanize.Comma(int64(stats.Succeeded)), humanize.Comma(int64(stats.Total)), humanize.Bytes(stats.TotalBytes))
	return stats, nil
}

// scanReporter streams successful fingerprints into a catalog transaction.
// File is called from a single goroutine, so the transaction is not shared.
type scanReporter struct {
	g         *Gethash
	tx        *catalog.Session
	scannedAt time.Time
	bar       *pb.ProgressBar
}

func (r *scanReporter) Begin(paths []string) {
	r.bar = r.g.progressBar(len(paths), `scanning: {{ counters . }} {{ bar . "[" "=" ">" " " "]" }} {{ etime . }} `)
}

func (r *scanReporter) File(result FileResult) {
	defer r.bar.Increment()
	if result.Status != StatusSuccess {
		return
	}
	path := result.Path
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if err := r.tx.Put(catalog.FileRecord{
		Path:      path,
		Sum:       result.Sum,
		Size:      result.Size,
		ScannedAt: r.scannedAt,
	}); err != nil {
		log.Printf("cannot catalog %s: %s", path, err)
	}
}

func (r *scanReporter) Summary(stats Stats) {
	r.bar.Finish()
}
