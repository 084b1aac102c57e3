package gethash

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/inojacob/gethash/internal/herror"
	"github.com/inojacob/gethash/internal/par"

	"github.com/spf13/afero"
)

type Status int

const (
	StatusSuccess Status = iota
	StatusSkippedExtension
	StatusNotFound
	StatusUnreadable
)

// FileResult is the streamed outcome for a single candidate file. Sum and
// Size are only meaningful for StatusSuccess.
type FileResult struct {
	Status Status
	Path   string
	Sum    uint64
	Size   uint64
}

// Stats accumulates over a whole run. Total counts candidates that were
// eligible for fingerprinting (including ones that then failed); Succeeded
// counts computed fingerprints; TotalBytes sums the sizes of successes only.
type Stats struct {
	Total      uint64
	Succeeded  uint64
	TotalBytes uint64
	Elapsed    time.Duration
}

type HashOptions struct {
	// Recursive expands directory arguments into depth-first walks;
	// otherwise every argument is treated as a single candidate file.
	Recursive bool
	// IgnoreExtension bypasses the video extension filter.
	IgnoreExtension bool
	// Jobs is the number of files fingerprinted in parallel; values below 1
	// mean sequential.
	Jobs int
}

// A Reporter receives the streamed results of a run. Begin is called once
// with every candidate path before any file is processed (so a renderer can
// size its output and a progress bar knows its total), File once per
// candidate as it completes, and Summary once at the end. File is always
// called from a single goroutine, even when fingerprinting is parallel.
type Reporter interface {
	Begin(paths []string)
	File(result FileResult)
	Summary(stats Stats)
}

// candidate is one file to fingerprint. A skipped candidate failed the
// extension filter and is reported without touching the filesystem.
type candidate struct {
	path    string
	skipped bool
}

// Hash fingerprints the given paths, streaming per-file results to the
// reporter and returning the aggregate statistics. Individual file failures
// are reported and counted but never abort the run.
func (g *Gethash) Hash(paths []string, options *HashOptions, reporter Reporter) (Stats, herror.Interface) {
	start := time.Now()
	candidates := g.collect(paths, options)

	candidatePaths := make([]string, len(candidates))
	for i, c := range candidates {
		candidatePaths[i] = c.path
	}
	reporter.Begin(candidatePaths)

	jobs := options.Jobs
	if jobs < 1 {
		jobs = 1
	}
	results := par.MapN(candidates, jobs, func(c candidate, emit func(FileResult)) {
		emit(g.hashOne(c))
	})

	var stats Stats
	for result := range results {
		switch result.Status {
		case StatusSuccess:
			stats.Total++
			stats.Succeeded++
			stats.TotalBytes += result.Size
		case StatusNotFound, StatusUnreadable:
			stats.Total++
		}
		reporter.File(result)
	}
	stats.Elapsed = time.Since(start)
	reporter.Summary(stats)
	return stats, nil
}

// collect enumerates candidate files. In recursive mode directory arguments
// become depth-first walks; files that fail the extension filter inside a
// walk are dropped silently, while explicitly named files that fail it are
// kept as skipped candidates so they can be reported.
func (g *Gethash) collect(paths []string, options *HashOptions) []candidate {
	var candidates []candidate
	emit := func(c candidate) {
		candidates = append(candidates, c)
	}
	if !options.Recursive {
		for _, path := range paths {
			skipped := !options.IgnoreExtension && !isVideoPath(path)
			emit(candidate{path: path, skipped: skipped})
		}
		return candidates
	}
	seen := newDirSet()
	for _, root := range paths {
		info, err := g.fs.Stat(root)
		if err != nil {
			// keep it as a candidate so the failure is counted and reported
			emit(candidate{path: root})
			continue
		}
		if !info.IsDir() {
			skipped := !options.IgnoreExtension && !isVideoPath(root)
			emit(candidate{path: root, skipped: skipped})
			continue
		}
		g.walk(root, info, options, seen, emit)
	}
	return candidates
}

// walk descends depth-first from a directory. Regular files pass through the
// extension filter; subdirectories are followed unconditionally (guarded
// against cycles by device/inode identity); anything else is skipped. Entry
// order within a directory is whatever the filesystem yields.
func (g *Gethash) walk(dir string, info os.FileInfo, options *HashOptions, seen *dirSet, emit func(candidate)) {
	if !seen.add(info) {
		log.Printf("skipping already-visited directory %s", dir)
		return
	}
	entries, err := afero.ReadDir(g.fs, dir)
	if err != nil {
		log.Printf("cannot read directory %s: %s", dir, err)
		return
	}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			g.walk(path, entry, options, seen, emit)
			continue
		}
		if !entry.Mode().IsRegular() {
			continue
		}
		if !options.IgnoreExtension && !isVideoPath(path) {
			continue
		}
		emit(candidate{path: path})
	}
}

func (g *Gethash) hashOne(c candidate) FileResult {
	if c.skipped {
		return FileResult{Status: StatusSkippedExtension, Path: c.path}
	}
	result, err := g.hasher.Hash(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return FileResult{Status: StatusNotFound, Path: c.path}
		}
		log.Printf("cannot fingerprint %s: %s", c.path, err)
		return FileResult{Status: StatusUnreadable, Path: c.path}
	}
	return FileResult{Status: StatusSuccess, Path: c.path, Sum: result.Sum, Size: result.Size}
}

// dirSet tracks visited directories by device and inode so that a walk over
// a filesystem with directory cycles terminates.
type dirSet struct {
	seen map[[2]uint64]struct{}
}

func newDirSet() *dirSet {
	return &dirSet{seen: make(map[[2]uint64]struct{})}
}

// add records the directory and reports whether it had not been seen before.
// Directories without device/inode identity (in-memory filesystems, other
// platforms) are never deduplicated.
func (s *dirSet) add(info os.FileInfo) bool {
	dev, ino, ok := fileID(info)
	if !ok {
		return true
	}
	key := [2]uint64{dev, ino}
	if _, dup := s.seen[key]; dup {
		return false
	}
	s.seen[key] = struct{}{}
	return true
}
