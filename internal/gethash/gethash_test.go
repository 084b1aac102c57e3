package gethash

import (
	"bytes"
	"io"
	"log"
	"testing"

	"github.com/inojacob/gethash/internal/catalog"
	"github.com/inojacob/gethash/internal/sparsehash"

	"github.com/spf13/afero"
)

func newTest(fs afero.Fs) (*Gethash, *bytes.Buffer, *bytes.Buffer) {
	log.SetFlags(0)
	log.SetOutput(io.Discard)
	db, err := catalog.NewInMemory()
	if err != nil {
		panic(err)
	}
	outStream := new(bytes.Buffer)
	errStream := new(bytes.Buffer)
	_, realFs := fs.(*afero.OsFs)
	return &Gethash{
		fs:        fs,
		realFs:    realFs,
		hasher:    sparsehash.New(fs),
		db:        db,
		dbPath:    "",
		outStream: outStream,
		errStream: errStream,
		options:   &Options{Debug: false},
	}, outStream, errStream
}

func check(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

// recordingReporter captures everything the driver streams, for assertions.
type recordingReporter struct {
	began   []string
	results []FileResult
	stats   Stats
}

func (r *recordingReporter) Begin(paths []string) {
	r.began = paths
}

func (r *recordingReporter) File(result FileResult) {
	r.results = append(r.results, result)
}

func (r *recordingReporter) Summary(stats Stats) {
	r.stats = stats
}

func (r *recordingReporter) byPath() map[string]FileResult {
	m := make(map[string]FileResult)
	for _, result := range r.results {
		m[result.Path] = result
	}
	return m
}
