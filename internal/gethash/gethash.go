// Package gethash implements the gh application: sparse fingerprinting of
// media files, traversal over files and directory trees, and an optional
// fingerprint catalog for spotting likely-identical files.
package gethash

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/inojacob/gethash/internal/catalog"
	"github.com/inojacob/gethash/internal/herror"
	"github.com/inojacob/gethash/internal/sparsehash"

	"github.com/cheggaaa/pb/v3"
	"github.com/spf13/afero"
	"golang.org/x/term"
)

const dbDirectory = "gethash"
const dbName = "gethash.sqlite"

type Gethash struct {
	fs        afero.Fs
	realFs    bool
	hasher    *sparsehash.Hasher
	db        *catalog.Session
	dbPath    string
	outStream io.Writer
	errStream io.Writer
	options   *Options
}

type Options struct {
	Debug bool
}

func dbPath() (string, herror.Interface) {
	cacheDirRoot, err := os.UserCacheDir()
	if err != nil {
		return "", herror.Unlikely(err, "unable to determine cache directory", `
Ensure that $HOME or $XDG_CACHE_HOME is set.
		`)
	}
	cacheDir := filepath.Join(cacheDirRoot, dbDirectory)
	err = os.MkdirAll(cacheDir, 0o755)
	if err != nil {
		return "", herror.Unlikely(err, fmt.Sprintf("unable to create cache directory '%s'", cacheDir), fmt.Sprintf(`
Ensure that the user cache directory '%s' exists and is writable.
		`, cacheDirRoot))
	}
	return filepath.Join(cacheDir, dbName), nil
}

func New(options *Options) (*Gethash, herror.Interface) {
	dbPath, herr := dbPath()
	if herr != nil {
		return nil, herr
	}
	db, herr := catalog.New(dbPath)
	if herr != nil {
		return nil, herr
	}
	fs := afero.NewOsFs()
	return &Gethash{
		fs:        fs,
		realFs:    true,
		hasher:    sparsehash.New(fs),
		db:        db,
		dbPath:    dbPath,
		outStream: os.Stdout,
		errStream: os.Stderr,
		options:   options,
	}, nil
}

func (g *Gethash) progressBar(total int, template string) *pb.ProgressBar {
	bar := pb.New(total)
	bar.SetRefreshRate(25 * time.Millisecond)
	bar.SetTemplateString(template)
	bar.SetMaxWidth(99)
	if w, ok := g.errStream.(*os.File); ok && term.IsTerminal(int(w.Fd())) {
		bar.SetWriter(g.errStream)
	} else {
		bar.SetWriter(io.Discard)
	}
	bar.Start()
	return bar
}
