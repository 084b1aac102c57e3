// Package testfs builds in-memory filesystems for tests from compact
// declarative descriptions. File content is pseudorandom, derived from a
// per-file seed, so fixtures are reproducible across runs.
package testfs

import (
	"encoding/binary"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/spf13/afero"
)

type FileDesc struct {
	Path string
	Size int64
	Seed int64
}

type Fs struct {
	files []FileDesc
}

func New(files []FileDesc) *Fs {
	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return &Fs{files}
}

// Read parses a fixture description with one "path [size seed]" entry per
// line, e.g.:
//
//	/movies/a.mp4 [1024 1]
//	/movies/sub/b.mkv [50000 2]
func Read(s string) *Fs {
	re := regexp.MustCompile(`(.*) \[(\d+) (\d+)\]\n`)
	var files []FileDesc
	for _, match := range re.FindAllStringSubmatch(s, -1) {
		size, _ := strconv.ParseInt(match[2], 10, 64)
		seed, _ := strconv.ParseInt(match[3], 10, 64)
		files = append(files, FileDesc{
			Path: match[1],
			Size: size,
			Seed: seed,
		})
	}
	return New(files)
}

func genFile(w io.Writer, size int64, seed int64) {
	if size == 0 {
		return
	}
	if size < 8 {
		panic("testfs: doesn't support 0 < size < 8")
	}
	binary.Write(w, binary.LittleEndian, seed)
	r := rand.New(rand.NewSource(seed))
	io.CopyN(w, r, size-8)
}

func allDirs(path string) []string {
	var dirs []string
	for path != "/" {
		path = filepath.Dir(path)
		dirs = append(dirs, path)
	}
	rdirs := make([]string, len(dirs))
	for i := range dirs {
		rdirs[i] = dirs[len(dirs)-1-i]
	}
	return rdirs
}

func (fs *Fs) Mkfs() afero.Fs {
	afs := afero.NewMemMapFs()
	// work around a bug in afero where "/" has empty permissions, so it's
	// not marked as a directory
	afs.Chmod("/", 0o755|os.ModeDir)
	for _, desc := range fs.files {
		// work around a bug in afero where MkdirAll doesn't properly
		// create intermediate directories: they end up with empty
		// permissions, and so they are not marked as directories
		//
		// so instead we manually create all the intermediate
		// directories
		for _, dir := range allDirs(desc.Path) {
			if ex, _ := afero.DirExists(afs, dir); !ex {
				afs.Mkdir(dir, 0o755)
			}
		}
		f, _ := afs.Create(desc.Path)
		genFile(f, desc.Size, desc.Seed)
	}
	return afs
}
