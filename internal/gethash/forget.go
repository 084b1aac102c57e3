package gethash

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/inojacob/gethash/internal/herror"
)

type ForgetOptions struct {
}

// Forget drops cataloged fingerprints under the given paths, or the whole
// catalog when no paths are given. Paths don't need to exist anymore; we only
// need to be able to determine their absolute form.
func (g *Gethash) Forget(paths []string, options *ForgetOptions) herror.Interface {
	if len(paths) == 0 {
		if err := g.db.RemoveAll(); err != nil {
			return err
		}
		fmt.Fprintf(g.outStream, "forgot all cataloged fingerprints\n")
		return nil
	}
	var herr herror.Interface
	tx, err := g.db.Begin()
	if err != nil {
		return err
	}
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			fmt.Fprintf(g.errStream, "cannot forget '%s': cannot determine absolute path\n", path)
			herr = herror.Silent()
			continue
		}
		if err := tx.RemoveDir(abs); err != nil {
			tx.Rollback()
			return err
		}
		// format path for nicer printing
		if path[len(path)-1] != os.PathSeparator {
			path = path + string(os.PathSeparator)
		}
		fmt.Fprintf(g.outStream, "forgot %s*\n", path)
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	return herr
}
