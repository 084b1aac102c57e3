package gethash

import (
	"fmt"

	"github.com/inojacob/gethash/internal/herror"
	"github.com/inojacob/gethash/internal/sparsehash"

	"github.com/dustin/go-humanize"
)

type DupesOptions struct {
}

// Dupes prints the groups of cataloged files that share a fingerprint and
// size: likely-identical content, subject to the sampling heuristic.
func (g *Gethash) Dupes(options *DupesOptions) herror.Interface {
	sets, err := g.db.Duplicates()
	if err != nil {
		return err
	}
	for _, set := range sets {
		fmt.Fprintf(g.outStream, "%s %s\n", sparsehash.FormatSum(set.Sum), humanize.Bytes(set.Size))
		for _, path := range set.Paths {
			fmt.Fprintf(g.outStream, "  %s\n", path)
		}
		fmt.Fprintf(g.outStream, "\n")
	}
	return nil
}
