package gethash

import (
	"fmt"
	"text/tabwriter"

	"github.com/inojacob/gethash/internal/herror"

	"github.com/dustin/go-humanize"
)

type SummaryOptions struct {
}

// Summary prints counts over the fingerprint catalog.
func (g *Gethash) Summary(options *SummaryOptions) herror.Interface {
	summary, err := g.db.CatalogSummary()
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(g.outStream, 0, 0, 0, ' ', tabwriter.DiscardEmptyColumns|tabwriter.AlignRight)
	fmt.Fprintf(w, "cataloged\v %s\v\n", humanize.Comma(summary.Files))
	fmt.Fprintf(w, "distinct\v %s\v\n", humanize.Comma(summary.Distinct))
	fmt.Fprintf(w, "duplicate\v %s\v\n", humanize.Comma(summary.Duplicate))
	w.Flush()
	return nil
}
