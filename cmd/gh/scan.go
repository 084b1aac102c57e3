package main

import (
	"github.com/inojacob/gethash/internal/gethash"

	"github.com/spf13/cobra"
)

var scanFlags struct {
	recursive bool
	ignore    bool
	jobs      int
}

var scanCmd = &cobra.Command{
	Use:                   "scan [path ...]",
	Short:                 "Fingerprint files and record them in the catalog",
	DisableFlagsInUseLine: true,
	Args:                  cobra.ArbitraryArgs,
	RunE:                  scanRun,
}

func init() {
	scanCmd.Flags().BoolVarP(&scanFlags.recursive, "recursive", "r", true, "descend into directories")
	scanCmd.Flags().BoolVarP(&scanFlags.ignore, "ignore", "i", false, "fingerprint files regardless of extension")
	scanCmd.Flags().IntVar(&scanFlags.jobs, "jobs", 1, "number of files to fingerprint in parallel")
	rootCmd.AddCommand(scanCmd)
}

func scanRun(cmd *cobra.Command, paths []string) error {
	g, err := gethash.New(&gethash.Options{
		Debug: rootFlags.debug,
	})
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		paths = []string{"."}
	}
	_, herr := g.Scan(paths, &gethash.ScanOptions{
		Recursive:       scanFlags.recursive,
		IgnoreExtension: scanFlags.ignore,
		Jobs:            scanFlags.jobs,
	})
	if herr != nil {
		return herr
	}
	return nil
}
