package main

import (
	"github.com/inojacob/gethash/internal/gethash"

	"github.com/spf13/cobra"
)

var dupesCmd = &cobra.Command{
	Use:                   "dupes",
	Short:                 "List cataloged files with matching fingerprints",
	DisableFlagsInUseLine: true,
	Args:                  cobra.NoArgs,
	RunE:                  dupesRun,
}

func init() {
	rootCmd.AddCommand(dupesCmd)
}

func dupesRun(cmd *cobra.Command, args []string) error {
	g, err := gethash.New(&gethash.Options{
		Debug: rootFlags.debug,
	})
	if err != nil {
		return err
	}
	return g.Dupes(&gethash.DupesOptions{})
}
