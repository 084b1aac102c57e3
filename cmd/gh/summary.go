package main

import (
	"github.com/inojacob/gethash/internal/gethash"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:                   "summary",
	Short:                 "Show catalog statistics",
	DisableFlagsInUseLine: true,
	Args:                  cobra.NoArgs,
	RunE:                  summaryRun,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func summaryRun(cmd *cobra.Command, args []string) error {
	g, err := gethash.New(&gethash.Options{
		Debug: rootFlags.debug,
	})
	if err != nil {
		return err
	}
	return g.Summary(&gethash.SummaryOptions{})
}
