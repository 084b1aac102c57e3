package main

import (
	"github.com/inojacob/gethash/internal/gethash"

	"github.com/spf13/cobra"
)

var forgetCmd = &cobra.Command{
	Use:                   "forget [path ...]",
	Short:                 "Drop cataloged fingerprints",
	Long:                  "Drop cataloged fingerprints under the given paths, or the whole catalog when no paths are given.",
	DisableFlagsInUseLine: true,
	Args:                  cobra.ArbitraryArgs,
	ValidArgsFunction:     forgetValidArgs,
	RunE:                  forgetRun,
}

func init() {
	rootCmd.AddCommand(forgetCmd)
}

func forgetValidArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return nil, cobra.ShellCompDirectiveDefault
}

func forgetRun(cmd *cobra.Command, paths []string) error {
	g, err := gethash.New(&gethash.Options{
		Debug: rootFlags.debug,
	})
	if err != nil {
		return err
	}
	return g.Forget(paths, &gethash.ForgetOptions{})
}
