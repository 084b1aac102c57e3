package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/inojacob/gethash/internal/gethash"
	"github.com/inojacob/gethash/internal/herror"

	"github.com/spf13/cobra"
)

var hashFlags struct {
	recursive bool
	ignore    bool
	logFile   string
	silent    bool
	jobs      int
}

var hashCmd = &cobra.Command{
	Use:                   "hash path ...",
	Short:                 "Fingerprint media files",
	DisableFlagsInUseLine: true,
	Args:                  cobra.MinimumNArgs(1),
	ValidArgsFunction:     hashValidArgs,
	RunE:                  hashRun,
}

func init() {
	hashCmd.Flags().BoolVarP(&hashFlags.recursive, "recursive", "r", false, "descend into directories")
	hashCmd.Flags().BoolVarP(&hashFlags.ignore, "ignore", "i", false, "fingerprint files regardless of extension")
	hashCmd.Flags().StringVarP(&hashFlags.logFile, "log", "l", "", "mirror results to a plain-text log file")
	hashCmd.Flags().BoolVarP(&hashFlags.silent, "silent", "s", false, "only show a progress bar (requires --log)")
	hashCmd.Flags().IntVar(&hashFlags.jobs, "jobs", 1, "number of files to fingerprint in parallel")
	rootCmd.AddCommand(hashCmd)
}

func hashValidArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return nil, cobra.ShellCompDirectiveDefault
}

func hashRun(cmd *cobra.Command, paths []string) error {
	if hashFlags.silent && hashFlags.logFile == "" {
		return herror.User(nil, "silent mode requires a log file (--log)")
	}
	g, err := gethash.New(&gethash.Options{
		Debug: rootFlags.debug,
	})
	if err != nil {
		return err
	}
	var logStream io.Writer
	if hashFlags.logFile != "" {
		f, ferr := os.Create(hashFlags.logFile)
		if ferr != nil {
			return herror.UserF(ferr, "cannot open log file '%s'", hashFlags.logFile)
		}
		defer f.Close()
		fmt.Fprintf(f, "gh log - generated on %s\n\n", time.Now().Format("Mon, Jan 02 2006 15:04:05"))
		logStream = f
	}
	reporter := gethash.NewReporter(gethash.ReportConfig{
		Out:    os.Stdout,
		Err:    os.Stderr,
		Log:    logStream,
		Silent: hashFlags.silent,
	})
	_, herr := g.Hash(paths, &gethash.HashOptions{
		Recursive:       hashFlags.recursive,
		IgnoreExtension: hashFlags.ignore,
		Jobs:            hashFlags.jobs,
	}, reporter)
	if herr != nil {
		return herr
	}
	if hashFlags.logFile != "" && !hashFlags.silent {
		fmt.Printf("Log saved to: %s\n", hashFlags.logFile)
	}
	return nil
}
