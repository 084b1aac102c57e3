package gethash

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/inojacob/gethash/internal/sparsehash"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"golang.org/x/term"
)

// separators pad a little past the longest name so blocks line up
const minDisplayWidth = 15
const displayWidthPad = 8

var (
	labelColor     = color.New(color.FgGreen)
	noteColor      = color.New(color.FgYellow)
	errorColor     = color.New(color.FgRed)
	separatorColor = color.New(color.FgCyan)
	elapsedColor   = color.New(color.FgHiYellow)
)

// ReportConfig configures the console reporter. There is no process-global
// output state: the log writer and silent flag travel with the reporter.
type ReportConfig struct {
	Out io.Writer
	Err io.Writer
	// Log optionally mirrors results as plain text; it never receives ANSI
	// color codes.
	Log io.Writer
	// Silent reduces terminal output to a progress bar; the full results
	// still go to Log.
	Silent bool
}

// consoleReporter renders per-file blocks in the style of the original tool:
// a dashed separator sized to the longest name, then File/Path/Size/Hash
// lines, with a final summary after a '=' separator.
type consoleReporter struct {
	cfg   ReportConfig
	width int
	bar   *pb.ProgressBar
}

func NewReporter(cfg ReportConfig) Reporter {
	if cfg.Out == nil {
		cfg.Out = io.Discard
	}
	if cfg.Err == nil {
		cfg.Err = io.Discard
	}
	return &consoleReporter{cfg: cfg}
}

func (r *consoleReporter) Begin(paths []string) {
	r.width = minDisplayWidth
	for _, path := range paths {
		if n := len(filepath.Base(path)); n > r.width {
			r.width = n
		}
		if abs, err := filepath.Abs(path); err == nil {
			if n := len(filepath.Dir(abs)); n > r.width {
				r.width = n
			}
		}
	}
	if r.cfg.Silent {
		fmt.Fprintf(r.cfg.Out, "Calculating hash for %d file(s).\n", len(paths))
		r.bar = pb.New(len(paths))
		r.bar.SetMaxWidth(60)
		r.bar.SetTemplateString(`{{ bar . "[" "=" ">" "." "]" }} {{ percent . }}`)
		if w, ok := r.cfg.Out.(*os.File); ok && term.IsTerminal(int(w.Fd())) {
			r.bar.SetWriter(w)
		} else {
			r.bar.SetWriter(io.Discard)
		}
		r.bar.Start()
	}
}

func (r *consoleReporter) File(result FileResult) {
	if r.bar != nil {
		defer r.bar.Increment()
	}
	switch result.Status {
	case StatusSuccess:
		r.separator('-')
		base := filepath.Base(result.Path)
		dir := result.Path
		if abs, err := filepath.Abs(result.Path); err == nil {
			dir = abs
		}
		dir = filepath.Dir(dir)
		size := humanize.Bytes(result.Size)
		sum := sparsehash.FormatSum(result.Sum)
		if !r.cfg.Silent {
			labelColor.Fprint(r.cfg.Out, "File: ")
			fmt.Fprintf(r.cfg.Out, "%s\n", base)
			labelColor.Fprint(r.cfg.Out, "Path: ")
			fmt.Fprintf(r.cfg.Out, "%s\n", dir)
			labelColor.Fprint(r.cfg.Out, "Size: ")
			noteColor.Fprint(r.cfg.Out, size)
			fmt.Fprintf(r.cfg.Out, "\n")
			labelColor.Fprint(r.cfg.Out, "Hash: ")
			fmt.Fprintf(r.cfg.Out, "%s\n", sum)
		}
		if r.cfg.Log != nil {
			fmt.Fprintf(r.cfg.Log, "File: %s\n", base)
			fmt.Fprintf(r.cfg.Log, "Path: %s\n", dir)
			fmt.Fprintf(r.cfg.Log, "Size: %s\n", size)
			fmt.Fprintf(r.cfg.Log, "Hash: %s\n", sum)
		}
	case StatusSkippedExtension:
		if !r.cfg.Silent {
			errorColor.Fprint(r.cfg.Err, "Skipping: ")
			fmt.Fprintf(r.cfg.Err, "'%s' ", result.Path)
			noteColor.Fprint(r.cfg.Err, "(non-video)")
			fmt.Fprintf(r.cfg.Err, "\n")
		}
	case StatusNotFound:
		if !r.cfg.Silent {
			errorColor.Fprint(r.cfg.Err, "Path error: ")
			fmt.Fprintf(r.cfg.Err, "'%s' not found\n", result.Path)
		}
	case StatusUnreadable:
		if !r.cfg.Silent {
			errorColor.Fprint(r.cfg.Err, "Read error: ")
			fmt.Fprintf(r.cfg.Err, "'%s' cannot be read\n", result.Path)
		}
	}
}

func (r *consoleReporter) Summary(stats Stats) {
	if r.bar != nil {
		r.bar.Finish()
	}
	// in silent mode the terminal skips the footer separator, the log keeps it
	r.separator('=')
	ms := float64(stats.Elapsed.Microseconds()) / 1000.0
	noteColor.Fprint(r.cfg.Out, "Summary: ")
	fmt.Fprintf(r.cfg.Out, "%d of %d files hashed in ", stats.Succeeded, stats.Total)
	elapsedColor.Fprintf(r.cfg.Out, "%.3f", ms)
	fmt.Fprintf(r.cfg.Out, " ms (%s)\n", humanize.Bytes(stats.TotalBytes))
	if r.cfg.Log != nil {
		fmt.Fprintf(r.cfg.Log, "Summary: %d of %d files hashed in %.3f ms (%s)\n",
			stats.Succeeded, stats.Total, ms, humanize.Bytes(stats.TotalBytes))
	}
}

func (r *consoleReporter) separator(symbol byte) {
	line := strings.Repeat(string(symbol), r.width+displayWidthPad)
	if !r.cfg.Silent {
		separatorColor.Fprintf(r.cfg.Out, "%s\n", line)
	}
	if r.cfg.Log != nil {
		fmt.Fprintf(r.cfg.Log, "%s\n", line)
	}
}
