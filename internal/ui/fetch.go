package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"

	"github.com/offlinedocs/appledocs/internal/fetch"
)

type styles struct {
	green  *color.Color
	red    *color.Color
	yellow *color.Color
	dim    *color.Color
	bold   *color.Color
}

func newStyles() styles {
	return styles{
		green:  color.New(color.FgGreen),
		red:    color.New(color.FgRed),
		yellow: color.New(color.FgYellow),
		dim:    color.New(color.Faint),
		bold:   color.New(color.Bold),
	}
}

// FetchPrinter renders fetch progress events to stderr with colored output.
type FetchPrinter struct {
	w      io.Writer
	dryRun bool
	mu     sync.Mutex
	s      styles
}

// NewFetchPrinter creates a FetchPrinter that writes to stderr.
func NewFetchPrinter(dryRun bool) *FetchPrinter {
	return &FetchPrinter{
		w:      os.Stderr,
		dryRun: dryRun,
		s:      newStyles(),
	}
}

// NewFetchPrinterWithWriter creates a FetchPrinter that writes to the given writer.
func NewFetchPrinterWithWriter(w io.Writer, dryRun bool) *FetchPrinter {
	return &FetchPrinter{
		w:      w,
		dryRun: dryRun,
		s:      newStyles(),
	}
}

// HandleEvent is the callback wired into fetch.Options.OnEvent.
func (p *FetchPrinter) HandleEvent(e fetch.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch e.Kind {
	case fetch.EventFrameworkStart:
		fmt.Fprintf(p.w, "%s fetching %s...\n",
			p.s.dim.Sprint("⟳"),
			p.s.bold.Sprint(e.Framework),
		)

	case fetch.EventFrameworkDone:
		p.handleDone(e)
	}
}

func (p *FetchPrinter) handleDone(e fetch.Event) {
	if e.Err != nil {
		fmt.Fprintf(p.w, "%s %s: %s\n",
			p.s.red.Sprint("✗"),
			p.s.bold.Sprint(e.Framework),
			e.Err,
		)
		return
	}

	if e.Result == nil {
		return
	}

	name := p.s.bold.Sprint(e.Framework)

	switch {
	case e.Result.NoURL:
		fmt.Fprintf(p.w, "%s %s %s\n",
			p.s.dim.Sprint("—"),
			name,
			p.s.dim.Sprint("(no url configured)"),
		)

	case e.Result.Skipped:
		fmt.Fprintf(p.w, "%s %s %s\n",
			p.s.dim.Sprint("—"),
			name,
			p.s.dim.Sprint("(up to date)"),
		)

	case e.Result.DryRun:
		fmt.Fprintf(p.w, "%s %s %s\n",
			p.s.yellow.Sprint("→"),
			name,
			p.s.dim.Sprintf("(would download %s)", e.Result.Filename),
		)

	default:
		fmt.Fprintf(p.w, "%s %s %s\n",
			p.s.green.Sprint("✓"),
			name,
			p.s.dim.Sprintf("(%s, %s)", e.Result.Filename, FormatBytes(e.Result.Bytes)),
		)
	}
}

// PrintSummary renders a final summary line after fetch completes.
func (p *FetchPrinter) PrintSummary(r *fetch.RunResult) {
	if r == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintln(p.w)

	label := "fetch complete"
	if p.dryRun {
		label = p.s.yellow.Sprint("dry-run complete")
	}

	parts := fmt.Sprintf("%s: %d framework(s), %d downloaded, %d up-to-date, %d without url",
		label,
		r.Frameworks,
		r.Downloaded,
		r.Skipped,
		r.NoURL,
	)

	if r.Errors > 0 {
		parts += fmt.Sprintf(", %s",
			p.s.red.Sprintf("%d failed", r.Errors),
		)
	}

	fmt.Fprintln(p.w, parts)

	if p.dryRun {
		fmt.Fprintln(p.w, p.s.dim.Sprint("no files were written"))
	}
}

// FormatBytes renders a byte count in human units.
func FormatBytes(n int64) string {
	const unit = 1024

	if n < unit {
		return fmt.Sprintf("%d B", n)
	}

	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
