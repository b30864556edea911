package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/offlinedocs/appledocs/internal/integrate"
)

// IntegratePrinter renders integration step events with colored output.
type IntegratePrinter struct {
	w io.Writer
	s styles
}

// NewIntegratePrinter creates an IntegratePrinter that writes to stderr.
func NewIntegratePrinter() *IntegratePrinter {
	return &IntegratePrinter{w: os.Stderr, s: newStyles()}
}

// NewIntegratePrinterWithWriter creates an IntegratePrinter for the given writer.
func NewIntegratePrinterWithWriter(w io.Writer) *IntegratePrinter {
	return &IntegratePrinter{w: w, s: newStyles()}
}

// HandleEvent is the callback wired into integrate.Options.OnEvent.
func (p *IntegratePrinter) HandleEvent(e integrate.Event) {
	label := stepLabel(e.Step)

	switch e.Status {
	case integrate.StatusCreated, integrate.StatusUpdated:
		fmt.Fprintf(p.w, "%s %s %s\n",
			p.s.green.Sprint("✓"),
			label,
			p.s.bold.Sprint(e.Path),
		)

	case integrate.StatusSkipped:
		fmt.Fprintf(p.w, "%s %s %s %s\n",
			p.s.dim.Sprint("—"),
			label,
			p.s.bold.Sprint(e.Path),
			p.s.dim.Sprintf("(%s)", e.Detail),
		)

	case integrate.StatusWarning:
		fmt.Fprintf(p.w, "%s %s %s: %s\n",
			p.s.yellow.Sprint("!"),
			label,
			p.s.bold.Sprint(e.Path),
			e.Detail,
		)
	}
}

func stepLabel(step integrate.Step) string {
	switch step {
	case integrate.StepLink:
		return "link"
	case integrate.StepIgnore:
		return "gitignore"
	default:
		return string(step)
	}
}

// PrintSummary renders the closing lines after integration, including a few
// example commands for the freshly linked archive.
func (p *IntegratePrinter) PrintSummary(r *integrate.Result) {
	if r == nil {
		return
	}

	fmt.Fprintln(p.w)
	fmt.Fprintf(p.w, "archive linked at %s\n", p.s.bold.Sprint(r.LinkPath))
	fmt.Fprintln(p.w, p.s.dim.Sprint("try:"))
	fmt.Fprintln(p.w, p.s.dim.Sprintf("  ls %s/markdown", integrate.LinkName))
	fmt.Fprintln(p.w, p.s.dim.Sprintf("  cat %s/markdown/swift/README.md", integrate.LinkName))
}
