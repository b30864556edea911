package ui_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/offlinedocs/appledocs/internal/integrate"
	"github.com/offlinedocs/appledocs/internal/ui"
)

func TestIntegrateEventCreated(t *testing.T) {
	var buf bytes.Buffer
	p := ui.NewIntegratePrinterWithWriter(&buf)

	p.HandleEvent(integrate.Event{
		Step:   integrate.StepLink,
		Status: integrate.StatusCreated,
		Path:   "/proj/apple-docs",
	})

	out := buf.String()
	if !strings.Contains(out, "/proj/apple-docs") {
		t.Errorf("created event output missing path, got: %q", out)
	}
	if !strings.Contains(out, "link") {
		t.Errorf("created event output missing step label, got: %q", out)
	}
}

func TestIntegrateEventSkipped(t *testing.T) {
	var buf bytes.Buffer
	p := ui.NewIntegratePrinterWithWriter(&buf)

	p.HandleEvent(integrate.Event{
		Step:   integrate.StepIgnore,
		Status: integrate.StatusSkipped,
		Path:   "/proj/.gitignore",
		Detail: "entry already present",
	})

	out := buf.String()
	if !strings.Contains(out, "entry already present") {
		t.Errorf("skipped event output missing detail, got: %q", out)
	}
	if !strings.Contains(out, "gitignore") {
		t.Errorf("skipped event output missing step label, got: %q", out)
	}
}

func TestIntegrateEventWarning(t *testing.T) {
	var buf bytes.Buffer
	p := ui.NewIntegratePrinterWithWriter(&buf)

	p.HandleEvent(integrate.Event{
		Step:   integrate.StepLink,
		Status: integrate.StatusWarning,
		Path:   "/proj/apple-docs",
		Detail: "a regular file already exists here; not overwriting",
	})

	out := buf.String()
	if !strings.Contains(out, "not overwriting") {
		t.Errorf("warning event output missing detail, got: %q", out)
	}
}

func TestIntegratePrintSummary(t *testing.T) {
	var buf bytes.Buffer
	p := ui.NewIntegratePrinterWithWriter(&buf)

	p.PrintSummary(&integrate.Result{
		LinkPath:   "/proj/apple-docs",
		IgnorePath: "/proj/.gitignore",
	})

	out := buf.String()
	if !strings.Contains(out, "archive linked at") {
		t.Errorf("summary missing link line, got: %q", out)
	}
	if !strings.Contains(out, "ls apple-docs/markdown") {
		t.Errorf("summary missing example command, got: %q", out)
	}
}

func TestIntegratePrintSummaryNil(t *testing.T) {
	var buf bytes.Buffer
	p := ui.NewIntegratePrinterWithWriter(&buf)

	p.PrintSummary(nil)

	if buf.Len() != 0 {
		t.Errorf("expected no output for nil result, got: %q", buf.String())
	}
}
