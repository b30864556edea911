// Package export generates PDF and HTML renditions of the archive.
package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/samber/oops"

	"github.com/offlinedocs/appledocs/internal/archive"
	"github.com/offlinedocs/appledocs/internal/config"
	"github.com/offlinedocs/appledocs/internal/parser"
)

const pdfTimeout = 10 * time.Minute

// pandocBin is a var so tests can substitute a fake binary.
var pandocBin = "pandoc"

// PDFOptions controls a single-framework PDF export.
type PDFOptions struct {
	// MaxPages limits how many pages are combined. Zero means all pages,
	// which is refused when the framework's recommended limit is exceeded.
	MaxPages int
}

// PDFResult reports a finished PDF export.
type PDFResult struct {
	Framework  string
	Pages      int
	TotalPages int
	OutputPath string
	SizeBytes  int64
}

// CheckPandoc verifies pandoc is installed.
func CheckPandoc() error {
	if _, err := exec.LookPath(pandocBin); err != nil {
		return oops.
			Code("PANDOC_NOT_FOUND").
			Hint("Install pandoc: 'brew install pandoc basictex' (macOS), 'apt-get install pandoc texlive-xetex' (Linux)").
			Wrapf(err, "pandoc is not installed")
	}

	return nil
}

// PDF combines a framework's markdown pages into one document and renders it
// with pandoc/xelatex. The combined markdown is removed on success.
func PDF(ctx context.Context, cfg *config.Config, fwName string, opts PDFOptions) (*PDFResult, error) {
	fwCfg := cfg.Framework(fwName)
	fwDir := cfg.FrameworkDir(fwName)

	pages, err := archive.Pages(fwDir, fwCfg.Patterns, fwCfg.Exclude)
	if err != nil {
		return nil, err
	}

	if len(pages) == 0 {
		return nil, oops.
			Code("EXPORT_FAILED").
			With("framework", fwName).
			Hint("Run 'appledocs list' to see frameworks with pages").
			Errorf("no pages found for framework %q", fwName)
	}

	totalPages := len(pages)
	if opts.MaxPages > 0 && opts.MaxPages < totalPages {
		pages = pages[:opts.MaxPages]
	} else if opts.MaxPages == 0 && totalPages > fwCfg.MaxPages {
		return nil, oops.
			Code("EXPORT_FAILED").
			With("framework", fwName).
			With("pages", totalPages).
			With("recommended_max", fwCfg.MaxPages).
			Hint(fmt.Sprintf("Pass --max-pages %d for the recommended size, or --max-pages %d to include everything", fwCfg.MaxPages, totalPages)).
			Errorf("framework %q has %d pages, above the recommended %d for a manageable PDF", fwName, totalPages, fwCfg.MaxPages)
	}

	combined, err := combineMarkdown(fwCfg, fwDir, pages)
	if err != nil {
		return nil, err
	}

	pdfDir := cfg.PDFRoot()
	if err := os.MkdirAll(pdfDir, 0o755); err != nil {
		return nil, oops.
			Code("WRITE_FAILED").
			With("path", pdfDir).
			Wrapf(err, "creating pdf directory")
	}

	combinedPath := filepath.Join(pdfDir, fwName+"_combined.md")
	if err := os.WriteFile(combinedPath, combined, 0o644); err != nil {
		return nil, oops.
			Code("WRITE_FAILED").
			With("path", combinedPath).
			Wrapf(err, "writing combined markdown")
	}

	outputPath := filepath.Join(pdfDir, fwName+"_documentation.pdf")
	if err := runPandoc(ctx, combinedPath, outputPath); err != nil {
		return nil, err
	}

	stat, err := os.Stat(outputPath)
	if err != nil {
		return nil, oops.
			Code("EXPORT_FAILED").
			With("path", outputPath).
			Wrapf(err, "checking generated pdf")
	}

	// The combined markdown is an intermediate; keep it only on failure.
	_ = os.Remove(combinedPath)

	return &PDFResult{
		Framework:  fwName,
		Pages:      len(pages),
		TotalPages: totalPages,
		OutputPath: outputPath,
		SizeBytes:  stat.Size(),
	}, nil
}

func combineMarkdown(fwCfg config.Framework, fwDir string, pages []string) ([]byte, error) {
	var buf bytes.Buffer
	writeTitlePage(&buf, fwCfg)

	for _, relPath := range pages {
		content, err := os.ReadFile(filepath.Join(fwDir, filepath.FromSlash(relPath)))
		if err != nil {
			return nil, oops.
				Code("EXPORT_FAILED").
				With("page", relPath).
				Wrapf(err, "reading page")
		}

		body, _, _ := parser.StripFrontmatter(parser.StripBOM(content))

		fmt.Fprintf(&buf, "\n\\newpage\n\n<!-- File: %s -->\n\n", relPath)
		buf.Write(bytes.TrimSpace(body))
		buf.WriteString("\n\n")
	}

	return buf.Bytes(), nil
}

func writeTitlePage(buf *bytes.Buffer, fwCfg config.Framework) {
	currentDate := time.Now().Format("2006-01-02")

	fmt.Fprintf(buf, `---
title: %q
subtitle: %q
author: "Apple Inc."
date: %q
toc: true
toc-depth: 2
---

\begin{center}
\Huge %s

\vspace{0.5cm}

\Large %s

\vspace{1cm}

\normalsize Apple Developer Documentation

Offline Archive

%s
\end{center}

---

\newpage

`, fwCfg.Title, fwCfg.Subtitle, currentDate, fwCfg.Title, fwCfg.Subtitle, currentDate)
}

func runPandoc(ctx context.Context, inputPath string, outputPath string) error {
	ctx, cancel := context.WithTimeout(ctx, pdfTimeout)
	defer cancel()

	args := []string{
		inputPath,
		"-o", outputPath,
		"--pdf-engine=xelatex",
		"--toc",
		"--toc-depth=2",
		"--highlight-style=tango",
		"--number-sections",
		"-V", "geometry:margin=1in",
		"-V", "fontsize=10pt",
		"-V", "colorlinks=true",
		"-V", "linkcolor=blue",
		"-V", "urlcolor=blue",
	}

	cmd := exec.CommandContext(ctx, pandocBin, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return oops.
				Code("EXPORT_FAILED").
				With("output", outputPath).
				Hint("Try --max-pages to create a smaller PDF").
				Errorf("pdf generation timed out after %s", pdfTimeout)
		}

		return oops.
			Code("EXPORT_FAILED").
			With("output", outputPath).
			With("stderr", stderr.String()).
			Wrapf(err, "running pandoc")
	}

	return nil
}
