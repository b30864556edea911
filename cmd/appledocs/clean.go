package main

import (
	"context"
	"fmt"
	"os"

	"github.com/samber/oops"
	"github.com/urfave/cli/v3"
)

func newCleanCommand() *cli.Command {
	return &cli.Command{
		Name:  "clean",
		Usage: "Remove generated PDF and HTML output",
		Flags: append(archiveFlags(),
			&cli.BoolFlag{Name: "pdf", Usage: "Remove only the PDF output directory"},
			&cli.BoolFlag{Name: "html", Usage: "Remove only the HTML output directory"},
		),
		Action: cleanAction,
	}
}

func cleanAction(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadArchiveConfig(cmd)
	if err != nil {
		return err
	}

	cleanPDF := cmd.Bool("pdf")
	cleanHTML := cmd.Bool("html")
	if !cleanPDF && !cleanHTML {
		cleanPDF = true
		cleanHTML = true
	}

	var targets []string
	if cleanPDF {
		targets = append(targets, cfg.PDFRoot())
	}
	if cleanHTML {
		targets = append(targets, cfg.HTMLRoot())
	}

	for _, dir := range targets {
		if _, statErr := os.Stat(dir); os.IsNotExist(statErr) {
			continue
		}

		if removeErr := os.RemoveAll(dir); removeErr != nil {
			return oops.
				Code("WRITE_FAILED").
				With("path", dir).
				Wrapf(removeErr, "removing output directory")
		}

		fmt.Fprintf(os.Stderr, "removed %s\n", dir)
	}

	return nil
}
