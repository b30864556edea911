package main

import (
	"context"
	"fmt"
	"os"

	"github.com/samber/oops"
	"github.com/urfave/cli/v3"

	"github.com/offlinedocs/appledocs/internal/export"
	"github.com/offlinedocs/appledocs/internal/ui"
)

func newExportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Generate PDF or HTML renditions of the archive",
		Commands: []*cli.Command{
			newExportPDFCommand(),
			newExportHTMLCommand(),
		},
	}
}

func newExportPDFCommand() *cli.Command {
	return &cli.Command{
		Name:      "pdf",
		Usage:     "Combine one framework into a single PDF via pandoc",
		ArgsUsage: "<framework>",
		Flags: append(archiveFlags(),
			&cli.IntFlag{Name: "max-pages", Usage: "Limit the number of pages included (0 = all)"},
		),
		Action: exportPDFAction,
	}
}

func newExportHTMLCommand() *cli.Command {
	return &cli.Command{
		Name:      "html",
		Usage:     "Render frameworks into a browsable static site",
		ArgsUsage: "[framework...]",
		Flags: append(archiveFlags(),
			&cli.IntFlag{Name: "parallel", Aliases: []string{"p"}, Usage: "Maximum parallel page conversions", Value: defaultParallel},
			&cli.BoolFlag{Name: "no-progress", Usage: "Disable the progress display"},
		),
		Action: exportHTMLAction,
	}
}

func exportPDFAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return oops.
			Code("INVALID_ARGS").
			Hint("Usage: appledocs export pdf <framework>").
			Errorf("expected 1 argument, got %d", cmd.Args().Len())
	}

	if err := export.CheckPandoc(); err != nil {
		return err
	}

	cfg, err := loadArchiveConfig(cmd)
	if err != nil {
		return err
	}

	result, err := export.PDF(ctx, cfg, cmd.Args().First(), export.PDFOptions{
		MaxPages: cmd.Int("max-pages"),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "wrote %s (%d of %d pages, %s)\n",
		result.OutputPath,
		result.Pages,
		result.TotalPages,
		ui.FormatBytes(result.SizeBytes),
	)

	return nil
}

func exportHTMLAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadArchiveConfig(cmd)
	if err != nil {
		return err
	}

	opts := export.HTMLOptions{MaxParallel: cmd.Int("parallel")}

	if !cmd.Bool("no-progress") {
		pw := ui.NewProgressWriter()
		opts.Progress = pw
		go pw.Render()
		defer pw.Stop()
	}

	result, err := export.HTML(ctx, cfg, cmd.Args().Slice(), opts)
	if err != nil {
		return err
	}

	errCount := 0
	for _, fw := range result.Frameworks {
		errCount += fw.Errors
	}

	fmt.Fprintf(os.Stderr, "wrote %s (%d framework(s), %d page(s)",
		result.IndexPath,
		len(result.Frameworks),
		result.TotalPages,
	)
	if errCount > 0 {
		fmt.Fprintf(os.Stderr, ", %d failed", errCount)
	}
	fmt.Fprintln(os.Stderr, ")")

	return nil
}
