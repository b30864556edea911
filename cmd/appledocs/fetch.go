package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/offlinedocs/appledocs/internal/fetch"
	"github.com/offlinedocs/appledocs/internal/ui"
)

func newFetchCommand() *cli.Command {
	return &cli.Command{
		Name:      "fetch",
		Usage:     "Download framework files from configured URLs",
		ArgsUsage: "[framework...]",
		Flags: append(archiveFlags(),
			&cli.BoolFlag{Name: "force", Aliases: []string{"f"}, Usage: "Force download and skip freshness checks"},
			&cli.BoolFlag{Name: "dry-run", Usage: "Show planned downloads without writing files"},
			&cli.IntFlag{Name: "parallel", Aliases: []string{"p"}, Usage: "Maximum parallel downloads", Value: defaultParallel},
		),
		Action: fetchAction,
	}
}

func fetchAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadArchiveConfig(cmd)
	if err != nil {
		return err
	}

	printer := ui.NewFetchPrinter(cmd.Bool("dry-run"))

	run, err := fetch.Run(ctx, cfg, fetch.Options{
		Frameworks:  cmd.Args().Slice(),
		Force:       cmd.Bool("force"),
		DryRun:      cmd.Bool("dry-run"),
		MaxParallel: cmd.Int("parallel"),
		OnEvent:     printer.HandleEvent,
	})

	printer.PrintSummary(run)
	return err
}
