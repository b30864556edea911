package main

import (
	"context"

	"github.com/samber/oops"
	"github.com/urfave/cli/v3"

	"github.com/offlinedocs/appledocs/internal/integrate"
	"github.com/offlinedocs/appledocs/internal/ui"
)

func newIntegrateCommand() *cli.Command {
	return &cli.Command{
		Name:      "integrate",
		Usage:     "Link the archive into a project and gitignore it",
		ArgsUsage: "<target-project-path>",
		Flags:     archiveFlags(),
		Action:    integrateAction,
	}
}

func integrateAction(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return oops.
			Code("INVALID_ARGS").
			Hint("Usage: appledocs integrate <target-project-path>").
			Errorf("expected 1 argument, got %d", cmd.Args().Len())
	}

	cfg, err := loadArchiveConfig(cmd)
	if err != nil {
		return err
	}

	printer := ui.NewIntegratePrinter()

	result, err := integrate.Run(cfg.ArchiveRoot, cmd.Args().First(), integrate.Options{
		OnEvent: printer.HandleEvent,
	})
	if err != nil {
		return err
	}

	printer.PrintSummary(result)
	return nil
}
