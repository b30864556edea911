package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/offlinedocs/appledocs/internal/manifest"
)

func newIndexCommand() *cli.Command {
	return &cli.Command{
		Name:   "index",
		Usage:  "Scan the archive and rebuild the manifest",
		Flags:  archiveFlags(),
		Action: indexAction,
	}
}

func indexAction(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadArchiveConfig(cmd)
	if err != nil {
		return err
	}

	m, err := manifest.Generate(cfg)
	if err != nil {
		return err
	}

	totalPages := 0
	totalSkipped := 0
	for _, fw := range m.Frameworks {
		totalPages += fw.PageCount
		totalSkipped += fw.Skipped
	}

	fmt.Fprintf(os.Stderr, "indexed %d framework(s), %d page(s)", len(m.Frameworks), totalPages)
	if totalSkipped > 0 {
		fmt.Fprintf(os.Stderr, ", %d skipped", totalSkipped)
	}
	fmt.Fprintln(os.Stderr)

	return nil
}
