package main

import (
	"context"
	"os"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/offlinedocs/appledocs/internal/config"
	"github.com/offlinedocs/appledocs/internal/manifest"
	"github.com/offlinedocs/appledocs/internal/ui"
)

func newListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List frameworks and their indexed status",
		Flags: append(archiveFlags(),
			&cli.BoolFlag{Name: "json", Usage: "Emit JSON output"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "Show expanded framework fields"},
		),
		Action: listAction,
	}
}

func listAction(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadArchiveConfig(cmd)
	if err != nil {
		return err
	}

	// A missing manifest is fine here; frameworks just show as unindexed.
	var m *manifest.Manifest
	if _, statErr := os.Stat(manifest.Path(cfg.ArchiveRoot)); statErr == nil {
		m, err = manifest.Load(cfg.ArchiveRoot)
		if err != nil {
			return err
		}
	}

	statuses := buildFrameworkStatuses(cfg, m)

	return ui.RenderFrameworkList(statuses, ui.ListOptions{
		JSON:    cmd.Bool("json"),
		Verbose: cmd.Bool("verbose"),
	})
}

func buildFrameworkStatuses(cfg *config.Config, m *manifest.Manifest) []ui.FrameworkStatus {
	names := map[string]struct{}{}
	for name := range cfg.Frameworks {
		names[name] = struct{}{}
	}
	if m != nil {
		for name := range m.Frameworks {
			names[name] = struct{}{}
		}
	}

	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	statuses := make([]ui.FrameworkStatus, 0, len(sorted))
	for _, name := range sorted {
		meta := cfg.Framework(name)
		status := ui.FrameworkStatus{
			Name:  name,
			Title: meta.Title,
			URL:   meta.URL,
		}

		if m != nil {
			if fw, ok := m.Frameworks[name]; ok {
				status.Pages = fw.PageCount
				status.Skipped = fw.Skipped
				status.SizeBytes = fw.TotalSize
				status.IndexedAt = fw.IndexedAt
			}
		}

		statuses = append(statuses, status)
	}

	return statuses
}
