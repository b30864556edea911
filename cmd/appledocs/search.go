package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/oops"
	"github.com/urfave/cli/v3"

	"github.com/offlinedocs/appledocs/internal/manifest"
	"github.com/offlinedocs/appledocs/internal/search"
)

const (
	formatJSON = "json"
	formatCSV  = "csv"

	defaultDescLength = 80
)

func newSearchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Fuzzy search indexed page paths, descriptions, and headings",
		ArgsUsage: "<query>",
		Flags: append(archiveFlags(),
			&cli.StringFlag{Name: "framework", Usage: "Search only within one framework"},
			&cli.BoolFlag{Name: "json", Usage: "Output as JSON"},
			&cli.StringFlag{Name: "format", Usage: "Output format: table, json, csv"},
			&cli.IntFlag{Name: "limit", Usage: "Max results (0 = unlimited)", Value: 20},
			&cli.IntFlag{Name: "desc-length", Usage: "Max description length in table output", Value: defaultDescLength},
		),
		Action: searchAction,
	}
}

func searchAction(_ context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return oops.
			Code("INVALID_ARGS").
			Hint("Usage: appledocs search <query>").
			Errorf("expected 1 argument, got %d", cmd.Args().Len())
	}

	cfg, err := loadArchiveConfig(cmd)
	if err != nil {
		return err
	}

	m, err := manifest.Load(cfg.ArchiveRoot)
	if err != nil {
		return err
	}

	results, err := search.Metadata(m, search.Options{
		Query:     cmd.Args().First(),
		Framework: cmd.String("framework"),
		Limit:     cmd.Int("limit"),
	})
	if err != nil {
		return err
	}

	format := cmd.String("format")
	if cmd.Bool("json") {
		format = formatJSON
	}

	switch format {
	case formatJSON:
		return outputResultsJSON(results)
	case formatCSV:
		return outputResultsCSV(results)
	default:
		return outputResultsTable(results, cmd.Int("desc-length"))
	}
}

func outputResultsJSON(results []search.Result) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(results); err != nil {
		return oops.Code("JSON_ERROR").Wrapf(err, "encoding results")
	}
	return nil
}

func outputResultsCSV(results []search.Result) error {
	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"framework", "path", "match_field", "match_value", "score", "description"}
	if err := w.Write(header); err != nil {
		return oops.Code("CSV_ERROR").Wrapf(err, "writing CSV header")
	}

	for _, r := range results {
		if err := w.Write([]string{
			r.Framework,
			r.Path,
			r.MatchField,
			r.MatchValue,
			strconv.Itoa(r.Score),
			r.Description,
		}); err != nil {
			return oops.Code("CSV_ERROR").Wrapf(err, "writing CSV row")
		}
	}

	return nil
}

func outputResultsTable(results []search.Result, descLength int) error {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)

	t.AppendHeader(table.Row{"FRAMEWORK", "PATH", "MATCH FIELD", "SCORE", "DESCRIPTION"})

	for _, r := range results {
		t.AppendRow(table.Row{
			r.Framework,
			r.Path,
			r.MatchField,
			r.Score,
			truncateDescription(r.Description, descLength),
		})
	}

	t.Render()
	return nil
}

func truncateDescription(desc string, maxLen int) string {
	if maxLen <= 0 || len(desc) <= maxLen {
		return desc
	}
	const ellipsis = "..."
	if maxLen <= len(ellipsis) {
		return ellipsis
	}
	return desc[:maxLen-len(ellipsis)] + ellipsis
}
