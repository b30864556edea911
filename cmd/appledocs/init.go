package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/samber/oops"
	"github.com/urfave/cli/v3"

	"github.com/offlinedocs/appledocs/internal/config"
)

func newInitCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create a starter appledocs.toml in the current directory",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "archive", Aliases: []string{"a"}, Usage: "Directory to create the config in"},
			&cli.BoolFlag{Name: "force", Usage: "Overwrite an existing config file"},
		},
		Action: initAction,
	}
}

func initAction(_ context.Context, cmd *cli.Command) error {
	dir := cmd.String("archive")
	if dir == "" {
		dir = "."
	}

	configPath := filepath.Join(dir, "appledocs.toml")

	if _, err := os.Stat(configPath); err == nil && !cmd.Bool("force") {
		return oops.
			Code("INVALID_ARGS").
			With("path", configPath).
			Hint("Pass --force to overwrite it").
			Errorf("config file %q already exists", configPath)
	}

	if err := os.WriteFile(configPath, starterConfig(), 0o644); err != nil {
		return oops.
			Code("WRITE_FAILED").
			With("path", configPath).
			Wrapf(err, "writing starter config")
	}

	fmt.Fprintf(os.Stderr, "created %s\n", configPath)
	fmt.Fprintln(os.Stderr, "next: appledocs index")

	return nil
}

func starterConfig() []byte {
	known := config.KnownFrameworks()
	names := make([]string, 0, len(known))
	for name := range known {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	buf.WriteString(`# Apple docs archive configuration.
# The directory holding this file is the archive root.

markdown_dir = "markdown"
pdf_dir = "pdf"
html_dir = "html"

`)

	for _, name := range names {
		fw := known[name]
		fmt.Fprintf(&buf, "[frameworks.%s]\n", name)
		fmt.Fprintf(&buf, "title = %q\n", fw.Title)
		fmt.Fprintf(&buf, "subtitle = %q\n", fw.Subtitle)
		fmt.Fprintf(&buf, "max_pages = %d\n", fw.MaxPages)
		fmt.Fprintf(&buf, "# url = \"https://example.com/%s.md\"\n", name)
		buf.WriteString("\n")
	}

	return buf.Bytes()
}
