package ui

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
)

type FrameworkStatus struct {
	Name      string    `json:"name"`
	Title     string    `json:"title"`
	Pages     int       `json:"pages"`
	Skipped   int       `json:"skipped,omitempty"`
	SizeBytes int64     `json:"size_bytes"`
	IndexedAt time.Time `json:"indexed_at,omitempty"`
	URL       string    `json:"url,omitempty"`
}

type ListOptions struct {
	JSON    bool
	Verbose bool
}

func RenderFrameworkList(frameworks []FrameworkStatus, opts ListOptions) error {
	if opts.JSON {
		return renderFrameworkListJSON(frameworks)
	}

	renderFrameworkListTable(frameworks, opts)
	return nil
}

func renderFrameworkListJSON(frameworks []FrameworkStatus) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(frameworks); err != nil {
		return fmt.Errorf("encode framework list json: %w", err)
	}

	return nil
}

func renderFrameworkListTable(frameworks []FrameworkStatus, opts ListOptions) {
	writer := table.NewWriter()
	writer.SetOutputMirror(os.Stdout)
	writer.SetStyle(table.StyleRounded)

	if opts.Verbose {
		writer.AppendHeader(table.Row{"FRAMEWORK", "TITLE", "PAGES", "SIZE", "INDEXED", "URL"})
	} else {
		writer.AppendHeader(table.Row{"FRAMEWORK", "TITLE", "PAGES", "SIZE"})
	}

	for _, fw := range frameworks {
		pages := renderPages(fw)

		if opts.Verbose {
			writer.AppendRow(table.Row{
				fw.Name,
				fw.Title,
				pages,
				FormatBytes(fw.SizeBytes),
				renderIndexedAt(fw.IndexedAt),
				fw.URL,
			})
			continue
		}

		writer.AppendRow(table.Row{
			fw.Name,
			fw.Title,
			pages,
			FormatBytes(fw.SizeBytes),
		})
	}

	writer.Render()
}

func renderPages(fw FrameworkStatus) string {
	if fw.Skipped > 0 {
		return fmt.Sprintf("%d (%d skipped)", fw.Pages, fw.Skipped)
	}

	return fmt.Sprintf("%d", fw.Pages)
}

func renderIndexedAt(t time.Time) string {
	if t.IsZero() {
		return "never"
	}

	return t.Local().Format("2006-01-02 15:04")
}
