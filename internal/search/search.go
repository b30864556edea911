// Package search provides fuzzy lookup across the archive manifest.
package search

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/samber/oops"

	"github.com/offlinedocs/appledocs/internal/manifest"
)

// Result is a single match from a metadata search.
type Result struct {
	Framework   string `json:"framework"`
	Path        string `json:"path"`
	Description string `json:"description,omitempty"`
	MatchField  string `json:"match_field"`
	MatchValue  string `json:"match_value"`
	Score       int    `json:"score"`
}

// Options configures search behavior.
type Options struct {
	Query     string
	Framework string
	Limit     int
}

type indexEntry struct {
	Framework   string
	Path        string
	Description string
	MatchField  string
	MatchValue  string
}

type searchIndex struct {
	entries []indexEntry
}

func (s searchIndex) String(i int) string {
	return s.entries[i].MatchValue
}

func (s searchIndex) Len() int {
	return len(s.entries)
}

// Metadata performs fuzzy search across page paths, descriptions, and
// headings, deduplicating per page by best score.
func Metadata(m *manifest.Manifest, opts Options) ([]Result, error) {
	query := strings.TrimSpace(opts.Query)
	if query == "" {
		return nil, oops.
			Code("INVALID_ARGS").
			Hint("Provide a non-empty search query").
			Errorf("search query cannot be empty")
	}

	if opts.Framework != "" {
		if _, exists := m.Frameworks[opts.Framework]; !exists {
			return nil, oops.
				Code("FRAMEWORK_NOT_FOUND").
				With("framework", opts.Framework).
				Hint("Run 'appledocs list' to see indexed frameworks").
				Errorf("framework %q not found", opts.Framework)
		}
	}

	names := make([]string, 0, len(m.Frameworks))
	for name := range m.Frameworks {
		names = append(names, name)
	}
	sort.Strings(names)

	var entries []indexEntry
	for _, name := range names {
		if opts.Framework != "" && name != opts.Framework {
			continue
		}

		fw := m.Frameworks[name]
		for _, page := range fw.Pages {
			entries = append(entries, indexEntry{
				Framework:   name,
				Path:        page.Path,
				Description: page.Description,
				MatchField:  "path",
				MatchValue:  page.Path,
			})

			if page.Description != "" {
				entries = append(entries, indexEntry{
					Framework:   name,
					Path:        page.Path,
					Description: page.Description,
					MatchField:  "description",
					MatchValue:  page.Description,
				})
			}

			for _, heading := range page.Headings {
				entries = append(entries, indexEntry{
					Framework:   name,
					Path:        page.Path,
					Description: page.Description,
					MatchField:  "heading",
					MatchValue:  heading.Text,
				})
			}
		}
	}

	index := searchIndex{entries: entries}
	matches := fuzzy.FindFrom(query, index)

	deduped := make(map[string]Result)
	for _, match := range matches {
		if match.Score < 0 {
			continue
		}
		entry := entries[match.Index]
		key := entry.Framework + "\x00" + entry.Path

		if existing, exists := deduped[key]; !exists || match.Score > existing.Score {
			deduped[key] = Result{
				Framework:   entry.Framework,
				Path:        entry.Path,
				Description: entry.Description,
				MatchField:  entry.MatchField,
				MatchValue:  entry.MatchValue,
				Score:       match.Score,
			}
		}
	}

	results := make([]Result, 0, len(deduped))
	for _, result := range deduped {
		results = append(results, result)
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if results[i].Framework != results[j].Framework {
			return results[i].Framework < results[j].Framework
		}
		return results[i].Path < results[j].Path
	})

	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}

	return results, nil
}
