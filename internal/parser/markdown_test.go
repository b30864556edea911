package parser_test

import (
	"testing"

	"github.com/offlinedocs/appledocs/internal/parser"
)

func TestParseDescriptions(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		wantDesc     string
		wantHeadings int
	}{
		{
			name: "ATX headings",
			content: `# Main Title
## Section 1
### Subsection
## Section 2`,
			wantDesc:     "Main Title",
			wantHeadings: 4,
		},
		{
			name: "with frontmatter title and description",
			content: `---
title: UIView
description: An object that manages the content for a rectangular area.
---
# Content`,
			wantDesc:     "UIView - An object that manages the content for a rectangular area.",
			wantHeadings: 1,
		},
		{
			name: "with frontmatter title only",
			content: `---
title: Just Title
---
# Heading`,
			wantDesc:     "Just Title",
			wantHeadings: 1,
		},
		{
			name: "H1 with paragraph",
			content: `# Introduction
This is the first paragraph explaining the page.

More content here.`,
			wantDesc:     "Introduction - This is the first paragraph explaining the page.",
			wantHeadings: 1,
		},
		{
			name: "no headings only paragraph",
			content: `This is a page without any headings.
Just plain text.`,
			wantDesc:     "This is a page without any headings. Just plain text.",
			wantHeadings: 0,
		},
		{
			name:         "empty file",
			content:      "",
			wantDesc:     "",
			wantHeadings: 0,
		},
		{
			name:         "code blocks ignored",
			content:      "# Real Heading\n```\n# Fake Heading\n```",
			wantDesc:     "Real Heading",
			wantHeadings: 1,
		},
		{
			name: "multiple H1 use first",
			content: `# First Title
Content here.
# Second Title`,
			wantDesc:     "First Title - Content here.",
			wantHeadings: 2,
		},
		{
			name: "deep hierarchy",
			content: `# H1
## H2
### H3
#### H4
##### H5
###### H6`,
			wantDesc:     "H1",
			wantHeadings: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parser.Parse([]byte(tt.content))

			if result.Description != tt.wantDesc {
				t.Errorf("Description = %q, want %q", result.Description, tt.wantDesc)
			}

			if len(result.Headings) != tt.wantHeadings {
				t.Errorf("Headings count = %d, want %d", len(result.Headings), tt.wantHeadings)
			}
		})
	}
}

func TestParseHeadingLevels(t *testing.T) {
	content := `# Level 1
## Level 2
### Level 3`

	result := parser.Parse([]byte(content))

	expectedLevels := []int{1, 2, 3}
	expectedTexts := []string{"Level 1", "Level 2", "Level 3"}
	expectedLines := []int{1, 2, 3}

	if len(result.Headings) != len(expectedLevels) {
		t.Fatalf("Headings count = %d, want %d", len(result.Headings), len(expectedLevels))
	}

	for i, heading := range result.Headings {
		if heading.Level != expectedLevels[i] {
			t.Errorf("Heading[%d].Level = %d, want %d", i, heading.Level, expectedLevels[i])
		}
		if heading.Text != expectedTexts[i] {
			t.Errorf("Heading[%d].Text = %q, want %q", i, heading.Text, expectedTexts[i])
		}
		if heading.Line != expectedLines[i] {
			t.Errorf("Heading[%d].Line = %d, want %d", i, heading.Line, expectedLines[i])
		}
	}
}

func TestParseHeadingLineNumbers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		content   string
		wantLines []int
	}{
		{
			name:      "ATX headings with blank lines",
			content:   "# Title\n\nSome text.\n\n## Section\n\n### Sub",
			wantLines: []int{1, 5, 7},
		},
		{
			name:      "frontmatter offsets line numbers",
			content:   "---\ntitle: Test\n---\n\n## Query Basics\n\n### Details",
			wantLines: []int{5, 7},
		},
		{
			name:      "setext headings",
			content:   "Title\n=====\n\nSection\n------\n\n### ATX",
			wantLines: []int{1, 4, 7},
		},
		{
			name:      "headings inside code blocks ignored",
			content:   "# Real\n\n```\n# Fake\n```\n\n## Also Real",
			wantLines: []int{1, 7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := parser.Parse([]byte(tt.content))

			if len(result.Headings) != len(tt.wantLines) {
				t.Fatalf("Headings count = %d, want %d", len(result.Headings), len(tt.wantLines))
			}

			for i, wantLine := range tt.wantLines {
				if result.Headings[i].Line != wantLine {
					t.Errorf("Heading[%d].Line = %d, want %d", i, result.Headings[i].Line, wantLine)
				}
			}
		})
	}
}

func TestParseCountsLines(t *testing.T) {
	t.Parallel()

	result := parser.Parse([]byte("# Title\nline two\nline three"))
	if result.Lines != 3 {
		t.Fatalf("Lines = %d, want 3", result.Lines)
	}
}
