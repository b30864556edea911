// Package archive models the on-disk documentation archive: one directory
// per framework under the markdown root, each holding markdown pages.
package archive

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/samber/oops"
)

// Frameworks lists framework directories under the markdown root, sorted.
func Frameworks(markdownRoot string) ([]string, error) {
	entries, err := os.ReadDir(markdownRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, oops.
			Code("ARCHIVE_READ_ERROR").
			With("path", markdownRoot).
			Wrapf(err, "reading markdown root")
	}

	frameworks := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			frameworks = append(frameworks, entry.Name())
		}
	}

	slices.Sort(frameworks)
	return frameworks, nil
}

// Pages walks a framework directory and returns the relative paths of pages
// matching the include patterns and not matching the exclude patterns.
// Root-level pages sort first, then by depth and lowercased path.
func Pages(frameworkDir string, patterns []string, exclude []string) ([]string, error) {
	if _, err := os.Stat(frameworkDir); err != nil {
		if os.IsNotExist(err) {
			return nil, oops.
				Code("FRAMEWORK_NOT_FOUND").
				With("path", frameworkDir).
				Hint("Run 'appledocs list' to see available frameworks").
				Errorf("framework directory %q does not exist", frameworkDir)
		}

		return nil, oops.
			Code("ARCHIVE_READ_ERROR").
			With("path", frameworkDir).
			Wrapf(err, "checking framework directory")
	}

	var pages []string

	walkErr := filepath.WalkDir(frameworkDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		relPath, relErr := filepath.Rel(frameworkDir, path)
		if relErr != nil {
			return relErr
		}

		relPath = filepath.ToSlash(relPath)
		matched, matchErr := matches(relPath, patterns, exclude)
		if matchErr != nil {
			return matchErr
		}

		if matched {
			pages = append(pages, relPath)
		}

		return nil
	})
	if walkErr != nil {
		return nil, oops.
			Code("ARCHIVE_READ_ERROR").
			With("path", frameworkDir).
			Wrapf(walkErr, "walking framework directory")
	}

	SortPages(pages)
	return pages, nil
}

// SortPages orders page paths root-first, then by depth and lowercased path.
func SortPages(pages []string) {
	slices.SortFunc(pages, func(a, b string) int {
		depthA := strings.Count(a, "/")
		depthB := strings.Count(b, "/")
		if depthA != depthB {
			return depthA - depthB
		}

		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
}

func matches(relPath string, patterns []string, exclude []string) (bool, error) {
	for _, pattern := range exclude {
		excluded, err := doublestar.PathMatch(pattern, relPath)
		if err != nil {
			return false, oops.
				Code("CONFIG_INVALID").
				With("pattern", pattern).
				Hint("Fix the exclude glob pattern in your config").
				Wrapf(err, "matching exclude pattern")
		}

		if excluded {
			return false, nil
		}
	}

	for _, pattern := range patterns {
		included, err := doublestar.PathMatch(pattern, relPath)
		if err != nil {
			return false, oops.
				Code("CONFIG_INVALID").
				With("pattern", pattern).
				Hint("Fix the include glob pattern in your config").
				Wrapf(err, "matching include pattern")
		}

		if included {
			return true, nil
		}
	}

	return false, nil
}
