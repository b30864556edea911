package manifest

import (
	"os"
	"path/filepath"

	"github.com/samber/oops"

	"github.com/offlinedocs/appledocs/internal/archive"
	"github.com/offlinedocs/appledocs/internal/config"
	"github.com/offlinedocs/appledocs/internal/parser"
)

const (
	maxParseSize = 50 * 1024 * 1024 // 50MB
)

// Generate walks every framework directory under the markdown root, parses
// its pages, and saves the manifest at the archive root.
func Generate(cfg *config.Config) (*Manifest, error) {
	frameworks, err := archive.Frameworks(cfg.MarkdownRoot())
	if err != nil {
		return nil, err
	}

	m := New()

	for _, fwName := range frameworks {
		fwCfg := cfg.Framework(fwName)
		fwDir := cfg.FrameworkDir(fwName)

		pages, pagesErr := archive.Pages(fwDir, fwCfg.Patterns, fwCfg.Exclude)
		if pagesErr != nil {
			return nil, oops.
				With("framework", fwName).
				Wrapf(pagesErr, "enumerating framework pages")
		}

		fw := &Framework{
			Name:      fwName,
			Title:     fwCfg.Title,
			Subtitle:  fwCfg.Subtitle,
			IndexedAt: m.Generated,
		}

		var skipped int

		for _, relPath := range pages {
			pageInfo, parseErr := parsePage(filepath.Join(fwDir, relPath), relPath)
			if parseErr != nil {
				skipped++
				continue
			}

			fw.Pages = append(fw.Pages, *pageInfo)
			fw.TotalSize += pageInfo.Size
		}

		fw.PageCount = len(fw.Pages)
		fw.Skipped = skipped
		m.Frameworks[fwName] = fw
	}

	if saveErr := m.Save(cfg.ArchiveRoot); saveErr != nil {
		return nil, saveErr
	}

	return m, nil
}

func parsePage(absPath string, relPath string) (*PageInfo, error) {
	stat, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}

	pageInfo := &PageInfo{
		Path:     relPath,
		Size:     stat.Size(),
		Modified: stat.ModTime(),
	}

	if stat.Size() > maxParseSize {
		pageInfo.Warning = "file_too_large"
		return pageInfo, nil
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, err
	}

	if parser.IsBinary(content) || !parser.IsValidUTF8(content) {
		return nil, oops.Errorf("binary file")
	}

	result := parser.Parse(content)
	pageInfo.Description = result.Description
	pageInfo.Headings = result.Headings
	pageInfo.Lines = result.Lines

	return pageInfo, nil
}
