package export

import (
	"context"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"
	stdsync "sync"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	mdparser "github.com/gomarkdown/markdown/parser"
	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/samber/oops"
	"golang.org/x/sync/errgroup"

	"github.com/offlinedocs/appledocs/internal/archive"
	"github.com/offlinedocs/appledocs/internal/config"
	"github.com/offlinedocs/appledocs/internal/parser"
)

const defaultHTMLParallel = 4

// HTMLOptions controls HTML site generation.
type HTMLOptions struct {
	MaxParallel int
	Progress    progress.Writer
}

// HTMLFrameworkResult reports one framework's conversion.
type HTMLFrameworkResult struct {
	Framework string
	Pages     int
	Errors    int
}

// HTMLResult reports a whole HTML export.
type HTMLResult struct {
	Frameworks []HTMLFrameworkResult
	IndexPath  string
	TotalPages int
}

// HTML renders the requested frameworks (all when none are named) into a
// browsable static site under the archive's html directory.
func HTML(ctx context.Context, cfg *config.Config, frameworks []string, opts HTMLOptions) (*HTMLResult, error) {
	if len(frameworks) == 0 {
		all, err := archive.Frameworks(cfg.MarkdownRoot())
		if err != nil {
			return nil, err
		}

		frameworks = all
	}

	if len(frameworks) == 0 {
		return nil, oops.
			Code("EXPORT_FAILED").
			With("path", cfg.MarkdownRoot()).
			Hint("Add framework directories under the markdown root first").
			Errorf("no frameworks found in archive")
	}

	htmlRoot := cfg.HTMLRoot()
	result := &HTMLResult{IndexPath: filepath.Join(htmlRoot, "index.html")}

	for _, fwName := range frameworks {
		fwResult, err := exportFrameworkHTML(ctx, cfg, fwName, htmlRoot, opts)
		if err != nil {
			return nil, err
		}

		result.Frameworks = append(result.Frameworks, *fwResult)
		result.TotalPages += fwResult.Pages
	}

	if err := writeMainIndex(htmlRoot, result.Frameworks); err != nil {
		return nil, err
	}

	return result, nil
}

func exportFrameworkHTML(
	ctx context.Context,
	cfg *config.Config,
	fwName string,
	htmlRoot string,
	opts HTMLOptions,
) (*HTMLFrameworkResult, error) {
	fwCfg := cfg.Framework(fwName)
	fwDir := cfg.FrameworkDir(fwName)

	pages, err := archive.Pages(fwDir, fwCfg.Patterns, fwCfg.Exclude)
	if err != nil {
		return nil, err
	}

	fwHTMLDir := filepath.Join(htmlRoot, fwName)
	if err := os.MkdirAll(fwHTMLDir, 0o755); err != nil {
		return nil, oops.
			Code("WRITE_FAILED").
			With("path", fwHTMLDir).
			Wrapf(err, "creating framework html directory")
	}

	var tracker *progress.Tracker
	if opts.Progress != nil {
		tracker = &progress.Tracker{
			Message: "converting " + fwName,
			Total:   int64(len(pages)),
			Units:   progress.UnitsDefault,
		}
		opts.Progress.AppendTracker(tracker)
	}

	maxParallel := opts.MaxParallel
	if maxParallel <= 0 {
		maxParallel = defaultHTMLParallel
	}

	var errCount int
	var errMu stdsync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxParallel)

	for _, relPath := range pages {
		group.Go(func() error {
			if groupCtx.Err() != nil {
				return groupCtx.Err()
			}

			convErr := convertPage(fwDir, fwHTMLDir, fwName, relPath)

			if tracker != nil {
				tracker.Increment(1)
			}

			if convErr != nil {
				errMu.Lock()
				errCount++
				errMu.Unlock()
			}

			return nil
		})
	}

	if waitErr := group.Wait(); waitErr != nil {
		return nil, oops.Wrapf(waitErr, "waiting for html conversion workers")
	}

	if tracker != nil {
		tracker.MarkAsDone()
	}

	if err := writeFrameworkIndex(fwHTMLDir, fwName, pages); err != nil {
		return nil, err
	}

	return &HTMLFrameworkResult{
		Framework: fwName,
		Pages:     len(pages),
		Errors:    errCount,
	}, nil
}

func convertPage(fwDir string, fwHTMLDir string, fwName string, relPath string) error {
	content, err := os.ReadFile(filepath.Join(fwDir, filepath.FromSlash(relPath)))
	if err != nil {
		return err
	}

	body, _, _ := parser.StripFrontmatter(parser.StripBOM(content))

	doc := mdparser.NewWithExtensions(mdparser.CommonExtensions).Parse(body)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	rendered := markdown.Render(doc, renderer)

	title := strings.TrimSuffix(relPath, filepath.Ext(relPath))
	depth := strings.Count(relPath, "/")
	pageData := pageTemplateData{
		Title:     title,
		Framework: fwName,
		Content:   template.HTML(rendered), //nolint:gosec // rendered from trusted archive markdown
		RootRel:   strings.Repeat("../", depth+1),
		IndexRel:  strings.Repeat("../", depth) + "index.html",
	}

	outPath := filepath.Join(fwHTMLDir, filepath.FromSlash(htmlPath(relPath)))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	outFile, err := os.Create(outPath)
	if err != nil {
		return err
	}

	if execErr := pageTemplate.Execute(outFile, pageData); execErr != nil {
		_ = outFile.Close()
		return execErr
	}

	return outFile.Close()
}

func writeFrameworkIndex(fwHTMLDir string, fwName string, pages []string) error {
	items := make([]indexItem, 0, len(pages))
	for _, relPath := range pages {
		items = append(items, indexItem{
			Href:  htmlPath(relPath),
			Title: strings.TrimSuffix(filepath.Base(relPath), filepath.Ext(relPath)),
		})
	}

	data := frameworkIndexData{
		Framework: fwName,
		PageCount: len(pages),
		Items:     items,
	}

	return writeTemplate(filepath.Join(fwHTMLDir, "index.html"), frameworkIndexTemplate, data)
}

func writeMainIndex(htmlRoot string, frameworks []HTMLFrameworkResult) error {
	sorted := make([]HTMLFrameworkResult, len(frameworks))
	copy(sorted, frameworks)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Framework < sorted[j].Framework
	})

	total := 0
	items := make([]mainIndexItem, 0, len(sorted))
	for _, fw := range sorted {
		total += fw.Pages
		items = append(items, mainIndexItem{
			Framework: fw.Framework,
			Pages:     fw.Pages,
		})
	}

	data := mainIndexData{
		FrameworkCount: len(sorted),
		TotalPages:     total,
		Items:          items,
	}

	return writeTemplate(filepath.Join(htmlRoot, "index.html"), mainIndexTemplate, data)
}

func writeTemplate(path string, tmpl *template.Template, data any) error {
	outFile, err := os.Create(path)
	if err != nil {
		return oops.
			Code("WRITE_FAILED").
			With("path", path).
			Wrapf(err, "creating index file")
	}

	if execErr := tmpl.Execute(outFile, data); execErr != nil {
		_ = outFile.Close()
		return oops.
			Code("EXPORT_FAILED").
			With("path", path).
			Wrapf(execErr, "rendering index template")
	}

	if closeErr := outFile.Close(); closeErr != nil {
		return oops.
			Code("WRITE_FAILED").
			With("path", path).
			Wrapf(closeErr, "closing index file")
	}

	return nil
}

func htmlPath(relPath string) string {
	return strings.TrimSuffix(relPath, filepath.Ext(relPath)) + ".html"
}
