// Package fetch downloads supplemental per-framework files from configured
// URLs, using conditional requests so unchanged files are not re-downloaded.
package fetch

import (
	"context"
	"io"
	"net/http"
	neturl "net/url"
	"os"
	"path"
	"path/filepath"
	"slices"
	stdsync "sync"
	"time"

	"github.com/samber/oops"
	"golang.org/x/sync/errgroup"
	"resty.dev/v3"

	"github.com/offlinedocs/appledocs/internal/config"
	"github.com/offlinedocs/appledocs/internal/lockfile"
)

const defaultMaxParallel = 3

type EventKind string

const (
	EventFrameworkStart EventKind = "framework_start"
	EventFrameworkDone  EventKind = "framework_done"
)

// Event reports per-framework fetch progress to the CLI layer.
type Event struct {
	Kind      EventKind
	Framework string
	Result    *Result
	Err       error
}

// Result reports what one framework fetch did.
type Result struct {
	Framework string
	Filename  string
	Skipped   bool
	NoURL     bool
	DryRun    bool
	Bytes     int64
	LockEntry *lockfile.LockEntry
}

// Options controls a fetch run.
type Options struct {
	Frameworks  []string
	Force       bool
	DryRun      bool
	MaxParallel int
	OnEvent     func(Event)
}

// RunResult aggregates a whole fetch run.
type RunResult struct {
	Frameworks int
	Downloaded int
	Skipped    int
	NoURL      int
	Errors     int
}

type runState struct {
	result *Result
	err    error
}

// Run fetches every requested framework with a configured URL, bounded by
// MaxParallel, and saves the lock file once at the end.
func Run(ctx context.Context, cfg *config.Config, opts Options) (*RunResult, error) {
	if cfg == nil {
		return nil, oops.
			Code("CONFIG_INVALID").
			Errorf("config is required")
	}

	lock, err := lockfile.Load(cfg.ArchiveRoot)
	if err != nil {
		return nil, err
	}

	frameworkNames, err := resolveFrameworkNames(cfg.Frameworks, opts.Frameworks)
	if err != nil {
		return nil, err
	}

	maxParallel := opts.MaxParallel
	if maxParallel <= 0 {
		maxParallel = defaultMaxParallel
	}

	client := resty.New()

	results := make(map[string]runState, len(frameworkNames))
	var resultsMu stdsync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxParallel)

	for _, fwName := range frameworkNames {
		fwCfg := cfg.Framework(fwName)
		destDir := cfg.FrameworkDir(fwName)
		prevLock := lock.GetEntry(fwName)

		group.Go(func() error {
			emit(opts, Event{Kind: EventFrameworkStart, Framework: fwName})

			state := runState{}
			state.result, state.err = fetchFramework(groupCtx, client, fwName, fwCfg, destDir, prevLock, opts)

			emit(opts, Event{Kind: EventFrameworkDone, Framework: fwName, Result: state.result, Err: state.err})

			resultsMu.Lock()
			results[fwName] = state
			resultsMu.Unlock()
			return nil
		})
	}

	if waitErr := group.Wait(); waitErr != nil {
		return nil, oops.Wrapf(waitErr, "waiting for fetch workers")
	}

	run := &RunResult{Frameworks: len(frameworkNames)}
	for _, fwName := range frameworkNames {
		state := results[fwName]
		if state.err != nil {
			run.Errors++
			continue
		}

		if state.result == nil {
			continue
		}

		switch {
		case state.result.NoURL:
			run.NoURL++
		case state.result.Skipped:
			run.Skipped++
		case state.result.DryRun:
			// counted as neither downloaded nor skipped
		default:
			run.Downloaded++
		}

		if !opts.DryRun && state.result.LockEntry != nil {
			lock.SetEntry(fwName, state.result.LockEntry)
		}
	}

	if !opts.DryRun {
		if saveErr := lock.Save(cfg.ArchiveRoot); saveErr != nil {
			return nil, saveErr
		}
	}

	if run.Errors > 0 {
		return run, oops.
			Code("DOWNLOAD_FAILED").
			With("failed_frameworks", run.Errors).
			Errorf("%d framework(s) failed during fetch", run.Errors)
	}

	return run, nil
}

func fetchFramework(
	ctx context.Context,
	client *resty.Client,
	fwName string,
	fwCfg config.Framework,
	destDir string,
	prevLock *lockfile.LockEntry,
	opts Options,
) (*Result, error) {
	if fwCfg.URL == "" {
		return &Result{Framework: fwName, NoURL: true}, nil
	}

	filename := fwCfg.Filename
	if filename == "" {
		filename = filenameFromURL(fwName, fwCfg.URL)
	}

	if opts.DryRun {
		return &Result{Framework: fwName, Filename: filename, DryRun: true}, nil
	}

	request := client.R().SetContext(ctx)
	if !opts.Force && prevLock != nil {
		if prevLock.ETag != "" {
			request.SetHeader("If-None-Match", prevLock.ETag)
		}
		if prevLock.LastMod != "" {
			request.SetHeader("If-Modified-Since", prevLock.LastMod)
		}
	}

	response, err := request.Get(fwCfg.URL)
	if err != nil {
		return nil, oops.
			Code("DOWNLOAD_FAILED").
			With("framework", fwName).
			With("url", fwCfg.URL).
			Wrapf(err, "downloading framework file")
	}

	if response.StatusCode() == http.StatusNotModified {
		entry := &lockfile.LockEntry{
			Filename:  filename,
			FetchedAt: time.Now().UTC(),
		}
		if prevLock != nil {
			entry.ETag = prevLock.ETag
			entry.LastMod = prevLock.LastMod
		}

		return &Result{Framework: fwName, Filename: filename, Skipped: true, LockEntry: entry}, nil
	}

	if response.StatusCode() < http.StatusOK || response.StatusCode() >= http.StatusMultipleChoices {
		return nil, oops.
			Code("DOWNLOAD_FAILED").
			With("framework", fwName).
			With("url", fwCfg.URL).
			With("status", response.StatusCode()).
			Errorf("framework url returned non-success status %d", response.StatusCode())
	}

	content, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, oops.
			Code("DOWNLOAD_FAILED").
			With("framework", fwName).
			With("url", fwCfg.URL).
			Wrapf(err, "reading response body")
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, oops.
			Code("WRITE_FAILED").
			With("path", destDir).
			Wrapf(err, "creating framework directory")
	}

	filePath := filepath.Join(destDir, filename)
	if err := writeFileAtomic(filePath, content); err != nil {
		return nil, err
	}

	entry := &lockfile.LockEntry{
		Filename:  filename,
		ETag:      response.Header().Get("ETag"),
		LastMod:   response.Header().Get("Last-Modified"),
		FetchedAt: time.Now().UTC(),
	}

	return &Result{
		Framework: fwName,
		Filename:  filename,
		Bytes:     int64(len(content)),
		LockEntry: entry,
	}, nil
}

func resolveFrameworkNames(
	frameworkConfigs map[string]config.Framework,
	requestedNames []string,
) ([]string, error) {
	if len(requestedNames) == 0 {
		frameworkNames := make([]string, 0, len(frameworkConfigs))
		for fwName := range frameworkConfigs {
			frameworkNames = append(frameworkNames, fwName)
		}

		slices.Sort(frameworkNames)
		return frameworkNames, nil
	}

	frameworkNames := make([]string, 0, len(requestedNames))
	seen := make(map[string]struct{}, len(requestedNames))

	for _, fwName := range requestedNames {
		if _, ok := frameworkConfigs[fwName]; !ok {
			return nil, oops.
				Code("FRAMEWORK_NOT_FOUND").
				With("framework", fwName).
				Hint("Run 'appledocs list' to see configured frameworks").
				Errorf("framework %q not found in config", fwName)
		}

		if _, exists := seen[fwName]; exists {
			continue
		}

		seen[fwName] = struct{}{}
		frameworkNames = append(frameworkNames, fwName)
	}

	return frameworkNames, nil
}

func filenameFromURL(fwName string, rawURL string) string {
	parsed, err := neturl.Parse(rawURL)
	if err == nil {
		baseName := path.Base(parsed.Path)
		if baseName != "" && baseName != "." && baseName != "/" {
			return baseName
		}
	}

	return fwName + ".md"
}

func writeFileAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)
	tempFile, err := os.CreateTemp(dir, ".appledocs-fetch-*.tmp")
	if err != nil {
		return oops.
			Code("WRITE_FAILED").
			With("path", path).
			Wrapf(err, "creating temporary file")
	}

	tempPath := tempFile.Name()
	defer func() {
		_ = os.Remove(tempPath)
	}()

	if _, err := tempFile.Write(content); err != nil {
		_ = tempFile.Close()
		return oops.
			Code("WRITE_FAILED").
			With("path", path).
			Wrapf(err, "writing temporary file")
	}

	if err := tempFile.Close(); err != nil {
		return oops.
			Code("WRITE_FAILED").
			With("path", path).
			Wrapf(err, "closing temporary file")
	}

	if err := os.Rename(tempPath, path); err != nil {
		return oops.
			Code("WRITE_FAILED").
			With("path", path).
			Wrapf(err, "replacing destination file")
	}

	return nil
}

func emit(opts Options, e Event) {
	if opts.OnEvent != nil {
		opts.OnEvent(e)
	}
}
