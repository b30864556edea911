// Package integrate links the documentation archive into an external project
// and registers the link in the project's .gitignore. Both steps check for
// prior completion before acting, so re-running is always safe.
package integrate

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/oops"
)

const (
	// LinkName is the symlink created inside the target project.
	LinkName = "apple-docs"

	// IgnoreEntry is the exact line registered in the target's .gitignore.
	IgnoreEntry = "apple-docs/"

	ignoreFileName = ".gitignore"
	ignoreComment  = "# Apple docs archive (symlinked)"
)

// Step identifies one of the two integration steps.
type Step string

const (
	StepLink   Step = "link"
	StepIgnore Step = "ignore"
)

// Status reports what a step did.
type Status string

const (
	StatusCreated Status = "created"
	StatusUpdated Status = "updated"
	StatusSkipped Status = "skipped"
	StatusWarning Status = "warning"
)

// Event is emitted once per step so the CLI layer can render progress.
type Event struct {
	Step   Step
	Status Status
	Path   string
	Detail string
}

// Options controls integration behavior.
type Options struct {
	OnEvent func(Event)
}

// Result reports what the integration changed.
type Result struct {
	ArchiveRoot   string
	LinkPath      string
	IgnorePath    string
	LinkCreated   bool
	IgnoreUpdated bool
}

// Run links archiveRoot into targetPath as "apple-docs" and ensures the
// ignore entry exists. Validation failures happen before any side effect.
func Run(archiveRoot string, targetPath string, opts Options) (*Result, error) {
	if targetPath == "" {
		return nil, oops.
			Code("INVALID_ARGS").
			Hint("Usage: appledocs integrate <target-project-path>").
			Errorf("target project path is required")
	}

	absArchiveRoot, err := filepath.Abs(archiveRoot)
	if err != nil {
		return nil, oops.Wrapf(err, "resolving archive root")
	}

	targetInfo, err := os.Stat(targetPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, oops.
				Code("TARGET_NOT_FOUND").
				With("path", targetPath).
				Hint("Create the project directory first").
				Errorf("target directory %q does not exist", targetPath)
		}

		return nil, oops.Wrapf(err, "checking target directory %q", targetPath)
	}

	if !targetInfo.IsDir() {
		return nil, oops.
			Code("TARGET_NOT_FOUND").
			With("path", targetPath).
			Hint("Pass a directory, not a file").
			Errorf("target %q is not a directory", targetPath)
	}

	result := &Result{
		ArchiveRoot: absArchiveRoot,
		LinkPath:    filepath.Join(targetPath, LinkName),
		IgnorePath:  filepath.Join(targetPath, ignoreFileName),
	}

	if err := ensureLink(absArchiveRoot, result, opts); err != nil {
		return nil, err
	}

	if err := ensureIgnoreEntry(result, opts); err != nil {
		return nil, err
	}

	return result, nil
}

func ensureLink(archiveRoot string, result *Result, opts Options) error {
	info, err := os.Lstat(result.LinkPath)
	switch {
	case err == nil:
		status := StatusSkipped
		detail := "already exists"
		if info.Mode().IsRegular() {
			// A regular file shadows the link name. Never overwrite it.
			status = StatusWarning
			detail = "a regular file already exists here; not overwriting"
		}

		emit(opts, Event{Step: StepLink, Status: status, Path: result.LinkPath, Detail: detail})
		return nil

	case os.IsNotExist(err):
		if symlinkErr := os.Symlink(archiveRoot, result.LinkPath); symlinkErr != nil {
			return oops.
				Code("LINK_FAILED").
				With("link", result.LinkPath).
				With("archive", archiveRoot).
				Wrapf(symlinkErr, "creating archive symlink")
		}

		result.LinkCreated = true
		emit(opts, Event{Step: StepLink, Status: StatusCreated, Path: result.LinkPath})
		return nil

	default:
		return oops.Wrapf(err, "checking link path %q", result.LinkPath)
	}
}

func ensureIgnoreEntry(result *Result, opts Options) error {
	content, err := os.ReadFile(result.IgnorePath)
	if err != nil && !os.IsNotExist(err) {
		return oops.
			Code("IGNORE_WRITE_FAILED").
			With("path", result.IgnorePath).
			Wrapf(err, "reading ignore file")
	}

	if err == nil {
		if hasIgnoreEntry(content) {
			emit(opts, Event{Step: StepIgnore, Status: StatusSkipped, Path: result.IgnorePath, Detail: "entry already present"})
			return nil
		}

		appended := string(content)
		if appended != "" && !strings.HasSuffix(appended, "\n") {
			appended += "\n"
		}
		appended += "\n" + ignoreComment + "\n" + IgnoreEntry + "\n"

		if writeErr := os.WriteFile(result.IgnorePath, []byte(appended), 0o644); writeErr != nil {
			return oops.
				Code("IGNORE_WRITE_FAILED").
				With("path", result.IgnorePath).
				Wrapf(writeErr, "appending ignore entry")
		}

		result.IgnoreUpdated = true
		emit(opts, Event{Step: StepIgnore, Status: StatusUpdated, Path: result.IgnorePath})
		return nil
	}

	created := ignoreComment + "\n" + IgnoreEntry + "\n"
	if writeErr := os.WriteFile(result.IgnorePath, []byte(created), 0o644); writeErr != nil {
		return oops.
			Code("IGNORE_WRITE_FAILED").
			With("path", result.IgnorePath).
			Wrapf(writeErr, "creating ignore file")
	}

	result.IgnoreUpdated = true
	emit(opts, Event{Step: StepIgnore, Status: StatusCreated, Path: result.IgnorePath})
	return nil
}

func hasIgnoreEntry(content []byte) bool {
	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimRight(line, "\r") == IgnoreEntry {
			return true
		}
	}

	return false
}

func emit(opts Options, e Event) {
	if opts.OnEvent != nil {
		opts.OnEvent(e)
	}
}
