package integrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/offlinedocs/appledocs/internal/integrate"
)

func TestRunCreatesLinkAndIgnoreFile(t *testing.T) {
	t.Parallel()

	archiveRoot := t.TempDir()
	targetDir := t.TempDir()

	result, err := integrate.Run(archiveRoot, targetDir, integrate.Options{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !result.LinkCreated {
		t.Fatalf("LinkCreated = false, want true")
	}

	linkPath := filepath.Join(targetDir, "apple-docs")
	linkTarget, err := os.Readlink(linkPath)
	if err != nil {
		t.Fatalf("Readlink() error = %v", err)
	}

	wantTarget, err := filepath.Abs(archiveRoot)
	if err != nil {
		t.Fatalf("Abs() error = %v", err)
	}

	if linkTarget != wantTarget {
		t.Fatalf("link target = %q, want %q", linkTarget, wantTarget)
	}

	ignoreContent := readFile(t, filepath.Join(targetDir, ".gitignore"))
	if !containsLine(ignoreContent, "apple-docs/") {
		t.Fatalf(".gitignore = %q, want apple-docs/ line", ignoreContent)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	t.Parallel()

	archiveRoot := t.TempDir()
	targetDir := t.TempDir()

	if _, err := integrate.Run(archiveRoot, targetDir, integrate.Options{}); err != nil {
		t.Fatalf("first Run() error = %v", err)
	}

	before := readFile(t, filepath.Join(targetDir, ".gitignore"))

	var events []integrate.Event
	result, err := integrate.Run(archiveRoot, targetDir, integrate.Options{
		OnEvent: func(e integrate.Event) { events = append(events, e) },
	})
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}

	if result.LinkCreated || result.IgnoreUpdated {
		t.Fatalf("second run changed state: LinkCreated=%v IgnoreUpdated=%v", result.LinkCreated, result.IgnoreUpdated)
	}

	after := readFile(t, filepath.Join(targetDir, ".gitignore"))
	if before != after {
		t.Fatalf(".gitignore changed on second run:\nbefore=%q\nafter=%q", before, after)
	}

	if countLines(after, "apple-docs/") != 1 {
		t.Fatalf("duplicate ignore entries in %q", after)
	}

	for _, e := range events {
		if e.Status != integrate.StatusSkipped {
			t.Fatalf("event %v status = %q, want skipped", e.Step, e.Status)
		}
	}
}

func TestRunAppendsToExistingIgnoreFile(t *testing.T) {
	t.Parallel()

	archiveRoot := t.TempDir()
	targetDir := t.TempDir()
	ignorePath := filepath.Join(targetDir, ".gitignore")

	if err := os.WriteFile(ignorePath, []byte("node_modules/\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := integrate.Run(archiveRoot, targetDir, integrate.Options{}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	content := readFile(t, ignorePath)
	if !strings.HasPrefix(content, "node_modules/\n") {
		t.Fatalf("existing content lost: %q", content)
	}

	if !containsLine(content, "apple-docs/") {
		t.Fatalf("missing apple-docs/ line in %q", content)
	}

	// Appended block starts with a blank separator line.
	if !strings.Contains(content, "node_modules/\n\n#") {
		t.Fatalf("missing blank line before comment in %q", content)
	}
}

func TestRunLeavesMatchingIgnoreFileUntouched(t *testing.T) {
	t.Parallel()

	archiveRoot := t.TempDir()
	targetDir := t.TempDir()
	ignorePath := filepath.Join(targetDir, ".gitignore")

	original := "dist/\napple-docs/\nbuild/\n"
	if err := os.WriteFile(ignorePath, []byte(original), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := integrate.Run(archiveRoot, targetDir, integrate.Options{}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got := readFile(t, ignorePath); got != original {
		t.Fatalf(".gitignore = %q, want unchanged %q", got, original)
	}
}

func TestRunWarnsOnRegularFileAtLinkPath(t *testing.T) {
	t.Parallel()

	archiveRoot := t.TempDir()
	targetDir := t.TempDir()
	linkPath := filepath.Join(targetDir, "apple-docs")

	if err := os.WriteFile(linkPath, []byte("not a link"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	var events []integrate.Event
	result, err := integrate.Run(archiveRoot, targetDir, integrate.Options{
		OnEvent: func(e integrate.Event) { events = append(events, e) },
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.LinkCreated {
		t.Fatalf("LinkCreated = true, want false")
	}

	// The existing file must survive untouched.
	if got := readFile(t, linkPath); got != "not a link" {
		t.Fatalf("file at link path = %q, want untouched", got)
	}

	var sawWarning bool
	for _, e := range events {
		if e.Step == integrate.StepLink && e.Status == integrate.StatusWarning {
			sawWarning = true
		}
	}

	if !sawWarning {
		t.Fatalf("no warning event for regular file at link path: %v", events)
	}

	// The ignore step still ran.
	if !containsLine(readFile(t, filepath.Join(targetDir, ".gitignore")), "apple-docs/") {
		t.Fatalf("ignore step did not run after link warning")
	}
}

func TestRunMissingTargetFailsWithoutSideEffects(t *testing.T) {
	t.Parallel()

	archiveRoot := t.TempDir()
	missingTarget := filepath.Join(t.TempDir(), "missing")

	_, err := integrate.Run(archiveRoot, missingTarget, integrate.Options{})
	if err == nil {
		t.Fatalf("Run() error = nil, want TARGET_NOT_FOUND")
	}

	if _, statErr := os.Stat(missingTarget); !os.IsNotExist(statErr) {
		t.Fatalf("target was created as a side effect")
	}
}

func TestRunEmptyTargetFails(t *testing.T) {
	t.Parallel()

	_, err := integrate.Run(t.TempDir(), "", integrate.Options{})
	if err == nil {
		t.Fatalf("Run() error = nil, want INVALID_ARGS")
	}
}

func TestRunTargetIsFileFails(t *testing.T) {
	t.Parallel()

	targetFile := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(targetFile, []byte("x"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	_, err := integrate.Run(t.TempDir(), targetFile, integrate.Options{})
	if err == nil {
		t.Fatalf("Run() error = nil, want TARGET_NOT_FOUND")
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%q) error = %v", path, err)
	}

	return string(data)
}

func containsLine(content string, line string) bool {
	return countLines(content, line) > 0
}

func countLines(content string, line string) int {
	count := 0
	for _, l := range strings.Split(content, "\n") {
		if strings.TrimRight(l, "\r") == line {
			count++
		}
	}

	return count
}
