package lockfile_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/offlinedocs/appledocs/internal/lockfile"
)

func TestLoadReturnsEmptyLockWhenFileMissing(t *testing.T) {
	t.Parallel()

	archiveRoot := t.TempDir()

	lock, err := lockfile.Load(archiveRoot)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if lock.Version != 1 {
		t.Fatalf("Version = %d, want 1", lock.Version)
	}

	if len(lock.Frameworks) != 0 {
		t.Fatalf("Frameworks len = %d, want 0", len(lock.Frameworks))
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	t.Parallel()

	archiveRoot := t.TempDir()
	now := time.Now().UTC().Truncate(time.Second)

	lock := lockfile.New()
	lock.SetEntry("swift", &lockfile.LockEntry{
		Filename:  "release-notes.md",
		ETag:      `"etag"`,
		LastMod:   "Tue, 15 Jan 2024 10:30:00 GMT",
		FetchedAt: now,
	})

	if err := lock.Save(archiveRoot); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := lockfile.Load(archiveRoot)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	entry := loaded.GetEntry("swift")
	if entry == nil {
		t.Fatalf("GetEntry(swift) = nil, want non-nil")
	}

	if entry.ETag != `"etag"` {
		t.Fatalf("ETag = %q, want %q", entry.ETag, `"etag"`)
	}

	if entry.Filename != "release-notes.md" {
		t.Fatalf("Filename = %q, want %q", entry.Filename, "release-notes.md")
	}

	if !entry.FetchedAt.Equal(now) {
		t.Fatalf("FetchedAt = %v, want %v", entry.FetchedAt, now)
	}
}

func TestSaveWritesAtomicallyWithoutTempFilesLeft(t *testing.T) {
	t.Parallel()

	archiveRoot := t.TempDir()
	lock := lockfile.New()
	lock.SetEntry("uikit", &lockfile.LockEntry{
		FetchedAt: time.Now().UTC(),
	})

	if err := lock.Save(archiveRoot); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	tempMatches, err := filepath.Glob(filepath.Join(archiveRoot, ".appledocs.lock.*.tmp"))
	if err != nil {
		t.Fatalf("Glob() error = %v", err)
	}

	if len(tempMatches) != 0 {
		t.Fatalf("temporary files left behind: %v", tempMatches)
	}

	lockPath := filepath.Join(archiveRoot, ".appledocs.lock")
	if _, statErr := os.Stat(lockPath); statErr != nil {
		t.Fatalf("expected lock file at %q: %v", lockPath, statErr)
	}
}

func TestLoadRejectsCorruptLockFile(t *testing.T) {
	t.Parallel()

	archiveRoot := t.TempDir()
	lockPath := filepath.Join(archiveRoot, ".appledocs.lock")
	if err := os.WriteFile(lockPath, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := lockfile.Load(archiveRoot); err == nil {
		t.Fatalf("Load() error = nil, want LOCK_ERROR")
	}
}

func TestRemoveEntry(t *testing.T) {
	t.Parallel()

	lock := lockfile.New()
	lock.SetEntry("combine", &lockfile.LockEntry{FetchedAt: time.Now()})
	lock.RemoveEntry("combine")

	if lock.GetEntry("combine") != nil {
		t.Fatalf("GetEntry(combine) != nil after RemoveEntry")
	}
}
