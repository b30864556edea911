package manifest_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/offlinedocs/appledocs/internal/manifest"
)

func TestNew(t *testing.T) {
	m := manifest.New()

	if m.Version != manifest.CurrentVersion {
		t.Errorf("Version = %q, want %q", m.Version, manifest.CurrentVersion)
	}

	if m.Frameworks == nil {
		t.Error("Frameworks should be initialized")
	}

	if m.Generated.IsZero() {
		t.Error("Generated time should be set")
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	original := manifest.New()
	original.Frameworks["uikit"] = &manifest.Framework{
		Name:      "uikit",
		Title:     "UIKit Framework",
		IndexedAt: time.Now().Truncate(time.Second),
		PageCount: 1,
		TotalSize: 512,
		Pages: []manifest.PageInfo{
			{
				Path:        "views/uiview.md",
				Size:        512,
				Lines:       20,
				Modified:    time.Now().Truncate(time.Second),
				Description: "UIView - An object that manages a rectangular area.",
			},
		},
	}

	if err := original.Save(dir); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := manifest.Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	fw, ok := loaded.Frameworks["uikit"]
	if !ok {
		t.Fatalf("framework uikit missing after round trip")
	}

	if fw.Title != "UIKit Framework" {
		t.Errorf("Title = %q, want %q", fw.Title, "UIKit Framework")
	}

	if len(fw.Pages) != 1 || fw.Pages[0].Path != "views/uiview.md" {
		t.Errorf("Pages = %+v, want one entry for views/uiview.md", fw.Pages)
	}
}

func TestLoadNonExistent(t *testing.T) {
	_, err := manifest.Load(t.TempDir())
	if err == nil {
		t.Fatalf("Load() error = nil, want MANIFEST_NOT_FOUND")
	}

	if !strings.Contains(err.Error(), "manifest not found") {
		t.Errorf("error = %v, want manifest-not-found message", err)
	}
}

func TestLoadCorrupted(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(manifest.Path(dir), []byte("{broken"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if _, err := manifest.Load(dir); err == nil {
		t.Fatalf("Load() error = nil, want MANIFEST_CORRUPTED")
	}
}

func TestSaveNilManifest(t *testing.T) {
	var m *manifest.Manifest
	if err := m.Save(t.TempDir()); err == nil {
		t.Fatalf("Save() on nil manifest error = nil, want error")
	}
}

func TestAtomicWrite(t *testing.T) {
	dir := t.TempDir()

	if err := manifest.New().Save(dir); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	tempMatches, err := filepath.Glob(filepath.Join(dir, "manifest.json.*.tmp"))
	if err != nil {
		t.Fatalf("Glob() error = %v", err)
	}

	if len(tempMatches) != 0 {
		t.Fatalf("temporary files left behind: %v", tempMatches)
	}
}
