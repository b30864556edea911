// Package manifest maintains manifest.json, the archive's page index used
// by list, search, and export.
package manifest

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/samber/oops"

	"github.com/offlinedocs/appledocs/internal/parser"
)

const (
	CurrentVersion = "1.0.0"
	ManifestFile   = "manifest.json"
)

type Manifest struct {
	Version    string                `json:"version"`
	Generated  time.Time             `json:"generated"`
	Frameworks map[string]*Framework `json:"frameworks"`
}

type Framework struct {
	Name      string     `json:"name"`
	Title     string     `json:"title"`
	Subtitle  string     `json:"subtitle,omitempty"`
	IndexedAt time.Time  `json:"indexed_at"`
	PageCount int        `json:"page_count"`
	TotalSize int64      `json:"total_size"`
	Skipped   int        `json:"skipped,omitempty"`
	Pages     []PageInfo `json:"pages"`
}

type PageInfo struct {
	Path        string           `json:"path"`
	Size        int64            `json:"size"`
	Lines       int              `json:"lines"`
	Modified    time.Time        `json:"modified"`
	Description string           `json:"description"`
	Headings    []parser.Heading `json:"headings,omitempty"`
	Warning     string           `json:"warning,omitempty"`
}

func New() *Manifest {
	return &Manifest{
		Version:    CurrentVersion,
		Generated:  time.Now(),
		Frameworks: make(map[string]*Framework),
	}
}

func Load(archiveRoot string) (*Manifest, error) {
	manifestPath := Path(archiveRoot)
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, oops.
				Code("MANIFEST_NOT_FOUND").
				With("path", manifestPath).
				Hint("Run 'appledocs index' to generate the manifest").
				Errorf("manifest not found at %q", manifestPath)
		}

		return nil, oops.
			Code("MANIFEST_READ_ERROR").
			With("path", manifestPath).
			Wrapf(err, "reading manifest file")
	}

	m := &Manifest{}
	if unmarshalErr := json.Unmarshal(data, m); unmarshalErr != nil {
		return nil, oops.
			Code("MANIFEST_CORRUPTED").
			With("path", manifestPath).
			Hint("Delete manifest.json and run 'appledocs index'").
			Wrapf(unmarshalErr, "parsing manifest file")
	}

	if m.Frameworks == nil {
		m.Frameworks = make(map[string]*Framework)
	}

	return m, nil
}

func (m *Manifest) Save(archiveRoot string) error {
	if m == nil {
		return oops.
			Code("MANIFEST_WRITE_ERROR").
			Hint("Initialize manifest before saving").
			Errorf("cannot save nil manifest")
	}

	if err := os.MkdirAll(archiveRoot, 0o750); err != nil {
		return oops.
			Code("MANIFEST_WRITE_ERROR").
			With("path", archiveRoot).
			Wrapf(err, "creating manifest directory")
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return oops.
			Code("MANIFEST_WRITE_ERROR").
			Wrapf(err, "encoding manifest")
	}

	data = append(data, '\n')
	manifestPath := Path(archiveRoot)

	tempFile, err := os.CreateTemp(archiveRoot, ManifestFile+".*.tmp")
	if err != nil {
		return oops.
			Code("MANIFEST_WRITE_ERROR").
			With("path", archiveRoot).
			Wrapf(err, "creating temporary manifest file")
	}

	tempPath := tempFile.Name()
	defer func() {
		_ = os.Remove(tempPath)
	}()

	if _, writeErr := tempFile.Write(data); writeErr != nil {
		_ = tempFile.Close()
		return oops.
			Code("MANIFEST_WRITE_ERROR").
			With("path", tempPath).
			Wrapf(writeErr, "writing temporary manifest file")
	}

	if closeErr := tempFile.Close(); closeErr != nil {
		return oops.
			Code("MANIFEST_WRITE_ERROR").
			With("path", tempPath).
			Wrapf(closeErr, "closing temporary manifest file")
	}

	if renameErr := os.Rename(tempPath, manifestPath); renameErr != nil {
		return oops.
			Code("MANIFEST_WRITE_ERROR").
			With("from", tempPath).
			With("to", manifestPath).
			Wrapf(renameErr, "replacing manifest file")
	}

	return nil
}

func Path(archiveRoot string) string {
	return filepath.Join(archiveRoot, ManifestFile)
}
