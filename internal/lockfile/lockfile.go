// Package lockfile persists fetch state per framework so repeated fetches
// can use HTTP conditional requests.
package lockfile

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/samber/oops"
)

const (
	fileName       = ".appledocs.lock"
	currentVersion = 1
)

type LockFile struct {
	Version    int                   `json:"version"`
	Frameworks map[string]*LockEntry `json:"frameworks"`
}

type LockEntry struct {
	Filename  string    `json:"filename,omitempty"`
	ETag      string    `json:"etag,omitempty"`
	LastMod   string    `json:"last_modified,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
}

func Load(archiveRoot string) (*LockFile, error) {
	lockPath := filepath.Join(archiveRoot, fileName)
	data, err := os.ReadFile(lockPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return New(), nil
		}

		return nil, oops.
			Code("LOCK_ERROR").
			With("path", lockPath).
			Wrapf(err, "reading lock file")
	}

	lock := &LockFile{}
	if unmarshalErr := json.Unmarshal(data, lock); unmarshalErr != nil {
		return nil, oops.
			Code("LOCK_ERROR").
			With("path", lockPath).
			Hint("Delete the lock file and run 'appledocs fetch' to regenerate it").
			Wrapf(unmarshalErr, "parsing lock file")
	}

	if lock.Version == 0 {
		lock.Version = currentVersion
	}

	if lock.Frameworks == nil {
		lock.Frameworks = map[string]*LockEntry{}
	}

	return lock, nil
}

func New() *LockFile {
	return &LockFile{
		Version:    currentVersion,
		Frameworks: map[string]*LockEntry{},
	}
}

func (l *LockFile) Save(archiveRoot string) error {
	if l == nil {
		return oops.
			Code("LOCK_ERROR").
			Hint("Initialize lock file state before saving").
			Errorf("cannot save nil lock file")
	}

	if l.Version == 0 {
		l.Version = currentVersion
	}

	if l.Frameworks == nil {
		l.Frameworks = map[string]*LockEntry{}
	}

	if err := os.MkdirAll(archiveRoot, 0o750); err != nil {
		return oops.
			Code("LOCK_ERROR").
			With("path", archiveRoot).
			Wrapf(err, "creating lock directory")
	}

	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return oops.
			Code("LOCK_ERROR").
			Wrapf(err, "encoding lock file")
	}

	data = append(data, '\n')
	lockPath := filepath.Join(archiveRoot, fileName)

	tempFile, err := os.CreateTemp(archiveRoot, fileName+".*.tmp")
	if err != nil {
		return oops.
			Code("LOCK_ERROR").
			With("path", archiveRoot).
			Wrapf(err, "creating temporary lock file")
	}

	tempPath := tempFile.Name()
	defer func() {
		_ = os.Remove(tempPath)
	}()

	if _, writeErr := tempFile.Write(data); writeErr != nil {
		_ = tempFile.Close()
		return oops.
			Code("LOCK_ERROR").
			With("path", tempPath).
			Wrapf(writeErr, "writing temporary lock file")
	}

	if closeErr := tempFile.Close(); closeErr != nil {
		return oops.
			Code("LOCK_ERROR").
			With("path", tempPath).
			Wrapf(closeErr, "closing temporary lock file")
	}

	if renameErr := os.Rename(tempPath, lockPath); renameErr != nil {
		return oops.
			Code("LOCK_ERROR").
			With("from", tempPath).
			With("to", lockPath).
			Wrapf(renameErr, "replacing lock file")
	}

	return nil
}

func (l *LockFile) GetEntry(framework string) *LockEntry {
	if l == nil {
		return nil
	}

	return l.Frameworks[framework]
}

func (l *LockFile) SetEntry(framework string, entry *LockEntry) {
	if l == nil {
		return
	}

	if l.Frameworks == nil {
		l.Frameworks = map[string]*LockEntry{}
	}

	l.Frameworks[framework] = entry
}

func (l *LockFile) RemoveEntry(framework string) {
	if l == nil || l.Frameworks == nil {
		return
	}

	delete(l.Frameworks, framework)
}
