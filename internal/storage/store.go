package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bytedance/sonic"

	"taskmap.dev/taskmap/internal/engine"
	tmerrors "taskmap.dev/taskmap/internal/errors"
	"taskmap.dev/taskmap/internal/history"
)

const (
	// DocumentVersion is the current on-disk format version
	DocumentVersion = 1
	// DefaultQuota is the default document size limit in bytes
	DefaultQuota int64 = 5 << 20
)

// Document is everything persisted for a workspace: the task collection, the
// working registry and both history stacks
type Document struct {
	Version int               `json:"version"`
	SavedAt time.Time         `json:"savedAt"`
	Graph   engine.GraphState `json:"graph"`
	History history.Stacks    `json:"history"`
}

// Store reads and writes documents
type Store interface {
	// Load returns the stored document. found is false when nothing has been saved yet.
	Load() (doc Document, found bool, err error)
	// Save replaces the stored document. It returns a StorageExceededError and
	// writes nothing when the encoded document does not fit.
	Save(doc Document) error
}

// FileStore keeps the document in a single JSON file
type FileStore struct {
	path  string
	quota int64
}

// NewFileStore creates a store at path. A quota of zero or less uses DefaultQuota.
func NewFileStore(path string, quota int64) *FileStore {
	if quota <= 0 {
		quota = DefaultQuota
	}
	return &FileStore{path: path, quota: quota}
}

// Path returns the document location
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the document from disk
func (s *FileStore) Load() (Document, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Document{}, false, nil
		}
		return Document{}, false, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	var doc Document
	if err := sonic.ConfigStd.Unmarshal(data, &doc); err != nil {
		return Document{}, false, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	if doc.Version > DocumentVersion {
		return Document{}, false, fmt.Errorf("%s was written by a newer taskmap (format %d, supported %d)", s.path, doc.Version, DocumentVersion)
	}
	return doc, true, nil
}

// Save encodes the document and replaces the file atomically
func (s *FileStore) Save(doc Document) error {
	if doc.Version == 0 {
		doc.Version = DocumentVersion
	}
	data, err := sonic.ConfigStd.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	if size := int64(len(data)); size > s.quota {
		return tmerrors.NewStorageExceededError(size, s.quota)
	}
	return writeFileAtomic(s.path, data, 0600)
}

// writeFileAtomic writes data to a temp file next to path and renames it into place,
// so readers never observe a partial document
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	committed = true
	return nil
}
