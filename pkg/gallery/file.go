package gallery

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/matzehuels/infographic/pkg/errors"
)

// FileStore is a file-based gallery.
// Entries are stored as JSON files named by ID.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// DefaultDir returns the gallery directory under the user's config
// directory.
func DefaultDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get config dir: %w", err)
	}
	return filepath.Join(dir, "infographic", "gallery"), nil
}

// NewFileStore creates a file-based gallery.
// If baseDir is empty, DefaultDir is used.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		baseDir = dir
	}
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, fmt.Errorf("create gallery dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) entryPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

func (s *FileStore) Get(_ context.Context, id string) (*Entry, error) {
	if err := errors.ValidateEntryID(id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read(s.entryPath(id), id)
}

func (s *FileStore) read(path, id string) (*Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, notFound(id)
		}
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "read gallery entry")
	}
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "parse gallery entry %s", id)
	}
	return &e, nil
}

func (s *FileStore) Save(_ context.Context, e *Entry) error {
	if err := validate(e); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "marshal gallery entry")
	}

	tmp, err := os.CreateTemp(s.baseDir, ".entry-*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write gallery entry")
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(errors.ErrCodeStorage, err, "write gallery entry")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write gallery entry")
	}
	if err := os.Rename(tmp.Name(), s.entryPath(e.ID)); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write gallery entry")
	}
	return nil
}

func (s *FileStore) List(context.Context) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	files, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "read gallery dir")
	}
	var out []*Entry
	for _, f := range files {
		name := f.Name()
		if f.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		id := name[:len(name)-len(".json")]
		e, err := s.read(filepath.Join(s.baseDir, name), id)
		if err != nil {
			// Unreadable entries are skipped; Get still reports them.
			continue
		}
		out = append(out, e)
	}
	sortEntries(out)
	return out, nil
}

func (s *FileStore) Delete(_ context.Context, id string) error {
	if err := errors.ValidateEntryID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.entryPath(id)); err != nil {
		if os.IsNotExist(err) {
			return notFound(id)
		}
		return errors.Wrap(errors.ErrCodeStorage, err, "remove gallery entry")
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the base directory for entry files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
