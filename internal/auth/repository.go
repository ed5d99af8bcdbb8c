package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/LegendaryTyan/VKR/internal/progression"
)

const sessionFileName = "session.json"

// SessionRepository persists the remember-me session snapshot. Clear
// removes any stored snapshot; Load returns (nil, nil) when none exists.
type SessionRepository interface {
	Load() (*SessionRecord, error)
	Save(*SessionRecord) error
	Clear() error
}

// FileSessionRepository stores the session snapshot next to the
// progression record, with the same atomic-write discipline.
type FileSessionRepository struct {
	dir string
}

// NewFileSessionRepository creates a repository rooted at dir, defaulting
// to the shared state directory when dir is empty.
func NewFileSessionRepository(dir string) *FileSessionRepository {
	if dir == "" {
		dir = progression.DefaultStateDir()
	}
	return &FileSessionRepository{dir: dir}
}

// Path returns the full path to the session file.
func (r *FileSessionRepository) Path() string {
	return filepath.Join(r.dir, sessionFileName)
}

// Load reads the stored session snapshot, or (nil, nil) if absent.
func (r *FileSessionRepository) Load() (*SessionRecord, error) {
	data, err := os.ReadFile(r.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading session record: %w", err)
	}

	var rec SessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parsing session record: %w", err)
	}
	return &rec, nil
}

// Save writes the snapshot atomically.
func (r *FileSessionRepository) Save(rec *SessionRecord) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling session record: %w", err)
	}
	data = append(data, '\n')
	return progression.WriteStateFile(r.dir, r.Path(), data)
}

// Clear deletes the stored snapshot. Missing file is not an error.
func (r *FileSessionRepository) Clear() error {
	if err := os.Remove(r.Path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session record: %w", err)
	}
	return nil
}
