package progression

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	recordFileName = "progress.json"
	appDirName     = "vkr"
)

// FileRepository stores the progression record as a JSON snapshot on disk,
// written atomically via temp-file-then-rename.
type FileRepository struct {
	dir string
}

// NewFileRepository creates a repository rooted at dir. The directory is
// created on the first Save. Pass an empty string to use the default XDG
// state path.
func NewFileRepository(dir string) *FileRepository {
	if dir == "" {
		dir = DefaultStateDir()
	}
	return &FileRepository{dir: dir}
}

// Path returns the full path to the record file.
func (r *FileRepository) Path() string {
	return filepath.Join(r.dir, recordFileName)
}

// Load reads the record from disk. A missing file yields (nil, nil):
// no record has been saved yet.
func (r *FileRepository) Load() (*Record, error) {
	data, err := os.ReadFile(r.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading progression record: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parsing progression record: %w", err)
	}
	rec.initSets()
	return &rec, nil
}

// Save writes the record atomically, creating the directory if needed.
func (r *FileRepository) Save(rec *Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling progression record: %w", err)
	}
	data = append(data, '\n')
	return WriteStateFile(r.dir, r.Path(), data)
}

// WriteStateFile writes data to path via a temp file in dir plus rename,
// so readers never observe a partial snapshot. Shared by every file-backed
// state repository.
func WriteStateFile(dir, path string, data []byte) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating state dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".state-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming state file: %w", err)
	}
	committed = true

	return nil
}

// DefaultStateDir returns ~/.local/state/vkr, respecting XDG_STATE_HOME
// if set.
func DefaultStateDir() string {
	if base := os.Getenv("XDG_STATE_HOME"); base != "" {
		return filepath.Join(base, appDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return filepath.Join(home, ".local", "state", appDirName)
}
