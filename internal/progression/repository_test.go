package progression

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestFileRepository_DefaultDir(t *testing.T) {
	r := NewFileRepository("")
	if r.dir == "" {
		t.Fatal("expected non-empty default dir")
	}
	if filepath.Base(r.dir) != appDirName {
		t.Errorf("expected dir to end with %q, got %q", appDirName, r.dir)
	}
}

func TestFileRepository_Path(t *testing.T) {
	r := NewFileRepository("/tmp/test-dir")
	want := "/tmp/test-dir/progress.json"
	if got := r.Path(); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestFileRepository_LoadMissing(t *testing.T) {
	r := NewFileRepository(t.TempDir())
	rec, err := r.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if rec != nil {
		t.Errorf("Load() = %+v, want nil for missing file", rec)
	}
}

func TestFileRepository_SaveAndLoad(t *testing.T) {
	r := NewFileRepository(t.TempDir())

	rec := &Record{
		UserID:             "1",
		DisplayName:        "Орлов Д.В.",
		XP:                 750,
		Level:              5,
		LevelTitle:         "Эксперт",
		CompletedGames:     []string{"business-quiz", "negotiation-scenarios"},
		EarnedAchievements: []string{"first-game", "daily-streak-7"},
		LastLoginDate:      "2024-06-15",
		LoginStreak:        7,
	}
	if err := r.Save(rec); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := r.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !reflect.DeepEqual(loaded, rec) {
		t.Errorf("Load() = %+v, want %+v", loaded, rec)
	}
}

// Empty sets must round-trip as empty JSON arrays, never null or absent.
func TestFileRepository_EmptySetsStayEmpty(t *testing.T) {
	r := NewFileRepository(t.TempDir())

	rec := &Record{
		UserID:             "2",
		Level:              1,
		LevelTitle:         "Новичок",
		CompletedGames:     []string{},
		EarnedAchievements: []string{},
	}
	if err := r.Save(rec); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	raw, err := os.ReadFile(r.Path())
	if err != nil {
		t.Fatalf("reading file: %v", err)
	}
	if strings.Contains(string(raw), "null") {
		t.Errorf("serialized record contains null: %s", raw)
	}

	loaded, err := r.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.CompletedGames == nil || loaded.EarnedAchievements == nil {
		t.Error("sets deserialized as nil, want empty slices")
	}
	if len(loaded.CompletedGames) != 0 || len(loaded.EarnedAchievements) != 0 {
		t.Errorf("sets not empty: %v %v", loaded.CompletedGames, loaded.EarnedAchievements)
	}
}

func TestFileRepository_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	r := NewFileRepository(dir)
	if err := os.WriteFile(r.Path(), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("writing corrupt file: %v", err)
	}
	if _, err := r.Load(); err == nil {
		t.Error("Load() succeeded on corrupt file, want error")
	}
}

// Save leaves no temp files behind and the file always holds a complete
// JSON document.
func TestFileRepository_AtomicOverwrite(t *testing.T) {
	dir := t.TempDir()
	r := NewFileRepository(dir)

	for i := 0; i < 5; i++ {
		rec := &Record{XP: i * 100, Level: 1, LevelTitle: "Новичок",
			CompletedGames: []string{}, EarnedAchievements: []string{}}
		if err := r.Save(rec); err != nil {
			t.Fatalf("Save() #%d error: %v", i, err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("dir has %d entries, want only the record file", len(entries))
	}

	raw, err := os.ReadFile(r.Path())
	if err != nil {
		t.Fatalf("reading file: %v", err)
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		t.Fatalf("file is not valid JSON: %v", err)
	}
	if rec.XP != 400 {
		t.Errorf("XP = %d, want last write 400", rec.XP)
	}
}
