package content

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewAchievementCatalog_Validation(t *testing.T) {
	tests := []struct {
		name string
		defs []AchievementDefinition
	}{
		{"empty id", []AchievementDefinition{{ID: "", XP: 10}}},
		{"duplicate id", []AchievementDefinition{{ID: "a", XP: 10}, {ID: "a", XP: 20}}},
		{"negative xp", []AchievementDefinition{{ID: "a", XP: -1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewAchievementCatalog(tt.defs); err == nil {
				t.Error("NewAchievementCatalog() succeeded, want error")
			}
		})
	}
}

func TestAchievementCatalog_ByID(t *testing.T) {
	c, err := NewAchievementCatalog(DefaultAchievements())
	if err != nil {
		t.Fatalf("NewAchievementCatalog() error: %v", err)
	}

	d, ok := c.ByID(AchievementFirstGame)
	if !ok {
		t.Fatalf("ByID(%q) not found", AchievementFirstGame)
	}
	if d.XP != 50 {
		t.Errorf("first-game XP = %d, want 50", d.XP)
	}

	if _, ok := c.ByID("no-such-achievement"); ok {
		t.Error("ByID(no-such-achievement) found, want miss")
	}
}

func TestGameCatalog_Defaults(t *testing.T) {
	c, err := NewGameCatalog(DefaultGames())
	if err != nil {
		t.Fatalf("NewGameCatalog() error: %v", err)
	}
	if got := len(c.All()); got != 4 {
		t.Fatalf("len(All()) = %d, want 4", got)
	}
	g, ok := c.ByID("market-simulator")
	if !ok {
		t.Fatal("ByID(market-simulator) not found")
	}
	if g.XP != 200 {
		t.Errorf("market-simulator XP = %d, want 200", g.XP)
	}
}

func TestLoad_Defaults(t *testing.T) {
	ct, err := Load("", "", "")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if ct.Levels.First().Title != "Новичок" {
		t.Errorf("first level title = %q, want Новичок", ct.Levels.First().Title)
	}
	if got := len(ct.Achievements.All()); got != 7 {
		t.Errorf("len(achievements) = %d, want 7", got)
	}
}

// Threshold and reward changes are content edits: Load picks up a YAML
// override without any store involvement.
func TestLoad_YAMLOverride(t *testing.T) {
	dir := t.TempDir()
	levelsPath := filepath.Join(dir, "levels.yaml")
	levelsYAML := `
- level: 1
  xp_required: 0
  title: Bronze
- level: 2
  xp_required: 10
  title: Silver
`
	if err := os.WriteFile(levelsPath, []byte(levelsYAML), 0o644); err != nil {
		t.Fatalf("writing levels file: %v", err)
	}

	ct, err := Load(levelsPath, "", "")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got := ct.Levels.ForXP(10); got.Level != 2 || got.Title != "Silver" {
		t.Errorf("ForXP(10) = %+v, want level 2 Silver", got)
	}
	if got := len(ct.Levels.All()); got != 2 {
		t.Errorf("len(levels) = %d, want 2", got)
	}
}

func TestLoad_InvalidOverride(t *testing.T) {
	dir := t.TempDir()
	levelsPath := filepath.Join(dir, "levels.yaml")
	// First level must start at 0 XP.
	levelsYAML := `
- level: 1
  xp_required: 100
  title: Broken
`
	if err := os.WriteFile(levelsPath, []byte(levelsYAML), 0o644); err != nil {
		t.Fatalf("writing levels file: %v", err)
	}
	if _, err := Load(levelsPath, "", ""); err == nil {
		t.Error("Load() succeeded with invalid level table, want error")
	}
}
