package content

import "testing"

func TestNewLevelTable_Validation(t *testing.T) {
	tests := []struct {
		name string
		defs []LevelDefinition
	}{
		{"empty", nil},
		{"first level not at zero", []LevelDefinition{{Level: 1, XPRequired: 50, Title: "a"}}},
		{"levels not ascending", []LevelDefinition{
			{Level: 1, XPRequired: 0, Title: "a"},
			{Level: 1, XPRequired: 100, Title: "b"},
		}},
		{"thresholds not increasing", []LevelDefinition{
			{Level: 1, XPRequired: 0, Title: "a"},
			{Level: 2, XPRequired: 0, Title: "b"},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewLevelTable(tt.defs); err == nil {
				t.Errorf("NewLevelTable(%v) succeeded, want error", tt.defs)
			}
		})
	}
}

func TestLevelTable_ForXP(t *testing.T) {
	table, err := NewLevelTable(DefaultLevels())
	if err != nil {
		t.Fatalf("NewLevelTable() error: %v", err)
	}

	tests := []struct {
		xp        int
		wantLevel int
	}{
		{0, 1},
		{99, 1},
		{100, 2}, // thresholds are inclusive lower bounds
		{101, 2},
		{249, 2},
		{250, 3},
		{750, 5},
		{4000, 10},
		{1_000_000, 10}, // no cap past the top level
	}
	for _, tt := range tests {
		if got := table.ForXP(tt.xp); got.Level != tt.wantLevel {
			t.Errorf("ForXP(%d).Level = %d, want %d", tt.xp, got.Level, tt.wantLevel)
		}
	}
}

// ForXP must agree with a naive highest-qualifying-level scan for every
// xp around the thresholds.
func TestLevelTable_ForXP_MatchesLinearScan(t *testing.T) {
	defs := DefaultLevels()
	table, err := NewLevelTable(defs)
	if err != nil {
		t.Fatalf("NewLevelTable() error: %v", err)
	}

	naive := func(xp int) int {
		level := defs[0].Level
		for _, d := range defs {
			if xp >= d.XPRequired {
				level = d.Level
			}
		}
		return level
	}

	for xp := 0; xp <= defs[len(defs)-1].XPRequired+100; xp++ {
		if got, want := table.ForXP(xp).Level, naive(xp); got != want {
			t.Fatalf("ForXP(%d).Level = %d, want %d", xp, got, want)
		}
	}
}

func TestLevelTable_ForXP_TitleMatchesLevel(t *testing.T) {
	table, err := NewLevelTable(DefaultLevels())
	if err != nil {
		t.Fatalf("NewLevelTable() error: %v", err)
	}

	for _, xp := range []int{0, 120, 600, 999, 5000} {
		got := table.ForXP(xp)
		def, ok := table.ByLevel(got.Level)
		if !ok {
			t.Fatalf("ByLevel(%d) not found", got.Level)
		}
		if got.Title != def.Title {
			t.Errorf("ForXP(%d).Title = %q, want %q", xp, got.Title, def.Title)
		}
	}
}

func TestLevelTable_First(t *testing.T) {
	table, err := NewLevelTable(DefaultLevels())
	if err != nil {
		t.Fatalf("NewLevelTable() error: %v", err)
	}
	first := table.First()
	if first.Level != 1 || first.XPRequired != 0 {
		t.Errorf("First() = %+v, want level 1 at 0 XP", first)
	}
}
