package content

import (
	"fmt"
	"sort"
)

// LevelDefinition is one row of the level table: reaching XPRequired
// total experience puts the player at Level with the given display title.
type LevelDefinition struct {
	Level      int    `json:"level" yaml:"level"`
	XPRequired int    `json:"xpRequired" yaml:"xp_required"`
	Title      string `json:"title" yaml:"title"`
}

// LevelTable is the immutable, sorted progression ladder. Thresholds are
// inclusive lower bounds: a player with exactly XPRequired experience is
// at that level.
type LevelTable struct {
	levels []LevelDefinition
}

// NewLevelTable validates and wraps the given definitions. Entries must be
// sorted ascending by level with strictly increasing XP thresholds, and the
// first level must start at 0 XP so every xp >= 0 maps to a level.
func NewLevelTable(defs []LevelDefinition) (*LevelTable, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("level table is empty")
	}
	if defs[0].XPRequired != 0 {
		return nil, fmt.Errorf("level %d: first level must require 0 XP, got %d", defs[0].Level, defs[0].XPRequired)
	}
	for i := 1; i < len(defs); i++ {
		if defs[i].Level <= defs[i-1].Level {
			return nil, fmt.Errorf("level %d: levels must be strictly ascending", defs[i].Level)
		}
		if defs[i].XPRequired <= defs[i-1].XPRequired {
			return nil, fmt.Errorf("level %d: XP thresholds must be strictly increasing", defs[i].Level)
		}
	}
	levels := make([]LevelDefinition, len(defs))
	copy(levels, defs)
	return &LevelTable{levels: levels}, nil
}

// ForXP returns the highest level whose threshold is met by xp.
// Total over xp >= 0; values below every threshold fall back to the
// first entry.
func (t *LevelTable) ForXP(xp int) LevelDefinition {
	// First index whose threshold exceeds xp; the answer is the entry
	// just before it.
	i := sort.Search(len(t.levels), func(i int) bool {
		return t.levels[i].XPRequired > xp
	})
	if i == 0 {
		return t.levels[0]
	}
	return t.levels[i-1]
}

// ByLevel returns the definition for an exact level number.
func (t *LevelTable) ByLevel(level int) (LevelDefinition, bool) {
	for _, l := range t.levels {
		if l.Level == level {
			return l, true
		}
	}
	return LevelDefinition{}, false
}

// First returns the lowest level entry (the starting level).
func (t *LevelTable) First() LevelDefinition {
	return t.levels[0]
}

// All returns a copy of every level definition in ascending order.
func (t *LevelTable) All() []LevelDefinition {
	out := make([]LevelDefinition, len(t.levels))
	copy(out, t.levels)
	return out
}

// DefaultLevels is the built-in progression ladder used when no levels
// file is configured.
func DefaultLevels() []LevelDefinition {
	return []LevelDefinition{
		{Level: 1, XPRequired: 0, Title: "Новичок"},
		{Level: 2, XPRequired: 100, Title: "Стажёр"},
		{Level: 3, XPRequired: 250, Title: "Специалист"},
		{Level: 4, XPRequired: 500, Title: "Профессионал"},
		{Level: 5, XPRequired: 750, Title: "Эксперт"},
		{Level: 6, XPRequired: 1100, Title: "Мастер"},
		{Level: 7, XPRequired: 1500, Title: "Наставник"},
		{Level: 8, XPRequired: 2200, Title: "Магнат"},
		{Level: 9, XPRequired: 3000, Title: "Стратег"},
		{Level: 10, XPRequired: 4000, Title: "Бизнес-гуру"},
	}
}
