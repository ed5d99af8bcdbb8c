package content

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Content bundles the static tables the progression engine consumes.
// Everything here is read-only after Load.
type Content struct {
	Levels       *LevelTable
	Achievements *AchievementCatalog
	Games        *GameCatalog
}

// Load builds the content tables. Each path is optional: an empty string
// selects the built-in defaults, a non-empty path must point to a YAML
// file holding a list of definitions. Changing thresholds or rewards is
// a content edit, never a code change.
func Load(levelsPath, achievementsPath, gamesPath string) (*Content, error) {
	levelDefs := DefaultLevels()
	if levelsPath != "" {
		if err := readYAML(levelsPath, &levelDefs); err != nil {
			return nil, fmt.Errorf("loading levels: %w", err)
		}
	}
	levels, err := NewLevelTable(levelDefs)
	if err != nil {
		return nil, fmt.Errorf("level table: %w", err)
	}

	achieveDefs := DefaultAchievements()
	if achievementsPath != "" {
		if err := readYAML(achievementsPath, &achieveDefs); err != nil {
			return nil, fmt.Errorf("loading achievements: %w", err)
		}
	}
	achievements, err := NewAchievementCatalog(achieveDefs)
	if err != nil {
		return nil, fmt.Errorf("achievement catalog: %w", err)
	}

	gameDefs := DefaultGames()
	if gamesPath != "" {
		if err := readYAML(gamesPath, &gameDefs); err != nil {
			return nil, fmt.Errorf("loading games: %w", err)
		}
	}
	games, err := NewGameCatalog(gameDefs)
	if err != nil {
		return nil, fmt.Errorf("game catalog: %w", err)
	}

	return &Content{Levels: levels, Achievements: achievements, Games: games}, nil
}

func readYAML(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, out)
}
