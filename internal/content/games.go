package content

import "fmt"

// GameDefinition describes one mini-game as the progression engine sees it:
// XP is the base reward for a perfect (score 100) completion. The game's
// internal rules live in the client; only the completion score crosses
// the boundary.
type GameDefinition struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Icon        string `json:"icon" yaml:"icon"`
	Color       string `json:"color" yaml:"color"`
	XP          int    `json:"xp" yaml:"xp"`
}

// GameCatalog is the immutable set of playable mini-games, indexed by id.
type GameCatalog struct {
	defs []GameDefinition
	byID map[string]GameDefinition
}

// NewGameCatalog validates the definitions and builds the lookup index.
func NewGameCatalog(defs []GameDefinition) (*GameCatalog, error) {
	byID := make(map[string]GameDefinition, len(defs))
	for _, d := range defs {
		if d.ID == "" {
			return nil, fmt.Errorf("game with empty id")
		}
		if _, dup := byID[d.ID]; dup {
			return nil, fmt.Errorf("duplicate game id %q", d.ID)
		}
		if d.XP < 0 {
			return nil, fmt.Errorf("game %q: negative base XP %d", d.ID, d.XP)
		}
		byID[d.ID] = d
	}
	out := make([]GameDefinition, len(defs))
	copy(out, defs)
	return &GameCatalog{defs: out, byID: byID}, nil
}

// ByID looks up a game definition.
func (c *GameCatalog) ByID(id string) (GameDefinition, bool) {
	d, ok := c.byID[id]
	return d, ok
}

// All returns a copy of the catalog in declaration order.
func (c *GameCatalog) All() []GameDefinition {
	out := make([]GameDefinition, len(c.defs))
	copy(out, c.defs)
	return out
}

// DefaultGames is the built-in mini-game catalog.
func DefaultGames() []GameDefinition {
	return []GameDefinition{
		{ID: "business-quiz", Title: "Бизнес-викторина", Description: "Проверьте свои знания в области бизнеса и экономики", Icon: "brain", Color: "#3366FF", XP: 100},
		{ID: "negotiation-scenarios", Title: "Сценарии переговоров", Description: "Отработайте навыки ведения переговоров в различных ситуациях", Icon: "message-circle", Color: "#FF6B6B", XP: 150},
		{ID: "market-simulator", Title: "Симулятор рынка", Description: "Управляйте виртуальной компанией и реагируйте на изменения рынка", Icon: "trending-up", Color: "#00E096", XP: 200},
		{ID: "resource-allocation", Title: "Распределение ресурсов", Description: "Оптимально распределите ограниченные ресурсы для максимальной прибыли", Icon: "pie-chart", Color: "#FFAA00", XP: 180},
	}
}
