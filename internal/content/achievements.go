package content

import "fmt"

// Achievement IDs referenced by the progression engine itself. The rest of
// the catalog is plain content awarded by game-specific logic.
const (
	AchievementFirstGame = "first-game"
	AchievementStreak7   = "daily-streak-7"
	AchievementStreak30  = "daily-streak-30"
)

// AchievementDefinition describes one unlockable achievement. XP is the
// bonus experience granted once when the achievement is earned.
type AchievementDefinition struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Icon        string `json:"icon" yaml:"icon"`
	XP          int    `json:"xp" yaml:"xp"`
}

// AchievementCatalog is the immutable set of achievement definitions,
// indexed by id.
type AchievementCatalog struct {
	defs []AchievementDefinition
	byID map[string]AchievementDefinition
}

// NewAchievementCatalog validates the definitions (unique ids, non-negative
// XP rewards) and builds the lookup index.
func NewAchievementCatalog(defs []AchievementDefinition) (*AchievementCatalog, error) {
	byID := make(map[string]AchievementDefinition, len(defs))
	for _, d := range defs {
		if d.ID == "" {
			return nil, fmt.Errorf("achievement with empty id")
		}
		if _, dup := byID[d.ID]; dup {
			return nil, fmt.Errorf("duplicate achievement id %q", d.ID)
		}
		if d.XP < 0 {
			return nil, fmt.Errorf("achievement %q: negative XP reward %d", d.ID, d.XP)
		}
		byID[d.ID] = d
	}
	out := make([]AchievementDefinition, len(defs))
	copy(out, defs)
	return &AchievementCatalog{defs: out, byID: byID}, nil
}

// ByID looks up an achievement definition.
func (c *AchievementCatalog) ByID(id string) (AchievementDefinition, bool) {
	d, ok := c.byID[id]
	return d, ok
}

// All returns a copy of the catalog in declaration order.
func (c *AchievementCatalog) All() []AchievementDefinition {
	out := make([]AchievementDefinition, len(c.defs))
	copy(out, c.defs)
	return out
}

// DefaultAchievements is the built-in achievement catalog.
func DefaultAchievements() []AchievementDefinition {
	return []AchievementDefinition{
		{ID: AchievementFirstGame, Title: "Первые шаги", Description: "Завершите первую игру", Icon: "award", XP: 50},
		{ID: "quiz-master", Title: "Мастер викторин", Description: "Ответьте правильно на 10 вопросов подряд", Icon: "award", XP: 100},
		{ID: "negotiator", Title: "Переговорщик", Description: "Успешно завершите 5 сценариев переговоров", Icon: "award", XP: 150},
		{ID: "market-guru", Title: "Гуру рынка", Description: "Достигните прибыли в 1 000 000 в симуляторе рынка", Icon: "award", XP: 200},
		{ID: "resource-master", Title: "Мастер ресурсов", Description: "Достигните оптимального распределения ресурсов 3 раза подряд", Icon: "award", XP: 180},
		{ID: AchievementStreak7, Title: "Недельная серия", Description: "Заходите на платформу 7 дней подряд", Icon: "award", XP: 70},
		{ID: AchievementStreak30, Title: "Месячная серия", Description: "Заходите на платформу 30 дней подряд", Icon: "award", XP: 300},
	}
}
