package progression

// EventType classifies progression events.
type EventType string

const (
	EventXPGranted           EventType = "xp_granted"
	EventLevelUp             EventType = "level_up"
	EventGameCompleted       EventType = "game_completed"
	EventAchievementUnlocked EventType = "achievement_unlocked"
	EventStreakStarted       EventType = "streak_started"
	EventStreakExtended      EventType = "streak_extended"
	EventStreakReset         EventType = "streak_reset"
)

// Event describes one observable outcome of a store mutation. Mutations
// return the full cascade in order (an achievement unlock is followed by
// the XP grant it caused, and so on), so callers and tests can assert the
// chain deterministically instead of relying on hidden nested side effects.
type Event struct {
	Type          EventType `json:"type"`
	Amount        int       `json:"amount,omitempty"`  // xp_granted: XP delta
	TotalXP       int       `json:"totalXp,omitempty"` // xp_granted: XP after the grant
	Level         int       `json:"level,omitempty"`   // level_up
	LevelTitle    string    `json:"levelTitle,omitempty"`
	GameID        string    `json:"gameId,omitempty"`
	AchievementID string    `json:"achievementId,omitempty"`
	Streak        int       `json:"streak,omitempty"` // streak_* events: streak after the change
}
