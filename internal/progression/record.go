package progression

// DateLayout is the calendar-date format used for streak tracking.
// Dates are compared as whole days, never as timestamps.
const DateLayout = "2006-01-02"

// Record is the full persisted progression state for one user identity.
// CompletedGames and EarnedAchievements are sets kept as slices in first-
// earned order; they only grow until an explicit reset. Level and
// LevelTitle are derived from XP and recomputed on every XP change, never
// stored inconsistently with it.
type Record struct {
	UserID             string   `json:"userId,omitempty"`
	DisplayName        string   `json:"displayName"`
	XP                 int      `json:"xp"`
	Level              int      `json:"level"`
	LevelTitle         string   `json:"levelTitle"`
	CompletedGames     []string `json:"completedGames"`
	EarnedAchievements []string `json:"earnedAchievements"`
	LastLoginDate      string   `json:"lastLoginDate,omitempty"` // YYYY-MM-DD
	LoginStreak        int      `json:"loginStreak"`
}

// HasCompleted reports whether gameID is in the completed-games set.
func (r *Record) HasCompleted(gameID string) bool {
	for _, id := range r.CompletedGames {
		if id == gameID {
			return true
		}
	}
	return false
}

// HasAchievement reports whether achievementID has been earned.
func (r *Record) HasAchievement(achievementID string) bool {
	for _, id := range r.EarnedAchievements {
		if id == achievementID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy safe for the caller to retain.
func (r *Record) Clone() *Record {
	cp := *r
	cp.CompletedGames = make([]string, len(r.CompletedGames))
	copy(cp.CompletedGames, r.CompletedGames)
	cp.EarnedAchievements = make([]string, len(r.EarnedAchievements))
	copy(cp.EarnedAchievements, r.EarnedAchievements)
	return &cp
}

// initSets ensures set fields are non-nil after deserialization so an
// empty record round-trips as empty collections, not null.
func (r *Record) initSets() {
	if r.CompletedGames == nil {
		r.CompletedGames = []string{}
	}
	if r.EarnedAchievements == nil {
		r.EarnedAchievements = []string{}
	}
}
