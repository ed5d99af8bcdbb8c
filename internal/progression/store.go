package progression

import (
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/LegendaryTyan/VKR/internal/content"
)

// Repository persists the single per-device progression record. Load
// returns (nil, nil) when no record has ever been saved. Implementations
// must round-trip every field exactly, including empty sets as empty.
type Repository interface {
	Load() (*Record, error)
	Save(*Record) error
}

// EventSink receives the event cascade produced by each mutation, after
// the mutation has fully committed. Dispatched outside the store lock.
type EventSink func([]Event)

// Store owns the progression record for the currently bound user and is
// the record's only writer. All operations are atomic read-modify-write
// transitions; readers get immutable snapshots. Persistence is
// fire-and-forget after each mutation: a failed save is logged and the
// in-memory state stays authoritative.
type Store struct {
	mu      sync.Mutex
	repo    Repository
	levels  *content.LevelTable
	catalog *content.AchievementCatalog
	rec     *Record
	now     func() time.Time
	sink    EventSink
	log     zerolog.Logger
}

// NewStore loads the persisted record (falling back to a fresh one) and
// returns a ready store.
func NewStore(repo Repository, levels *content.LevelTable, catalog *content.AchievementCatalog, log zerolog.Logger) (*Store, error) {
	s := &Store{
		repo:    repo,
		levels:  levels,
		catalog: catalog,
		now:     time.Now,
		log:     log,
	}
	rec, err := repo.Load()
	if err != nil {
		return nil, err
	}
	if rec == nil {
		rec = s.freshRecord()
	}
	rec.initSets()
	s.rec = rec
	return s, nil
}

// OnEvents registers the sink invoked with each mutation's event cascade.
// Must be called before the store starts serving.
func (s *Store) OnEvents(sink EventSink) {
	s.sink = sink
}

// Record returns an immutable snapshot of the current progression state.
func (s *Store) Record() *Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.Clone()
}

// Initialize binds the record to userID. A different identity (including
// none) resets the record to defaults before binding; the same identity
// leaves it untouched, so re-login resumes rather than restarts. Either
// way the login streak is checked afterwards. Idempotent per identity and
// safe on every login.
func (s *Store) Initialize(userID, displayName string) []Event {
	s.mu.Lock()
	if s.rec.UserID != userID {
		s.rec = s.freshRecord()
		s.rec.UserID = userID
		s.rec.DisplayName = displayName
	}
	events := s.checkStreakLocked()
	rec := s.rec.Clone()
	s.mu.Unlock()

	s.persist(rec)
	s.dispatch(events)
	return events
}

// SetDisplayName renames the bound user. Cosmetic only; an empty name
// (after trimming) is silently ignored.
func (s *Store) SetDisplayName(name string) {
	if strings.TrimSpace(name) == "" {
		return
	}
	s.mu.Lock()
	s.rec.DisplayName = name
	rec := s.rec.Clone()
	s.mu.Unlock()

	s.persist(rec)
}

// AddXP grants experience and recomputes level and title. Negative
// amounts are rejected. There is no upper cap.
func (s *Store) AddXP(amount int) []Event {
	s.mu.Lock()
	events := s.addXPLocked(amount)
	rec := s.rec.Clone()
	s.mu.Unlock()

	s.persist(rec)
	s.dispatch(events)
	return events
}

// CompleteGame records gameID as completed. The very first completed game
// ever also unlocks the first-game achievement. Idempotent: repeat
// completions of the same game change nothing.
func (s *Store) CompleteGame(gameID string) []Event {
	s.mu.Lock()
	events := s.completeGameLocked(gameID)
	rec := s.rec.Clone()
	s.mu.Unlock()

	s.persist(rec)
	s.dispatch(events)
	return events
}

// EarnAchievement unlocks achievementID and grants its catalog XP reward,
// exactly once per id. An id without a catalog entry is recorded with no
// XP; the catalog is trusted static content, not user input.
func (s *Store) EarnAchievement(achievementID string) []Event {
	s.mu.Lock()
	events := s.earnAchievementLocked(achievementID)
	rec := s.rec.Clone()
	s.mu.Unlock()

	s.persist(rec)
	s.dispatch(events)
	return events
}

// CheckLoginStreak advances the daily login streak against the current
// local calendar date. At most one transition per distinct day.
func (s *Store) CheckLoginStreak() []Event {
	s.mu.Lock()
	events := s.checkStreakLocked()
	rec := s.rec.Clone()
	s.mu.Unlock()

	s.persist(rec)
	s.dispatch(events)
	return events
}

// ResetProgress starts game progress over: XP, level, both sets and the
// streak counter return to defaults. UserID, display name and
// LastLoginDate are preserved, so the next streak check sees the last
// real login and restarts at 1 after a gap.
func (s *Store) ResetProgress() {
	s.mu.Lock()
	first := s.levels.First()
	s.rec.XP = 0
	s.rec.Level = first.Level
	s.rec.LevelTitle = first.Title
	s.rec.CompletedGames = []string{}
	s.rec.EarnedAchievements = []string{}
	s.rec.LoginStreak = 0
	rec := s.rec.Clone()
	s.mu.Unlock()

	s.persist(rec)
}

func (s *Store) addXPLocked(amount int) []Event {
	if amount < 0 {
		s.log.Warn().Int("amount", amount).Msg("rejected negative XP delta")
		return nil
	}
	prevLevel := s.rec.Level
	s.rec.XP += amount
	def := s.levels.ForXP(s.rec.XP)
	s.rec.Level = def.Level
	s.rec.LevelTitle = def.Title

	var events []Event
	if amount > 0 {
		events = append(events, Event{Type: EventXPGranted, Amount: amount, TotalXP: s.rec.XP})
	}
	if def.Level > prevLevel {
		events = append(events, Event{Type: EventLevelUp, Level: def.Level, LevelTitle: def.Title})
		// Level-gated achievements are an extension point, intentionally
		// not wired to any unlocks.
	}
	return events
}

func (s *Store) completeGameLocked(gameID string) []Event {
	if s.rec.HasCompleted(gameID) {
		return nil
	}
	s.rec.CompletedGames = append(s.rec.CompletedGames, gameID)
	events := []Event{{Type: EventGameCompleted, GameID: gameID}}
	if len(s.rec.CompletedGames) == 1 {
		events = append(events, s.earnAchievementLocked(content.AchievementFirstGame)...)
	}
	return events
}

func (s *Store) earnAchievementLocked(achievementID string) []Event {
	if s.rec.HasAchievement(achievementID) {
		return nil
	}
	s.rec.EarnedAchievements = append(s.rec.EarnedAchievements, achievementID)
	events := []Event{{Type: EventAchievementUnlocked, AchievementID: achievementID}}
	if def, ok := s.catalog.ByID(achievementID); ok {
		events = append(events, s.addXPLocked(def.XP)...)
	}
	return events
}

func (s *Store) checkStreakLocked() []Event {
	today := s.now().Format(DateLayout)

	if s.rec.LastLoginDate == "" {
		s.rec.LastLoginDate = today
		s.rec.LoginStreak = 1
		return []Event{{Type: EventStreakStarted, Streak: 1}}
	}

	diff, ok := daysBetween(s.rec.LastLoginDate, today)
	if !ok {
		s.log.Warn().Str("lastLoginDate", s.rec.LastLoginDate).Msg("unparseable last login date, leaving streak untouched")
		return nil
	}

	switch {
	case diff == 0:
		// Same calendar day, nothing to do.
		return nil
	case diff == 1:
		s.rec.LoginStreak++
		s.rec.LastLoginDate = today
		events := []Event{{Type: EventStreakExtended, Streak: s.rec.LoginStreak}}
		// Exact-match triggers: a streak that jumps past 7 or 30 does
		// not retroactively unlock these.
		switch s.rec.LoginStreak {
		case 7:
			events = append(events, s.earnAchievementLocked(content.AchievementStreak7)...)
		case 30:
			events = append(events, s.earnAchievementLocked(content.AchievementStreak30)...)
		}
		return events
	case diff > 1:
		s.rec.LastLoginDate = today
		s.rec.LoginStreak = 1
		return []Event{{Type: EventStreakReset, Streak: 1}}
	default:
		// Clock moved backwards; leave the streak untouched.
		return nil
	}
}

func (s *Store) freshRecord() *Record {
	first := s.levels.First()
	return &Record{
		Level:              first.Level,
		LevelTitle:         first.Title,
		CompletedGames:     []string{},
		EarnedAchievements: []string{},
	}
}

func (s *Store) persist(rec *Record) {
	if err := s.repo.Save(rec); err != nil {
		s.log.Error().Err(err).Msg("failed to save progression record")
	}
}

func (s *Store) dispatch(events []Event) {
	if s.sink == nil || len(events) == 0 {
		return
	}
	s.sink(events)
}
