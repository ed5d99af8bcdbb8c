package progression

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS progression (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	user_id TEXT NOT NULL DEFAULT '',
	display_name TEXT NOT NULL DEFAULT '',
	xp INTEGER NOT NULL DEFAULT 0,
	level INTEGER NOT NULL DEFAULT 1,
	level_title TEXT NOT NULL DEFAULT '',
	completed_games TEXT NOT NULL DEFAULT '[]',
	earned_achievements TEXT NOT NULL DEFAULT '[]',
	last_login_date TEXT NOT NULL DEFAULT '',
	login_streak INTEGER NOT NULL DEFAULT 0
)`

type progressionRow struct {
	UserID             string `db:"user_id"`
	DisplayName        string `db:"display_name"`
	XP                 int    `db:"xp"`
	Level              int    `db:"level"`
	LevelTitle         string `db:"level_title"`
	CompletedGames     string `db:"completed_games"`
	EarnedAchievements string `db:"earned_achievements"`
	LastLoginDate      string `db:"last_login_date"`
	LoginStreak        int    `db:"login_streak"`
}

// SQLiteRepository keeps the progression record in a single-row SQLite
// table. The set fields are stored as JSON arrays so an empty set
// round-trips as empty.
type SQLiteRepository struct {
	db *sqlx.DB
}

// OpenSQLite opens (creating if needed) the database at path and ensures
// the schema exists.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("creating state dir: %w", err)
		}
	}

	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	// Single writer; sqlite has no use for a bigger pool here.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

// Close releases the underlying database handle.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Load reads the record, or (nil, nil) when none has been saved yet.
func (r *SQLiteRepository) Load() (*Record, error) {
	var row progressionRow
	err := r.db.Get(&row, "SELECT user_id, display_name, xp, level, level_title, completed_games, earned_achievements, last_login_date, login_streak FROM progression WHERE id = 1")
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading progression record: %w", err)
	}

	rec := &Record{
		UserID:        row.UserID,
		DisplayName:   row.DisplayName,
		XP:            row.XP,
		Level:         row.Level,
		LevelTitle:    row.LevelTitle,
		LastLoginDate: row.LastLoginDate,
		LoginStreak:   row.LoginStreak,
	}
	if err := json.Unmarshal([]byte(row.CompletedGames), &rec.CompletedGames); err != nil {
		return nil, fmt.Errorf("parsing completed games: %w", err)
	}
	if err := json.Unmarshal([]byte(row.EarnedAchievements), &rec.EarnedAchievements); err != nil {
		return nil, fmt.Errorf("parsing earned achievements: %w", err)
	}
	rec.initSets()
	return rec, nil
}

// Save upserts the single record row.
func (r *SQLiteRepository) Save(rec *Record) error {
	games, err := json.Marshal(rec.CompletedGames)
	if err != nil {
		return fmt.Errorf("marshaling completed games: %w", err)
	}
	achievements, err := json.Marshal(rec.EarnedAchievements)
	if err != nil {
		return fmt.Errorf("marshaling earned achievements: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO progression (id, user_id, display_name, xp, level, level_title, completed_games, earned_achievements, last_login_date, login_streak)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			display_name = excluded.display_name,
			xp = excluded.xp,
			level = excluded.level,
			level_title = excluded.level_title,
			completed_games = excluded.completed_games,
			earned_achievements = excluded.earned_achievements,
			last_login_date = excluded.last_login_date,
			login_streak = excluded.login_streak`,
		rec.UserID, rec.DisplayName, rec.XP, rec.Level, rec.LevelTitle,
		string(games), string(achievements), rec.LastLoginDate, rec.LoginStreak)
	if err != nil {
		return fmt.Errorf("saving progression record: %w", err)
	}
	return nil
}
