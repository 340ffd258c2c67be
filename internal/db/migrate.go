package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillEntryCalendar(db); err != nil {
		return fmt.Errorf("backfilling entry calendar fields: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS habits (
		id           TEXT PRIMARY KEY,
		user_id      TEXT NOT NULL,
		name         TEXT NOT NULL,
		schedule     TEXT NOT NULL,
		kind         TEXT NOT NULL CHECK(kind IN ('timed','checkmark')),
		priority     TEXT NOT NULL DEFAULT 'medium'
		             CHECK(priority IN ('high','medium','low')),
		goal_hours   INTEGER NOT NULL DEFAULT 0,
		goal_minutes INTEGER NOT NULL DEFAULT 0 CHECK(goal_minutes BETWEEN 0 AND 59),
		target       INTEGER NOT NULL DEFAULT 0,
		streak       INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_habits_user ON habits(user_id)`,

	`CREATE TABLE IF NOT EXISTS habit_entries (
		habit_id    TEXT NOT NULL REFERENCES habits(id) ON DELETE CASCADE,
		day_key     TEXT NOT NULL,
		status      TEXT NOT NULL DEFAULT 'incomplete'
		            CHECK(status IN ('incomplete','complete','skipped','failed')),
		value       INTEGER NOT NULL DEFAULT 0 CHECK(value >= 0),
		recorded_at TEXT NOT NULL,
		PRIMARY KEY (habit_id, day_key)
	)`,

	`CREATE TABLE IF NOT EXISTS quest_templates (
		id                 TEXT PRIMARY KEY,
		name               TEXT NOT NULL,
		reward             INTEGER NOT NULL CHECK(reward >= 0),
		target             INTEGER NOT NULL CHECK(target > 0),
		related_habit_type TEXT NOT NULL
		                   CHECK(related_habit_type IN ('timed','checkmark','any_completion')),
		active             INTEGER NOT NULL DEFAULT 1
	)`,

	// Seed default quest catalog
	`INSERT OR IGNORE INTO quest_templates (id, name, reward, target, related_habit_type) VALUES
		('focus-30',   'Log 30 focused minutes',  10, 30,  'timed'),
		('focus-90',   'Log 90 focused minutes',  25, 90,  'timed'),
		('deep-180',   'Three hours of deep work', 40, 180, 'timed'),
		('checks-3',   'Tick off 3 checkmarks',   10, 3,   'checkmark'),
		('checks-8',   'Tick off 8 checkmarks',   20, 8,   'checkmark'),
		('finish-1',   'Finish any habit',        5,  1,   'any_completion'),
		('finish-3',   'Finish three habits',     20, 3,   'any_completion')`,

	`CREATE TABLE IF NOT EXISTS daily_quest_sets (
		id          TEXT PRIMARY KEY,
		user_id     TEXT NOT NULL,
		day_key     TEXT NOT NULL,
		is_complete INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL,
		UNIQUE (user_id, day_key)
	)`,

	`CREATE TABLE IF NOT EXISTS quest_slots (
		set_id      TEXT NOT NULL REFERENCES daily_quest_sets(id) ON DELETE CASCADE,
		position    INTEGER NOT NULL,
		template_id TEXT NOT NULL REFERENCES quest_templates(id),
		progress    INTEGER NOT NULL DEFAULT 0,
		is_complete INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (set_id, position)
	)`,

	`CREATE TABLE IF NOT EXISTS rooms (
		user_id    TEXT PRIMARY KEY,
		coins      INTEGER NOT NULL DEFAULT 0,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS ledger_entries (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		amount     INTEGER NOT NULL,
		reason     TEXT NOT NULL CHECK(reason IN ('quest_slot','set_bonus')),
		source_id  TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_ledger_user_created ON ledger_entries(user_id, created_at)`,

	// Optimistic concurrency counter on habits
	`ALTER TABLE habits ADD COLUMN version INTEGER NOT NULL DEFAULT 0`,

	// Derived calendar fields on entries, filled by migrateBackfillEntryCalendar
	`ALTER TABLE habit_entries ADD COLUMN weekday TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE habit_entries ADD COLUMN month INTEGER NOT NULL DEFAULT 0`,
	`ALTER TABLE habit_entries ADD COLUMN year INTEGER NOT NULL DEFAULT 0`,

	// Bonus claim flag on quest sets
	`ALTER TABLE daily_quest_sets ADD COLUMN bonus_claimed INTEGER NOT NULL DEFAULT 0`,
}

// migrateBackfillEntryCalendar derives weekday, month and year from day_key
// for entries written before those columns existed. Idempotent: only rows
// with year = 0 are touched.
func migrateBackfillEntryCalendar(db *sql.DB) error {
	ctx := context.Background()

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM habit_entries WHERE year = 0`).Scan(&count); err != nil {
		return fmt.Errorf("checking habit_entries year: %w", err)
	}
	if count == 0 {
		return nil
	}

	query := `UPDATE habit_entries SET
		year  = CAST(strftime('%Y', day_key) AS INTEGER),
		month = CAST(strftime('%m', day_key) AS INTEGER),
		weekday = CASE strftime('%w', day_key)
			WHEN '0' THEN 'Sunday'
			WHEN '1' THEN 'Monday'
			WHEN '2' THEN 'Tuesday'
			WHEN '3' THEN 'Wednesday'
			WHEN '4' THEN 'Thursday'
			WHEN '5' THEN 'Friday'
			ELSE 'Saturday'
		END
		WHERE year = 0`
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("updating habit_entries calendar fields: %w", err)
	}
	return nil
}
