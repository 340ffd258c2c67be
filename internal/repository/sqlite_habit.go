package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/alexanderramin/habitquest/internal/db"
	"github.com/alexanderramin/habitquest/internal/domain"
)

// SQLiteHabitRepo implements HabitRepo using a SQLite database.
type SQLiteHabitRepo struct {
	db db.DBTX
}

// NewSQLiteHabitRepo creates a new SQLiteHabitRepo.
func NewSQLiteHabitRepo(conn db.DBTX) *SQLiteHabitRepo {
	return &SQLiteHabitRepo{db: conn}
}

const habitColumns = `id, user_id, name, schedule, kind, priority, goal_hours, goal_minutes,
	target, streak, version, created_at, updated_at`

func (r *SQLiteHabitRepo) Create(ctx context.Context, h *domain.Habit) error {
	query := `INSERT INTO habits (` + habitColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		h.ID,
		h.UserID,
		h.Name,
		h.Schedule.String(),
		string(h.Kind),
		string(h.Priority),
		h.GoalHours,
		h.GoalMinutes,
		h.Target,
		h.Streak,
		h.Version,
		formatTimestamp(h.CreatedAt),
		formatTimestamp(h.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting habit: %w", err)
	}
	for _, e := range h.Entries {
		if err := r.SaveEntry(ctx, h.ID, e); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteHabitRepo) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE id = ?`
	h, err := scanHabit(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("habit: %w", ErrNotFound)
		}
		return nil, err
	}

	entries, err := r.listEntries(ctx, `WHERE habit_id = ?`, id)
	if err != nil {
		return nil, err
	}
	h.Entries = entries[h.ID]
	return h, nil
}

func (r *SQLiteHabitRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE user_id = ? ORDER BY created_at, rowid`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing habits: %w", err)
	}

	var habits []*domain.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		habits = append(habits, h)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating habits: %w", err)
	}
	rows.Close()

	// Entries are loaded after the habit cursor is closed so a single
	// pinned connection never carries two open result sets.
	entries, err := r.listEntries(ctx,
		`WHERE habit_id IN (SELECT id FROM habits WHERE user_id = ?)`, userID)
	if err != nil {
		return nil, err
	}
	for _, h := range habits {
		h.Entries = entries[h.ID]
	}
	return habits, nil
}

func (r *SQLiteHabitRepo) Update(ctx context.Context, h *domain.Habit) error {
	query := `UPDATE habits SET name = ?, schedule = ?, kind = ?, priority = ?,
		goal_hours = ?, goal_minutes = ?, target = ?, streak = ?,
		version = version + 1, updated_at = ?
		WHERE id = ? AND version = ?`
	res, err := r.db.ExecContext(ctx, query,
		h.Name,
		h.Schedule.String(),
		string(h.Kind),
		string(h.Priority),
		h.GoalHours,
		h.GoalMinutes,
		h.Target,
		h.Streak,
		formatTimestamp(h.UpdatedAt),
		h.ID,
		h.Version,
	)
	if err != nil {
		return fmt.Errorf("updating habit: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking habit update: %w", err)
	}
	if n == 0 {
		var exists int
		err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM habits WHERE id = ?`, h.ID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("checking habit existence: %w", err)
		}
		if exists == 0 {
			return fmt.Errorf("habit %s: %w", h.ID, ErrNotFound)
		}
		return fmt.Errorf("habit %s at version %d: %w", h.ID, h.Version, ErrConflict)
	}
	h.Version++
	return nil
}

// SaveEntry upserts the entry for its day key. An existing row keeps its
// position in the habit's history.
func (r *SQLiteHabitRepo) SaveEntry(ctx context.Context, habitID string, e domain.DailyStatusEntry) error {
	query := `INSERT INTO habit_entries (habit_id, day_key, status, value, recorded_at, weekday, month, year)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(habit_id, day_key) DO UPDATE SET
			status = excluded.status,
			value = excluded.value,
			recorded_at = excluded.recorded_at,
			weekday = excluded.weekday,
			month = excluded.month,
			year = excluded.year`
	_, err := r.db.ExecContext(ctx, query,
		habitID,
		string(e.Key),
		string(e.Status),
		e.Value,
		formatTimestamp(e.Day),
		e.Weekday,
		e.Month,
		e.Year,
	)
	if err != nil {
		return fmt.Errorf("saving habit entry: %w", err)
	}
	return nil
}

func (r *SQLiteHabitRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM habits WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting habit: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("habit %s: %w", id, ErrNotFound)
	}
	return nil
}

// listEntries loads entries matching where, grouped by habit in insertion order.
func (r *SQLiteHabitRepo) listEntries(ctx context.Context, where string, args ...any) (map[string][]domain.DailyStatusEntry, error) {
	query := `SELECT habit_id, day_key, status, value, recorded_at, weekday, month, year
		FROM habit_entries ` + where + ` ORDER BY rowid`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing habit entries: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]domain.DailyStatusEntry)
	for rows.Next() {
		var habitID, key, status, recordedAt string
		var e domain.DailyStatusEntry
		if err := rows.Scan(&habitID, &key, &status, &e.Value, &recordedAt, &e.Weekday, &e.Month, &e.Year); err != nil {
			return nil, fmt.Errorf("scanning habit entry: %w", err)
		}
		e.Key = domain.DayKey(key)
		e.Status = domain.EntryStatus(status)
		if e.Day, err = parseTimestamp("recorded_at", recordedAt); err != nil {
			return nil, err
		}
		out[habitID] = append(out[habitID], e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating habit entries: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHabit(row rowScanner) (*domain.Habit, error) {
	var h domain.Habit
	var schedule, kind, priority, createdAt, updatedAt string
	err := row.Scan(
		&h.ID, &h.UserID, &h.Name, &schedule, &kind, &priority,
		&h.GoalHours, &h.GoalMinutes, &h.Target, &h.Streak, &h.Version,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning habit: %w", err)
	}

	h.Kind = domain.HabitKind(kind)
	h.Priority = domain.Priority(priority)
	if h.Schedule, err = domain.ParseSchedule(strings.Split(schedule, ",")); err != nil {
		return nil, fmt.Errorf("parsing schedule: %w", err)
	}
	if h.CreatedAt, err = parseTimestamp("created_at", createdAt); err != nil {
		return nil, err
	}
	if h.UpdatedAt, err = parseTimestamp("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &h, nil
}
