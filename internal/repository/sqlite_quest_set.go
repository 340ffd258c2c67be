package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/habitquest/internal/db"
	"github.com/alexanderramin/habitquest/internal/domain"
)

// SQLiteQuestSetRepo implements QuestSetRepo using a SQLite database.
type SQLiteQuestSetRepo struct {
	db db.DBTX
}

// NewSQLiteQuestSetRepo creates a new SQLiteQuestSetRepo.
func NewSQLiteQuestSetRepo(conn db.DBTX) *SQLiteQuestSetRepo {
	return &SQLiteQuestSetRepo{db: conn}
}

func (r *SQLiteQuestSetRepo) Create(ctx context.Context, s *domain.DailyQuestSet) error {
	query := `INSERT INTO daily_quest_sets (id, user_id, day_key, is_complete, bonus_claimed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.UserID,
		string(s.Day),
		boolToInt(s.IsComplete),
		boolToInt(s.BonusClaimed),
		formatTimestamp(s.CreatedAt),
		formatTimestamp(s.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting quest set: %w", err)
	}

	for _, slot := range s.Slots {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO quest_slots (set_id, position, template_id, progress, is_complete) VALUES (?, ?, ?, ?, ?)`,
			s.ID, slot.Position, slot.Template.ID, slot.Progress, boolToInt(slot.IsComplete),
		)
		if err != nil {
			return fmt.Errorf("inserting quest slot %d: %w", slot.Position, err)
		}
	}
	return nil
}

func (r *SQLiteQuestSetRepo) GetForDay(ctx context.Context, userID string, day domain.DayKey) (*domain.DailyQuestSet, error) {
	query := `SELECT id, user_id, day_key, is_complete, bonus_claimed, created_at, updated_at
		FROM daily_quest_sets WHERE user_id = ? AND day_key = ?`

	var s domain.DailyQuestSet
	var dayKey, createdAt, updatedAt string
	var isComplete, bonusClaimed int
	err := r.db.QueryRowContext(ctx, query, userID, string(day)).Scan(
		&s.ID, &s.UserID, &dayKey, &isComplete, &bonusClaimed, &createdAt, &updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("quest set for %s: %w", day, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning quest set: %w", err)
	}
	s.Day = domain.DayKey(dayKey)
	s.IsComplete = intToBool(isComplete)
	s.BonusClaimed = intToBool(bonusClaimed)
	if s.CreatedAt, err = parseTimestamp("created_at", createdAt); err != nil {
		return nil, err
	}
	if s.UpdatedAt, err = parseTimestamp("updated_at", updatedAt); err != nil {
		return nil, err
	}

	if s.Slots, err = r.listSlots(ctx, s.ID); err != nil {
		return nil, err
	}
	return &s, nil
}

// Save persists slot progress and the set's completion flags.
func (r *SQLiteQuestSetRepo) Save(ctx context.Context, s *domain.DailyQuestSet) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE daily_quest_sets SET is_complete = ?, bonus_claimed = ?, updated_at = ? WHERE id = ?`,
		boolToInt(s.IsComplete), boolToInt(s.BonusClaimed), formatTimestamp(s.UpdatedAt), s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating quest set: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("quest set %s: %w", s.ID, ErrNotFound)
	}

	for _, slot := range s.Slots {
		_, err := r.db.ExecContext(ctx,
			`UPDATE quest_slots SET progress = ?, is_complete = ? WHERE set_id = ? AND position = ?`,
			slot.Progress, boolToInt(slot.IsComplete), s.ID, slot.Position,
		)
		if err != nil {
			return fmt.Errorf("updating quest slot %d: %w", slot.Position, err)
		}
	}
	return nil
}

func (r *SQLiteQuestSetRepo) listSlots(ctx context.Context, setID string) ([]domain.QuestSlot, error) {
	query := `SELECT s.position, s.progress, s.is_complete,
			t.id, t.name, t.reward, t.target, t.related_habit_type, t.active
		FROM quest_slots s
		JOIN quest_templates t ON t.id = s.template_id
		WHERE s.set_id = ?
		ORDER BY s.position`
	rows, err := r.db.QueryContext(ctx, query, setID)
	if err != nil {
		return nil, fmt.Errorf("listing quest slots: %w", err)
	}
	defer rows.Close()

	var slots []domain.QuestSlot
	for rows.Next() {
		var slot domain.QuestSlot
		var slotComplete, active int
		var related string
		err := rows.Scan(
			&slot.Position, &slot.Progress, &slotComplete,
			&slot.Template.ID, &slot.Template.Name, &slot.Template.Reward,
			&slot.Template.Target, &related, &active,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning quest slot: %w", err)
		}
		slot.IsComplete = intToBool(slotComplete)
		slot.Template.RelatedHabitType = domain.RelatedHabitType(related)
		slot.Template.Active = intToBool(active)
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating quest slots: %w", err)
	}
	return slots, nil
}
