package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/habitquest/internal/domain"
)

var (
	// ErrNotFound is wrapped by every lookup that matches no row.
	ErrNotFound = errors.New("not found")
	// ErrConflict reports a habit update against a stale version.
	ErrConflict = errors.New("version conflict")
)

type HabitRepo interface {
	Create(ctx context.Context, h *domain.Habit) error
	GetByID(ctx context.Context, id string) (*domain.Habit, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Habit, error)
	// Update writes the habit row when h.Version matches the stored version
	// and bumps h.Version on success.
	Update(ctx context.Context, h *domain.Habit) error
	SaveEntry(ctx context.Context, habitID string, e domain.DailyStatusEntry) error
	Delete(ctx context.Context, id string) error
}

type QuestSetRepo interface {
	Create(ctx context.Context, s *domain.DailyQuestSet) error
	GetForDay(ctx context.Context, userID string, day domain.DayKey) (*domain.DailyQuestSet, error)
	Save(ctx context.Context, s *domain.DailyQuestSet) error
}

// QuestTemplateRepo is the read-only quest catalog.
type QuestTemplateRepo interface {
	List(ctx context.Context) ([]domain.QuestTemplate, error)
	ListActive(ctx context.Context) ([]domain.QuestTemplate, error)
	GetByID(ctx context.Context, id string) (*domain.QuestTemplate, error)
}

type RoomRepo interface {
	Get(ctx context.Context, userID string) (*domain.Room, error)
	// Credit adds e.Amount to the user's room, creating it when absent,
	// and records e in the ledger.
	Credit(ctx context.Context, e *domain.LedgerEntry) (*domain.Room, error)
	History(ctx context.Context, userID string, limit int) ([]domain.LedgerEntry, error)
}
