package service

import (
	"context"
	"time"

	"github.com/alexanderramin/habitquest/internal/app"
	"github.com/alexanderramin/habitquest/internal/contract"
	"github.com/alexanderramin/habitquest/internal/domain"
)

type HabitService interface {
	Create(ctx context.Context, h *domain.Habit) error
	Get(ctx context.Context, habitID, userID string) (*domain.Habit, error)
	List(ctx context.Context, userID string) ([]*domain.Habit, error)
	ListForDay(ctx context.Context, userID string, day time.Time) ([]contract.HabitDay, error)
	Update(ctx context.Context, req contract.HabitUpdate) (*domain.Habit, error)
	Delete(ctx context.Context, habitID, userID string) error
}

type ProgressService interface {
	app.ProgressUseCase
	app.InsightUseCase
}

type QuestService interface {
	app.ClaimBonusUseCase
	Today(ctx context.Context, userID string) (*domain.DailyQuestSet, error)
	Templates(ctx context.Context) ([]domain.QuestTemplate, error)
	Template(ctx context.Context, id string) (*domain.QuestTemplate, error)
}

type RoomService interface {
	Balance(ctx context.Context, userID string) (*domain.Room, error)
	History(ctx context.Context, userID string, limit int) ([]domain.LedgerEntry, error)
}
