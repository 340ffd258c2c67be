package app

import (
	"context"

	"github.com/alexanderramin/habitquest/internal/domain"
	"github.com/alexanderramin/habitquest/internal/progress"
)

// ProgressUseCase is the engine's caller surface for daily updates.
type ProgressUseCase interface {
	Complete(ctx context.Context, req ProgressRequest) (*ProgressResult, error)
	Skip(ctx context.Context, req ProgressRequest) (*ProgressResult, error)
	Fail(ctx context.Context, req ProgressRequest) (*ProgressResult, error)
}

// InsightUseCase answers read-only questions about a habit's history.
type InsightUseCase interface {
	StatusForDay(ctx context.Context, req StatusRequest) (domain.DayStatus, error)
	Streak(ctx context.Context, habitID, userID string) (int, error)
	Stats(ctx context.Context, habitID, userID string) (*progress.Stats, error)
}

type ClaimBonusUseCase interface {
	ClaimBonus(ctx context.Context, userID string) (*BonusResult, error)
}
