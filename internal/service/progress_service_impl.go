package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/habitquest/internal/app"
	"github.com/alexanderramin/habitquest/internal/db"
	"github.com/alexanderramin/habitquest/internal/domain"
	"github.com/alexanderramin/habitquest/internal/logger"
	"github.com/alexanderramin/habitquest/internal/progress"
	"github.com/alexanderramin/habitquest/internal/repository"
	"github.com/google/uuid"
)

type progressService struct {
	habits   repository.HabitRepo
	uow      db.UnitOfWork
	cfg      EngineConfig
	observer UseCaseObserver
}

func NewProgressService(
	habits repository.HabitRepo,
	uow db.UnitOfWork,
	cfg EngineConfig,
	observers ...UseCaseObserver,
) ProgressService {
	return &progressService{
		habits:   habits,
		uow:      uow,
		cfg:      cfg.withDefaults(),
		observer: useCaseObserverOrNoop(observers),
	}
}

// mutation changes today's entry on h and reports the completion transition.
type mutation func(h *domain.Habit, now time.Time) (domain.DailyStatusEntry, domain.Transition)

func (s *progressService) Complete(ctx context.Context, req app.ProgressRequest) (res *app.ProgressResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{"habit_id": req.HabitID, "delta": req.Delta}
	defer func() { finishUseCase(ctx, s.observer, "complete-habit", startedAt, fields, err) }()

	delta, err := app.ParseDelta(req.Delta)
	if err != nil {
		return nil, err
	}

	h, res, err := s.apply(ctx, req, func(h *domain.Habit, now time.Time) (domain.DailyStatusEntry, domain.Transition) {
		return h.ApplyProgress(s.cfg.Calendar, delta, now)
	})
	if err != nil {
		return nil, err
	}
	fields["status"] = string(res.Entry.Status)
	fields["streak"] = res.Streak

	// The habit write is durable from here on; the cascade runs in its own
	// transaction and can only annotate the result.
	set, awards, cascadeErr := s.cascade(ctx, h, res.Transition, delta, res.Entry.Day)
	if cascadeErr != nil {
		logger.Warn("quest cascade failed", "habit_id", h.ID, "user_id", h.UserID, "error", cascadeErr)
		res.CascadeErr = app.DependencyUnavailable(cascadeErr, "quest cascade")
		fields["cascade_error"] = cascadeErr.Error()
		return res, nil
	}
	res.QuestSet = set
	res.Awards = awards
	fields["coins"] = res.CoinsEarned()
	return res, nil
}

func (s *progressService) Skip(ctx context.Context, req app.ProgressRequest) (res *app.ProgressResult, err error) {
	startedAt := time.Now()
	defer func() {
		finishUseCase(ctx, s.observer, "skip-habit", startedAt, map[string]any{"habit_id": req.HabitID}, err)
	}()

	_, res, err = s.apply(ctx, req, func(h *domain.Habit, now time.Time) (domain.DailyStatusEntry, domain.Transition) {
		return h.MarkSkipped(s.cfg.Calendar, now), domain.Transition{}
	})
	return res, err
}

func (s *progressService) Fail(ctx context.Context, req app.ProgressRequest) (res *app.ProgressResult, err error) {
	startedAt := time.Now()
	defer func() {
		finishUseCase(ctx, s.observer, "fail-habit", startedAt, map[string]any{"habit_id": req.HabitID}, err)
	}()

	_, res, err = s.apply(ctx, req, func(h *domain.Habit, now time.Time) (domain.DailyStatusEntry, domain.Transition) {
		return h.MarkFailed(s.cfg.Calendar, now), domain.Transition{}
	})
	return res, err
}

// apply runs one read-modify-write of a habit in a single transaction:
// load, ownership check, entry mutation, streak recompute, persist. It is
// retried from a fresh read when another writer bumped the version.
func (s *progressService) apply(ctx context.Context, req app.ProgressRequest, mutate mutation) (*domain.Habit, *app.ProgressResult, error) {
	habitID, err := app.ParseID(req.HabitID)
	if err != nil {
		return nil, nil, err
	}
	if err := requireUser(req.UserID); err != nil {
		return nil, nil, err
	}

	var h *domain.Habit
	var res *app.ProgressResult
	err = s.cfg.retryOnConflict(func() error {
		return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			habits := repository.NewSQLiteHabitRepo(tx)

			loaded, err := habits.GetByID(ctx, habitID)
			if h, err = ownedHabit(loaded, err, habitID, req.UserID); err != nil {
				return err
			}

			now := s.cfg.Now()
			entry, tr := mutate(h, now)
			streak := progress.Refresh(h, s.cfg.Calendar, now)

			if err := habits.SaveEntry(ctx, h.ID, entry); err != nil {
				return err
			}
			if err := habits.Update(ctx, h); err != nil {
				return err
			}
			res = &app.ProgressResult{HabitID: h.ID, Entry: entry, Transition: tr, Streak: streak}
			return nil
		})
	})
	if err != nil {
		return nil, nil, err
	}
	return h, res, nil
}

// cascade folds a committed completion into the user's quest set for the
// entry's day and credits earned rewards. A missing set is a no-op.
func (s *progressService) cascade(ctx context.Context, h *domain.Habit, tr domain.Transition, delta int, now time.Time) (*domain.DailyQuestSet, []progress.Award, error) {
	var set *domain.DailyQuestSet
	var awards []progress.Award

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		sets := repository.NewSQLiteQuestSetRepo(tx)
		rooms := repository.NewSQLiteRoomRepo(tx)

		loaded, err := sets.GetForDay(ctx, h.UserID, s.cfg.Calendar.Key(now))
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		result := progress.ApplyCascade(progress.CascadeInput{
			Set:        loaded,
			Kind:       h.Kind,
			Transition: tr,
			Delta:      delta,
		})
		set, awards = loaded, result.Awards
		if !result.Changed {
			return nil
		}

		loaded.UpdatedAt = now
		if err := sets.Save(ctx, loaded); err != nil {
			return err
		}
		for _, a := range result.Awards {
			if a.Reward == 0 {
				continue
			}
			_, err := rooms.Credit(ctx, &domain.LedgerEntry{
				ID:        uuid.New().String(),
				UserID:    h.UserID,
				Amount:    a.Reward,
				Reason:    domain.LedgerQuestSlot,
				SourceID:  fmt.Sprintf("%s/%d", loaded.ID, a.Position),
				CreatedAt: now,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return set, awards, nil
}

func (s *progressService) StatusForDay(ctx context.Context, req app.StatusRequest) (domain.DayStatus, error) {
	h, err := s.load(ctx, req.HabitID, req.UserID)
	if err != nil {
		return domain.DayStatus{}, err
	}
	day := req.Day
	if day.IsZero() {
		day = s.cfg.Now()
	}
	return h.StatusFor(s.cfg.Calendar, day), nil
}

func (s *progressService) Streak(ctx context.Context, habitID, userID string) (int, error) {
	h, err := s.load(ctx, habitID, userID)
	if err != nil {
		return 0, err
	}
	return progress.Streak(h, s.cfg.Calendar, s.cfg.Now()), nil
}

func (s *progressService) Stats(ctx context.Context, habitID, userID string) (*progress.Stats, error) {
	h, err := s.load(ctx, habitID, userID)
	if err != nil {
		return nil, err
	}
	stats := progress.Aggregate(h, s.cfg.Calendar, s.cfg.Now())
	return &stats, nil
}

func (s *progressService) load(ctx context.Context, rawID, userID string) (*domain.Habit, error) {
	habitID, err := app.ParseID(rawID)
	if err != nil {
		return nil, err
	}
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	h, err := s.habits.GetByID(ctx, habitID)
	return ownedHabit(h, err, habitID, userID)
}
