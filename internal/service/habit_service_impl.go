package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/habitquest/internal/app"
	"github.com/alexanderramin/habitquest/internal/db"
	"github.com/alexanderramin/habitquest/internal/domain"
	"github.com/alexanderramin/habitquest/internal/progress"
	"github.com/alexanderramin/habitquest/internal/repository"
	"github.com/google/uuid"
)

type habitService struct {
	habits   repository.HabitRepo
	uow      db.UnitOfWork
	cfg      EngineConfig
	observer UseCaseObserver
}

func NewHabitService(
	habits repository.HabitRepo,
	uow db.UnitOfWork,
	cfg EngineConfig,
	observers ...UseCaseObserver,
) HabitService {
	return &habitService{
		habits:   habits,
		uow:      uow,
		cfg:      cfg.withDefaults(),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *habitService) Create(ctx context.Context, h *domain.Habit) (err error) {
	startedAt := time.Now()
	defer func() {
		finishUseCase(ctx, s.observer, "create-habit", startedAt, map[string]any{"name": h.Name, "kind": string(h.Kind)}, err)
	}()

	if err := requireUser(h.UserID); err != nil {
		return err
	}
	if h.Priority == "" {
		h.Priority = domain.PriorityMedium
	}
	if err := h.Validate(); err != nil {
		return app.InvalidInput("%s", err.Error())
	}
	if h.ID == "" {
		h.ID = uuid.New().String()
	} else if h.ID, err = app.ParseID(h.ID); err != nil {
		return err
	}

	now := s.cfg.Now()
	h.CreatedAt = now
	h.UpdatedAt = now
	h.Version = 0
	progress.Refresh(h, s.cfg.Calendar, now)
	return s.habits.Create(ctx, h)
}

func (s *habitService) Get(ctx context.Context, habitID, userID string) (*domain.Habit, error) {
	id, err := app.ParseID(habitID)
	if err != nil {
		return nil, err
	}
	h, err := s.habits.GetByID(ctx, id)
	if h, err = ownedHabit(h, err, id, userID); err != nil {
		return nil, err
	}
	progress.Refresh(h, s.cfg.Calendar, s.cfg.Now())
	return h, nil
}

func (s *habitService) List(ctx context.Context, userID string) ([]*domain.Habit, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	habits, err := s.habits.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.cfg.Now()
	for _, h := range habits {
		progress.Refresh(h, s.cfg.Calendar, now)
	}
	return habits, nil
}

// ListForDay returns the habits scheduled on day's weekday with their
// resolved status. A zero day means today; streaks are always as of now.
func (s *habitService) ListForDay(ctx context.Context, userID string, day time.Time) ([]app.HabitDay, error) {
	habits, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if day.IsZero() {
		day = s.cfg.Now()
	}

	out := make([]app.HabitDay, 0, len(habits))
	for _, h := range habits {
		if !h.IsScheduled(s.cfg.Calendar, day) {
			continue
		}
		out = append(out, app.HabitDay{
			Habit:  h,
			Status: h.StatusFor(s.cfg.Calendar, day),
			Streak: h.Streak,
		})
	}
	return out, nil
}

func (s *habitService) Update(ctx context.Context, req app.HabitUpdate) (h *domain.Habit, err error) {
	startedAt := time.Now()
	defer func() {
		finishUseCase(ctx, s.observer, "update-habit", startedAt, map[string]any{"habit_id": req.HabitID}, err)
	}()

	id, err := app.ParseID(req.HabitID)
	if err != nil {
		return nil, err
	}

	err = s.cfg.retryOnConflict(func() error {
		return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			habits := repository.NewSQLiteHabitRepo(tx)
			loaded, err := habits.GetByID(ctx, id)
			if h, err = ownedHabit(loaded, err, id, req.UserID); err != nil {
				return err
			}
			if err := applyHabitUpdate(h, req); err != nil {
				return err
			}

			now := s.cfg.Now()
			h.UpdatedAt = now
			progress.Refresh(h, s.cfg.Calendar, now)
			return habits.Update(ctx, h)
		})
	})
	if err != nil {
		return nil, err
	}
	return h, nil
}

func applyHabitUpdate(h *domain.Habit, req app.HabitUpdate) error {
	if req.Name != nil {
		h.Name = *req.Name
	}
	if req.Schedule != nil {
		h.Schedule = domain.NewSchedule(req.Schedule...)
	}
	if req.Priority != nil {
		h.Priority = *req.Priority
	}

	kind := h.Kind
	if req.Kind != nil {
		kind = *req.Kind
	}
	switch kind {
	case domain.KindTimed:
		if req.Target != nil {
			return app.InvalidInput("timed habit cannot carry a checkmark target")
		}
		hours, minutes := 0, 0
		if h.Kind == domain.KindTimed {
			hours, minutes = h.GoalHours, h.GoalMinutes
		}
		if req.GoalHours != nil {
			hours = *req.GoalHours
		}
		if req.GoalMinutes != nil {
			minutes = *req.GoalMinutes
		}
		h.SetTimedGoal(hours, minutes)
	case domain.KindCheckmark:
		if req.GoalHours != nil || req.GoalMinutes != nil {
			return app.InvalidInput("checkmark habit cannot carry a timed goal")
		}
		target := 0
		if h.Kind == domain.KindCheckmark {
			target = h.Target
		}
		if req.Target != nil {
			target = *req.Target
		}
		h.SetCheckmarkGoal(target)
	default:
		return app.InvalidInput("invalid habit kind %q (expected timed or checkmark)", kind)
	}

	if err := h.Validate(); err != nil {
		return app.InvalidInput("%s", err.Error())
	}
	return nil
}

// Delete removes the habit and its entries. Quest progress and coins it
// already earned are kept.
func (s *habitService) Delete(ctx context.Context, habitID, userID string) (err error) {
	startedAt := time.Now()
	defer func() {
		finishUseCase(ctx, s.observer, "delete-habit", startedAt, map[string]any{"habit_id": habitID}, err)
	}()

	id, err := app.ParseID(habitID)
	if err != nil {
		return err
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		habits := repository.NewSQLiteHabitRepo(tx)
		loaded, err := habits.GetByID(ctx, id)
		if _, err := ownedHabit(loaded, err, id, userID); err != nil {
			return err
		}
		if err := habits.Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return habitLookupErr(err, id)
			}
			return err
		}
		return nil
	})
}
