package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/alexanderramin/habitquest/internal/app"
	"github.com/alexanderramin/habitquest/internal/db"
	"github.com/alexanderramin/habitquest/internal/domain"
	"github.com/alexanderramin/habitquest/internal/repository"
	"github.com/google/uuid"
)

type questService struct {
	sets      repository.QuestSetRepo
	templates repository.QuestTemplateRepo
	uow       db.UnitOfWork
	cfg       EngineConfig
	observer  UseCaseObserver
}

func NewQuestService(
	sets repository.QuestSetRepo,
	templates repository.QuestTemplateRepo,
	uow db.UnitOfWork,
	cfg EngineConfig,
	observers ...UseCaseObserver,
) QuestService {
	return &questService{
		sets:      sets,
		templates: templates,
		uow:       uow,
		cfg:       cfg.withDefaults(),
		observer:  useCaseObserverOrNoop(observers),
	}
}

// Today returns the user's quest set for today, assigning one on first use.
func (s *questService) Today(ctx context.Context, userID string) (set *domain.DailyQuestSet, err error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	now := s.cfg.Now()
	day := s.cfg.Calendar.Key(now)

	set, err = s.sets.GetForDay(ctx, userID, day)
	if err == nil {
		return set, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, app.DependencyUnavailable(err, "loading quest set")
	}

	startedAt := time.Now()
	fields := map[string]any{"user_id": userID, "day": string(day)}
	defer func() { finishUseCase(ctx, s.observer, "assign-quests", startedAt, fields, err) }()

	// The catalog is read before the transaction opens: it is not
	// transaction-scoped.
	active, err := s.templates.ListActive(ctx)
	if err != nil {
		return nil, app.DependencyUnavailable(err, "loading quest templates")
	}
	if len(active) == 0 {
		return nil, app.DependencyUnavailable(nil, "no active quest templates")
	}

	fresh := &domain.DailyQuestSet{
		ID:        uuid.New().String(),
		UserID:    userID,
		Day:       day,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for i, tpl := range s.pick(active) {
		fresh.Slots = append(fresh.Slots, domain.QuestSlot{Position: i, Template: tpl})
	}
	fields["slots"] = len(fresh.Slots)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		sets := repository.NewSQLiteQuestSetRepo(tx)
		existing, err := sets.GetForDay(ctx, userID, day)
		if err == nil {
			set = existing
			return nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		set = fresh
		return sets.Create(ctx, fresh)
	})
	if err != nil {
		return nil, app.DependencyUnavailable(err, "assigning quest set")
	}
	return set, nil
}

// pick draws QuestsPerDay distinct templates, or all of them when the
// catalog is smaller.
func (s *questService) pick(active []domain.QuestTemplate) []domain.QuestTemplate {
	pool := append([]domain.QuestTemplate(nil), active...)
	swap := func(i, j int) { pool[i], pool[j] = pool[j], pool[i] }
	if s.cfg.Rand != nil {
		s.cfg.Rand.Shuffle(len(pool), swap)
	} else {
		rand.Shuffle(len(pool), swap)
	}
	return pool[:min(s.cfg.QuestsPerDay, len(pool))]
}

// ClaimBonus pays the set bonus once today's set is complete.
func (s *questService) ClaimBonus(ctx context.Context, userID string) (res *app.BonusResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{"user_id": userID}
	defer func() { finishUseCase(ctx, s.observer, "claim-bonus", startedAt, fields, err) }()

	if err := requireUser(userID); err != nil {
		return nil, err
	}
	now := s.cfg.Now()
	day := s.cfg.Calendar.Key(now)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		sets := repository.NewSQLiteQuestSetRepo(tx)
		rooms := repository.NewSQLiteRoomRepo(tx)

		set, err := sets.GetForDay(ctx, userID, day)
		if errors.Is(err, repository.ErrNotFound) {
			return app.InvalidInput("no quest set assigned for %s", day)
		}
		if err != nil {
			return err
		}
		if !set.IsComplete {
			done := 0
			for _, slot := range set.Slots {
				if slot.IsComplete {
					done++
				}
			}
			return app.InvalidInput("quest set not complete (%d/%d quests done)", done, len(set.Slots))
		}
		if set.BonusClaimed {
			return app.InvalidInput("bonus for %s already claimed", day)
		}

		set.BonusClaimed = true
		set.UpdatedAt = now
		if err := sets.Save(ctx, set); err != nil {
			return err
		}
		room, err := rooms.Credit(ctx, &domain.LedgerEntry{
			ID:        uuid.New().String(),
			UserID:    userID,
			Amount:    s.cfg.SetBonus,
			Reason:    domain.LedgerSetBonus,
			SourceID:  set.ID,
			CreatedAt: now,
		})
		if err != nil {
			return fmt.Errorf("crediting set bonus: %w", err)
		}
		res = &app.BonusResult{Set: set, Bonus: s.cfg.SetBonus, Room: room}
		return nil
	})
	if err != nil {
		if app.CodeOf(err) != "" {
			return nil, err
		}
		return nil, app.DependencyUnavailable(err, "claiming bonus")
	}
	fields["bonus"] = res.Bonus
	return res, nil
}

func (s *questService) Templates(ctx context.Context) ([]domain.QuestTemplate, error) {
	return s.templates.List(ctx)
}

// Template looks up one catalog entry, retired ones included.
func (s *questService) Template(ctx context.Context, id string) (*domain.QuestTemplate, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, app.InvalidInput("quest template id is required")
	}
	tpl, err := s.templates.GetByID(ctx, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, app.NotFound(err, "quest template %s not found", id)
	case err != nil:
		return nil, app.DependencyUnavailable(err, "loading quest template")
	}
	return tpl, nil
}
