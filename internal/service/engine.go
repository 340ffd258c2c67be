package service

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/alexanderramin/habitquest/internal/app"
	"github.com/alexanderramin/habitquest/internal/domain"
	"github.com/alexanderramin/habitquest/internal/repository"
)

const (
	DefaultMaxRetries   = 3
	DefaultQuestsPerDay = 3
	DefaultSetBonus     = 50
)

// EngineConfig holds the knobs shared by the habit engine services.
// Non-positive counts fall back to their defaults.
type EngineConfig struct {
	Calendar domain.Calendar
	// Now defaults to time.Now.
	Now func() time.Time
	// MaxRetries bounds re-runs of a read-modify-write after a version conflict.
	MaxRetries   int
	QuestsPerDay int
	SetBonus     int
	// Rand picks daily quests; nil uses the global source.
	Rand *rand.Rand
}

func (c EngineConfig) withDefaults() EngineConfig {
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.QuestsPerDay <= 0 {
		c.QuestsPerDay = DefaultQuestsPerDay
	}
	if c.SetBonus <= 0 {
		c.SetBonus = DefaultSetBonus
	}
	return c
}

// retryOnConflict runs fn once plus up to MaxRetries more times while it
// reports a stale habit version.
func (c EngineConfig) retryOnConflict(fn func() error) error {
	var err error
	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if err = fn(); !errors.Is(err, repository.ErrConflict) {
			return err
		}
	}
	return err
}

// habitLookupErr maps repository lookups onto the engine error taxonomy.
func habitLookupErr(err error, habitID string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return app.NotFound(err, "habit %s not found", habitID)
	}
	return err
}

// ownedHabit loads a habit and hides habits owned by someone else behind
// the same not-found error.
func ownedHabit(h *domain.Habit, err error, habitID, userID string) (*domain.Habit, error) {
	if err != nil {
		return nil, habitLookupErr(err, habitID)
	}
	if h.UserID != userID {
		return nil, app.NotFound(repository.ErrNotFound, "habit %s not found", habitID)
	}
	return h, nil
}

func requireUser(userID string) error {
	if userID == "" {
		return app.InvalidInput("user id is required")
	}
	return nil
}
