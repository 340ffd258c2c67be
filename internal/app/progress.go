package app

import (
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/habitquest/internal/domain"
	"github.com/alexanderramin/habitquest/internal/progress"
	"github.com/google/uuid"
)

// ProgressRequest carries one complete, skip or fail call. Delta is raw
// caller input and is only read by Complete.
type ProgressRequest struct {
	HabitID string
	UserID  string
	Delta   string
}

// ProgressResult is the outcome of a habit update. QuestSet is nil when the
// user has no set for today or the cascade failed; CascadeErr carries the
// failure while the habit write stays committed.
type ProgressResult struct {
	HabitID    string
	Entry      domain.DailyStatusEntry
	Transition domain.Transition
	Streak     int
	QuestSet   *domain.DailyQuestSet
	Awards     []progress.Award
	CascadeErr error
}

// CoinsEarned sums the rewards paid by the cascade.
func (r *ProgressResult) CoinsEarned() int {
	total := 0
	for _, a := range r.Awards {
		total += a.Reward
	}
	return total
}

// StatusRequest asks for a habit's resolved status on Day (zero means today).
type StatusRequest struct {
	HabitID string
	UserID  string
	Day     time.Time
}

// HabitDay pairs a habit scheduled on a day with its resolved status.
type HabitDay struct {
	Habit  *domain.Habit
	Status domain.DayStatus
	Streak int
}

// HabitUpdate edits a habit. Nil fields are left unchanged; setting Kind
// switches goals and clears the other kind's fields.
type HabitUpdate struct {
	HabitID     string
	UserID      string
	Name        *string
	Schedule    domain.Schedule
	Priority    *domain.Priority
	Kind        *domain.HabitKind
	GoalHours   *int
	GoalMinutes *int
	Target      *int
}

// BonusResult is returned by a successful set bonus claim.
type BonusResult struct {
	Set   *domain.DailyQuestSet
	Bonus int
	Room  *domain.Room
}

// ParseID validates a habit identifier.
func ParseID(raw string) (string, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", InvalidInput("malformed habit id %q", raw)
	}
	return id.String(), nil
}

// ParseDelta parses a signed integer progress delta.
func ParseDelta(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, InvalidInput("delta must be an integer, got %q", raw)
	}
	return n, nil
}
