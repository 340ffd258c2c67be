package testutil

import (
	"time"

	"github.com/alexanderramin/habitquest/internal/domain"
	"github.com/google/uuid"
)

// Habit options
type HabitOption func(*domain.Habit)

func WithUser(userID string) HabitOption {
	return func(h *domain.Habit) {
		h.UserID = userID
	}
}

func WithSchedule(days ...time.Weekday) HabitOption {
	return func(h *domain.Habit) {
		h.Schedule = domain.NewSchedule(days...)
	}
}

func WithTimedGoal(hours, minutes int) HabitOption {
	return func(h *domain.Habit) {
		h.SetTimedGoal(hours, minutes)
	}
}

func WithCheckmarkGoal(target int) HabitOption {
	return func(h *domain.Habit) {
		h.SetCheckmarkGoal(target)
	}
}

func WithPriority(p domain.Priority) HabitOption {
	return func(h *domain.Habit) {
		h.Priority = p
	}
}

func WithCreatedAt(t time.Time) HabitOption {
	return func(h *domain.Habit) {
		h.CreatedAt = t
		h.UpdatedAt = t
	}
}

// WithEntry appends a recorded day using UTC day keys.
func WithEntry(day time.Time, status domain.EntryStatus, value int) HabitOption {
	return func(h *domain.Habit) {
		day = day.UTC()
		h.Entries = append(h.Entries, domain.DailyStatusEntry{
			Key:     domain.DayKey(day.Format("2006-01-02")),
			Day:     day,
			Status:  status,
			Value:   value,
			Weekday: day.Weekday().String(),
			Month:   int(day.Month()),
			Year:    day.Year(),
		})
	}
}

// EveryDay is a schedule covering the whole week.
var EveryDay = []time.Weekday{
	time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
	time.Thursday, time.Friday, time.Saturday,
}

// NewTestHabit builds a valid timed habit (30 minutes, every day) owned by "u1".
func NewTestHabit(name string, opts ...HabitOption) *domain.Habit {
	now := time.Now().UTC().Truncate(time.Second)
	h := &domain.Habit{
		ID:        uuid.New().String(),
		UserID:    "u1",
		Name:      name,
		Schedule:  domain.NewSchedule(EveryDay...),
		Priority:  domain.PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}
	h.SetTimedGoal(0, 30)
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// NewTestQuestSet builds a set for userID on day with one slot per template.
func NewTestQuestSet(userID string, day domain.DayKey, templates ...domain.QuestTemplate) *domain.DailyQuestSet {
	now := time.Now().UTC().Truncate(time.Second)
	s := &domain.DailyQuestSet{
		ID:        uuid.New().String(),
		UserID:    userID,
		Day:       day,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for i, tpl := range templates {
		s.Slots = append(s.Slots, domain.QuestSlot{Position: i, Template: tpl})
	}
	return s
}

// Seeded catalog entries, mirrored from the migrations.
var (
	Focus30 = domain.QuestTemplate{ID: "focus-30", Name: "Log 30 focused minutes", Reward: 10, Target: 30, RelatedHabitType: domain.RelatedTimed, Active: true}
	Checks3 = domain.QuestTemplate{ID: "checks-3", Name: "Tick off 3 checkmarks", Reward: 10, Target: 3, RelatedHabitType: domain.RelatedCheckmark, Active: true}
	Finish1 = domain.QuestTemplate{ID: "finish-1", Name: "Finish any habit", Reward: 5, Target: 1, RelatedHabitType: domain.RelatedAnyCompletion, Active: true}
)
