package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/habitquest/internal/app"
	"github.com/alexanderramin/habitquest/internal/contract"
	"github.com/alexanderramin/habitquest/internal/domain"
	"github.com/alexanderramin/habitquest/internal/repository"
	"github.com/alexanderramin/habitquest/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestHabitService_CreateDefaultsAndPersists(t *testing.T) {
	h := newHarness(t)
	svc := h.habitService()
	ctx := context.Background()

	habit := &domain.Habit{
		UserID:   "u1",
		Name:     "Read",
		Schedule: domain.NewSchedule(time.Monday, time.Thursday),
	}
	habit.SetCheckmarkGoal(2)
	require.NoError(t, svc.Create(ctx, habit))

	_, err := uuid.Parse(habit.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityMedium, habit.Priority)
	assert.True(t, testNow.Equal(habit.CreatedAt))
	assert.Equal(t, 0, habit.Version)

	got, err := svc.Get(ctx, habit.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Read", got.Name)
	assert.Equal(t, domain.KindCheckmark, got.Kind)
	assert.Equal(t, 2, got.Target)
	assert.Equal(t, domain.NewSchedule(time.Monday, time.Thursday), got.Schedule)
}

func TestHabitService_CreateRejectsInvalidHabits(t *testing.T) {
	h := newHarness(t)
	svc := h.habitService()

	tests := []struct {
		name  string
		build func() *domain.Habit
	}{
		{"missing user", func() *domain.Habit {
			return testutil.NewTestHabit("Run", testutil.WithUser(""))
		}},
		{"blank name", func() *domain.Habit {
			return testutil.NewTestHabit("  ")
		}},
		{"empty schedule", func() *domain.Habit {
			return testutil.NewTestHabit("Run", testutil.WithSchedule())
		}},
		{"minutes out of range", func() *domain.Habit {
			return testutil.NewTestHabit("Run", testutil.WithTimedGoal(1, 75))
		}},
		{"zero timed goal", func() *domain.Habit {
			return testutil.NewTestHabit("Run", testutil.WithTimedGoal(0, 0))
		}},
		{"zero checkmark target", func() *domain.Habit {
			return testutil.NewTestHabit("Run", testutil.WithCheckmarkGoal(0))
		}},
		{"mixed goal fields", func() *domain.Habit {
			habit := testutil.NewTestHabit("Run")
			habit.Target = 4
			return habit
		}},
		{"unknown priority", func() *domain.Habit {
			return testutil.NewTestHabit("Run", testutil.WithPriority("urgent"))
		}},
		{"non-uuid id", func() *domain.Habit {
			habit := testutil.NewTestHabit("Run")
			habit.ID = "habit-1"
			return habit
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Create(context.Background(), tt.build())
			require.Error(t, err)
			assert.Equal(t, app.ErrInvalidInput, app.CodeOf(err))
		})
	}

	all, err := h.habits.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestHabitService_CreateNormalizesCallerID(t *testing.T) {
	h := newHarness(t)
	svc := h.habitService()
	ctx := context.Background()

	id := uuid.New()
	habit := testutil.NewTestHabit("Run")
	habit.ID = strings.ToUpper(id.String())
	require.NoError(t, svc.Create(ctx, habit))
	assert.Equal(t, id.String(), habit.ID)

	got, err := svc.Get(ctx, habit.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Run", got.Name)
}

func TestHabitService_GetHidesForeignHabits(t *testing.T) {
	h := newHarness(t)
	habit := h.seedHabit(t)
	svc := h.habitService()

	_, err := svc.Get(context.Background(), habit.ID, "u2")
	require.Error(t, err)
	assert.Equal(t, app.ErrNotFound, app.CodeOf(err))
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.Get(context.Background(), "nope", "u1")
	assert.Equal(t, app.ErrInvalidInput, app.CodeOf(err))
}

func TestHabitService_ListRefreshesStreaks(t *testing.T) {
	h := newHarness(t)
	stale := h.seedHabit(t,
		testutil.WithEntry(testNow.AddDate(0, 0, -2), domain.StatusComplete, 30),
		testutil.WithEntry(testNow.AddDate(0, 0, -1), domain.StatusComplete, 30),
	)
	h.seedHabit(t, testutil.WithUser("u2"))
	svc := h.habitService()

	habits, err := svc.List(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, habits, 1)
	assert.Equal(t, stale.ID, habits[0].ID)
	assert.Equal(t, 2, habits[0].Streak, "streak recomputed on read")
}

func TestHabitService_ListForDayFiltersBySchedule(t *testing.T) {
	h := newHarness(t)
	weekdays := h.seedHabit(t, testutil.WithSchedule(time.Monday, time.Friday),
		testutil.WithEntry(testNow, domain.StatusComplete, 30))
	weekend := h.seedHabit(t, testutil.WithSchedule(time.Saturday, time.Sunday))
	svc := h.habitService()
	ctx := context.Background()

	today, err := svc.ListForDay(ctx, "u1", time.Time{})
	require.NoError(t, err)
	require.Len(t, today, 1)
	assert.Equal(t, weekdays.ID, today[0].Habit.ID)
	assert.Equal(t, domain.DayStatus{Status: domain.StatusComplete, Value: 30}, today[0].Status)
	assert.Equal(t, 1, today[0].Streak)

	saturday, err := svc.ListForDay(ctx, "u1", testNow.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, saturday, 1)
	assert.Equal(t, weekend.ID, saturday[0].Habit.ID)
	assert.Equal(t, domain.StatusIncomplete, saturday[0].Status.Status)
}

func TestHabitService_UpdateFields(t *testing.T) {
	h := newHarness(t)
	habit := h.seedHabit(t)
	svc := h.habitService()

	got, err := svc.Update(context.Background(), contract.HabitUpdate{
		HabitID:     habit.ID,
		UserID:      "u1",
		Name:        ptr("Deep work"),
		Priority:    ptr(domain.PriorityHigh),
		Schedule:    domain.NewSchedule(time.Tuesday),
		GoalMinutes: ptr(45),
	})
	require.NoError(t, err)
	assert.Equal(t, "Deep work", got.Name)
	assert.Equal(t, domain.PriorityHigh, got.Priority)
	assert.Equal(t, 45, got.Goal())
	assert.Equal(t, 1, got.Version)

	stored, err := h.habits.GetByID(context.Background(), habit.ID)
	require.NoError(t, err)
	assert.Equal(t, "Deep work", stored.Name)
	assert.Equal(t, domain.NewSchedule(time.Tuesday), stored.Schedule)
}

func TestHabitService_UpdateSwitchesKind(t *testing.T) {
	h := newHarness(t)
	habit := h.seedHabit(t, testutil.WithTimedGoal(1, 15))
	svc := h.habitService()

	got, err := svc.Update(context.Background(), contract.HabitUpdate{
		HabitID: habit.ID,
		UserID:  "u1",
		Kind:    ptr(domain.KindCheckmark),
		Target:  ptr(4),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.KindCheckmark, got.Kind)
	assert.Equal(t, 4, got.Target)
	assert.Zero(t, got.GoalHours)
	assert.Zero(t, got.GoalMinutes)
}

func TestHabitService_UpdateRejectsBadEdits(t *testing.T) {
	h := newHarness(t)
	habit := h.seedHabit(t)
	svc := h.habitService()

	tests := []struct {
		name string
		req  contract.HabitUpdate
		code app.ErrorCode
	}{
		{"target on timed habit", contract.HabitUpdate{Target: ptr(3)}, app.ErrInvalidInput},
		{"checkmark without target", contract.HabitUpdate{Kind: ptr(domain.KindCheckmark)}, app.ErrInvalidInput},
		{"checkmark with minutes", contract.HabitUpdate{Kind: ptr(domain.KindCheckmark), Target: ptr(2), GoalMinutes: ptr(5)}, app.ErrInvalidInput},
		{"unknown kind", contract.HabitUpdate{Kind: ptr(domain.HabitKind("yearly"))}, app.ErrInvalidInput},
		{"blank name", contract.HabitUpdate{Name: ptr("")}, app.ErrInvalidInput},
		{"minutes over 59", contract.HabitUpdate{GoalMinutes: ptr(60)}, app.ErrInvalidInput},
		{"foreign owner", contract.HabitUpdate{UserID: "u2", Name: ptr("x")}, app.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			req.HabitID = habit.ID
			if req.UserID == "" {
				req.UserID = "u1"
			}
			_, err := svc.Update(context.Background(), req)
			require.Error(t, err)
			assert.Equal(t, tt.code, app.CodeOf(err))
		})
	}

	stored, err := h.habits.GetByID(context.Background(), habit.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Version, "rejected edits never reach the store")
	assert.Equal(t, 30, stored.Goal())
}

func TestHabitService_DeleteRemovesEntriesKeepsCoins(t *testing.T) {
	h := newHarness(t)
	habit := h.seedHabit(t)
	h.seedSet(t, testutil.Finish1)
	ctx := context.Background()

	_, err := h.progressService(nil).Complete(ctx, contract.NewProgressRequest(habit.ID, "u1", "30"))
	require.NoError(t, err)
	require.Equal(t, 5, h.coins(t, "u1"))

	svc := h.habitService()
	err = svc.Delete(ctx, habit.ID, "u2")
	assert.Equal(t, app.ErrNotFound, app.CodeOf(err), "foreign users cannot delete")

	require.NoError(t, svc.Delete(ctx, habit.ID, "u1"))
	_, err = h.habits.GetByID(ctx, habit.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	var entries int
	require.NoError(t, h.db.QueryRow(`SELECT COUNT(*) FROM habit_entries WHERE habit_id = ?`, habit.ID).Scan(&entries))
	assert.Zero(t, entries)
	assert.Equal(t, 5, h.coins(t, "u1"), "earned coins survive the habit")

	err = svc.Delete(ctx, habit.ID, "u1")
	assert.Equal(t, app.ErrNotFound, app.CodeOf(err))
}
