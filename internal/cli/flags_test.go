package cli

import (
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/habitquest/internal/app"
	"github.com/alexanderramin/habitquest/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekdaysValue_Set(t *testing.T) {
	tests := []struct {
		raw  string
		want domain.Schedule
	}{
		{"mon,wed,fri", domain.NewSchedule(time.Monday, time.Wednesday, time.Friday)},
		{"Friday, monday", domain.NewSchedule(time.Monday, time.Friday)},
		{"weekdays", domain.NewSchedule(time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday)},
		{"weekends,mon", domain.NewSchedule(time.Sunday, time.Monday, time.Saturday)},
		{"daily", domain.NewSchedule(allWeekdays...)},
		{"tue,tue", domain.NewSchedule(time.Tuesday)},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var s domain.Schedule
			v := newWeekdaysValue(&s, nil)
			require.NoError(t, v.Set(tt.raw))
			assert.Equal(t, tt.want, s)
		})
	}
}

func TestWeekdaysValue_Errors(t *testing.T) {
	var s domain.Schedule
	v := newWeekdaysValue(&s, domain.NewSchedule(time.Monday))
	assert.Equal(t, "weekdays", v.Type())
	assert.Equal(t, "monday", v.String())

	assert.Error(t, v.Set("someday"))
	assert.Error(t, v.Set(" , "))
	assert.Equal(t, domain.NewSchedule(time.Monday), s, "failed Set keeps the previous value")
}

func TestHabitDraft(t *testing.T) {
	d := habitDraft{Name: " Read ", Kind: "timed", Priority: "HIGH", Days: domain.NewSchedule(time.Monday)}
	require.NoError(t, d.setGoal("95"))
	h, err := d.habit("u1")
	require.NoError(t, err)
	assert.Equal(t, "Read", h.Name)
	assert.Equal(t, 1, h.GoalHours)
	assert.Equal(t, 35, h.GoalMinutes)
	assert.Equal(t, domain.PriorityHigh, h.Priority)
	assert.Equal(t, "u1", h.UserID)

	d.Kind = "checkmark"
	require.NoError(t, d.setGoal("4"))
	h, err = d.habit("u1")
	require.NoError(t, err)
	assert.Equal(t, domain.KindCheckmark, h.Kind)
	assert.Equal(t, 4, h.Target)

	assert.Error(t, d.setGoal("0"))
	assert.Error(t, validateName("  "))
	assert.Error(t, validateGoal("x"))

	d.Kind = "hourly"
	_, err = d.habit("u1")
	assert.Error(t, err)
}

func TestParseDay(t *testing.T) {
	a := &App{Calendar: utc, Now: func() time.Time { return cliNow }}

	got, err := parseDay(a, "")
	require.NoError(t, err)
	assert.Equal(t, cliNow, got)

	got, err = parseDay(a, "2025-01-31")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), got)

	_, err = parseDay(a, "yesterday")
	assert.Error(t, err)
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "habit x not found", ErrorMessage(app.NotFound(nil, "habit x not found")))
	assert.Equal(t, "plain", ErrorMessage(errors.New("plain")))
}

func TestHabitForm_Builds(t *testing.T) {
	var d habitDraft
	goal := "30"
	var days []time.Weekday
	assert.NotNil(t, habitForm(&d, &goal, &days))
}
