package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/habitquest/internal/app"
	"github.com/alexanderramin/habitquest/internal/domain"
	"github.com/alexanderramin/habitquest/internal/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func timedHabit() *domain.Habit {
	h := &domain.Habit{
		ID:       "0f8a1c2d-3b4e-4f50-8a61-7b8c9d0e1f2a",
		Name:     "Deep work",
		Schedule: domain.NewSchedule(time.Monday, time.Wednesday, time.Friday),
		Priority: domain.PriorityHigh,
		Streak:   4,
	}
	h.SetTimedGoal(1, 30)
	return h
}

func TestRelativeDay(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"now", now, "Today"},
		{"early this morning", time.Date(2026, 2, 7, 0, 5, 0, 0, time.UTC), "Today"},
		{"late last night", time.Date(2026, 2, 6, 23, 55, 0, 0, time.UTC), "Yesterday"},
		{"3 days past", now.AddDate(0, 0, -3), "3d ago"},
		{"2 weeks past", now.AddDate(0, 0, -14), "Jan 24"},
		{"last year", time.Date(2025, 11, 3, 8, 0, 0, 0, time.UTC), "Nov 3, 2025"},
		{"future clamps to today", now.Add(48 * time.Hour), "Today"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDay(tt.input, now))
		})
	}
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "0m", FormatMinutes(-5))
	assert.Equal(t, "45m", FormatMinutes(45))
	assert.Equal(t, "2h", FormatMinutes(120))
	assert.Equal(t, "1h 30m", FormatMinutes(90))
}

func TestFormatValue_ByKind(t *testing.T) {
	h := timedHabit()
	assert.Equal(t, "1h 30m", FormatGoal(h))

	h.SetCheckmarkGoal(3)
	assert.Equal(t, "3 checks", FormatGoal(h))
	assert.Equal(t, "1 check", FormatValue(h, 1))
}

func TestScheduleLabel(t *testing.T) {
	assert.Equal(t, "Mon Wed Fri", ScheduleLabel(domain.NewSchedule(time.Friday, time.Monday, time.Wednesday)))
	all := domain.NewSchedule(time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday)
	assert.Equal(t, "Every day", ScheduleLabel(all))
}

func TestStatusPill(t *testing.T) {
	tests := []struct {
		status   domain.EntryStatus
		contains string
	}{
		{domain.StatusComplete, "Complete"},
		{domain.StatusIncomplete, "Incomplete"},
		{domain.StatusSkipped, "Skipped"},
		{domain.StatusFailed, "Failed"},
		{"weird", "weird"},
	}
	for _, tt := range tests {
		assert.Contains(t, StatusPill(tt.status), tt.contains)
	}
}

func TestRenderTableAligned_PadsVisibleWidth(t *testing.T) {
	out := RenderTableAligned(
		[]string{"NAME", "N"},
		[][]string{{StyleGreen.Render("a"), "7"}, {"longer", "123"}},
		1,
	)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	for _, l := range lines {
		assert.Equal(t, lipgloss.Width(lines[0]), lipgloss.Width(l), "every row has the same visible width")
	}
	assert.True(t, strings.HasSuffix(lines[2], "  7"), "numeric column is right-aligned")
	assert.Empty(t, RenderTable(nil, nil))
}

func TestRenderProgress_Clamps(t *testing.T) {
	assert.Contains(t, RenderProgress(1.5, 10), "100%")
	assert.Contains(t, RenderProgress(-1, 10), "0%")
	assert.Contains(t, RenderRatio(1, 0, 4), "0%")
	assert.Contains(t, RenderRatio(1, 2, 4), "50%")
}

func TestFormatToday(t *testing.T) {
	h := timedHabit()
	day := time.Date(2025, 6, 13, 9, 0, 0, 0, time.UTC)
	out := FormatToday(day, []app.HabitDay{{
		Habit:  h,
		Status: domain.DayStatus{Status: domain.StatusIncomplete, Value: 45},
		Streak: 4,
	}})
	assert.Contains(t, out, "FRIDAY, JUN 13")
	assert.Contains(t, out, "Deep work")
	assert.Contains(t, out, "45m / 1h 30m")
	assert.Contains(t, out, "4 days")

	assert.Contains(t, FormatToday(day, nil), "Nothing scheduled.")
}

func TestFormatProgressResult(t *testing.T) {
	h := timedHabit()
	res := &app.ProgressResult{
		Entry:  domain.DailyStatusEntry{Key: "2025-06-13", Status: domain.StatusComplete, Value: 90},
		Streak: 5,
		Awards: []progress.Award{{Position: 0, TemplateID: "focus-90", Reward: 25}},
		QuestSet: &domain.DailyQuestSet{IsComplete: true},
	}
	out := FormatProgressResult(h, res)
	assert.Contains(t, out, "Deep work: 2025-06-13 (1h 30m / 1h 30m)")
	assert.Contains(t, out, `quest "focus-90" complete`)
	assert.Contains(t, out, "25 coins")
	assert.Contains(t, out, "quest claim")

	res.CascadeErr = app.DependencyUnavailable(nil, "quest cascade")
	res.QuestSet = nil
	assert.Contains(t, FormatProgressResult(h, res), "Quest progress not updated")
}

func TestFormatStats(t *testing.T) {
	h := timedHabit()
	s := &progress.Stats{
		CompletedDays:  2,
		TotalValue:     150,
		CompletedDates: []domain.DayKey{"2025-06-09", "2025-06-11"},
		WeekStart:      time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC),
	}
	s.TotalValuePerDayCurrentWeek[time.Monday] = 90
	out := FormatStats(h, s)
	assert.Contains(t, out, "2h 30m")
	assert.Contains(t, out, "2025-06-11")
	assert.Contains(t, out, "WEEK OF JUN 8")
	assert.Contains(t, out, "1h 30m")
}

func TestFormatQuestSet(t *testing.T) {
	set := &domain.DailyQuestSet{
		Day: "2025-06-13",
		Slots: []domain.QuestSlot{
			{Position: 0, Template: domain.QuestTemplate{Name: "Log 30 focused minutes", Target: 30, Reward: 10}, Progress: 60, IsComplete: true},
			{Position: 1, Template: domain.QuestTemplate{Name: "Finish any habit", Target: 1, Reward: 5}},
		},
	}
	out := FormatQuestSet(set, 50)
	assert.Contains(t, out, "30/30", "overshoot is capped for display")
	assert.Contains(t, out, "0/1")
	assert.Contains(t, out, "50 coin bonus")

	set.IsComplete = true
	assert.Contains(t, FormatQuestSet(set, 50), "quest claim")
	set.BonusClaimed = true
	assert.Contains(t, FormatQuestSet(set, 50), "claimed")
}

func TestFormatLedgerAndBalance(t *testing.T) {
	now := time.Date(2025, 6, 13, 9, 0, 0, 0, time.UTC)
	out := FormatLedger([]domain.LedgerEntry{
		{Amount: 50, Reason: domain.LedgerSetBonus, SourceID: "set-1", CreatedAt: now},
		{Amount: 10, Reason: domain.LedgerQuestSlot, SourceID: "set-0/1", CreatedAt: now.AddDate(0, 0, -1)},
	}, now)
	assert.Contains(t, out, "set bonus")
	assert.Contains(t, out, "+50")
	assert.Contains(t, out, "Yesterday")

	assert.Contains(t, FormatBalance(&domain.Room{UserID: "u1", Coins: 65}), "65 coins")
}

func TestFormatTemplate(t *testing.T) {
	out := FormatTemplate(&domain.QuestTemplate{
		ID: "checks-3", Name: "Tick off 3 checkmarks", Reward: 10, Target: 3,
		RelatedHabitType: domain.RelatedCheckmark,
	})
	assert.Contains(t, out, "QUEST")
	assert.Contains(t, out, "Tick off 3 checkmarks")
	assert.Contains(t, out, "10 coins")
	assert.Contains(t, out, "retired")
}
