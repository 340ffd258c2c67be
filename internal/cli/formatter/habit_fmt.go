package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/habitquest/internal/app"
	"github.com/alexanderramin/habitquest/internal/domain"
	"github.com/alexanderramin/habitquest/internal/progress"
)

// FormatHabitList renders all habits of a user as a table.
func FormatHabitList(habits []*domain.Habit) string {
	headers := []string{"ID", "NAME", "KIND", "GOAL", "SCHEDULE", "PRIORITY", "STREAK"}
	rows := make([][]string, 0, len(habits))
	for _, h := range habits {
		rows = append(rows, []string{
			TruncID(h.ID),
			Bold(h.Name),
			string(h.Kind),
			FormatGoal(h),
			ScheduleLabel(h.Schedule),
			PriorityBadge(h.Priority),
			FormatStreak(h.Streak),
		})
	}
	return RenderTable(headers, rows)
}

// FormatToday renders the habits due on day with their progress.
func FormatToday(day time.Time, items []app.HabitDay) string {
	var b strings.Builder
	b.WriteString(Header(day.Format("Monday, Jan 2")))
	b.WriteString("\n")
	if len(items) == 0 {
		b.WriteString(Dim("Nothing scheduled."))
		b.WriteString("\n")
		return b.String()
	}

	headers := []string{"ID", "HABIT", "PROGRESS", "", "STATUS", "STREAK"}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		h := it.Habit
		rows = append(rows, []string{
			TruncID(h.ID),
			PriorityColor(h.Priority).Render(h.Name),
			RenderRatio(it.Status.Value, h.Goal(), 10),
			fmt.Sprintf("%s / %s", FormatValue(h, it.Status.Value), FormatGoal(h)),
			StatusPill(it.Status.Status),
			FormatStreak(it.Streak),
		})
	}
	b.WriteString(RenderTable(headers, rows))
	return b.String()
}

// FormatHabitDetail renders a single habit with its most recent entries.
func FormatHabitDetail(h *domain.Habit, recent int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n\n", Bold(h.Name), TruncID(h.ID))
	fmt.Fprintf(&b, "Kind:      %s\n", h.Kind)
	fmt.Fprintf(&b, "Goal:      %s per day\n", FormatGoal(h))
	fmt.Fprintf(&b, "Schedule:  %s\n", ScheduleLabel(h.Schedule))
	fmt.Fprintf(&b, "Priority:  %s\n", PriorityBadge(h.Priority))
	fmt.Fprintf(&b, "Streak:    %s\n", FormatStreak(h.Streak))
	fmt.Fprintf(&b, "Created:   %s", h.CreatedAt.Format("Jan 2, 2006"))

	entries := h.Entries
	if recent > 0 && len(entries) > recent {
		entries = entries[len(entries)-recent:]
	}
	if len(entries) > 0 {
		rows := make([][]string, 0, len(entries))
		for i := len(entries) - 1; i >= 0; i-- {
			e := entries[i]
			rows = append(rows, []string{string(e.Key), e.Weekday, StatusPill(e.Status), FormatValue(h, e.Value)})
		}
		b.WriteString("\n\n")
		b.WriteString(RenderTable([]string{"DAY", "WEEKDAY", "STATUS", "VALUE"}, rows))
	}
	return RenderBox("Habit", strings.TrimRight(b.String(), "\n"))
}

// FormatProgressResult summarizes a complete, skip or fail call.
func FormatProgressResult(h *domain.Habit, res *app.ProgressResult) string {
	var b strings.Builder
	e := res.Entry
	fmt.Fprintf(&b, "%s %s: %s (%s / %s)\n",
		StatusPill(e.Status), h.Name, e.Key, FormatValue(h, e.Value), FormatGoal(h))
	fmt.Fprintf(&b, "Streak: %s\n", FormatStreak(res.Streak))

	for _, a := range res.Awards {
		fmt.Fprintf(&b, "%s quest %q complete, +%s\n", StyleGreen.Render("★"), a.TemplateID, FormatCoins(a.Reward))
	}
	if res.QuestSet != nil && res.QuestSet.IsComplete && !res.QuestSet.BonusClaimed {
		fmt.Fprintf(&b, "%s\n", StylePurple.Render("All quests done. Run `habitquest quest claim` for the bonus."))
	}
	if res.CascadeErr != nil {
		fmt.Fprintf(&b, "%s\n", StyleYellow.Render("Quest progress not updated: "+res.CascadeErr.Error()))
	}
	return b.String()
}

// FormatStats renders a habit's lifetime totals and current week.
func FormatStats(h *domain.Habit, s *progress.Stats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Completed days:  %s\n", StyleGreen.Render(fmt.Sprint(s.CompletedDays)))
	fmt.Fprintf(&b, "Failed days:     %s\n", StyleRed.Render(fmt.Sprint(s.FailedDays)))
	fmt.Fprintf(&b, "Skipped days:    %s\n", Dim(fmt.Sprint(s.SkippedDays)))
	fmt.Fprintf(&b, "Total logged:    %s\n", FormatValue(h, s.TotalValue))
	if n := len(s.CompletedDates); n > 0 {
		fmt.Fprintf(&b, "Last completed:  %s\n", s.CompletedDates[n-1])
	}

	fmt.Fprintf(&b, "\n%s\n", Header(fmt.Sprintf("Week of %s", s.WeekStart.Format("Jan 2"))))
	headers := make([]string, 7)
	cells := make([]string, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		headers[d] = d.String()[:3]
		cells[d] = FormatValue(h, s.TotalValuePerDayCurrentWeek[d])
	}
	b.WriteString(RenderTableAligned(headers, [][]string{cells}, 0, 1, 2, 3, 4, 5, 6))
	return RenderBox(h.Name, strings.TrimRight(b.String(), "\n"))
}
