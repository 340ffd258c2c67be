package progress

import (
	"slices"
	"time"

	"github.com/alexanderramin/habitquest/internal/domain"
)

// Stats is a read-only rollup of a habit's history.
type Stats struct {
	CompletedDays int
	FailedDays    int
	SkippedDays   int
	TotalValue    int
	// TotalValuePerDayCurrentWeek sums values by weekday (Sunday = 0) for
	// entries inside the current Sunday..Saturday week.
	TotalValuePerDayCurrentWeek [7]int
	// CompletedDates lists the days with a complete entry, oldest first.
	CompletedDates []domain.DayKey
	WeekStart      time.Time
	WeekEnd        time.Time
}

// Aggregate computes lifetime totals and the current week's per-weekday sums.
func Aggregate(h *domain.Habit, cal domain.Calendar, now time.Time) Stats {
	var s Stats
	s.WeekStart, s.WeekEnd = cal.WeekBounds(now)

	for _, e := range h.Entries {
		switch e.Status {
		case domain.StatusComplete:
			s.CompletedDays++
			s.CompletedDates = append(s.CompletedDates, e.Key)
		case domain.StatusFailed:
			s.FailedDays++
		case domain.StatusSkipped:
			s.SkippedDays++
		}
		s.TotalValue += e.Value

		if e.Day.Before(s.WeekStart) || e.Day.After(s.WeekEnd) {
			continue
		}
		s.TotalValuePerDayCurrentWeek[cal.Weekday(e.Day)] += e.Value
	}

	slices.Sort(s.CompletedDates)
	return s
}
