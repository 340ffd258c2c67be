package progress

import (
	"testing"
	"time"

	"github.com/alexanderramin/habitquest/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestAggregate_LifetimeTotalsAndCurrentWeek(t *testing.T) {
	h := dailyHabit(friday.AddDate(0, 0, -30))

	add := func(daysAgo int, status domain.EntryStatus, value int) {
		day := friday.AddDate(0, 0, -daysAgo)
		h.Entries = append(h.Entries, domain.DailyStatusEntry{
			Key: cal.Key(day), Day: day, Status: status, Value: value,
		})
	}
	// Previous weeks, including Saturday 7 June.
	add(20, domain.StatusComplete, 1)
	add(8, domain.StatusFailed, 0)
	add(6, domain.StatusSkipped, 0)
	// Current week: Sunday, Wednesday, Friday.
	add(5, domain.StatusComplete, 3)
	add(2, domain.StatusIncomplete, 2)
	add(0, domain.StatusComplete, 4)

	s := Aggregate(h, cal, friday)
	assert.Equal(t, 3, s.CompletedDays)
	assert.Equal(t, 1, s.FailedDays)
	assert.Equal(t, 1, s.SkippedDays)
	assert.Equal(t, 10, s.TotalValue)
	assert.Equal(t, [7]int{3, 0, 0, 2, 0, 4, 0}, s.TotalValuePerDayCurrentWeek)
	assert.Equal(t, []domain.DayKey{"2025-05-24", "2025-06-08", "2025-06-13"}, s.CompletedDates)
	assert.Equal(t, time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC), s.WeekStart)
}

func TestAggregate_EmptyHistory(t *testing.T) {
	s := Aggregate(dailyHabit(friday), cal, friday)
	assert.Zero(t, s.CompletedDays)
	assert.Zero(t, s.TotalValue)
	assert.Equal(t, [7]int{}, s.TotalValuePerDayCurrentWeek)
	assert.Empty(t, s.CompletedDates)
}
