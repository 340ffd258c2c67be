package progress

import (
	"time"

	"github.com/alexanderramin/habitquest/internal/domain"
)

// MaxScanDays bounds the backward streak scan to roughly a century.
const MaxScanDays = 36500

// Streak counts consecutive completed scheduled days walking backward
// from now's local day to the habit's creation day.
//
// Skipped days neither count nor break the run. Today may still be
// incomplete without breaking it. A past scheduled day that is failed,
// incomplete or missing ends the scan. Unscheduled days are ignored.
func Streak(h *domain.Habit, cal domain.Calendar, now time.Time) int {
	idx := h.Index()
	today := cal.Day(now)
	floor := cal.Day(h.CreatedAt)

	count := 0
	day := today
	for i := 0; i < MaxScanDays; i++ {
		if day.Before(floor) {
			break
		}
		if h.IsScheduled(cal, day) {
			switch idx.Lookup(cal.Key(day)).Status {
			case domain.StatusComplete:
				count++
			case domain.StatusSkipped:
			case domain.StatusIncomplete:
				if !cal.SameDay(day, now) {
					return count
				}
			default:
				return count
			}
		}
		day = cal.PrevDay(day)
	}
	return count
}

// Refresh recomputes the habit's cached streak and returns it.
func Refresh(h *domain.Habit, cal domain.Calendar, now time.Time) int {
	h.Streak = Streak(h, cal, now)
	return h.Streak
}
