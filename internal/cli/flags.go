package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/habitquest/internal/domain"
	"github.com/spf13/pflag"
)

// weekdaysValue is a pflag.Value for comma-separated weekdays. It also
// takes the shorthands "daily", "weekdays" and "weekends".
type weekdaysValue struct {
	days *domain.Schedule
}

var _ pflag.Value = (*weekdaysValue)(nil)

func newWeekdaysValue(p *domain.Schedule, def domain.Schedule) *weekdaysValue {
	*p = def
	return &weekdaysValue{days: p}
}

func (v *weekdaysValue) String() string {
	if v.days == nil {
		return ""
	}
	return strings.ToLower(v.days.String())
}

func (v *weekdaysValue) Type() string { return "weekdays" }

func (v *weekdaysValue) Set(raw string) error {
	var days []time.Weekday
	for _, part := range strings.Split(raw, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		switch part {
		case "":
			continue
		case "daily", "all", "everyday":
			days = append(days, allWeekdays...)
		case "weekdays":
			days = append(days, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday)
		case "weekends":
			days = append(days, time.Saturday, time.Sunday)
		default:
			d, err := domain.ParseWeekday(part)
			if err != nil {
				return err
			}
			days = append(days, d)
		}
	}
	if len(days) == 0 {
		return fmt.Errorf("at least one weekday is required")
	}
	*v.days = domain.NewSchedule(days...)
	return nil
}

var allWeekdays = []time.Weekday{
	time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
	time.Thursday, time.Friday, time.Saturday,
}

// parseDay resolves a YYYY-MM-DD flag in the calendar's zone. Empty means now.
func parseDay(app *App, raw string) (time.Time, error) {
	if raw == "" {
		return app.now(), nil
	}
	t, err := domain.DayKey(raw).Time(app.Calendar.Loc())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD)", raw)
	}
	return t, nil
}
