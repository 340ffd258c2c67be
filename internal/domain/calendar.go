package domain

import (
	"fmt"
	"strings"
	"time"
)

const dayKeyLayout = "2006-01-02"

// DayKey identifies a local calendar day. Two timestamps share a DayKey
// iff they fall on the same day in the calendar's location.
type DayKey string

// Time returns midnight of the key's day in loc.
func (k DayKey) Time(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(dayKeyLayout, string(k), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing day key %q: %w", k, err)
	}
	return t, nil
}

// Calendar buckets timestamps into local days. A zero Calendar uses the
// host's local time zone.
type Calendar struct {
	Location *time.Location
}

// NewCalendar returns a Calendar for the named IANA zone. An empty name
// selects the host's local zone.
func NewCalendar(zone string) (Calendar, error) {
	if zone == "" || strings.EqualFold(zone, "local") {
		return Calendar{Location: time.Local}, nil
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return Calendar{}, fmt.Errorf("loading time zone %q: %w", zone, err)
	}
	return Calendar{Location: loc}, nil
}

// Loc returns the calendar's location, defaulting to host local time.
func (c Calendar) Loc() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

// Day strips the time of day from t, returning local midnight.
func (c Calendar) Day(t time.Time) time.Time {
	t = t.In(c.Loc())
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.Loc())
}

// Key returns the DayKey for t.
func (c Calendar) Key(t time.Time) DayKey {
	return DayKey(t.In(c.Loc()).Format(dayKeyLayout))
}

// SameDay reports whether a and b fall on the same local day.
func (c Calendar) SameDay(a, b time.Time) bool {
	return c.Key(a) == c.Key(b)
}

// Weekday returns t's local weekday.
func (c Calendar) Weekday(t time.Time) time.Weekday {
	return t.In(c.Loc()).Weekday()
}

// WeekdayName returns one of "Sunday".."Saturday" for t's local day.
func (c Calendar) WeekdayName(t time.Time) string {
	return c.Weekday(t).String()
}

// PrevDay returns local midnight of the day before day.
func (c Calendar) PrevDay(day time.Time) time.Time {
	d := c.Day(day)
	y, m, dd := d.Date()
	return time.Date(y, m, dd-1, 0, 0, 0, 0, c.Loc())
}

// WeekBounds returns [last Sunday 00:00, next Saturday 23:59:59.999]
// around now.
func (c Calendar) WeekBounds(now time.Time) (start, end time.Time) {
	today := c.Day(now)
	y, m, d := today.Date()
	offset := int(today.Weekday())
	start = time.Date(y, m, d-offset, 0, 0, 0, 0, c.Loc())
	end = time.Date(y, m, d-offset+6, 23, 59, 59, int(999*time.Millisecond), c.Loc())
	return start, end
}

// ParseWeekday accepts full or three-letter weekday names in any case.
func ParseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		if name == full || (len(name) == 3 && strings.HasPrefix(full, name)) {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("unknown weekday %q", s)
}
