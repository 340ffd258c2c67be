package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Schedule is the set of weekdays a habit is active on, kept sorted
// Sunday-first without duplicates.
type Schedule []time.Weekday

// NewSchedule builds a normalized Schedule from days.
func NewSchedule(days ...time.Weekday) Schedule {
	seen := make(map[time.Weekday]bool, len(days))
	var s Schedule
	for _, d := range days {
		if d < time.Sunday || d > time.Saturday || seen[d] {
			continue
		}
		seen[d] = true
		s = append(s, d)
	}
	sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
	return s
}

// ParseSchedule parses weekday names such as "Monday" or "wed".
func ParseSchedule(names []string) (Schedule, error) {
	days := make([]time.Weekday, 0, len(names))
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			continue
		}
		d, err := ParseWeekday(n)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return NewSchedule(days...), nil
}

// Has reports whether d is scheduled.
func (s Schedule) Has(d time.Weekday) bool {
	for _, x := range s {
		if x == d {
			return true
		}
	}
	return false
}

// Names returns the weekday labels in schedule order.
func (s Schedule) Names() []string {
	out := make([]string, len(s))
	for i, d := range s {
		out[i] = d.String()
	}
	return out
}

func (s Schedule) String() string {
	return strings.Join(s.Names(), ",")
}

// DailyStatusEntry records a habit's progress for one local day.
type DailyStatusEntry struct {
	Key     DayKey
	Day     time.Time
	Status  EntryStatus
	Value   int
	Weekday string
	Month   int
	Year    int
}

// DayStatus is the resolved status of a habit for a given day.
type DayStatus struct {
	Status EntryStatus
	Value  int
}

type Habit struct {
	ID       string
	UserID   string
	Name     string
	Schedule Schedule
	Kind     HabitKind
	Priority Priority

	// Timed goal
	GoalHours   int
	GoalMinutes int

	// Checkmark goal
	Target int

	Entries []DailyStatusEntry
	Streak  int
	Version int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the schedule and kind-specific goal parameters.
func (h *Habit) Validate() error {
	if strings.TrimSpace(h.Name) == "" {
		return fmt.Errorf("habit name is required")
	}
	if len(h.Schedule) == 0 {
		return fmt.Errorf("habit schedule needs at least one weekday")
	}
	if !ValidPriorities[string(h.Priority)] {
		return fmt.Errorf("invalid priority %q (expected high, medium or low)", h.Priority)
	}
	switch h.Kind {
	case KindTimed:
		if h.GoalHours < 0 {
			return fmt.Errorf("goal hours must be >= 0, got %d", h.GoalHours)
		}
		if h.GoalMinutes < 0 || h.GoalMinutes > 59 {
			return fmt.Errorf("goal minutes must be in 0..59, got %d", h.GoalMinutes)
		}
		if h.Target != 0 {
			return fmt.Errorf("timed habit cannot carry a checkmark target")
		}
	case KindCheckmark:
		if h.Target < 1 {
			return fmt.Errorf("checkmark target must be >= 1, got %d", h.Target)
		}
		if h.GoalHours != 0 || h.GoalMinutes != 0 {
			return fmt.Errorf("checkmark habit cannot carry a timed goal")
		}
	default:
		return fmt.Errorf("invalid habit kind %q (expected timed or checkmark)", h.Kind)
	}
	if h.Goal() <= 0 {
		return fmt.Errorf("habit goal must be greater than zero")
	}
	return nil
}

// SetTimedGoal switches the habit to a timed goal, clearing the checkmark target.
func (h *Habit) SetTimedGoal(hours, minutes int) {
	h.Kind = KindTimed
	h.GoalHours = hours
	h.GoalMinutes = minutes
	h.Target = 0
}

// SetCheckmarkGoal switches the habit to a checkmark goal, clearing the timed fields.
func (h *Habit) SetCheckmarkGoal(target int) {
	h.Kind = KindCheckmark
	h.Target = target
	h.GoalHours = 0
	h.GoalMinutes = 0
}

// IsScheduled reports whether the habit is active on t's local weekday.
func (h *Habit) IsScheduled(cal Calendar, t time.Time) bool {
	return h.Schedule.Has(cal.Weekday(t))
}

// EntryFor returns the entry recorded on day's local date, or nil.
func (h *Habit) EntryFor(cal Calendar, day time.Time) *DailyStatusEntry {
	key := cal.Key(day)
	for i := range h.Entries {
		if h.Entries[i].Key == key {
			return &h.Entries[i]
		}
	}
	return nil
}

// StatusFor resolves the habit's status on day. Days without an entry
// resolve to incomplete with zero progress; nothing is written.
func (h *Habit) StatusFor(cal Calendar, day time.Time) DayStatus {
	if e := h.EntryFor(cal, day); e != nil {
		return DayStatus{Status: e.Status, Value: e.Value}
	}
	return DayStatus{Status: StatusIncomplete, Value: 0}
}

// Transition captures whether a progress update moved today's entry into
// the complete state.
type Transition struct {
	WasComplete bool
	IsComplete  bool
}

// Completed reports the incomplete-to-complete edge.
func (t Transition) Completed() bool {
	return !t.WasComplete && t.IsComplete
}

// ApplyProgress adds delta to today's entry, creating it when absent,
// and re-evaluates the goal. The entry's timestamp moves to now.
func (h *Habit) ApplyProgress(cal Calendar, delta int, now time.Time) (DailyStatusEntry, Transition) {
	e := h.todayEntry(cal, now)
	tr := Transition{WasComplete: e.Status == StatusComplete}

	e.Value, e.Status = EvaluateGoal(h, AddClamped(e.Value, delta))
	stamp(cal, e, now)
	h.UpdatedAt = now

	tr.IsComplete = e.Status == StatusComplete
	return *e, tr
}

// MarkSkipped forces today's entry to skipped, keeping any recorded value.
func (h *Habit) MarkSkipped(cal Calendar, now time.Time) DailyStatusEntry {
	return h.force(cal, StatusSkipped, now)
}

// MarkFailed forces today's entry to failed, keeping any recorded value.
func (h *Habit) MarkFailed(cal Calendar, now time.Time) DailyStatusEntry {
	return h.force(cal, StatusFailed, now)
}

func (h *Habit) force(cal Calendar, status EntryStatus, now time.Time) DailyStatusEntry {
	e := h.todayEntry(cal, now)
	e.Status = status
	stamp(cal, e, now)
	h.UpdatedAt = now
	return *e
}

// todayEntry returns the entry for now's day, appending a fresh
// incomplete one if none exists.
func (h *Habit) todayEntry(cal Calendar, now time.Time) *DailyStatusEntry {
	if e := h.EntryFor(cal, now); e != nil {
		return e
	}
	h.Entries = append(h.Entries, DailyStatusEntry{
		Key:    cal.Key(now),
		Status: StatusIncomplete,
	})
	return &h.Entries[len(h.Entries)-1]
}

func stamp(cal Calendar, e *DailyStatusEntry, now time.Time) {
	local := now.In(cal.Loc())
	e.Key = cal.Key(now)
	e.Day = now
	e.Weekday = local.Weekday().String()
	e.Month = int(local.Month())
	e.Year = local.Year()
}

// StatusIndex maps day keys to their recorded status.
type StatusIndex map[DayKey]DayStatus

// Index builds a StatusIndex over the habit's entries.
func (h *Habit) Index() StatusIndex {
	idx := make(StatusIndex, len(h.Entries))
	for _, e := range h.Entries {
		idx[e.Key] = DayStatus{Status: e.Status, Value: e.Value}
	}
	return idx
}

// Lookup resolves key the same way StatusFor does.
func (idx StatusIndex) Lookup(key DayKey) DayStatus {
	if st, ok := idx[key]; ok {
		return st
	}
	return DayStatus{Status: StatusIncomplete, Value: 0}
}
