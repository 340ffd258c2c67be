package domain

import "math"

// Goal returns the value that completes a day: minutes for timed habits,
// checkmarks for checkmark habits.
func (h *Habit) Goal() int {
	switch h.Kind {
	case KindTimed:
		return h.GoalHours*60 + h.GoalMinutes
	case KindCheckmark:
		return h.Target
	default:
		return 0
	}
}

// EvaluateGoal floors total at zero, clamps it to the habit's goal and
// derives the day's status. A zero goal evaluates as complete; habit
// validation rejects it, so it only shows up on hand-built data.
func EvaluateGoal(h *Habit, total int) (int, EntryStatus) {
	if total < 0 {
		total = 0
	}
	goal := h.Goal()
	if goal <= 0 {
		return 0, StatusComplete
	}
	if total > goal {
		total = goal
	}
	if total >= goal {
		return total, StatusComplete
	}
	return total, StatusIncomplete
}

// AddClamped returns a+b, pinned to the int range instead of wrapping.
func AddClamped(a, b int) int {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return math.MaxInt
	case b < 0 && a < math.MinInt-b:
		return math.MinInt
	}
	return a + b
}
