package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/habitquest/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox draws content inside a rounded border, headed by an
// upper-cased title when one is given.
func RenderBox(title, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title == "" {
		return box.Render(content)
	}
	return box.Render(lipgloss.JoinVertical(lipgloss.Left,
		StyleHeader.Render(strings.ToUpper(title)), "", content))
}

// RelativeDay labels t by how many calendar days, in now's location, it
// lies before now: "Today", "Yesterday", "3d ago" within the week, then
// "Jan 2" for this year and "Jan 2, 2006" before that.
func RelativeDay(t, now time.Time) string {
	t = t.In(now.Location())
	midnight := func(x time.Time) time.Time {
		return time.Date(x.Year(), x.Month(), x.Day(), 0, 0, 0, 0, x.Location())
	}
	days := int(midnight(now).Sub(midnight(t)).Hours()/24 + 0.5)

	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%dd ago", days)
	case t.Year() == now.Year():
		return t.Format("Jan 2")
	default:
		return t.Format("Jan 2, 2006")
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// FormatMinutes converts raw minutes into human-friendly format.
func FormatMinutes(min int) string {
	if min <= 0 {
		return "0m"
	}
	h := min / 60
	m := min % 60
	if h > 0 && m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if h > 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dm", m)
}

// FormatValue renders progress in the habit's unit: minutes for timed
// habits, a checkmark count otherwise.
func FormatValue(h *domain.Habit, value int) string {
	if h.Kind == domain.KindTimed {
		return FormatMinutes(value)
	}
	if value == 1 {
		return "1 check"
	}
	return fmt.Sprintf("%d checks", value)
}

// FormatGoal renders the goal that completes one day.
func FormatGoal(h *domain.Habit) string {
	return FormatValue(h, h.Goal())
}

// FormatStreak renders a streak with a flame once it is running.
func FormatStreak(n int) string {
	switch {
	case n <= 0:
		return StyleDim.Render("0 days")
	case n == 1:
		return StyleYellow.Render("🔥 1 day")
	default:
		return StyleYellow.Render(fmt.Sprintf("🔥 %d days", n))
	}
}

// FormatCoins renders a coin amount.
func FormatCoins(n int) string {
	return StyleYellow.Render(fmt.Sprintf("%d coins", n))
}

// ScheduleLabel abbreviates a schedule, collapsing the full week to "Every day".
func ScheduleLabel(s domain.Schedule) string {
	if len(s) == 7 {
		return "Every day"
	}
	short := make([]string, 0, len(s))
	for _, name := range s.Names() {
		if len(name) > 3 {
			name = name[:3]
		}
		short = append(short, name)
	}
	return strings.Join(short, " ")
}
