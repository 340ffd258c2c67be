package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/habitquest/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
	ColorCoin   = lipgloss.Color("#d79921")
)

func fg(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

var (
	StyleGreen  = fg(ColorGreen)
	StyleYellow = fg(ColorYellow)
	StyleRed    = fg(ColorRed)
	StyleBlue   = fg(ColorBlue)
	StylePurple = fg(ColorPurple)
	StyleDim    = fg(ColorDim)
	StyleFg     = fg(ColorFg)
	StyleCoin   = fg(ColorCoin).Bold(true)
	StyleHeader = fg(ColorHeader).Bold(true)
	StyleBold   = fg(ColorFg).Bold(true)
)

type badge struct {
	style lipgloss.Style
	label string
}

var priorityBadges = map[domain.Priority]badge{
	domain.PriorityHigh:   {StyleRed, "▲ HIGH"},
	domain.PriorityMedium: {StyleYellow, "● MEDIUM"},
	domain.PriorityLow:    {StyleBlue, "▽ LOW"},
}

var statusBadges = map[domain.EntryStatus]badge{
	domain.StatusComplete:   {StyleGreen, "✔ Complete"},
	domain.StatusIncomplete: {StyleYellow, "○ Incomplete"},
	domain.StatusSkipped:    {StyleDim, "⊘ Skipped"},
	domain.StatusFailed:     {StyleRed, "✖ Failed"},
}

// PriorityColor returns the style for a habit priority.
func PriorityColor(p domain.Priority) lipgloss.Style {
	if b, ok := priorityBadges[p]; ok {
		return b.style
	}
	return StyleDim
}

// PriorityBadge renders a priority as "▲ HIGH", "● MEDIUM" or "▽ LOW".
func PriorityBadge(p domain.Priority) string {
	if b, ok := priorityBadges[p]; ok {
		return b.style.Render(b.label)
	}
	return StyleDim.Render(string(p))
}

// StatusPill renders a day's entry status with its icon.
func StatusPill(status domain.EntryStatus) string {
	if b, ok := statusBadges[status]; ok {
		return b.style.Render(b.label)
	}
	return StyleDim.Render(string(status))
}

// Header renders an upper-cased section title over a rule of the same width.
func Header(text string) string {
	title := strings.ToUpper(text)
	rule := strings.Repeat("─", lipgloss.Width(title))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(title), StyleDim.Render(rule))
}

func Dim(text string) string  { return StyleDim.Render(text) }
func Bold(text string) string { return StyleBold.Render(text) }
