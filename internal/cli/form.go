package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/habitquest/internal/cli/formatter"
	"github.com/alexanderramin/habitquest/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// habitDraft collects habit fields from flags or the interactive form.
type habitDraft struct {
	Name     string
	Kind     string
	Priority string
	Hours    int
	Minutes  int
	Target   int
	Days     domain.Schedule
}

// habit builds an unsaved habit. Field validation is left to the service.
func (d habitDraft) habit(userID string) (*domain.Habit, error) {
	h := &domain.Habit{
		UserID:   userID,
		Name:     strings.TrimSpace(d.Name),
		Schedule: d.Days,
		Priority: domain.Priority(strings.ToLower(d.Priority)),
	}
	switch domain.HabitKind(strings.ToLower(d.Kind)) {
	case domain.KindTimed:
		h.SetTimedGoal(d.Hours, d.Minutes)
	case domain.KindCheckmark:
		h.SetCheckmarkGoal(d.Target)
	default:
		return nil, fmt.Errorf("invalid kind %q (expected timed or checkmark)", d.Kind)
	}
	return h, nil
}

// setGoal reads the form's single goal field: total minutes for timed
// habits, checkmarks otherwise.
func (d *habitDraft) setGoal(raw string) error {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	if domain.HabitKind(d.Kind) == domain.KindTimed {
		d.Hours, d.Minutes, d.Target = n/60, n%60, 0
	} else {
		d.Hours, d.Minutes, d.Target = 0, 0, n
	}
	return nil
}

// habitquestHuhTheme returns a huh theme using the formatter palette.
func habitquestHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.MultiSelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func validateGoal(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}

func validateName(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

// habitForm builds the add-habit form over d. The goal is collected as a
// string and applied with setGoal after the form completes.
func habitForm(d *habitDraft, goal *string, days *[]time.Weekday) *huh.Form {
	dayOptions := make([]huh.Option[time.Weekday], 0, len(allWeekdays))
	for _, wd := range allWeekdays {
		dayOptions = append(dayOptions, huh.NewOption(wd.String(), wd).Selected(true))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Habit name").Value(&d.Name).Validate(validateName),
			huh.NewSelect[string]().Title("Goal kind").
				Options(
					huh.NewOption("Timed (minutes per day)", string(domain.KindTimed)),
					huh.NewOption("Checkmark (count per day)", string(domain.KindCheckmark)),
				).
				Value(&d.Kind),
			huh.NewInput().Title("Daily goal").
				Description("Minutes for timed habits, checkmarks otherwise").
				Placeholder("30").
				Value(goal).
				Validate(validateGoal),
		),
		huh.NewGroup(
			huh.NewMultiSelect[time.Weekday]().Title("Scheduled days").
				Options(dayOptions...).
				Value(days),
			huh.NewSelect[string]().Title("Priority").
				Options(
					huh.NewOption("High", string(domain.PriorityHigh)),
					huh.NewOption("Medium", string(domain.PriorityMedium)),
					huh.NewOption("Low", string(domain.PriorityLow)),
				).
				Value(&d.Priority),
		),
	).WithTheme(habitquestHuhTheme()).WithShowHelp(false)
}

// runHabitForm fills d interactively.
func runHabitForm(d *habitDraft) error {
	goal := "30"
	var days []time.Weekday
	if err := habitForm(d, &goal, &days).Run(); err != nil {
		return err
	}
	if err := d.setGoal(goal); err != nil {
		return err
	}
	d.Days = domain.NewSchedule(days...)
	return nil
}
