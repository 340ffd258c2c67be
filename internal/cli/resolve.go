package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/habitquest/internal/domain"
)

// resolveHabit finds one of the user's habits by full ID, ID prefix or
// case-insensitive name.
func resolveHabit(ctx context.Context, app *App, input string) (*domain.Habit, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("habit ID is required")
	}

	habits, err := app.Habits.List(ctx, app.UserID)
	if err != nil {
		return nil, err
	}

	// 1. Exact UUID match
	for _, h := range habits {
		if h.ID == input {
			return h, nil
		}
	}

	// 2. Exact name match (case-insensitive)
	var named []*domain.Habit
	for _, h := range habits {
		if strings.EqualFold(h.Name, input) {
			named = append(named, h)
		}
	}
	if len(named) == 1 {
		return named[0], nil
	}

	// 3. UUID prefix match
	var matches []*domain.Habit
	for _, h := range habits {
		if strings.HasPrefix(h.ID, strings.ToLower(input)) {
			matches = append(matches, h)
		}
	}

	switch {
	case len(matches) == 1:
		return matches[0], nil
	case len(matches) > 1:
		return nil, fmt.Errorf("habit ID prefix %q is ambiguous (%d matches)", input, len(matches))
	case len(named) > 1:
		return nil, fmt.Errorf("habit name %q is ambiguous (%d matches), use the ID", input, len(named))
	default:
		return nil, fmt.Errorf("habit not found: %q", input)
	}
}
