package cli

import (
	"time"

	"github.com/alexanderramin/habitquest/internal/domain"
	"github.com/alexanderramin/habitquest/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Habits   service.HabitService
	Progress service.ProgressService
	Quests   service.QuestService
	Rooms    service.RoomService

	// UserID is the default owner; --user overrides it per invocation.
	UserID   string
	Calendar domain.Calendar
	SetBonus int

	// Now defaults to time.Now.
	Now func() time.Time
	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "habitquest" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "habitquest",
		Short:         "Habit tracker with daily quests and coin rewards",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&app.UserID, "user", app.UserID, "User to act as")

	root.AddCommand(
		newHabitCmd(app),
		newQuestCmd(app),
		newRoomCmd(app),
	)

	return root
}
