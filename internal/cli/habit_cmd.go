package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/habitquest/internal/cli/formatter"
	"github.com/alexanderramin/habitquest/internal/contract"
	"github.com/alexanderramin/habitquest/internal/domain"
	"github.com/spf13/cobra"
)

func newHabitCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "habit",
		Short: "Manage and track habits",
	}

	cmd.AddCommand(
		newHabitAddCmd(app),
		newHabitListCmd(app),
		newHabitShowCmd(app),
		newHabitEditCmd(app),
		newHabitDeleteCmd(app),
		newHabitTodayCmd(app),
		newHabitCompleteCmd(app),
		newHabitMarkCmd(app, "skip", "Mark today's entry as skipped"),
		newHabitMarkCmd(app, "fail", "Mark today's entry as failed"),
		newHabitStatusCmd(app),
		newHabitStreakCmd(app),
		newHabitStatsCmd(app),
	)

	return cmd
}

func newHabitAddCmd(app *App) *cobra.Command {
	var (
		draft       habitDraft
		schedule    domain.Schedule
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new habit",
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive {
				if !app.interactive() {
					return fmt.Errorf("--interactive needs a terminal on stdin")
				}
				if err := runHabitForm(&draft); err != nil {
					return err
				}
			} else {
				if draft.Name == "" {
					return fmt.Errorf("--name is required")
				}
				draft.Days = schedule
			}

			h, err := draft.habit(app.UserID)
			if err != nil {
				return err
			}
			if err := app.Habits.Create(cmd.Context(), h); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created habit %s %s (%s, %s)\n",
				formatter.Bold(h.Name), formatter.TruncID(h.ID), formatter.FormatGoal(h), formatter.ScheduleLabel(h.Schedule))
			return nil
		},
	}

	cmd.Flags().StringVar(&draft.Name, "name", "", "Habit name")
	cmd.Flags().StringVar(&draft.Kind, "kind", string(domain.KindTimed), "Goal kind: timed or checkmark")
	cmd.Flags().IntVar(&draft.Hours, "hours", 0, "Timed goal hours")
	cmd.Flags().IntVar(&draft.Minutes, "minutes", 30, "Timed goal minutes (0-59)")
	cmd.Flags().IntVar(&draft.Target, "target", 1, "Checkmark goal per day")
	cmd.Flags().Var(newWeekdaysValue(&schedule, domain.NewSchedule(allWeekdays...)), "days", "Scheduled weekdays, e.g. mon,wed,fri or weekdays")
	cmd.Flags().StringVar(&draft.Priority, "priority", string(domain.PriorityMedium), "Priority: high, medium or low")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Fill in the habit with a form")

	return cmd
}

func newHabitListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List habits",
		RunE: func(cmd *cobra.Command, args []string) error {
			habits, err := app.Habits.List(cmd.Context(), app.UserID)
			if err != nil {
				return err
			}
			if len(habits) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No habits found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHabitList(habits))
			return nil
		},
	}
}

func newHabitShowCmd(app *App) *cobra.Command {
	var recent int

	cmd := &cobra.Command{
		Use:   "show <habit>",
		Short: "Show a habit and its recent entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := resolveHabit(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatHabitDetail(h, recent))
			return nil
		},
	}
	cmd.Flags().IntVar(&recent, "entries", 7, "Number of recent entries to show (0 for all)")
	return cmd
}

func newHabitEditCmd(app *App) *cobra.Command {
	var (
		name, kind, priority   string
		hours, minutes, target int
		schedule               domain.Schedule
	)

	cmd := &cobra.Command{
		Use:   "edit <habit>",
		Short: "Change a habit's name, goal, schedule or priority",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := resolveHabit(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}

			req := contract.HabitUpdate{HabitID: h.ID, UserID: app.UserID}
			flags := cmd.Flags()
			if flags.Changed("name") {
				req.Name = &name
			}
			if flags.Changed("kind") {
				k := domain.HabitKind(strings.ToLower(kind))
				req.Kind = &k
			}
			if flags.Changed("priority") {
				p := domain.Priority(strings.ToLower(priority))
				req.Priority = &p
			}
			if flags.Changed("hours") {
				req.GoalHours = &hours
			}
			if flags.Changed("minutes") {
				req.GoalMinutes = &minutes
			}
			if flags.Changed("target") {
				req.Target = &target
			}
			if flags.Changed("days") {
				req.Schedule = schedule
			}
			if !edited(cmd, "name", "kind", "priority", "hours", "minutes", "target", "days") {
				return fmt.Errorf("nothing to change")
			}

			updated, err := app.Habits.Update(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated habit %s (%s, %s)\n",
				formatter.Bold(updated.Name), formatter.FormatGoal(updated), formatter.ScheduleLabel(updated.Schedule))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&kind, "kind", "", "Switch goal kind: timed or checkmark")
	cmd.Flags().IntVar(&hours, "hours", 0, "Timed goal hours")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "Timed goal minutes (0-59)")
	cmd.Flags().IntVar(&target, "target", 0, "Checkmark goal per day")
	cmd.Flags().Var(newWeekdaysValue(&schedule, nil), "days", "Scheduled weekdays, e.g. mon,wed,fri")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority: high, medium or low")

	return cmd
}

func newHabitDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <habit>",
		Short: "Delete a habit and its history (earned coins are kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := resolveHabit(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if err := app.Habits.Delete(cmd.Context(), h.ID, app.UserID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted habit %s\n", h.Name)
			return nil
		},
	}
}

func newHabitTodayCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show the habits scheduled for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(app, date)
			if err != nil {
				return err
			}
			items, err := app.Habits.ListForDay(cmd.Context(), app.UserID, day)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatToday(day.In(app.Calendar.Loc()), items))
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Day to show (YYYY-MM-DD, default today)")
	return cmd
}

func newHabitCompleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <habit> [amount]",
		Short: "Log progress for today (minutes or checkmarks, default 1)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := resolveHabit(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			delta := "1"
			if len(args) == 2 {
				delta = args[1]
			}
			res, err := app.Progress.Complete(cmd.Context(), contract.NewProgressRequest(h.ID, app.UserID, delta))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProgressResult(h, res))
			return nil
		},
	}
}

// newHabitMarkCmd builds the skip and fail commands, which force today's
// status without touching the recorded value.
func newHabitMarkCmd(app *App, use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <habit>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := resolveHabit(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			req := contract.NewProgressRequest(h.ID, app.UserID, "")
			var res *contract.ProgressResult
			if use == "skip" {
				res, err = app.Progress.Skip(cmd.Context(), req)
			} else {
				res, err = app.Progress.Fail(cmd.Context(), req)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProgressResult(h, res))
			return nil
		},
	}
}

func newHabitStatusCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "status <habit>",
		Short: "Show a habit's status for a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := resolveHabit(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			day, err := parseDay(app, date)
			if err != nil {
				return err
			}
			st, err := app.Progress.StatusForDay(cmd.Context(), contract.NewStatusRequestOn(h.ID, app.UserID, day))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s on %s: %s / %s\n",
				formatter.StatusPill(st.Status), h.Name, app.Calendar.Key(day),
				formatter.FormatValue(h, st.Value), formatter.FormatGoal(h))
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Day to check (YYYY-MM-DD, default today)")
	return cmd
}

func newHabitStreakCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "streak <habit>",
		Short: "Show a habit's current streak",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := resolveHabit(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			n, err := app.Progress.Streak(cmd.Context(), h.ID, app.UserID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", h.Name, formatter.FormatStreak(n))
			return nil
		},
	}
}

func newHabitStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <habit>",
		Short: "Show lifetime totals and this week's progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := resolveHabit(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			stats, err := app.Progress.Stats(cmd.Context(), h.ID, app.UserID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStats(h, stats))
			return nil
		},
	}
}

func edited(cmd *cobra.Command, names ...string) bool {
	for _, n := range names {
		if cmd.Flags().Changed(n) {
			return true
		}
	}
	return false
}
