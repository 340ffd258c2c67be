package cli

import (
	"fmt"

	"github.com/alexanderramin/habitquest/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newQuestCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quest",
		Short: "Daily quests and the set bonus",
	}

	cmd.AddCommand(
		newQuestTodayCmd(app),
		newQuestClaimCmd(app),
		newQuestTemplatesCmd(app),
		newQuestTemplateCmd(app),
	)

	return cmd
}

func newQuestTodayCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's quests, assigning them on first use",
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := app.Quests.Today(cmd.Context(), app.UserID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatQuestSet(set, app.SetBonus))
			return nil
		},
	}
}

func newQuestClaimCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "claim",
		Short: "Claim the bonus for a completed quest set",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Quests.ClaimBonus(cmd.Context(), app.UserID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Claimed %s for %s. Balance: %s\n",
				formatter.FormatCoins(res.Bonus), res.Set.Day, formatter.FormatCoins(res.Room.Coins))
			return nil
		},
	}
}

func newQuestTemplatesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the quest catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			templates, err := app.Quests.Templates(cmd.Context())
			if err != nil {
				return err
			}
			if len(templates) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No quest templates found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTemplates(templates))
			return nil
		},
	}
}

func newQuestTemplateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "template <id>",
		Short: "Show one quest template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tpl, err := app.Quests.Template(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTemplate(tpl))
			return nil
		},
	}
}
