package cli

import (
	"fmt"

	"github.com/alexanderramin/habitquest/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newRoomCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Coin balance and reward history",
	}

	cmd.AddCommand(
		newRoomBalanceCmd(app),
		newRoomHistoryCmd(app),
	)

	return cmd
}

func newRoomBalanceCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show the coin balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			room, err := app.Rooms.Balance(cmd.Context(), app.UserID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatBalance(room))
			return nil
		},
	}
}

func newRoomHistoryCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List coin grants, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.Rooms.History(cmd.Context(), app.UserID, limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No coins earned yet.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatLedger(entries, app.now()))
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum entries to show (0 for all)")
	return cmd
}
