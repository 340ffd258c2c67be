package formatter

import (
	"fmt"
	"time"

	"github.com/alexanderramin/habitquest/internal/domain"
)

// FormatBalance renders a user's room.
func FormatBalance(room *domain.Room) string {
	body := fmt.Sprintf("%s\n%s", StyleCoin.Render(FormatCoins(room.Coins)), Dim("owner: "+room.UserID))
	return RenderBox("Room", body)
}

// FormatLedger renders coin grants, newest first, dated relative to now.
func FormatLedger(entries []domain.LedgerEntry, now time.Time) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		reason := "quest"
		if e.Reason == domain.LedgerSetBonus {
			reason = StylePurple.Render("set bonus")
		}
		rows = append(rows, []string{
			RelativeDay(e.CreatedAt, now),
			reason,
			StyleCoin.Render(fmt.Sprintf("+%d", e.Amount)),
			Dim(e.SourceID),
		})
	}
	return RenderTableAligned([]string{"WHEN", "REASON", "COINS", "SOURCE"}, rows, 2)
}
