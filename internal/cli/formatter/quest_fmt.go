package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/habitquest/internal/domain"
)

// FormatQuestSet renders a day's quests with their progress.
func FormatQuestSet(set *domain.DailyQuestSet, bonus int) string {
	var b strings.Builder
	rows := make([][]string, 0, len(set.Slots))
	for _, slot := range set.Slots {
		tpl := slot.Template
		mark := StyleYellow.Render("○")
		if slot.IsComplete {
			mark = StyleGreen.Render("✔")
		}
		rows = append(rows, []string{
			mark,
			tpl.Name,
			RenderRatio(slot.Progress, tpl.Target, 10),
			fmt.Sprintf("%d/%d", min(slot.Progress, tpl.Target), tpl.Target),
			FormatCoins(tpl.Reward),
		})
	}
	b.WriteString(RenderTableAligned([]string{"", "QUEST", "PROGRESS", "", "REWARD"}, rows, 3))

	b.WriteString("\n")
	switch {
	case set.BonusClaimed:
		b.WriteString(Dim(fmt.Sprintf("Set bonus of %d coins claimed.", bonus)))
	case set.IsComplete:
		b.WriteString(StylePurple.Render(fmt.Sprintf("All done! Claim your %d coin bonus with `habitquest quest claim`.", bonus)))
	default:
		b.WriteString(Dim(fmt.Sprintf("Finish every quest for a %d coin bonus.", bonus)))
	}
	return RenderBox(fmt.Sprintf("Quests for %s", set.Day), b.String())
}

func templateState(t domain.QuestTemplate) string {
	if t.Active {
		return StyleGreen.Render("active")
	}
	return Dim("retired")
}

// FormatTemplate renders a single catalog entry.
func FormatTemplate(t *domain.QuestTemplate) string {
	body := fmt.Sprintf("%s  %s\n\nTracks:  %s\nTarget:  %d\nReward:  %s\nState:   %s",
		Bold(t.Name), Dim(t.ID), t.RelatedHabitType, t.Target,
		StyleCoin.Render(FormatCoins(t.Reward)), templateState(*t))
	return RenderBox("Quest", body)
}

// FormatTemplates renders the quest catalog.
func FormatTemplates(templates []domain.QuestTemplate) string {
	rows := make([][]string, 0, len(templates))
	for _, t := range templates {
		state := templateState(t)
		rows = append(rows, []string{
			t.ID, t.Name, string(t.RelatedHabitType),
			fmt.Sprint(t.Target), fmt.Sprint(t.Reward), state,
		})
	}
	return RenderTableAligned([]string{"ID", "NAME", "TRACKS", "TARGET", "REWARD", "STATE"}, rows, 3, 4)
}
