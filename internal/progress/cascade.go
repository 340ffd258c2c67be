package progress

import "github.com/alexanderramin/habitquest/internal/domain"

type CascadeInput struct {
	Set        *domain.DailyQuestSet
	Kind       domain.HabitKind
	Transition domain.Transition

	// Delta is the raw, unclamped increment passed to Complete.
	Delta int
}

// Award is a reward earned by a slot crossing its target.
type Award struct {
	Position   int
	TemplateID string
	Reward     int
}

type CascadeResult struct {
	Awards       []Award
	SetCompleted bool
	// Changed is false when no slot progress moved.
	Changed bool
}

// TotalReward sums all awards.
func (r CascadeResult) TotalReward() int {
	total := 0
	for _, a := range r.Awards {
		total += a.Reward
	}
	return total
}

// ApplyCascade folds one habit update into the quest set in place.
//
// Quests tagged with the habit's kind accumulate the raw delta on every
// call. any_completion quests advance by one only on the completion edge.
// A slot pays out once, when its progress first reaches the target.
func ApplyCascade(in CascadeInput) CascadeResult {
	var res CascadeResult
	if in.Set == nil {
		return res
	}

	for i := range in.Set.Slots {
		slot := &in.Set.Slots[i]
		if slot.IsComplete {
			continue
		}
		target := slot.Template.Target
		wasComplete := slot.Progress >= target

		switch {
		case slot.Template.RelatedHabitType.Matches(in.Kind):
			slot.Progress = domain.AddClamped(slot.Progress, in.Delta)
			res.Changed = res.Changed || in.Delta != 0
		case slot.Template.RelatedHabitType == domain.RelatedAnyCompletion && in.Transition.Completed():
			slot.Progress++
			res.Changed = true
		}

		if slot.Progress >= target && !wasComplete {
			slot.IsComplete = true
			res.Changed = true
			res.Awards = append(res.Awards, Award{
				Position:   slot.Position,
				TemplateID: slot.Template.ID,
				Reward:     slot.Template.Reward,
			})
		}
	}

	if !in.Set.IsComplete && in.Set.AllSlotsComplete() {
		in.Set.IsComplete = true
		res.SetCompleted = true
		res.Changed = true
	}
	return res
}
