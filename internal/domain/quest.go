package domain

import "time"

type QuestTemplate struct {
	ID               string
	Name             string
	Reward           int
	Target           int
	RelatedHabitType RelatedHabitType
	Active           bool
}

// QuestSlot is one assigned quest inside a daily set.
type QuestSlot struct {
	Position   int
	Template   QuestTemplate
	Progress   int
	IsComplete bool
}

// DailyQuestSet is the bundle of quests assigned to a user for one day.
type DailyQuestSet struct {
	ID           string
	UserID       string
	Day          DayKey
	Slots        []QuestSlot
	IsComplete   bool
	BonusClaimed bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AllSlotsComplete reports whether every slot is complete. An empty set
// is never complete.
func (s *DailyQuestSet) AllSlotsComplete() bool {
	if len(s.Slots) == 0 {
		return false
	}
	for _, slot := range s.Slots {
		if !slot.IsComplete {
			return false
		}
	}
	return true
}
