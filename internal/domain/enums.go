package domain

type HabitKind string

const (
	KindTimed     HabitKind = "timed"
	KindCheckmark HabitKind = "checkmark"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type EntryStatus string

const (
	StatusIncomplete EntryStatus = "incomplete"
	StatusComplete   EntryStatus = "complete"
	StatusSkipped    EntryStatus = "skipped"
	StatusFailed     EntryStatus = "failed"
)

// RelatedHabitType tags a quest template with the habit activity that
// advances it.
type RelatedHabitType string

const (
	RelatedTimed         RelatedHabitType = "timed"
	RelatedCheckmark     RelatedHabitType = "checkmark"
	RelatedAnyCompletion RelatedHabitType = "any_completion"
)

// ValidHabitKinds is the canonical set of accepted habit kind strings.
var ValidHabitKinds = map[string]bool{
	"timed": true, "checkmark": true,
}

// ValidPriorities is the canonical set of accepted priority strings.
var ValidPriorities = map[string]bool{
	"high": true, "medium": true, "low": true,
}

// ValidRelatedHabitTypes is the canonical set of accepted quest tags.
var ValidRelatedHabitTypes = map[string]bool{
	"timed": true, "checkmark": true, "any_completion": true,
}

// Matches reports whether a quest tagged r tracks the raw progress of a
// habit of kind k.
func (r RelatedHabitType) Matches(k HabitKind) bool {
	return string(r) == string(k)
}
