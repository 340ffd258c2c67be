package domain

import "time"

// Room holds a user's coin balance.
type Room struct {
	UserID    string
	Coins     int
	UpdatedAt time.Time
}

type LedgerReason string

const (
	LedgerQuestSlot LedgerReason = "quest_slot"
	LedgerSetBonus  LedgerReason = "set_bonus"
)

// LedgerEntry records one coin grant.
type LedgerEntry struct {
	ID        string
	UserID    string
	Amount    int
	Reason    LedgerReason
	SourceID  string
	CreatedAt time.Time
}
