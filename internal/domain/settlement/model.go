package settlement

import "time"

// PickResult is a computed final outcome for one pick.
type PickResult struct {
	PickID  string
	Outcome string
}

// EntryUpdate carries the post-settlement life count for one entry.
// EliminatedAtGameweek is nil unless this settlement eliminated the entry.
type EntryUpdate struct {
	EntryID              string
	LivesRemaining       int
	EliminatedAtGameweek *int
}

// ExactoResult is the evaluation of one exact-score prediction.
type ExactoResult struct {
	PredictionID string
	IsCorrect    bool
}

// Result is the full set of row changes produced by settling one gameweek.
// It is applied atomically so an interrupted settlement never leaves a
// half-updated gameweek behind.
type Result struct {
	GameweekID string
	SettledAt  time.Time
	Picks      []PickResult
	Entries    []EntryUpdate
	Exactos    []ExactoResult
}
