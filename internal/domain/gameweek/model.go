package gameweek

import "time"

// Gameweek groups the fixtures that share one pick-lock deadline. Picks for
// the gameweek are immutable once LockAt has passed, and IsSettled flips
// exactly once when results are applied to entries.
type Gameweek struct {
	ID            string
	CompetitionID string
	Number        int
	LockAt        time.Time
	IsSettled     bool
	SettledAt     *time.Time
}

func (g Gameweek) IsLocked(now time.Time) bool {
	return !now.Before(g.LockAt)
}
