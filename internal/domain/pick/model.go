package pick

import "time"

const (
	OutcomePending = "PENDING"
	OutcomeWin     = "WIN"
	OutcomeDraw    = "DRAW"
	OutcomeLoss    = "LOSS"
)

// Pick is a user's single team selection for a gameweek. Outcome stays
// PENDING until the owning gameweek is settled.
type Pick struct {
	ID         string
	EntryID    string
	GameweekID string
	FixtureID  string
	TeamID     string
	Outcome    string
	SettledAt  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (p Pick) IsSettled() bool {
	return p.SettledAt != nil
}
