package competition

import "time"

// Competition is the root of the pick'em hierarchy. LivesPerRound is the
// starting life count handed to every new entry.
type Competition struct {
	ID            string
	Name          string
	Season        string
	InviteCode    string
	LivesPerRound int
}

// Round is one elimination cycle within a competition. A nil EndedAt means
// the round is still being played.
type Round struct {
	ID            string
	CompetitionID string
	RoundNumber   int
	StartedAt     time.Time
	EndedAt       *time.Time
}

func (r Round) IsActive() bool {
	return r.EndedAt == nil
}
