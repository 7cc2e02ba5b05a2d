package entry

// Entry is a user's participation record within one round of a competition.
// LivesRemaining only ever decreases; EliminatedAtGameweek records the
// gameweek number at which it reached zero.
type Entry struct {
	ID                   string
	UserID               string
	CompetitionID        string
	RoundID              string
	LivesRemaining       int
	EliminatedAtGameweek *int
}

func (e Entry) IsEliminated() bool {
	return e.LivesRemaining <= 0
}
