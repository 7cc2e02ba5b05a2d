package whomst

// Score is an ancillary minigame score attached to an entry. Not
// gameplay-critical; the dashboard shows it for bragging rights only.
type Score struct {
	ID            string
	EntryID       string
	CompetitionID string
	GameType      string
	Score         int
}
