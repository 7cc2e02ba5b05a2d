package exacto

// Prediction is an optional exact-scoreline guess for one fixture, scored
// independently of the elimination mechanic. IsCorrect stays nil until the
// fixture finishes.
type Prediction struct {
	ID         string
	EntryID    string
	GameweekID string
	FixtureID  string
	HomeGoals  int
	AwayGoals  int
	IsCorrect  *bool
}
