package team

// Team is a normalized participant reference. Fixtures and picks point at
// team IDs so that display-name drift never breaks settlement.
type Team struct {
	ID            string
	CompetitionID string
	Name          string
	ShortName     string
	CrestColor    string
}
