package fixture

import (
	"strings"
	"time"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusLive      = "LIVE"
	StatusFinished  = "FINISHED"
	StatusPostponed = "POSTPONED"
	StatusAbandoned = "ABANDONED"
)

// Fixture represents one scheduled match. Goal counts are only meaningful
// once the status is FINISHED.
type Fixture struct {
	ID            string
	CompetitionID string
	GameweekID    string
	HomeTeamID    string
	AwayTeamID    string
	HomeTeamName  string
	AwayTeamName  string
	KickoffAt     time.Time
	Status        string
	HomeGoals     *int
	AwayGoals     *int
}

func (f Fixture) HasTeam(teamID string) bool {
	return teamID != "" && (teamID == f.HomeTeamID || teamID == f.AwayTeamID)
}

// HasResult reports whether the fixture carries a final score that settlement
// can act on.
func (f Fixture) HasResult() bool {
	return IsFinishedStatus(f.Status) && f.HomeGoals != nil && f.AwayGoals != nil
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

func IsFinishedStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusFinished, "FT", "AET":
		return true
	default:
		return false
	}
}

// IsVoidStatus reports fixtures that will never produce a result. Picks on
// void fixtures cost no lives.
func IsVoidStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusPostponed, StatusAbandoned, "CANCELLED":
		return true
	default:
		return false
	}
}

// IsTerminalStatus reports whether a fixture can no longer change, which is
// the per-fixture precondition for settling its gameweek.
func IsTerminalStatus(status string) bool {
	return IsFinishedStatus(status) || IsVoidStatus(status)
}
