package pick

import (
	"errors"

	"github.com/survivorleague/survivor-api/internal/domain/fixture"
)

// ErrTeamNotInFixture means a pick references a team that is neither side of
// its fixture. The create-pick path rejects this up front, so seeing it at
// settlement time indicates corrupted data.
var ErrTeamNotInFixture = errors.New("picked team is not a participant of the fixture")

// ComputeOutcome classifies a pick against its fixture's final score from the
// picked team's perspective. Fixtures without a usable result (unfinished,
// postponed, abandoned) yield PENDING.
func ComputeOutcome(teamID string, f fixture.Fixture) (string, error) {
	if !f.HasTeam(teamID) {
		return "", ErrTeamNotInFixture
	}
	if !f.HasResult() {
		return OutcomePending, nil
	}

	own := *f.HomeGoals
	opponent := *f.AwayGoals
	if teamID == f.AwayTeamID {
		own, opponent = opponent, own
	}

	switch {
	case own > opponent:
		return OutcomeWin, nil
	case own < opponent:
		return OutcomeLoss, nil
	default:
		return OutcomeDraw, nil
	}
}
