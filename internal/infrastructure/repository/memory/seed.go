package memory

import (
	"time"

	"github.com/survivorleague/survivor-api/internal/domain/competition"
	"github.com/survivorleague/survivor-api/internal/domain/credential"
	"github.com/survivorleague/survivor-api/internal/domain/fixture"
	"github.com/survivorleague/survivor-api/internal/domain/gameweek"
	"github.com/survivorleague/survivor-api/internal/domain/team"
	"github.com/survivorleague/survivor-api/internal/domain/user"
)

const CompetitionIDPremierLeague = "epl-survivor-2026"

func SeedCompetitions() []competition.Competition {
	return []competition.Competition{
		{
			ID:            CompetitionIDPremierLeague,
			Name:          "Premier League Survivor",
			Season:        "2026/2027",
			InviteCode:    "SURV27",
			LivesPerRound: 2,
		},
	}
}

func SeedRounds() []competition.Round {
	return []competition.Round{
		{
			ID:            "round-epl-1",
			CompetitionID: CompetitionIDPremierLeague,
			RoundNumber:   1,
			StartedAt:     time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "eng-ars", CompetitionID: CompetitionIDPremierLeague, Name: "Arsenal", ShortName: "ARS", CrestColor: "#ef0107"},
		{ID: "eng-liv", CompetitionID: CompetitionIDPremierLeague, Name: "Liverpool", ShortName: "LIV", CrestColor: "#c8102e"},
		{ID: "eng-mci", CompetitionID: CompetitionIDPremierLeague, Name: "Manchester City", ShortName: "MCI", CrestColor: "#6cabdd"},
		{ID: "eng-che", CompetitionID: CompetitionIDPremierLeague, Name: "Chelsea", ShortName: "CHE", CrestColor: "#034694"},
		{ID: "eng-whu", CompetitionID: CompetitionIDPremierLeague, Name: "West Ham United", ShortName: "WHU", CrestColor: "#7a263a"},
		{ID: "eng-bou", CompetitionID: CompetitionIDPremierLeague, Name: "Bournemouth", ShortName: "BOU", CrestColor: "#da291c"},
	}
}

func SeedGameweeks() []gameweek.Gameweek {
	return []gameweek.Gameweek{
		{
			ID:            "gw-epl-1",
			CompetitionID: CompetitionIDPremierLeague,
			Number:        1,
			LockAt:        time.Date(2026, 8, 15, 11, 30, 0, 0, time.UTC),
		},
		{
			ID:            "gw-epl-2",
			CompetitionID: CompetitionIDPremierLeague,
			Number:        2,
			LockAt:        time.Date(2026, 8, 22, 11, 30, 0, 0, time.UTC),
		},
	}
}

func SeedFixtures() []fixture.Fixture {
	return []fixture.Fixture{
		{
			ID:            "fx-epl-001",
			CompetitionID: CompetitionIDPremierLeague,
			GameweekID:    "gw-epl-1",
			HomeTeamID:    "eng-liv",
			AwayTeamID:    "eng-bou",
			HomeTeamName:  "Liverpool",
			AwayTeamName:  "Bournemouth",
			KickoffAt:     time.Date(2026, 8, 15, 11, 30, 0, 0, time.UTC),
			Status:        fixture.StatusScheduled,
		},
		{
			ID:            "fx-epl-002",
			CompetitionID: CompetitionIDPremierLeague,
			GameweekID:    "gw-epl-1",
			HomeTeamID:    "eng-ars",
			AwayTeamID:    "eng-whu",
			HomeTeamName:  "Arsenal",
			AwayTeamName:  "West Ham United",
			KickoffAt:     time.Date(2026, 8, 15, 14, 0, 0, 0, time.UTC),
			Status:        fixture.StatusScheduled,
		},
		{
			ID:            "fx-epl-003",
			CompetitionID: CompetitionIDPremierLeague,
			GameweekID:    "gw-epl-2",
			HomeTeamID:    "eng-mci",
			AwayTeamID:    "eng-che",
			HomeTeamName:  "Manchester City",
			AwayTeamName:  "Chelsea",
			KickoffAt:     time.Date(2026, 8, 22, 11, 30, 0, 0, time.UTC),
			Status:        fixture.StatusScheduled,
		},
	}
}

// SeedAccessCodes returns demo credentials. The plaintext codes are 111111
// for the admin and 222222 for the player; hashes must be derived with the
// configured salt, so the caller hashes them.
func SeedAccessCodes(salt string) []credential.AccessCode {
	issuedAt := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	return []credential.AccessCode{
		{
			ID:       "code-admin",
			CodeHash: credential.HashCode("111111", salt),
			Email:    "admin@example.com",
			Name:     "Demo Admin",
			Role:     user.RoleAdmin,
			IssuedAt: issuedAt,
		},
		{
			ID:       "code-player",
			CodeHash: credential.HashCode("222222", salt),
			Email:    "player@example.com",
			Name:     "Demo Player",
			Role:     user.RolePlayer,
			IssuedAt: issuedAt,
		},
	}
}
