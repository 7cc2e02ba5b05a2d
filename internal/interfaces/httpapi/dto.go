package httpapi

import (
	"time"

	"github.com/survivorleague/survivor-api/internal/domain/competition"
	"github.com/survivorleague/survivor-api/internal/domain/entry"
	"github.com/survivorleague/survivor-api/internal/domain/exacto"
	"github.com/survivorleague/survivor-api/internal/domain/fixture"
	"github.com/survivorleague/survivor-api/internal/domain/gameweek"
	"github.com/survivorleague/survivor-api/internal/domain/pick"
	"github.com/survivorleague/survivor-api/internal/domain/team"
	"github.com/survivorleague/survivor-api/internal/domain/user"
	"github.com/survivorleague/survivor-api/internal/domain/whomst"
	"github.com/survivorleague/survivor-api/internal/usecase"
)

type userDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func userToDTO(u user.User) userDTO {
	return userDTO{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

type signInResponseDTO struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      userDTO   `json:"user"`
}

type competitionDTO struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Season        string `json:"season"`
	LivesPerRound int    `json:"lives_per_round"`
}

func competitionToDTO(c competition.Competition) competitionDTO {
	return competitionDTO{ID: c.ID, Name: c.Name, Season: c.Season, LivesPerRound: c.LivesPerRound}
}

type gameweekDTO struct {
	ID        string     `json:"id"`
	Number    int        `json:"number"`
	LockAt    time.Time  `json:"lock_at"`
	IsSettled bool       `json:"is_settled"`
	SettledAt *time.Time `json:"settled_at,omitempty"`
}

func gameweekToDTO(g gameweek.Gameweek) gameweekDTO {
	return gameweekDTO{ID: g.ID, Number: g.Number, LockAt: g.LockAt, IsSettled: g.IsSettled, SettledAt: g.SettledAt}
}

type fixtureDTO struct {
	ID           string    `json:"id"`
	GameweekID   string    `json:"gameweek_id"`
	HomeTeamID   string    `json:"home_team_id"`
	AwayTeamID   string    `json:"away_team_id"`
	HomeTeamName string    `json:"home_team_name"`
	AwayTeamName string    `json:"away_team_name"`
	KickoffAt    time.Time `json:"kickoff_at"`
	Status       string    `json:"status"`
	HomeGoals    *int      `json:"home_goals,omitempty"`
	AwayGoals    *int      `json:"away_goals,omitempty"`
}

func fixtureToDTO(f fixture.Fixture) fixtureDTO {
	return fixtureDTO{
		ID:           f.ID,
		GameweekID:   f.GameweekID,
		HomeTeamID:   f.HomeTeamID,
		AwayTeamID:   f.AwayTeamID,
		HomeTeamName: f.HomeTeamName,
		AwayTeamName: f.AwayTeamName,
		KickoffAt:    f.KickoffAt,
		Status:       f.Status,
		HomeGoals:    f.HomeGoals,
		AwayGoals:    f.AwayGoals,
	}
}

type gameweekScheduleDTO struct {
	gameweekDTO
	Fixtures []fixtureDTO `json:"fixtures"`
}

func gameweekScheduleToDTO(s usecase.GameweekSchedule) gameweekScheduleDTO {
	fixtures := make([]fixtureDTO, 0, len(s.Fixtures))
	for _, f := range s.Fixtures {
		fixtures = append(fixtures, fixtureToDTO(f))
	}
	return gameweekScheduleDTO{gameweekDTO: gameweekToDTO(s.Gameweek), Fixtures: fixtures}
}

type teamDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	Crest     string `json:"crest"`
}

func teamToDTO(t team.Team) teamDTO {
	return teamDTO{ID: t.ID, Name: t.Name, ShortName: t.ShortName, Crest: teamCrestDataURI(t)}
}

type entryDTO struct {
	ID                   string `json:"id"`
	UserID               string `json:"user_id"`
	CompetitionID        string `json:"competition_id"`
	RoundID              string `json:"round_id"`
	LivesRemaining       int    `json:"lives_remaining"`
	EliminatedAtGameweek *int   `json:"eliminated_at_gameweek,omitempty"`
}

func entryToDTO(e entry.Entry) entryDTO {
	return entryDTO{
		ID:                   e.ID,
		UserID:               e.UserID,
		CompetitionID:        e.CompetitionID,
		RoundID:              e.RoundID,
		LivesRemaining:       e.LivesRemaining,
		EliminatedAtGameweek: e.EliminatedAtGameweek,
	}
}

type roundEntryDTO struct {
	EntryID              string `json:"entry_id"`
	UserID               string `json:"user_id"`
	UserName             string `json:"user_name"`
	LivesRemaining       int    `json:"lives_remaining"`
	EliminatedAtGameweek *int   `json:"eliminated_at_gameweek,omitempty"`
}

func roundEntryToDTO(e usecase.RoundEntry) roundEntryDTO {
	return roundEntryDTO{
		EntryID:              e.EntryID,
		UserID:               e.UserID,
		UserName:             e.UserName,
		LivesRemaining:       e.LivesRemaining,
		EliminatedAtGameweek: e.EliminatedAtGameweek,
	}
}

type pickDTO struct {
	ID         string     `json:"id"`
	EntryID    string     `json:"entry_id"`
	GameweekID string     `json:"gameweek_id"`
	FixtureID  string     `json:"fixture_id"`
	TeamID     string     `json:"team_id"`
	Outcome    string     `json:"outcome"`
	SettledAt  *time.Time `json:"settled_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func pickToDTO(p pick.Pick) pickDTO {
	return pickDTO{
		ID:         p.ID,
		EntryID:    p.EntryID,
		GameweekID: p.GameweekID,
		FixtureID:  p.FixtureID,
		TeamID:     p.TeamID,
		Outcome:    p.Outcome,
		SettledAt:  p.SettledAt,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

type teamPickDTO struct {
	PickID         string `json:"pick_id"`
	EntryID        string `json:"entry_id"`
	FixtureID      string `json:"fixture_id"`
	GameweekNumber int    `json:"gameweek_number"`
	Result         string `json:"result"`
}

func teamPickToDTO(p usecase.TeamPick) teamPickDTO {
	return teamPickDTO{
		PickID:         p.PickID,
		EntryID:        p.EntryID,
		FixtureID:      p.FixtureID,
		GameweekNumber: p.GameweekNumber,
		Result:         p.Outcome,
	}
}

type exactoPredictionDTO struct {
	ID         string `json:"id"`
	EntryID    string `json:"entry_id"`
	GameweekID string `json:"gameweek_id"`
	FixtureID  string `json:"fixture_id"`
	HomeGoals  int    `json:"home_goals"`
	AwayGoals  int    `json:"away_goals"`
	IsCorrect  *bool  `json:"is_correct,omitempty"`
}

func exactoPredictionToDTO(p exacto.Prediction) exactoPredictionDTO {
	return exactoPredictionDTO{
		ID:         p.ID,
		EntryID:    p.EntryID,
		GameweekID: p.GameweekID,
		FixtureID:  p.FixtureID,
		HomeGoals:  p.HomeGoals,
		AwayGoals:  p.AwayGoals,
		IsCorrect:  p.IsCorrect,
	}
}

type whomstScoreDTO struct {
	ID       string `json:"id"`
	EntryID  string `json:"entry_id"`
	GameType string `json:"game_type"`
	Score    int    `json:"score"`
}

func whomstScoreToDTO(s whomst.Score) whomstScoreDTO {
	return whomstScoreDTO{ID: s.ID, EntryID: s.EntryID, GameType: s.GameType, Score: s.Score}
}

type settlementSummaryDTO struct {
	GameweekID       string    `json:"gameweek_id"`
	SettledAt        time.Time `json:"settled_at"`
	SettledPicks     int       `json:"settled_picks"`
	LivesLost        int       `json:"lives_lost"`
	Eliminated       int       `json:"eliminated"`
	EvaluatedExactos int       `json:"evaluated_exactos"`
	AlreadySettled   bool      `json:"already_settled"`
}

func settlementSummaryToDTO(s usecase.SettlementSummary) settlementSummaryDTO {
	return settlementSummaryDTO{
		GameweekID:       s.GameweekID,
		SettledAt:        s.SettledAt,
		SettledPicks:     s.SettledPicks,
		LivesLost:        s.LivesLost,
		Eliminated:       s.Eliminated,
		EvaluatedExactos: s.EvaluatedExactos,
		AlreadySettled:   s.AlreadySettled,
	}
}

type rederiveReportDTO struct {
	GameweeksSeen    int `json:"gameweeks_seen"`
	GameweeksUpdated int `json:"gameweeks_updated"`
}

type issuedAccessCodeDTO struct {
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      string     `json:"role"`
	Code      string     `json:"code"`
	IssuedAt  time.Time  `json:"issued_at"`
	RotatedAt *time.Time `json:"rotated_at,omitempty"`
}
