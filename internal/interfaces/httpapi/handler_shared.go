package httpapi

import "time"

type signInRequest struct {
	Code string `json:"code" validate:"required,len=6"`
}

type joinRoundRequest struct {
	InviteCode  string `json:"invite_code" validate:"required"`
	RoundNumber int    `json:"round_number" validate:"omitempty,min=1"`
}

type createPickRequest struct {
	EntryID   string `json:"entry_id" validate:"required"`
	FixtureID string `json:"fixture_id" validate:"required"`
	TeamID    string `json:"team_id" validate:"required"`
}

type updatePickRequest struct {
	FixtureID string `json:"fixture_id" validate:"required"`
	TeamID    string `json:"team_id" validate:"required"`
}

type exactoPredictionRequest struct {
	EntryID   string `json:"entry_id" validate:"required"`
	FixtureID string `json:"fixture_id" validate:"required"`
	HomeGoals int    `json:"home_goals" validate:"min=0"`
	AwayGoals int    `json:"away_goals" validate:"min=0"`
}

type whomstScoreRequest struct {
	EntryID  string `json:"entry_id" validate:"required"`
	GameType string `json:"game_type" validate:"required"`
	Score    int    `json:"score" validate:"min=0"`
}

type adminCreateFixtureRequest struct {
	CompetitionID string    `json:"competition_id" validate:"required"`
	GameweekID    string    `json:"gameweek_id" validate:"required"`
	HomeTeamID    string    `json:"home_team_id" validate:"required"`
	AwayTeamID    string    `json:"away_team_id" validate:"required"`
	KickoffAt     time.Time `json:"kickoff_at" validate:"required"`
}

type adminUpdateFixtureRequest struct {
	HomeTeamID *string    `json:"home_team_id"`
	AwayTeamID *string    `json:"away_team_id"`
	KickoffAt  *time.Time `json:"kickoff_at"`
}

type adminRecordResultRequest struct {
	HomeGoals int    `json:"home_goals" validate:"min=0"`
	AwayGoals int    `json:"away_goals" validate:"min=0"`
	Status    string `json:"status"`
}

type adminMoveFixtureRequest struct {
	GameweekID string `json:"gameweek_id" validate:"required"`
}

type adminGameweekLockRequest struct {
	LockAt time.Time `json:"lock_at" validate:"required"`
}

type adminAccessCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required"`
	Role  string `json:"role" validate:"omitempty,oneof=player admin"`
	Code  string `json:"code" validate:"omitempty,len=6"`
}
