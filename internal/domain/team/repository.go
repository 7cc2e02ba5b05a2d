package team

import "context"

type Repository interface {
	ListByCompetition(ctx context.Context, competitionID string) ([]Team, error)
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
}
