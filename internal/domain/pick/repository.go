package pick

import "context"

type Repository interface {
	GetByID(ctx context.Context, pickID string) (Pick, bool, error)
	GetByEntryAndGameweek(ctx context.Context, entryID, gameweekID string) (Pick, bool, error)
	ListByGameweek(ctx context.Context, gameweekID string) ([]Pick, error)
	ListByEntry(ctx context.Context, entryID string) ([]Pick, error)
	ListByCompetitionAndTeam(ctx context.Context, competitionID, teamID string) ([]Pick, error)
	Create(ctx context.Context, item Pick) error
	UpdateSelection(ctx context.Context, pickID, fixtureID, teamID string) error
	Delete(ctx context.Context, pickID string) error
}
