package fixture

import "context"

type Repository interface {
	GetByID(ctx context.Context, fixtureID string) (Fixture, bool, error)
	ListByGameweek(ctx context.Context, gameweekID string) ([]Fixture, error)
	ListByCompetition(ctx context.Context, competitionID string) ([]Fixture, error)
	Create(ctx context.Context, item Fixture) error
	Update(ctx context.Context, item Fixture) error
}
