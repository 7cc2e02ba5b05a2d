package exacto

import "context"

type Repository interface {
	GetByEntryAndFixture(ctx context.Context, entryID, fixtureID string) (Prediction, bool, error)
	ListByGameweek(ctx context.Context, gameweekID string) ([]Prediction, error)
	Upsert(ctx context.Context, item Prediction) error
	MarkEvaluated(ctx context.Context, predictionID string, isCorrect bool) error
}
