package whomst

import "context"

type Repository interface {
	ListByCompetition(ctx context.Context, competitionID string) ([]Score, error)
	Upsert(ctx context.Context, item Score) error
}
