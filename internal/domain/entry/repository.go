package entry

import "context"

type Repository interface {
	GetByID(ctx context.Context, entryID string) (Entry, bool, error)
	GetByUserAndRound(ctx context.Context, userID, roundID string) (Entry, bool, error)
	ListByRound(ctx context.Context, roundID string) ([]Entry, error)
	Create(ctx context.Context, item Entry) error
}
