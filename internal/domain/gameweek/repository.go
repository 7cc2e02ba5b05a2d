package gameweek

import (
	"context"
	"time"
)

type Repository interface {
	GetByID(ctx context.Context, gameweekID string) (Gameweek, bool, error)
	ListByCompetition(ctx context.Context, competitionID string) ([]Gameweek, error)
	UpdateLockAt(ctx context.Context, gameweekID string, lockAt time.Time) error
}
