package competition

import "context"

type Repository interface {
	GetByID(ctx context.Context, competitionID string) (Competition, bool, error)
	GetByInviteCode(ctx context.Context, inviteCode string) (Competition, bool, error)
	GetRound(ctx context.Context, competitionID string, roundNumber int) (Round, bool, error)
	ListRounds(ctx context.Context, competitionID string) ([]Round, error)
}
