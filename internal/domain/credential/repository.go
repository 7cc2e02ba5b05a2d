package credential

import "context"

type Repository interface {
	GetByCodeHash(ctx context.Context, codeHash string) (AccessCode, bool, error)
	GetByEmail(ctx context.Context, email string) (AccessCode, bool, error)
	Upsert(ctx context.Context, item AccessCode) error
}
