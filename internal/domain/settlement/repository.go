package settlement

import "context"

type Repository interface {
	Apply(ctx context.Context, result Result) error
}
