package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/survivorleague/survivor-api/internal/domain/whomst"
)

type WhomstRepository struct {
	mu     sync.RWMutex
	scores map[string]whomst.Score
}

func NewWhomstRepository() *WhomstRepository {
	return &WhomstRepository{scores: make(map[string]whomst.Score)}
}

func (r *WhomstRepository) ListByCompetition(_ context.Context, competitionID string) ([]whomst.Score, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]whomst.Score, 0, len(r.scores))
	for _, item := range r.scores {
		if item.CompetitionID == competitionID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *WhomstRepository) Upsert(_ context.Context, item whomst.Score) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.scores[item.ID] = item
	return nil
}
