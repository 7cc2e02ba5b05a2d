package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/survivorleague/survivor-api/internal/domain/exacto"
)

type ExactoRepository struct {
	mu          sync.RWMutex
	predictions map[string]exacto.Prediction
}

func NewExactoRepository() *ExactoRepository {
	return &ExactoRepository{predictions: make(map[string]exacto.Prediction)}
}

func (r *ExactoRepository) GetByEntryAndFixture(_ context.Context, entryID, fixtureID string) (exacto.Prediction, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.predictions {
		if item.EntryID == entryID && item.FixtureID == fixtureID {
			return item, true, nil
		}
	}
	return exacto.Prediction{}, false, nil
}

func (r *ExactoRepository) ListByGameweek(_ context.Context, gameweekID string) ([]exacto.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]exacto.Prediction, 0, len(r.predictions))
	for _, item := range r.predictions {
		if item.GameweekID == gameweekID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ExactoRepository) Upsert(_ context.Context, item exacto.Prediction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.predictions[item.ID] = item
	return nil
}

func (r *ExactoRepository) MarkEvaluated(_ context.Context, predictionID string, isCorrect bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.predictions[predictionID]
	if !ok {
		return nil
	}
	item.IsCorrect = &isCorrect
	r.predictions[predictionID] = item
	return nil
}
