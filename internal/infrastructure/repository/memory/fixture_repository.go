package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/survivorleague/survivor-api/internal/domain/fixture"
)

type FixtureRepository struct {
	mu       sync.RWMutex
	fixtures map[string]fixture.Fixture
}

func NewFixtureRepository(fixtures []fixture.Fixture) *FixtureRepository {
	byID := make(map[string]fixture.Fixture, len(fixtures))
	for _, item := range fixtures {
		byID[item.ID] = item
	}
	return &FixtureRepository{fixtures: byID}
}

func (r *FixtureRepository) GetByID(_ context.Context, fixtureID string) (fixture.Fixture, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.fixtures[fixtureID]
	return item, ok, nil
}

func (r *FixtureRepository) ListByGameweek(_ context.Context, gameweekID string) ([]fixture.Fixture, error) {
	return r.list(func(item fixture.Fixture) bool { return item.GameweekID == gameweekID }), nil
}

func (r *FixtureRepository) ListByCompetition(_ context.Context, competitionID string) ([]fixture.Fixture, error) {
	return r.list(func(item fixture.Fixture) bool { return item.CompetitionID == competitionID }), nil
}

func (r *FixtureRepository) list(match func(fixture.Fixture) bool) []fixture.Fixture {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fixture.Fixture, 0, len(r.fixtures))
	for _, item := range r.fixtures {
		if match(item) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].KickoffAt.Equal(out[j].KickoffAt) {
			return out[i].KickoffAt.Before(out[j].KickoffAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *FixtureRepository) Create(_ context.Context, item fixture.Fixture) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.fixtures[item.ID] = item
	return nil
}

func (r *FixtureRepository) Update(_ context.Context, item fixture.Fixture) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.fixtures[item.ID] = item
	return nil
}
