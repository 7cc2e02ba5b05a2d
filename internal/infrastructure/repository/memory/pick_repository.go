package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/survivorleague/survivor-api/internal/domain/pick"
)

type PickRepository struct {
	mu    sync.RWMutex
	picks map[string]pick.Pick

	// gameweeks resolves which competition a pick belongs to.
	gameweeks *GameweekRepository
}

func NewPickRepository(gameweeks *GameweekRepository) *PickRepository {
	return &PickRepository{
		picks:     make(map[string]pick.Pick),
		gameweeks: gameweeks,
	}
}

func (r *PickRepository) GetByID(_ context.Context, pickID string) (pick.Pick, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.picks[pickID]
	return item, ok, nil
}

func (r *PickRepository) GetByEntryAndGameweek(_ context.Context, entryID, gameweekID string) (pick.Pick, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.picks {
		if item.EntryID == entryID && item.GameweekID == gameweekID {
			return item, true, nil
		}
	}
	return pick.Pick{}, false, nil
}

func (r *PickRepository) ListByGameweek(_ context.Context, gameweekID string) ([]pick.Pick, error) {
	return r.list(func(item pick.Pick) bool { return item.GameweekID == gameweekID }), nil
}

func (r *PickRepository) ListByEntry(_ context.Context, entryID string) ([]pick.Pick, error) {
	return r.list(func(item pick.Pick) bool { return item.EntryID == entryID }), nil
}

func (r *PickRepository) ListByCompetitionAndTeam(_ context.Context, competitionID, teamID string) ([]pick.Pick, error) {
	return r.list(func(item pick.Pick) bool {
		if item.TeamID != teamID {
			return false
		}
		pickCompetition, ok := r.gameweeks.competitionOf(item.GameweekID)
		return ok && pickCompetition == competitionID
	}), nil
}

func (r *PickRepository) list(match func(pick.Pick) bool) []pick.Pick {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pick.Pick, 0, len(r.picks))
	for _, item := range r.picks {
		if match(item) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *PickRepository) Create(_ context.Context, item pick.Pick) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.picks[item.ID] = item
	return nil
}

func (r *PickRepository) UpdateSelection(_ context.Context, pickID, fixtureID, teamID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.picks[pickID]
	if !ok {
		return nil
	}
	item.FixtureID = fixtureID
	item.TeamID = teamID
	item.UpdatedAt = time.Now()
	r.picks[pickID] = item
	return nil
}

func (r *PickRepository) Delete(_ context.Context, pickID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.picks, pickID)
	return nil
}

func (r *PickRepository) settle(pickID, outcome string, settledAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.picks[pickID]
	if !ok {
		return
	}
	item.Outcome = outcome
	item.SettledAt = &settledAt
	item.UpdatedAt = settledAt
	r.picks[pickID] = item
}
