package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/survivorleague/survivor-api/internal/domain/gameweek"
)

type GameweekRepository struct {
	mu        sync.RWMutex
	gameweeks map[string]gameweek.Gameweek
}

func NewGameweekRepository(gameweeks []gameweek.Gameweek) *GameweekRepository {
	byID := make(map[string]gameweek.Gameweek, len(gameweeks))
	for _, item := range gameweeks {
		byID[item.ID] = item
	}
	return &GameweekRepository{gameweeks: byID}
}

func (r *GameweekRepository) GetByID(_ context.Context, gameweekID string) (gameweek.Gameweek, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.gameweeks[gameweekID]
	return item, ok, nil
}

func (r *GameweekRepository) ListByCompetition(_ context.Context, competitionID string) ([]gameweek.Gameweek, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]gameweek.Gameweek, 0, len(r.gameweeks))
	for _, item := range r.gameweeks {
		if item.CompetitionID == competitionID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (r *GameweekRepository) UpdateLockAt(_ context.Context, gameweekID string, lockAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.gameweeks[gameweekID]
	if !ok {
		return nil
	}
	item.LockAt = lockAt
	r.gameweeks[gameweekID] = item
	return nil
}

func (r *GameweekRepository) markSettled(gameweekID string, settledAt time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.gameweeks[gameweekID]
	if !ok || item.IsSettled {
		return false
	}
	item.IsSettled = true
	item.SettledAt = &settledAt
	r.gameweeks[gameweekID] = item
	return true
}

func (r *GameweekRepository) competitionOf(gameweekID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.gameweeks[gameweekID]
	return item.CompetitionID, ok
}
