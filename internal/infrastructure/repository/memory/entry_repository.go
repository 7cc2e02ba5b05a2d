package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/survivorleague/survivor-api/internal/domain/entry"
)

type EntryRepository struct {
	mu      sync.RWMutex
	entries map[string]entry.Entry
}

func NewEntryRepository(entries []entry.Entry) *EntryRepository {
	byID := make(map[string]entry.Entry, len(entries))
	for _, item := range entries {
		byID[item.ID] = item
	}
	return &EntryRepository{entries: byID}
}

func (r *EntryRepository) GetByID(_ context.Context, entryID string) (entry.Entry, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.entries[entryID]
	return item, ok, nil
}

func (r *EntryRepository) GetByUserAndRound(_ context.Context, userID, roundID string) (entry.Entry, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.entries {
		if item.UserID == userID && item.RoundID == roundID {
			return item, true, nil
		}
	}
	return entry.Entry{}, false, nil
}

func (r *EntryRepository) ListByRound(_ context.Context, roundID string) ([]entry.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entry.Entry, 0, len(r.entries))
	for _, item := range r.entries {
		if item.RoundID == roundID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *EntryRepository) Create(_ context.Context, item entry.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[item.ID] = item
	return nil
}

func (r *EntryRepository) apply(entryID string, livesRemaining int, eliminatedAtGameweek *int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.entries[entryID]
	if !ok {
		return
	}
	item.LivesRemaining = livesRemaining
	if eliminatedAtGameweek != nil {
		item.EliminatedAtGameweek = eliminatedAtGameweek
	}
	r.entries[entryID] = item
}
