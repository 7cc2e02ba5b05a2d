package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/survivorleague/survivor-api/internal/domain/competition"
)

type CompetitionRepository struct {
	mu           sync.RWMutex
	competitions map[string]competition.Competition
	rounds       map[string][]competition.Round
}

func NewCompetitionRepository(competitions []competition.Competition, rounds []competition.Round) *CompetitionRepository {
	byID := make(map[string]competition.Competition, len(competitions))
	for _, item := range competitions {
		byID[item.ID] = item
	}
	byCompetition := make(map[string][]competition.Round)
	for _, item := range rounds {
		byCompetition[item.CompetitionID] = append(byCompetition[item.CompetitionID], item)
	}
	return &CompetitionRepository{competitions: byID, rounds: byCompetition}
}

func (r *CompetitionRepository) GetByID(_ context.Context, competitionID string) (competition.Competition, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.competitions[competitionID]
	return item, ok, nil
}

func (r *CompetitionRepository) GetByInviteCode(_ context.Context, inviteCode string) (competition.Competition, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.competitions {
		if item.InviteCode == inviteCode {
			return item, true, nil
		}
	}
	return competition.Competition{}, false, nil
}

func (r *CompetitionRepository) GetRound(_ context.Context, competitionID string, roundNumber int) (competition.Round, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.rounds[competitionID] {
		if item.RoundNumber == roundNumber {
			return item, true, nil
		}
	}
	return competition.Round{}, false, nil
}

func (r *CompetitionRepository) ListRounds(_ context.Context, competitionID string) ([]competition.Round, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rounds := r.rounds[competitionID]
	out := make([]competition.Round, 0, len(rounds))
	out = append(out, rounds...)
	sort.Slice(out, func(i, j int) bool { return out[i].RoundNumber < out[j].RoundNumber })
	return out, nil
}
