package memory

import (
	"context"
	"fmt"

	"github.com/survivorleague/survivor-api/internal/domain/settlement"
)

// SettlementRepository fans a computed settlement out across the in-memory
// stores. The gameweek flip acts as the idempotency gate, mirroring the
// conditional UPDATE the SQL implementation relies on.
type SettlementRepository struct {
	gameweeks *GameweekRepository
	picks     *PickRepository
	entries   *EntryRepository
	exactos   *ExactoRepository
}

func NewSettlementRepository(
	gameweeks *GameweekRepository,
	picks *PickRepository,
	entries *EntryRepository,
	exactos *ExactoRepository,
) *SettlementRepository {
	return &SettlementRepository{
		gameweeks: gameweeks,
		picks:     picks,
		entries:   entries,
		exactos:   exactos,
	}
}

func (r *SettlementRepository) Apply(ctx context.Context, result settlement.Result) error {
	if !r.gameweeks.markSettled(result.GameweekID, result.SettledAt) {
		return fmt.Errorf("settle gameweek %s: already settled", result.GameweekID)
	}

	for _, p := range result.Picks {
		r.picks.settle(p.PickID, p.Outcome, result.SettledAt)
	}
	for _, e := range result.Entries {
		r.entries.apply(e.EntryID, e.LivesRemaining, e.EliminatedAtGameweek)
	}
	for _, x := range result.Exactos {
		if err := r.exactos.MarkEvaluated(ctx, x.PredictionID, x.IsCorrect); err != nil {
			return err
		}
	}
	return nil
}
