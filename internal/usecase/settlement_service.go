package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/survivorleague/survivor-api/internal/domain/entry"
	"github.com/survivorleague/survivor-api/internal/domain/exacto"
	"github.com/survivorleague/survivor-api/internal/domain/fixture"
	"github.com/survivorleague/survivor-api/internal/domain/gameweek"
	"github.com/survivorleague/survivor-api/internal/domain/pick"
	"github.com/survivorleague/survivor-api/internal/domain/settlement"
	"github.com/survivorleague/survivor-api/internal/platform/cache"
	"github.com/survivorleague/survivor-api/internal/platform/logging"
	"github.com/survivorleague/survivor-api/internal/platform/resilience"
)

// SettlementSummary reports what one settlement run changed.
type SettlementSummary struct {
	GameweekID       string
	SettledAt        time.Time
	SettledPicks     int
	LivesLost        int
	Eliminated       int
	EvaluatedExactos int
	AlreadySettled   bool
}

type SettlementService struct {
	gameweekRepo   gameweek.Repository
	fixtureRepo    fixture.Repository
	pickRepo       pick.Repository
	entryRepo      entry.Repository
	exactoRepo     exacto.Repository
	settlementRepo settlement.Repository
	listCache      *cache.Store
	logger         *logging.Logger
	flight         resilience.SingleFlight
	now            func() time.Time
}

func NewSettlementService(
	gameweekRepo gameweek.Repository,
	fixtureRepo fixture.Repository,
	pickRepo pick.Repository,
	entryRepo entry.Repository,
	exactoRepo exacto.Repository,
	settlementRepo settlement.Repository,
	listCache *cache.Store,
	logger *logging.Logger,
) *SettlementService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SettlementService{
		gameweekRepo:   gameweekRepo,
		fixtureRepo:    fixtureRepo,
		pickRepo:       pickRepo,
		entryRepo:      entryRepo,
		exactoRepo:     exactoRepo,
		settlementRepo: settlementRepo,
		listCache:      listCache,
		logger:         logger,
		flight:         resilience.SingleFlight{},
		now:            time.Now,
	}
}

// SettleGameweek finalizes one gameweek: computes every pick's outcome,
// deducts one life per losing pick, evaluates exact-score predictions, and
// flips the gameweek to settled. All row changes land in one transaction.
// Re-settling an already-settled gameweek changes nothing. Concurrent calls
// for the same gameweek collapse into a single run.
func (s *SettlementService) SettleGameweek(ctx context.Context, gameweekID string) (SettlementSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettlementService.SettleGameweek")
	defer span.End()

	if gameweekID == "" {
		return SettlementSummary{}, fmt.Errorf("%w: gameweek_id is required", ErrInvalidInput)
	}

	value, err, _ := s.flight.Do("settle:"+gameweekID, func() (any, error) {
		return s.settle(ctx, gameweekID)
	})
	if err != nil {
		return SettlementSummary{}, err
	}

	summary, ok := value.(SettlementSummary)
	if !ok {
		return SettlementSummary{}, fmt.Errorf("unexpected settlement result for gameweek %s", gameweekID)
	}
	return summary, nil
}

func (s *SettlementService) settle(ctx context.Context, gameweekID string) (SettlementSummary, error) {
	gw, exists, err := s.gameweekRepo.GetByID(ctx, gameweekID)
	if err != nil {
		return SettlementSummary{}, fmt.Errorf("get gameweek by id: %w", err)
	}
	if !exists {
		return SettlementSummary{}, fmt.Errorf("%w: gameweek=%s", ErrNotFound, gameweekID)
	}
	if gw.IsSettled {
		summary := SettlementSummary{GameweekID: gw.ID, AlreadySettled: true}
		if gw.SettledAt != nil {
			summary.SettledAt = *gw.SettledAt
		}
		return summary, nil
	}
	if !gw.IsLocked(s.now()) {
		return SettlementSummary{}, fmt.Errorf("%w: gameweek %d has not locked yet", ErrConflict, gw.Number)
	}

	fixtures, err := s.fixtureRepo.ListByGameweek(ctx, gw.ID)
	if err != nil {
		return SettlementSummary{}, fmt.Errorf("list fixtures by gameweek: %w", err)
	}

	fixturesByID := make(map[string]fixture.Fixture, len(fixtures))
	for _, f := range fixtures {
		if !fixture.IsTerminalStatus(f.Status) {
			return SettlementSummary{}, fmt.Errorf("%w: fixture %s is still %s", ErrConflict, f.ID, fixture.NormalizeStatus(f.Status))
		}
		fixturesByID[f.ID] = f
	}

	picks, err := s.pickRepo.ListByGameweek(ctx, gw.ID)
	if err != nil {
		return SettlementSummary{}, fmt.Errorf("list picks by gameweek: %w", err)
	}

	result := settlement.Result{
		GameweekID: gw.ID,
		SettledAt:  s.now().UTC(),
	}
	livesLost := 0
	eliminated := 0

	for _, p := range picks {
		f, ok := fixturesByID[p.FixtureID]
		if !ok {
			return SettlementSummary{}, fmt.Errorf("pick %s references fixture %s outside gameweek %s", p.ID, p.FixtureID, gw.ID)
		}

		outcome, err := pick.ComputeOutcome(p.TeamID, f)
		if err != nil {
			return SettlementSummary{}, fmt.Errorf("compute outcome for pick %s: %w", p.ID, err)
		}
		// Void fixtures produce no result; their picks stay PENDING and
		// cost nothing.
		if outcome == pick.OutcomePending {
			continue
		}

		result.Picks = append(result.Picks, settlement.PickResult{PickID: p.ID, Outcome: outcome})

		if outcome != pick.OutcomeLoss {
			continue
		}

		item, exists, err := s.entryRepo.GetByID(ctx, p.EntryID)
		if err != nil {
			return SettlementSummary{}, fmt.Errorf("get entry by id: %w", err)
		}
		if !exists {
			return SettlementSummary{}, fmt.Errorf("pick %s references missing entry %s", p.ID, p.EntryID)
		}

		update := settlement.EntryUpdate{
			EntryID:        item.ID,
			LivesRemaining: item.LivesRemaining - 1,
		}
		if update.LivesRemaining < 0 {
			update.LivesRemaining = 0
		}
		livesLost++
		if update.LivesRemaining == 0 && item.EliminatedAtGameweek == nil {
			number := gw.Number
			update.EliminatedAtGameweek = &number
			eliminated++
		}
		result.Entries = append(result.Entries, update)
	}

	predictions, err := s.exactoRepo.ListByGameweek(ctx, gw.ID)
	if err != nil {
		return SettlementSummary{}, fmt.Errorf("list exacto predictions by gameweek: %w", err)
	}
	for _, prediction := range predictions {
		if prediction.IsCorrect != nil {
			continue
		}
		f, ok := fixturesByID[prediction.FixtureID]
		if !ok || !f.HasResult() {
			continue
		}
		correct := prediction.HomeGoals == *f.HomeGoals && prediction.AwayGoals == *f.AwayGoals
		result.Exactos = append(result.Exactos, settlement.ExactoResult{
			PredictionID: prediction.ID,
			IsCorrect:    correct,
		})
	}

	if err := s.settlementRepo.Apply(ctx, result); err != nil {
		return SettlementSummary{}, fmt.Errorf("apply settlement: %w", err)
	}

	if s.listCache != nil {
		s.listCache.DeletePrefix(ctx, "team-picks:"+gw.CompetitionID+":")
	}

	s.logger.InfoContext(ctx, "gameweek settled",
		"gameweek_id", gw.ID,
		"gameweek_number", gw.Number,
		"settled_picks", len(result.Picks),
		"lives_lost", livesLost,
		"eliminated_entries", eliminated,
		"evaluated_exactos", len(result.Exactos),
	)

	return SettlementSummary{
		GameweekID:       gw.ID,
		SettledAt:        result.SettledAt,
		SettledPicks:     len(result.Picks),
		LivesLost:        livesLost,
		Eliminated:       eliminated,
		EvaluatedExactos: len(result.Exactos),
	}, nil
}
