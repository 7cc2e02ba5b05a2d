package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/survivorleague/survivor-api/internal/domain/entry"
	"github.com/survivorleague/survivor-api/internal/domain/exacto"
	"github.com/survivorleague/survivor-api/internal/domain/fixture"
	"github.com/survivorleague/survivor-api/internal/domain/gameweek"
	"github.com/survivorleague/survivor-api/internal/domain/user"
	"github.com/survivorleague/survivor-api/internal/platform/id"
)

type UpsertExactoInput struct {
	Principal user.Principal
	EntryID   string
	FixtureID string
	HomeGoals int
	AwayGoals int
}

// ExactoService manages optional exact-score predictions. Predictions follow
// the same lock discipline as picks and are evaluated at settlement.
type ExactoService struct {
	entryRepo    entry.Repository
	fixtureRepo  fixture.Repository
	gameweekRepo gameweek.Repository
	exactoRepo   exacto.Repository
	idGenerator  id.Generator
	now          func() time.Time
}

func NewExactoService(
	entryRepo entry.Repository,
	fixtureRepo fixture.Repository,
	gameweekRepo gameweek.Repository,
	exactoRepo exacto.Repository,
	idGenerator id.Generator,
) *ExactoService {
	return &ExactoService{
		entryRepo:    entryRepo,
		fixtureRepo:  fixtureRepo,
		gameweekRepo: gameweekRepo,
		exactoRepo:   exactoRepo,
		idGenerator:  idGenerator,
		now:          time.Now,
	}
}

// UpsertPrediction saves or replaces the caller's scoreline guess for one
// fixture before the owning gameweek locks.
func (s *ExactoService) UpsertPrediction(ctx context.Context, input UpsertExactoInput) (exacto.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ExactoService.UpsertPrediction")
	defer span.End()

	input.EntryID = strings.TrimSpace(input.EntryID)
	input.FixtureID = strings.TrimSpace(input.FixtureID)

	if input.EntryID == "" {
		return exacto.Prediction{}, fmt.Errorf("%w: entry_id is required", ErrInvalidInput)
	}
	if input.FixtureID == "" {
		return exacto.Prediction{}, fmt.Errorf("%w: fixture_id is required", ErrInvalidInput)
	}
	if input.HomeGoals < 0 || input.AwayGoals < 0 {
		return exacto.Prediction{}, fmt.Errorf("%w: predicted goals cannot be negative", ErrInvalidInput)
	}

	item, exists, err := s.entryRepo.GetByID(ctx, input.EntryID)
	if err != nil {
		return exacto.Prediction{}, fmt.Errorf("get entry by id: %w", err)
	}
	if !exists {
		return exacto.Prediction{}, fmt.Errorf("%w: entry=%s", ErrNotFound, input.EntryID)
	}
	if item.UserID != input.Principal.UserID && !input.Principal.IsAdmin() {
		return exacto.Prediction{}, fmt.Errorf("%w: entry belongs to another user", ErrForbidden)
	}

	match, exists, err := s.fixtureRepo.GetByID(ctx, input.FixtureID)
	if err != nil {
		return exacto.Prediction{}, fmt.Errorf("get fixture by id: %w", err)
	}
	if !exists || match.CompetitionID != item.CompetitionID {
		return exacto.Prediction{}, fmt.Errorf("%w: fixture=%s", ErrNotFound, input.FixtureID)
	}

	gw, exists, err := s.gameweekRepo.GetByID(ctx, match.GameweekID)
	if err != nil {
		return exacto.Prediction{}, fmt.Errorf("get gameweek by id: %w", err)
	}
	if !exists {
		return exacto.Prediction{}, fmt.Errorf("%w: gameweek=%s", ErrNotFound, match.GameweekID)
	}
	if gw.IsSettled || gw.IsLocked(s.now()) {
		return exacto.Prediction{}, fmt.Errorf("%w: gameweek %d", ErrLocked, gw.Number)
	}

	prediction := exacto.Prediction{
		EntryID:    item.ID,
		GameweekID: gw.ID,
		FixtureID:  match.ID,
		HomeGoals:  input.HomeGoals,
		AwayGoals:  input.AwayGoals,
	}

	if existing, exists, err := s.exactoRepo.GetByEntryAndFixture(ctx, item.ID, match.ID); err != nil {
		return exacto.Prediction{}, fmt.Errorf("get exacto prediction: %w", err)
	} else if exists {
		prediction.ID = existing.ID
	} else {
		newID, err := s.idGenerator.NewID()
		if err != nil {
			return exacto.Prediction{}, fmt.Errorf("generate prediction id: %w", err)
		}
		prediction.ID = newID
	}

	if err := s.exactoRepo.Upsert(ctx, prediction); err != nil {
		return exacto.Prediction{}, fmt.Errorf("upsert exacto prediction: %w", err)
	}

	return prediction, nil
}
