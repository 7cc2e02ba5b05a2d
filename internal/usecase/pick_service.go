package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/survivorleague/survivor-api/internal/domain/entry"
	"github.com/survivorleague/survivor-api/internal/domain/fixture"
	"github.com/survivorleague/survivor-api/internal/domain/gameweek"
	"github.com/survivorleague/survivor-api/internal/domain/pick"
	"github.com/survivorleague/survivor-api/internal/domain/team"
	"github.com/survivorleague/survivor-api/internal/domain/user"
	"github.com/survivorleague/survivor-api/internal/platform/cache"
	"github.com/survivorleague/survivor-api/internal/platform/id"
)

type CreatePickInput struct {
	Principal user.Principal
	EntryID   string
	FixtureID string
	TeamID    string
}

type UpdatePickInput struct {
	Principal user.Principal
	PickID    string
	FixtureID string
	TeamID    string
}

// TeamPick is one historical selection of a team, exposed publicly only for
// settled gameweeks.
type TeamPick struct {
	PickID         string
	EntryID        string
	FixtureID      string
	GameweekID     string
	GameweekNumber int
	Outcome        string
}

type PickService struct {
	entryRepo    entry.Repository
	pickRepo     pick.Repository
	fixtureRepo  fixture.Repository
	gameweekRepo gameweek.Repository
	teamRepo     team.Repository
	listCache    *cache.Store
	idGenerator  id.Generator
	now          func() time.Time
}

func NewPickService(
	entryRepo entry.Repository,
	pickRepo pick.Repository,
	fixtureRepo fixture.Repository,
	gameweekRepo gameweek.Repository,
	teamRepo team.Repository,
	listCache *cache.Store,
	idGenerator id.Generator,
) *PickService {
	return &PickService{
		entryRepo:    entryRepo,
		pickRepo:     pickRepo,
		fixtureRepo:  fixtureRepo,
		gameweekRepo: gameweekRepo,
		teamRepo:     teamRepo,
		listCache:    listCache,
		idGenerator:  idGenerator,
		now:          time.Now,
	}
}

// CreatePick registers a team selection for one gameweek. The gameweek is
// derived from the fixture, and at most one pick per entry per gameweek is
// allowed.
func (s *PickService) CreatePick(ctx context.Context, input CreatePickInput) (pick.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.CreatePick")
	defer span.End()

	input.EntryID = strings.TrimSpace(input.EntryID)
	input.FixtureID = strings.TrimSpace(input.FixtureID)
	input.TeamID = strings.TrimSpace(input.TeamID)

	if input.EntryID == "" {
		return pick.Pick{}, fmt.Errorf("%w: entry_id is required", ErrInvalidInput)
	}
	if input.FixtureID == "" {
		return pick.Pick{}, fmt.Errorf("%w: fixture_id is required", ErrInvalidInput)
	}
	if input.TeamID == "" {
		return pick.Pick{}, fmt.Errorf("%w: team_id is required", ErrInvalidInput)
	}

	item, err := s.entryForWrite(ctx, input.Principal, input.EntryID)
	if err != nil {
		return pick.Pick{}, err
	}
	if item.IsEliminated() {
		return pick.Pick{}, fmt.Errorf("%w: entry is eliminated", ErrConflict)
	}

	match, gw, err := s.pickableFixture(ctx, item.CompetitionID, input.FixtureID, input.TeamID)
	if err != nil {
		return pick.Pick{}, err
	}

	if _, exists, err := s.pickRepo.GetByEntryAndGameweek(ctx, item.ID, gw.ID); err != nil {
		return pick.Pick{}, fmt.Errorf("get pick by entry and gameweek: %w", err)
	} else if exists {
		return pick.Pick{}, fmt.Errorf("%w: pick already exists for gameweek %d", ErrConflict, gw.Number)
	}

	newID, err := s.idGenerator.NewID()
	if err != nil {
		return pick.Pick{}, fmt.Errorf("generate pick id: %w", err)
	}

	now := s.now().UTC()
	created := pick.Pick{
		ID:         newID,
		EntryID:    item.ID,
		GameweekID: gw.ID,
		FixtureID:  match.ID,
		TeamID:     input.TeamID,
		Outcome:    pick.OutcomePending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.pickRepo.Create(ctx, created); err != nil {
		return pick.Pick{}, fmt.Errorf("create pick: %w", err)
	}

	return created, nil
}

// UpdatePick changes an unsettled pick's selection before the gameweek
// locks. The replacement fixture must belong to the same gameweek.
func (s *PickService) UpdatePick(ctx context.Context, input UpdatePickInput) (pick.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.UpdatePick")
	defer span.End()

	input.PickID = strings.TrimSpace(input.PickID)
	input.FixtureID = strings.TrimSpace(input.FixtureID)
	input.TeamID = strings.TrimSpace(input.TeamID)

	if input.PickID == "" {
		return pick.Pick{}, fmt.Errorf("%w: pick_id is required", ErrInvalidInput)
	}
	if input.FixtureID == "" {
		return pick.Pick{}, fmt.Errorf("%w: fixture_id is required", ErrInvalidInput)
	}
	if input.TeamID == "" {
		return pick.Pick{}, fmt.Errorf("%w: team_id is required", ErrInvalidInput)
	}

	existing, item, err := s.pickForWrite(ctx, input.Principal, input.PickID)
	if err != nil {
		return pick.Pick{}, err
	}

	match, gw, err := s.pickableFixture(ctx, item.CompetitionID, input.FixtureID, input.TeamID)
	if err != nil {
		return pick.Pick{}, err
	}
	if gw.ID != existing.GameweekID {
		return pick.Pick{}, fmt.Errorf("%w: replacement fixture belongs to a different gameweek", ErrInvalidInput)
	}

	if err := s.pickRepo.UpdateSelection(ctx, existing.ID, match.ID, input.TeamID); err != nil {
		return pick.Pick{}, fmt.Errorf("update pick selection: %w", err)
	}

	existing.FixtureID = match.ID
	existing.TeamID = input.TeamID
	existing.UpdatedAt = s.now().UTC()
	return existing, nil
}

// DeletePick withdraws a pick before its gameweek locks.
func (s *PickService) DeletePick(ctx context.Context, principal user.Principal, pickID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.DeletePick")
	defer span.End()

	pickID = strings.TrimSpace(pickID)
	if pickID == "" {
		return fmt.Errorf("%w: pick_id is required", ErrInvalidInput)
	}

	existing, _, err := s.pickForWrite(ctx, principal, pickID)
	if err != nil {
		return err
	}

	if err := s.pickRepo.Delete(ctx, existing.ID); err != nil {
		return fmt.Errorf("delete pick: %w", err)
	}

	return nil
}

// ListEntryPicks returns all picks for one entry, visible to the entry's
// owner and to admins.
func (s *PickService) ListEntryPicks(ctx context.Context, principal user.Principal, entryID string) ([]pick.Pick, error) {
	entryID = strings.TrimSpace(entryID)
	if entryID == "" {
		return nil, fmt.Errorf("%w: entry_id is required", ErrInvalidInput)
	}

	if _, err := s.entryForWrite(ctx, principal, entryID); err != nil {
		return nil, err
	}

	picks, err := s.pickRepo.ListByEntry(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("list picks by entry: %w", err)
	}

	return picks, nil
}

// ListTeamPicks returns every pick of one team across the competition,
// restricted to settled gameweeks so current selections never leak. Results
// are served through the TTL cache; settlement invalidates the competition's
// prefix.
func (s *PickService) ListTeamPicks(ctx context.Context, competitionID, teamID string) ([]TeamPick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.ListTeamPicks")
	defer span.End()

	competitionID = strings.TrimSpace(competitionID)
	teamID = strings.TrimSpace(teamID)
	if competitionID == "" {
		return nil, fmt.Errorf("%w: competition_id is required", ErrInvalidInput)
	}
	if teamID == "" {
		return nil, fmt.Errorf("%w: team_id is required", ErrInvalidInput)
	}

	side, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("get team by id: %w", err)
	}
	if !exists || side.CompetitionID != competitionID {
		return nil, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	key := TeamPicksCacheKey(competitionID, teamID)
	value, err := s.listCache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return s.loadTeamPicks(ctx, competitionID, teamID)
	})
	if err != nil {
		return nil, err
	}

	picks, ok := value.([]TeamPick)
	if !ok {
		return nil, fmt.Errorf("unexpected cached value for %s", key)
	}
	return picks, nil
}

func (s *PickService) loadTeamPicks(ctx context.Context, competitionID, teamID string) ([]TeamPick, error) {
	gameweeks, err := s.gameweekRepo.ListByCompetition(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("list gameweeks by competition: %w", err)
	}

	settled := make(map[string]gameweek.Gameweek, len(gameweeks))
	for _, gw := range gameweeks {
		if gw.IsSettled {
			settled[gw.ID] = gw
		}
	}

	picks, err := s.pickRepo.ListByCompetitionAndTeam(ctx, competitionID, teamID)
	if err != nil {
		return nil, fmt.Errorf("list picks by competition and team: %w", err)
	}

	items := make([]TeamPick, 0, len(picks))
	for _, p := range picks {
		gw, ok := settled[p.GameweekID]
		if !ok {
			continue
		}
		items = append(items, TeamPick{
			PickID:         p.ID,
			EntryID:        p.EntryID,
			FixtureID:      p.FixtureID,
			GameweekID:     p.GameweekID,
			GameweekNumber: gw.Number,
			Outcome:        p.Outcome,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].GameweekNumber < items[j].GameweekNumber
	})

	return items, nil
}

func (s *PickService) entryForWrite(ctx context.Context, principal user.Principal, entryID string) (entry.Entry, error) {
	item, exists, err := s.entryRepo.GetByID(ctx, entryID)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("get entry by id: %w", err)
	}
	if !exists {
		return entry.Entry{}, fmt.Errorf("%w: entry=%s", ErrNotFound, entryID)
	}
	if item.UserID != principal.UserID && !principal.IsAdmin() {
		return entry.Entry{}, fmt.Errorf("%w: entry belongs to another user", ErrForbidden)
	}

	return item, nil
}

func (s *PickService) pickForWrite(ctx context.Context, principal user.Principal, pickID string) (pick.Pick, entry.Entry, error) {
	existing, exists, err := s.pickRepo.GetByID(ctx, pickID)
	if err != nil {
		return pick.Pick{}, entry.Entry{}, fmt.Errorf("get pick by id: %w", err)
	}
	if !exists {
		return pick.Pick{}, entry.Entry{}, fmt.Errorf("%w: pick=%s", ErrNotFound, pickID)
	}

	item, err := s.entryForWrite(ctx, principal, existing.EntryID)
	if err != nil {
		return pick.Pick{}, entry.Entry{}, err
	}

	if existing.IsSettled() {
		return pick.Pick{}, entry.Entry{}, fmt.Errorf("%w: pick is settled", ErrLocked)
	}

	gw, exists, err := s.gameweekRepo.GetByID(ctx, existing.GameweekID)
	if err != nil {
		return pick.Pick{}, entry.Entry{}, fmt.Errorf("get gameweek by id: %w", err)
	}
	if !exists {
		return pick.Pick{}, entry.Entry{}, fmt.Errorf("%w: gameweek=%s", ErrNotFound, existing.GameweekID)
	}
	if gw.IsSettled || gw.IsLocked(s.now()) {
		return pick.Pick{}, entry.Entry{}, fmt.Errorf("%w: gameweek %d", ErrLocked, gw.Number)
	}

	return existing, item, nil
}

// pickableFixture validates that a fixture can still receive picks and that
// the chosen team plays in it.
func (s *PickService) pickableFixture(ctx context.Context, competitionID, fixtureID, teamID string) (fixture.Fixture, gameweek.Gameweek, error) {
	match, exists, err := s.fixtureRepo.GetByID(ctx, fixtureID)
	if err != nil {
		return fixture.Fixture{}, gameweek.Gameweek{}, fmt.Errorf("get fixture by id: %w", err)
	}
	if !exists || match.CompetitionID != competitionID {
		return fixture.Fixture{}, gameweek.Gameweek{}, fmt.Errorf("%w: fixture=%s", ErrNotFound, fixtureID)
	}
	if !match.HasTeam(teamID) {
		return fixture.Fixture{}, gameweek.Gameweek{}, fmt.Errorf("%w: team %s does not play in fixture %s", ErrInvalidInput, teamID, fixtureID)
	}

	gw, exists, err := s.gameweekRepo.GetByID(ctx, match.GameweekID)
	if err != nil {
		return fixture.Fixture{}, gameweek.Gameweek{}, fmt.Errorf("get gameweek by id: %w", err)
	}
	if !exists {
		return fixture.Fixture{}, gameweek.Gameweek{}, fmt.Errorf("%w: gameweek=%s", ErrNotFound, match.GameweekID)
	}
	if gw.IsSettled || gw.IsLocked(s.now()) {
		return fixture.Fixture{}, gameweek.Gameweek{}, fmt.Errorf("%w: gameweek %d", ErrLocked, gw.Number)
	}

	return match, gw, nil
}

// TeamPicksCacheKey builds the cache key for one team's settled pick list.
// Settlement invalidates "team-picks:<competition>:" as a prefix.
func TeamPicksCacheKey(competitionID, teamID string) string {
	return "team-picks:" + competitionID + ":" + teamID
}
