package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/survivorleague/survivor-api/internal/domain/fixture"
	"github.com/survivorleague/survivor-api/internal/domain/gameweek"
	"github.com/survivorleague/survivor-api/internal/domain/team"
	"github.com/survivorleague/survivor-api/internal/platform/id"
	"github.com/survivorleague/survivor-api/internal/platform/logging"
)

const rederiveWorkers = 4

type CreateFixtureInput struct {
	CompetitionID string
	GameweekID    string
	HomeTeamID    string
	AwayTeamID    string
	KickoffAt     time.Time
}

type UpdateFixtureInput struct {
	FixtureID  string
	HomeTeamID *string
	AwayTeamID *string
	KickoffAt  *time.Time
}

type RecordResultInput struct {
	FixtureID string
	HomeGoals int
	AwayGoals int
	// Status defaults to FINISHED; POSTPONED and ABANDONED void the fixture.
	Status string
}

// RederiveReport summarizes a bulk lock-time repair across a competition.
type RederiveReport struct {
	GameweeksSeen    int
	GameweeksUpdated int
}

// FixtureAdminService owns the admin-only mutations of the schedule:
// fixture CRUD, result entry, and gameweek maintenance.
type FixtureAdminService struct {
	fixtureRepo  fixture.Repository
	gameweekRepo gameweek.Repository
	teamRepo     team.Repository
	idGenerator  id.Generator
	logger       *logging.Logger
	now          func() time.Time
}

func NewFixtureAdminService(
	fixtureRepo fixture.Repository,
	gameweekRepo gameweek.Repository,
	teamRepo team.Repository,
	idGenerator id.Generator,
	logger *logging.Logger,
) *FixtureAdminService {
	if logger == nil {
		logger = logging.Default()
	}

	return &FixtureAdminService{
		fixtureRepo:  fixtureRepo,
		gameweekRepo: gameweekRepo,
		teamRepo:     teamRepo,
		idGenerator:  idGenerator,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *FixtureAdminService) CreateFixture(ctx context.Context, input CreateFixtureInput) (fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureAdminService.CreateFixture")
	defer span.End()

	input.CompetitionID = strings.TrimSpace(input.CompetitionID)
	input.GameweekID = strings.TrimSpace(input.GameweekID)
	input.HomeTeamID = strings.TrimSpace(input.HomeTeamID)
	input.AwayTeamID = strings.TrimSpace(input.AwayTeamID)

	if input.CompetitionID == "" {
		return fixture.Fixture{}, fmt.Errorf("%w: competition_id is required", ErrInvalidInput)
	}
	if input.GameweekID == "" {
		return fixture.Fixture{}, fmt.Errorf("%w: gameweek_id is required", ErrInvalidInput)
	}
	if input.KickoffAt.IsZero() {
		return fixture.Fixture{}, fmt.Errorf("%w: kickoff_at is required", ErrInvalidInput)
	}
	if input.HomeTeamID == input.AwayTeamID {
		return fixture.Fixture{}, fmt.Errorf("%w: a team cannot play itself", ErrInvalidInput)
	}

	gw, err := s.gameweekForWrite(ctx, input.GameweekID)
	if err != nil {
		return fixture.Fixture{}, err
	}
	if gw.CompetitionID != input.CompetitionID {
		return fixture.Fixture{}, fmt.Errorf("%w: gameweek %d belongs to another competition", ErrInvalidInput, gw.Number)
	}

	home, err := s.teamInCompetition(ctx, input.CompetitionID, input.HomeTeamID)
	if err != nil {
		return fixture.Fixture{}, err
	}
	away, err := s.teamInCompetition(ctx, input.CompetitionID, input.AwayTeamID)
	if err != nil {
		return fixture.Fixture{}, err
	}

	newID, err := s.idGenerator.NewID()
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("generate fixture id: %w", err)
	}

	created := fixture.Fixture{
		ID:            newID,
		CompetitionID: input.CompetitionID,
		GameweekID:    gw.ID,
		HomeTeamID:    home.ID,
		AwayTeamID:    away.ID,
		HomeTeamName:  home.Name,
		AwayTeamName:  away.Name,
		KickoffAt:     input.KickoffAt.UTC(),
		Status:        fixture.StatusScheduled,
	}
	if err := s.fixtureRepo.Create(ctx, created); err != nil {
		return fixture.Fixture{}, fmt.Errorf("create fixture: %w", err)
	}

	return created, nil
}

func (s *FixtureAdminService) UpdateFixture(ctx context.Context, input UpdateFixtureInput) (fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureAdminService.UpdateFixture")
	defer span.End()

	match, err := s.fixtureForWrite(ctx, input.FixtureID)
	if err != nil {
		return fixture.Fixture{}, err
	}

	if input.HomeTeamID != nil {
		home, err := s.teamInCompetition(ctx, match.CompetitionID, strings.TrimSpace(*input.HomeTeamID))
		if err != nil {
			return fixture.Fixture{}, err
		}
		match.HomeTeamID = home.ID
		match.HomeTeamName = home.Name
	}
	if input.AwayTeamID != nil {
		away, err := s.teamInCompetition(ctx, match.CompetitionID, strings.TrimSpace(*input.AwayTeamID))
		if err != nil {
			return fixture.Fixture{}, err
		}
		match.AwayTeamID = away.ID
		match.AwayTeamName = away.Name
	}
	if match.HomeTeamID == match.AwayTeamID {
		return fixture.Fixture{}, fmt.Errorf("%w: a team cannot play itself", ErrInvalidInput)
	}
	if input.KickoffAt != nil {
		if input.KickoffAt.IsZero() {
			return fixture.Fixture{}, fmt.Errorf("%w: kickoff_at cannot be zero", ErrInvalidInput)
		}
		match.KickoffAt = input.KickoffAt.UTC()
	}

	if err := s.fixtureRepo.Update(ctx, match); err != nil {
		return fixture.Fixture{}, fmt.Errorf("update fixture: %w", err)
	}

	return match, nil
}

// RecordResult enters a final score. The result stays mutable until the
// owning gameweek is settled; settlement freezes it.
func (s *FixtureAdminService) RecordResult(ctx context.Context, input RecordResultInput) (fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureAdminService.RecordResult")
	defer span.End()

	match, err := s.fixtureForWrite(ctx, input.FixtureID)
	if err != nil {
		return fixture.Fixture{}, err
	}

	status := fixture.NormalizeStatus(input.Status)
	if input.Status == "" {
		status = fixture.StatusFinished
	}
	if !fixture.IsTerminalStatus(status) && status != fixture.StatusLive {
		return fixture.Fixture{}, fmt.Errorf("%w: status %s cannot carry a result", ErrInvalidInput, status)
	}

	if fixture.IsVoidStatus(status) {
		match.Status = status
		match.HomeGoals = nil
		match.AwayGoals = nil
	} else {
		if input.HomeGoals < 0 || input.AwayGoals < 0 {
			return fixture.Fixture{}, fmt.Errorf("%w: goals cannot be negative", ErrInvalidInput)
		}
		homeGoals := input.HomeGoals
		awayGoals := input.AwayGoals
		match.Status = status
		match.HomeGoals = &homeGoals
		match.AwayGoals = &awayGoals
	}

	if err := s.fixtureRepo.Update(ctx, match); err != nil {
		return fixture.Fixture{}, fmt.Errorf("update fixture result: %w", err)
	}

	return match, nil
}

// MoveFixture reassigns a fixture to another gameweek of the same
// competition. Both the source and target gameweeks must be unsettled.
func (s *FixtureAdminService) MoveFixture(ctx context.Context, fixtureID, gameweekID string) (fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureAdminService.MoveFixture")
	defer span.End()

	match, err := s.fixtureForWrite(ctx, fixtureID)
	if err != nil {
		return fixture.Fixture{}, err
	}

	target, err := s.gameweekForWrite(ctx, strings.TrimSpace(gameweekID))
	if err != nil {
		return fixture.Fixture{}, err
	}
	if target.CompetitionID != match.CompetitionID {
		return fixture.Fixture{}, fmt.Errorf("%w: gameweek %d belongs to another competition", ErrInvalidInput, target.Number)
	}

	match.GameweekID = target.ID
	if err := s.fixtureRepo.Update(ctx, match); err != nil {
		return fixture.Fixture{}, fmt.Errorf("move fixture: %w", err)
	}

	return match, nil
}

// ListFixtures returns a competition's fixtures, optionally filtered to one
// gameweek, ordered by kickoff.
func (s *FixtureAdminService) ListFixtures(ctx context.Context, competitionID, gameweekID string) ([]fixture.Fixture, error) {
	competitionID = strings.TrimSpace(competitionID)
	gameweekID = strings.TrimSpace(gameweekID)
	if competitionID == "" {
		return nil, fmt.Errorf("%w: competition_id is required", ErrInvalidInput)
	}

	fixtures, err := s.fixtureRepo.ListByCompetition(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("list fixtures by competition: %w", err)
	}

	if gameweekID != "" {
		filtered := fixtures[:0]
		for _, f := range fixtures {
			if f.GameweekID == gameweekID {
				filtered = append(filtered, f)
			}
		}
		fixtures = filtered
	}

	sort.Slice(fixtures, func(i, j int) bool {
		return fixtures[i].KickoffAt.Before(fixtures[j].KickoffAt)
	})
	return fixtures, nil
}

func (s *FixtureAdminService) UpdateGameweekLock(ctx context.Context, gameweekID string, lockAt time.Time) error {
	gw, err := s.gameweekForWrite(ctx, strings.TrimSpace(gameweekID))
	if err != nil {
		return err
	}
	if lockAt.IsZero() {
		return fmt.Errorf("%w: lock_at is required", ErrInvalidInput)
	}

	if err := s.gameweekRepo.UpdateLockAt(ctx, gw.ID, lockAt.UTC()); err != nil {
		return fmt.Errorf("update gameweek lock: %w", err)
	}

	return nil
}

// RederiveGameweekStates repairs drifted lock times across a competition by
// resetting each unsettled gameweek's lock to its earliest kickoff.
// Gameweeks are repaired concurrently.
func (s *FixtureAdminService) RederiveGameweekStates(ctx context.Context, competitionID string) (RederiveReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureAdminService.RederiveGameweekStates")
	defer span.End()

	competitionID = strings.TrimSpace(competitionID)
	if competitionID == "" {
		return RederiveReport{}, fmt.Errorf("%w: competition_id is required", ErrInvalidInput)
	}

	gameweeks, err := s.gameweekRepo.ListByCompetition(ctx, competitionID)
	if err != nil {
		return RederiveReport{}, fmt.Errorf("list gameweeks by competition: %w", err)
	}
	fixtures, err := s.fixtureRepo.ListByCompetition(ctx, competitionID)
	if err != nil {
		return RederiveReport{}, fmt.Errorf("list fixtures by competition: %w", err)
	}

	earliestKickoff := make(map[string]time.Time, len(gameweeks))
	for _, f := range fixtures {
		if current, ok := earliestKickoff[f.GameweekID]; !ok || f.KickoffAt.Before(current) {
			earliestKickoff[f.GameweekID] = f.KickoffAt
		}
	}

	var mu sync.Mutex
	updated := 0

	workers := pool.New().WithContext(ctx).WithMaxGoroutines(rederiveWorkers)
	for _, gw := range gameweeks {
		workers.Go(func(ctx context.Context) error {
			if gw.IsSettled {
				return nil
			}
			lockAt, ok := earliestKickoff[gw.ID]
			if !ok || gw.LockAt.Equal(lockAt) {
				return nil
			}
			if err := s.gameweekRepo.UpdateLockAt(ctx, gw.ID, lockAt.UTC()); err != nil {
				return fmt.Errorf("update lock for gameweek %d: %w", gw.Number, err)
			}

			mu.Lock()
			updated++
			mu.Unlock()
			return nil
		})
	}
	if err := workers.Wait(); err != nil {
		return RederiveReport{}, err
	}

	s.logger.InfoContext(ctx, "gameweek states rederived",
		"competition_id", competitionID,
		"gameweeks_seen", len(gameweeks),
		"gameweeks_updated", updated,
	)

	return RederiveReport{GameweeksSeen: len(gameweeks), GameweeksUpdated: updated}, nil
}

func (s *FixtureAdminService) fixtureForWrite(ctx context.Context, fixtureID string) (fixture.Fixture, error) {
	fixtureID = strings.TrimSpace(fixtureID)
	if fixtureID == "" {
		return fixture.Fixture{}, fmt.Errorf("%w: fixture_id is required", ErrInvalidInput)
	}

	match, exists, err := s.fixtureRepo.GetByID(ctx, fixtureID)
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("get fixture by id: %w", err)
	}
	if !exists {
		return fixture.Fixture{}, fmt.Errorf("%w: fixture=%s", ErrNotFound, fixtureID)
	}

	if _, err := s.gameweekForWrite(ctx, match.GameweekID); err != nil {
		return fixture.Fixture{}, err
	}

	return match, nil
}

func (s *FixtureAdminService) gameweekForWrite(ctx context.Context, gameweekID string) (gameweek.Gameweek, error) {
	if gameweekID == "" {
		return gameweek.Gameweek{}, fmt.Errorf("%w: gameweek_id is required", ErrInvalidInput)
	}

	gw, exists, err := s.gameweekRepo.GetByID(ctx, gameweekID)
	if err != nil {
		return gameweek.Gameweek{}, fmt.Errorf("get gameweek by id: %w", err)
	}
	if !exists {
		return gameweek.Gameweek{}, fmt.Errorf("%w: gameweek=%s", ErrNotFound, gameweekID)
	}
	if gw.IsSettled {
		return gameweek.Gameweek{}, fmt.Errorf("%w: gameweek %d is settled", ErrConflict, gw.Number)
	}

	return gw, nil
}

func (s *FixtureAdminService) teamInCompetition(ctx context.Context, competitionID, teamID string) (team.Team, error) {
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team_id is required", ErrInvalidInput)
	}

	side, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team by id: %w", err)
	}
	if !exists || side.CompetitionID != competitionID {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	return side, nil
}
