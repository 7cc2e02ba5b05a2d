package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/survivorleague/survivor-api/internal/domain/competition"
	"github.com/survivorleague/survivor-api/internal/domain/entry"
	"github.com/survivorleague/survivor-api/internal/domain/fixture"
	"github.com/survivorleague/survivor-api/internal/domain/gameweek"
	"github.com/survivorleague/survivor-api/internal/domain/team"
	"github.com/survivorleague/survivor-api/internal/domain/user"
	"github.com/survivorleague/survivor-api/internal/domain/whomst"
	"github.com/survivorleague/survivor-api/internal/platform/id"
)

type JoinRoundInput struct {
	Principal  user.Principal
	InviteCode string
	// RoundNumber selects the round to join; zero means the latest active
	// round.
	RoundNumber int
}

// GameweekSchedule is a gameweek together with its fixtures, the shape the
// public schedule endpoint serves.
type GameweekSchedule struct {
	Gameweek gameweek.Gameweek
	Fixtures []fixture.Fixture
}

// RoundEntry is one competitor's standing within a round.
type RoundEntry struct {
	EntryID              string
	UserID               string
	UserName             string
	LivesRemaining       int
	EliminatedAtGameweek *int
}

type WhomstScoreInput struct {
	Principal user.Principal
	EntryID   string
	GameType  string
	Score     int
}

type CompetitionService struct {
	competitionRepo competition.Repository
	gameweekRepo    gameweek.Repository
	fixtureRepo     fixture.Repository
	teamRepo        team.Repository
	entryRepo       entry.Repository
	userRepo        user.Repository
	whomstRepo      whomst.Repository
	idGenerator     id.Generator
	now             func() time.Time
}

func NewCompetitionService(
	competitionRepo competition.Repository,
	gameweekRepo gameweek.Repository,
	fixtureRepo fixture.Repository,
	teamRepo team.Repository,
	entryRepo entry.Repository,
	userRepo user.Repository,
	whomstRepo whomst.Repository,
	idGenerator id.Generator,
) *CompetitionService {
	return &CompetitionService{
		competitionRepo: competitionRepo,
		gameweekRepo:    gameweekRepo,
		fixtureRepo:     fixtureRepo,
		teamRepo:        teamRepo,
		entryRepo:       entryRepo,
		userRepo:        userRepo,
		whomstRepo:      whomstRepo,
		idGenerator:     idGenerator,
		now:             time.Now,
	}
}

func (s *CompetitionService) GetCompetition(ctx context.Context, competitionID string) (competition.Competition, error) {
	competitionID = strings.TrimSpace(competitionID)
	if competitionID == "" {
		return competition.Competition{}, fmt.Errorf("%w: competition_id is required", ErrInvalidInput)
	}

	item, exists, err := s.competitionRepo.GetByID(ctx, competitionID)
	if err != nil {
		return competition.Competition{}, fmt.Errorf("get competition by id: %w", err)
	}
	if !exists {
		return competition.Competition{}, fmt.Errorf("%w: competition=%s", ErrNotFound, competitionID)
	}

	return item, nil
}

// ListGameweeks returns the competition's schedule ordered by gameweek
// number, each gameweek carrying its fixtures sorted by kickoff.
func (s *CompetitionService) ListGameweeks(ctx context.Context, competitionID string) ([]GameweekSchedule, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.ListGameweeks")
	defer span.End()

	if _, err := s.GetCompetition(ctx, competitionID); err != nil {
		return nil, err
	}

	gameweeks, err := s.gameweekRepo.ListByCompetition(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("list gameweeks by competition: %w", err)
	}
	fixtures, err := s.fixtureRepo.ListByCompetition(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("list fixtures by competition: %w", err)
	}

	byGameweek := make(map[string][]fixture.Fixture, len(gameweeks))
	for _, f := range fixtures {
		byGameweek[f.GameweekID] = append(byGameweek[f.GameweekID], f)
	}

	schedule := make([]GameweekSchedule, 0, len(gameweeks))
	for _, gw := range gameweeks {
		items := byGameweek[gw.ID]
		sort.Slice(items, func(i, j int) bool {
			return items[i].KickoffAt.Before(items[j].KickoffAt)
		})
		schedule = append(schedule, GameweekSchedule{Gameweek: gw, Fixtures: items})
	}
	sort.Slice(schedule, func(i, j int) bool {
		return schedule[i].Gameweek.Number < schedule[j].Gameweek.Number
	})

	return schedule, nil
}

func (s *CompetitionService) ListTeams(ctx context.Context, competitionID string) ([]team.Team, error) {
	if _, err := s.GetCompetition(ctx, competitionID); err != nil {
		return nil, err
	}

	teams, err := s.teamRepo.ListByCompetition(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("list teams by competition: %w", err)
	}

	sort.Slice(teams, func(i, j int) bool { return teams[i].Name < teams[j].Name })
	return teams, nil
}

// JoinRound enrolls the caller into a round via the competition's invite
// code. Joining a round twice returns the existing entry unchanged.
func (s *CompetitionService) JoinRound(ctx context.Context, input JoinRoundInput) (entry.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.JoinRound")
	defer span.End()

	input.InviteCode = strings.TrimSpace(input.InviteCode)
	if input.InviteCode == "" {
		return entry.Entry{}, fmt.Errorf("%w: invite_code is required", ErrInvalidInput)
	}
	if input.Principal.UserID == "" {
		return entry.Entry{}, fmt.Errorf("%w: sign in before joining", ErrUnauthorized)
	}

	comp, exists, err := s.competitionRepo.GetByInviteCode(ctx, input.InviteCode)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("get competition by invite code: %w", err)
	}
	if !exists {
		return entry.Entry{}, fmt.Errorf("%w: unknown invite code", ErrNotFound)
	}

	round, err := s.resolveRound(ctx, comp.ID, input.RoundNumber)
	if err != nil {
		return entry.Entry{}, err
	}
	if !round.IsActive() {
		return entry.Entry{}, fmt.Errorf("%w: round %d has ended", ErrConflict, round.RoundNumber)
	}

	if existing, exists, err := s.entryRepo.GetByUserAndRound(ctx, input.Principal.UserID, round.ID); err != nil {
		return entry.Entry{}, fmt.Errorf("get entry by user and round: %w", err)
	} else if exists {
		return existing, nil
	}

	newID, err := s.idGenerator.NewID()
	if err != nil {
		return entry.Entry{}, fmt.Errorf("generate entry id: %w", err)
	}

	created := entry.Entry{
		ID:             newID,
		UserID:         input.Principal.UserID,
		CompetitionID:  comp.ID,
		RoundID:        round.ID,
		LivesRemaining: comp.LivesPerRound,
	}
	if err := s.entryRepo.Create(ctx, created); err != nil {
		return entry.Entry{}, fmt.Errorf("create entry: %w", err)
	}

	return created, nil
}

// ListEntries returns the standings of one round: survivors first, ordered
// by lives remaining, eliminated entries last.
func (s *CompetitionService) ListEntries(ctx context.Context, competitionID string, roundNumber int) ([]RoundEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CompetitionService.ListEntries")
	defer span.End()

	if _, err := s.GetCompetition(ctx, competitionID); err != nil {
		return nil, err
	}

	round, err := s.resolveRound(ctx, competitionID, roundNumber)
	if err != nil {
		return nil, err
	}

	entries, err := s.entryRepo.ListByRound(ctx, round.ID)
	if err != nil {
		return nil, fmt.Errorf("list entries by round: %w", err)
	}

	standings := make([]RoundEntry, 0, len(entries))
	for _, e := range entries {
		name := ""
		if account, exists, err := s.userRepo.GetByID(ctx, e.UserID); err != nil {
			return nil, fmt.Errorf("get user by id: %w", err)
		} else if exists {
			name = account.Name
		}
		standings = append(standings, RoundEntry{
			EntryID:              e.ID,
			UserID:               e.UserID,
			UserName:             name,
			LivesRemaining:       e.LivesRemaining,
			EliminatedAtGameweek: e.EliminatedAtGameweek,
		})
	}

	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].LivesRemaining != standings[j].LivesRemaining {
			return standings[i].LivesRemaining > standings[j].LivesRemaining
		}
		return standings[i].UserName < standings[j].UserName
	})

	return standings, nil
}

// SubmitWhomstScore records a minigame score for the caller's entry. Only a
// personal best replaces the stored score.
func (s *CompetitionService) SubmitWhomstScore(ctx context.Context, input WhomstScoreInput) (whomst.Score, error) {
	input.EntryID = strings.TrimSpace(input.EntryID)
	input.GameType = strings.ToLower(strings.TrimSpace(input.GameType))

	if input.EntryID == "" {
		return whomst.Score{}, fmt.Errorf("%w: entry_id is required", ErrInvalidInput)
	}
	if input.GameType == "" {
		return whomst.Score{}, fmt.Errorf("%w: game_type is required", ErrInvalidInput)
	}
	if input.Score < 0 {
		return whomst.Score{}, fmt.Errorf("%w: score cannot be negative", ErrInvalidInput)
	}

	item, exists, err := s.entryRepo.GetByID(ctx, input.EntryID)
	if err != nil {
		return whomst.Score{}, fmt.Errorf("get entry by id: %w", err)
	}
	if !exists {
		return whomst.Score{}, fmt.Errorf("%w: entry=%s", ErrNotFound, input.EntryID)
	}
	if item.UserID != input.Principal.UserID && !input.Principal.IsAdmin() {
		return whomst.Score{}, fmt.Errorf("%w: entry belongs to another user", ErrForbidden)
	}

	scores, err := s.whomstRepo.ListByCompetition(ctx, item.CompetitionID)
	if err != nil {
		return whomst.Score{}, fmt.Errorf("list whomst scores: %w", err)
	}
	for _, existing := range scores {
		if existing.EntryID == item.ID && existing.GameType == input.GameType {
			if existing.Score >= input.Score {
				return existing, nil
			}
			existing.Score = input.Score
			if err := s.whomstRepo.Upsert(ctx, existing); err != nil {
				return whomst.Score{}, fmt.Errorf("upsert whomst score: %w", err)
			}
			return existing, nil
		}
	}

	newID, err := s.idGenerator.NewID()
	if err != nil {
		return whomst.Score{}, fmt.Errorf("generate whomst score id: %w", err)
	}

	created := whomst.Score{
		ID:            newID,
		EntryID:       item.ID,
		CompetitionID: item.CompetitionID,
		GameType:      input.GameType,
		Score:         input.Score,
	}
	if err := s.whomstRepo.Upsert(ctx, created); err != nil {
		return whomst.Score{}, fmt.Errorf("upsert whomst score: %w", err)
	}

	return created, nil
}

// ListWhomstScores returns the competition leaderboard, best score first.
func (s *CompetitionService) ListWhomstScores(ctx context.Context, competitionID string) ([]whomst.Score, error) {
	if _, err := s.GetCompetition(ctx, competitionID); err != nil {
		return nil, err
	}

	scores, err := s.whomstRepo.ListByCompetition(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("list whomst scores: %w", err)
	}

	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Score > scores[j].Score })
	return scores, nil
}

func (s *CompetitionService) resolveRound(ctx context.Context, competitionID string, roundNumber int) (competition.Round, error) {
	if roundNumber > 0 {
		round, exists, err := s.competitionRepo.GetRound(ctx, competitionID, roundNumber)
		if err != nil {
			return competition.Round{}, fmt.Errorf("get round: %w", err)
		}
		if !exists {
			return competition.Round{}, fmt.Errorf("%w: round=%d", ErrNotFound, roundNumber)
		}
		return round, nil
	}

	rounds, err := s.competitionRepo.ListRounds(ctx, competitionID)
	if err != nil {
		return competition.Round{}, fmt.Errorf("list rounds: %w", err)
	}
	if len(rounds) == 0 {
		return competition.Round{}, fmt.Errorf("%w: competition has no rounds", ErrNotFound)
	}

	sort.Slice(rounds, func(i, j int) bool { return rounds[i].RoundNumber > rounds[j].RoundNumber })
	for _, round := range rounds {
		if round.IsActive() {
			return round, nil
		}
	}
	return rounds[0], nil
}
