package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/survivorleague/survivor-api/internal/domain/competition"
	"github.com/survivorleague/survivor-api/internal/domain/entry"
	"github.com/survivorleague/survivor-api/internal/domain/fixture"
	"github.com/survivorleague/survivor-api/internal/domain/gameweek"
	"github.com/survivorleague/survivor-api/internal/domain/team"
	"github.com/survivorleague/survivor-api/internal/domain/user"
	"github.com/survivorleague/survivor-api/internal/domain/whomst"
)

func newCompetitionServiceForTest(entryRepo *stubEntryRepository, whomstRepo *stubWhomstRepository) (*CompetitionService, *stubCompetitionRepository) {
	endedAt := time.Date(2026, time.May, 25, 0, 0, 0, 0, time.UTC)
	competitionRepo := &stubCompetitionRepository{
		competitions: []competition.Competition{
			{ID: "comp-1", Name: "Survivor League", Season: "2026/27", InviteCode: "SURV26", LivesPerRound: 2},
		},
		rounds: []competition.Round{
			{ID: "round-1", CompetitionID: "comp-1", RoundNumber: 1, StartedAt: endedAt.AddDate(0, -9, 0), EndedAt: &endedAt},
			{ID: "round-2", CompetitionID: "comp-1", RoundNumber: 2, StartedAt: time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)},
		},
	}
	gameweekRepo := &stubGameweekRepository{items: map[string]gameweek.Gameweek{}}
	fixtureRepo := &stubFixtureRepository{items: map[string]fixture.Fixture{}}
	teamRepo := &stubTeamRepository{}
	userRepo := &stubUserRepository{
		items: []user.User{
			{ID: "user-1", Email: "ruth@example.com", Name: "Ruth"},
			{ID: "user-2", Email: "dave@example.com", Name: "Dave"},
		},
	}

	service := NewCompetitionService(competitionRepo, gameweekRepo, fixtureRepo, teamRepo, entryRepo, userRepo, whomstRepo, &sequenceIDGenerator{prefix: "entry"})
	return service, competitionRepo
}

func TestCompetitionService_JoinRound_CreatesEntryWithLives(t *testing.T) {
	t.Parallel()

	entryRepo := &stubEntryRepository{}
	service, _ := newCompetitionServiceForTest(entryRepo, &stubWhomstRepository{})

	created, err := service.JoinRound(context.Background(), JoinRoundInput{
		Principal:  user.Principal{UserID: "user-1"},
		InviteCode: "SURV26",
	})
	if err != nil {
		t.Fatalf("JoinRound error: %v", err)
	}
	if created.CompetitionID != "comp-1" || created.RoundID != "round-2" {
		t.Fatalf("expected enrollment in the active round, got %+v", created)
	}
	if created.LivesRemaining != 2 {
		t.Fatalf("entry must start with the competition's lives per round, got %d", created.LivesRemaining)
	}

	again, err := service.JoinRound(context.Background(), JoinRoundInput{
		Principal:  user.Principal{UserID: "user-1"},
		InviteCode: "SURV26",
	})
	if err != nil {
		t.Fatalf("second JoinRound error: %v", err)
	}
	if again.ID != created.ID {
		t.Fatalf("joining twice must return the same entry, got %s and %s", created.ID, again.ID)
	}
	if len(entryRepo.created) != 1 {
		t.Fatalf("expected exactly one created entry, got %d", len(entryRepo.created))
	}
}

func TestCompetitionService_JoinRound_Failures(t *testing.T) {
	t.Parallel()

	service, _ := newCompetitionServiceForTest(&stubEntryRepository{}, &stubWhomstRepository{})

	if _, err := service.JoinRound(context.Background(), JoinRoundInput{
		Principal:  user.Principal{UserID: "user-1"},
		InviteCode: "NOPE",
	}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown invite code: expected ErrNotFound, got %v", err)
	}

	if _, err := service.JoinRound(context.Background(), JoinRoundInput{
		Principal:   user.Principal{UserID: "user-1"},
		InviteCode:  "SURV26",
		RoundNumber: 1,
	}); !errors.Is(err, ErrConflict) {
		t.Fatalf("ended round: expected ErrConflict, got %v", err)
	}

	if _, err := service.JoinRound(context.Background(), JoinRoundInput{
		InviteCode: "SURV26",
	}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("anonymous join: expected ErrUnauthorized, got %v", err)
	}
}

func TestCompetitionService_ListEntries_SurvivorsFirst(t *testing.T) {
	t.Parallel()

	eliminatedAt := 4
	entryRepo := &stubEntryRepository{
		items: map[string]entry.Entry{
			"entry-1": {ID: "entry-1", UserID: "user-1", CompetitionID: "comp-1", RoundID: "round-2", LivesRemaining: 0, EliminatedAtGameweek: &eliminatedAt},
			"entry-2": {ID: "entry-2", UserID: "user-2", CompetitionID: "comp-1", RoundID: "round-2", LivesRemaining: 2},
		},
	}
	service, _ := newCompetitionServiceForTest(entryRepo, &stubWhomstRepository{})

	standings, err := service.ListEntries(context.Background(), "comp-1", 2)
	if err != nil {
		t.Fatalf("ListEntries error: %v", err)
	}
	if len(standings) != 2 {
		t.Fatalf("expected 2 standings rows, got %d", len(standings))
	}
	if standings[0].EntryID != "entry-2" || standings[0].UserName != "Dave" {
		t.Fatalf("unexpected leader: %+v", standings[0])
	}
	if standings[1].EntryID != "entry-1" || standings[1].EliminatedAtGameweek == nil {
		t.Fatalf("unexpected eliminated row: %+v", standings[1])
	}
}

func TestCompetitionService_ListGameweeks_GroupsAndOrdersFixtures(t *testing.T) {
	t.Parallel()

	service, _ := newCompetitionServiceForTest(&stubEntryRepository{}, &stubWhomstRepository{})
	base := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)

	service.gameweekRepo = &stubGameweekRepository{
		items: map[string]gameweek.Gameweek{
			"gw-2": {ID: "gw-2", CompetitionID: "comp-1", Number: 2, LockAt: base.AddDate(0, 0, 7)},
			"gw-1": {ID: "gw-1", CompetitionID: "comp-1", Number: 1, LockAt: base},
		},
	}
	service.fixtureRepo = &stubFixtureRepository{
		items: map[string]fixture.Fixture{
			"fx-late":  {ID: "fx-late", CompetitionID: "comp-1", GameweekID: "gw-1", KickoffAt: base.Add(4 * time.Hour)},
			"fx-early": {ID: "fx-early", CompetitionID: "comp-1", GameweekID: "gw-1", KickoffAt: base.Add(time.Hour)},
			"fx-next":  {ID: "fx-next", CompetitionID: "comp-1", GameweekID: "gw-2", KickoffAt: base.AddDate(0, 0, 7)},
		},
	}

	schedule, err := service.ListGameweeks(context.Background(), "comp-1")
	if err != nil {
		t.Fatalf("ListGameweeks error: %v", err)
	}
	if len(schedule) != 2 {
		t.Fatalf("expected 2 gameweeks, got %d", len(schedule))
	}
	if schedule[0].Gameweek.Number != 1 || schedule[1].Gameweek.Number != 2 {
		t.Fatalf("gameweeks must be ordered by number: %+v", schedule)
	}
	first := schedule[0].Fixtures
	if len(first) != 2 || first[0].ID != "fx-early" || first[1].ID != "fx-late" {
		t.Fatalf("fixtures must be ordered by kickoff: %+v", first)
	}
}

func TestCompetitionService_SubmitWhomstScore_KeepsPersonalBest(t *testing.T) {
	t.Parallel()

	entryRepo := &stubEntryRepository{
		items: map[string]entry.Entry{
			"entry-1": {ID: "entry-1", UserID: "user-1", CompetitionID: "comp-1", RoundID: "round-2", LivesRemaining: 2},
		},
	}
	whomstRepo := &stubWhomstRepository{}
	service, _ := newCompetitionServiceForTest(entryRepo, whomstRepo)
	principal := user.Principal{UserID: "user-1"}

	first, err := service.SubmitWhomstScore(context.Background(), WhomstScoreInput{
		Principal: principal, EntryID: "entry-1", GameType: "Whomst", Score: 12,
	})
	if err != nil {
		t.Fatalf("SubmitWhomstScore error: %v", err)
	}
	if first.Score != 12 || first.GameType != "whomst" {
		t.Fatalf("unexpected stored score: %+v", first)
	}

	lower, err := service.SubmitWhomstScore(context.Background(), WhomstScoreInput{
		Principal: principal, EntryID: "entry-1", GameType: "whomst", Score: 5,
	})
	if err != nil {
		t.Fatalf("SubmitWhomstScore error: %v", err)
	}
	if lower.Score != 12 {
		t.Fatalf("lower score must not replace the best, got %d", lower.Score)
	}

	higher, err := service.SubmitWhomstScore(context.Background(), WhomstScoreInput{
		Principal: principal, EntryID: "entry-1", GameType: "whomst", Score: 30,
	})
	if err != nil {
		t.Fatalf("SubmitWhomstScore error: %v", err)
	}
	if higher.Score != 30 {
		t.Fatalf("higher score must replace the best, got %d", higher.Score)
	}
	if len(whomstRepo.items) != 1 {
		t.Fatalf("one row per entry and game type, got %d", len(whomstRepo.items))
	}

	if _, err := service.SubmitWhomstScore(context.Background(), WhomstScoreInput{
		Principal: user.Principal{UserID: "user-2"}, EntryID: "entry-1", GameType: "whomst", Score: 99,
	}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("foreign entry: expected ErrForbidden, got %v", err)
	}
}

func TestCompetitionService_ListWhomstScores_BestFirst(t *testing.T) {
	t.Parallel()

	whomstRepo := &stubWhomstRepository{
		items: []whomst.Score{
			{ID: "w-1", EntryID: "entry-1", CompetitionID: "comp-1", GameType: "whomst", Score: 10},
			{ID: "w-2", EntryID: "entry-2", CompetitionID: "comp-1", GameType: "whomst", Score: 25},
			{ID: "w-3", EntryID: "entry-3", CompetitionID: "comp-2", GameType: "whomst", Score: 99},
		},
	}
	service, _ := newCompetitionServiceForTest(&stubEntryRepository{}, whomstRepo)

	scores, err := service.ListWhomstScores(context.Background(), "comp-1")
	if err != nil {
		t.Fatalf("ListWhomstScores error: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("expected scores scoped to the competition, got %d", len(scores))
	}
	if scores[0].ID != "w-2" || scores[1].ID != "w-1" {
		t.Fatalf("scores must be ordered best first: %+v", scores)
	}
}

func TestCompetitionService_ListTeams_SortedByName(t *testing.T) {
	t.Parallel()

	service, _ := newCompetitionServiceForTest(&stubEntryRepository{}, &stubWhomstRepository{})
	service.teamRepo = &stubTeamRepository{
		items: []team.Team{
			{ID: "team-liv", CompetitionID: "comp-1", Name: "Liverpool"},
			{ID: "team-ars", CompetitionID: "comp-1", Name: "Arsenal"},
			{ID: "team-other", CompetitionID: "comp-2", Name: "Aston Villa"},
		},
	}

	teams, err := service.ListTeams(context.Background(), "comp-1")
	if err != nil {
		t.Fatalf("ListTeams error: %v", err)
	}
	if len(teams) != 2 || teams[0].Name != "Arsenal" || teams[1].Name != "Liverpool" {
		t.Fatalf("unexpected teams: %+v", teams)
	}
}
