package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/survivorleague/survivor-api/internal/domain/entry"
	"github.com/survivorleague/survivor-api/internal/domain/fixture"
	"github.com/survivorleague/survivor-api/internal/domain/gameweek"
	"github.com/survivorleague/survivor-api/internal/domain/user"
)

func newExactoServiceForTest(now time.Time, exactoRepo *stubExactoRepository) *ExactoService {
	entryRepo := &stubEntryRepository{
		items: map[string]entry.Entry{
			"entry-1": {ID: "entry-1", UserID: "user-1", CompetitionID: "comp-1", RoundID: "round-1", LivesRemaining: 2},
		},
	}
	fixtureRepo := &stubFixtureRepository{
		items: map[string]fixture.Fixture{
			"fx-1": {
				ID: "fx-1", CompetitionID: "comp-1", GameweekID: "gw-1",
				HomeTeamID: "team-liv", AwayTeamID: "team-bou",
				KickoffAt: now.Add(2 * time.Hour), Status: fixture.StatusScheduled,
			},
		},
	}
	gameweekRepo := &stubGameweekRepository{
		items: map[string]gameweek.Gameweek{
			"gw-1": {ID: "gw-1", CompetitionID: "comp-1", Number: 1, LockAt: now.Add(time.Hour)},
		},
	}

	service := NewExactoService(entryRepo, fixtureRepo, gameweekRepo, exactoRepo, &sequenceIDGenerator{prefix: "xg"})
	service.now = func() time.Time { return now }
	return service
}

func TestExactoService_UpsertPrediction_ReplacesKeepingIdentity(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.August, 15, 10, 0, 0, 0, time.UTC)
	exactoRepo := &stubExactoRepository{}
	service := newExactoServiceForTest(now, exactoRepo)
	principal := user.Principal{UserID: "user-1"}

	first, err := service.UpsertPrediction(context.Background(), UpsertExactoInput{
		Principal: principal, EntryID: "entry-1", FixtureID: "fx-1", HomeGoals: 2, AwayGoals: 0,
	})
	if err != nil {
		t.Fatalf("UpsertPrediction error: %v", err)
	}
	if first.GameweekID != "gw-1" {
		t.Fatalf("gameweek must be derived from the fixture, got %s", first.GameweekID)
	}

	second, err := service.UpsertPrediction(context.Background(), UpsertExactoInput{
		Principal: principal, EntryID: "entry-1", FixtureID: "fx-1", HomeGoals: 3, AwayGoals: 1,
	})
	if err != nil {
		t.Fatalf("UpsertPrediction error: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("replacing a prediction must keep its id, got %s and %s", first.ID, second.ID)
	}
	if len(exactoRepo.items) != 1 {
		t.Fatalf("expected one stored prediction, got %d", len(exactoRepo.items))
	}
	if stored := exactoRepo.items[first.ID]; stored.HomeGoals != 3 || stored.AwayGoals != 1 {
		t.Fatalf("unexpected stored prediction: %+v", stored)
	}
}

func TestExactoService_UpsertPrediction_Failures(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.August, 15, 10, 0, 0, 0, time.UTC)
	service := newExactoServiceForTest(now, &stubExactoRepository{})
	principal := user.Principal{UserID: "user-1"}

	if _, err := service.UpsertPrediction(context.Background(), UpsertExactoInput{
		Principal: user.Principal{UserID: "user-2"}, EntryID: "entry-1", FixtureID: "fx-1",
	}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("foreign entry: expected ErrForbidden, got %v", err)
	}

	if _, err := service.UpsertPrediction(context.Background(), UpsertExactoInput{
		Principal: principal, EntryID: "entry-1", FixtureID: "fx-1", HomeGoals: -1,
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("negative goals: expected ErrInvalidInput, got %v", err)
	}

	service.now = func() time.Time { return now.Add(2 * time.Hour) }
	if _, err := service.UpsertPrediction(context.Background(), UpsertExactoInput{
		Principal: principal, EntryID: "entry-1", FixtureID: "fx-1", HomeGoals: 1, AwayGoals: 1,
	}); !errors.Is(err, ErrLocked) {
		t.Fatalf("locked gameweek: expected ErrLocked, got %v", err)
	}
}
