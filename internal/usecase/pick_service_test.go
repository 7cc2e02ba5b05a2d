package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/survivorleague/survivor-api/internal/domain/entry"
	"github.com/survivorleague/survivor-api/internal/domain/fixture"
	"github.com/survivorleague/survivor-api/internal/domain/gameweek"
	"github.com/survivorleague/survivor-api/internal/domain/pick"
	"github.com/survivorleague/survivor-api/internal/domain/team"
	"github.com/survivorleague/survivor-api/internal/domain/user"
	"github.com/survivorleague/survivor-api/internal/platform/cache"
)

type pickServiceHarness struct {
	service      *PickService
	entryRepo    *stubEntryRepository
	pickRepo     *stubPickRepository
	fixtureRepo  *stubFixtureRepository
	gameweekRepo *stubGameweekRepository
}

func newPickServiceHarness(now time.Time) *pickServiceHarness {
	entryRepo := &stubEntryRepository{
		items: map[string]entry.Entry{
			"entry-1": {ID: "entry-1", UserID: "user-1", CompetitionID: "comp-1", RoundID: "round-1", LivesRemaining: 2},
			"entry-2": {ID: "entry-2", UserID: "user-2", CompetitionID: "comp-1", RoundID: "round-1", LivesRemaining: 2},
		},
	}
	gameweekRepo := &stubGameweekRepository{
		items: map[string]gameweek.Gameweek{
			"gw-1": {ID: "gw-1", CompetitionID: "comp-1", Number: 1, LockAt: now.Add(time.Hour)},
			"gw-2": {ID: "gw-2", CompetitionID: "comp-1", Number: 2, LockAt: now.Add(8 * 24 * time.Hour)},
		},
	}
	fixtureRepo := &stubFixtureRepository{
		items: map[string]fixture.Fixture{
			"fx-1": {
				ID: "fx-1", CompetitionID: "comp-1", GameweekID: "gw-1",
				HomeTeamID: "team-liv", AwayTeamID: "team-bou",
				KickoffAt: now.Add(2 * time.Hour), Status: fixture.StatusScheduled,
			},
			"fx-2": {
				ID: "fx-2", CompetitionID: "comp-1", GameweekID: "gw-1",
				HomeTeamID: "team-ars", AwayTeamID: "team-che",
				KickoffAt: now.Add(3 * time.Hour), Status: fixture.StatusScheduled,
			},
			"fx-3": {
				ID: "fx-3", CompetitionID: "comp-1", GameweekID: "gw-2",
				HomeTeamID: "team-liv", AwayTeamID: "team-ars",
				KickoffAt: now.Add(9 * 24 * time.Hour), Status: fixture.StatusScheduled,
			},
		},
	}
	teamRepo := &stubTeamRepository{
		items: []team.Team{
			{ID: "team-liv", CompetitionID: "comp-1", Name: "Liverpool"},
			{ID: "team-bou", CompetitionID: "comp-1", Name: "Bournemouth"},
			{ID: "team-ars", CompetitionID: "comp-1", Name: "Arsenal"},
			{ID: "team-che", CompetitionID: "comp-1", Name: "Chelsea"},
		},
	}
	pickRepo := &stubPickRepository{}

	service := NewPickService(entryRepo, pickRepo, fixtureRepo, gameweekRepo, teamRepo, cache.NewStore(time.Minute), &sequenceIDGenerator{prefix: "pick"})
	service.now = func() time.Time { return now }

	return &pickServiceHarness{
		service:      service,
		entryRepo:    entryRepo,
		pickRepo:     pickRepo,
		fixtureRepo:  fixtureRepo,
		gameweekRepo: gameweekRepo,
	}
}

func TestPickService_CreatePick_DerivesGameweekFromFixture(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.August, 15, 10, 0, 0, 0, time.UTC)
	h := newPickServiceHarness(now)

	created, err := h.service.CreatePick(context.Background(), CreatePickInput{
		Principal: user.Principal{UserID: "user-1"},
		EntryID:   "entry-1",
		FixtureID: "fx-1",
		TeamID:    "team-bou",
	})
	if err != nil {
		t.Fatalf("CreatePick error: %v", err)
	}
	if created.GameweekID != "gw-1" {
		t.Fatalf("expected gameweek derived from fixture, got %s", created.GameweekID)
	}
	if created.Outcome != pick.OutcomePending {
		t.Fatalf("new pick must be PENDING, got %s", created.Outcome)
	}
	if created.SettledAt != nil {
		t.Fatal("new pick must not be settled")
	}
}

func TestPickService_CreatePick_OnePickPerGameweek(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.August, 15, 10, 0, 0, 0, time.UTC)
	h := newPickServiceHarness(now)

	principal := user.Principal{UserID: "user-1"}
	if _, err := h.service.CreatePick(context.Background(), CreatePickInput{
		Principal: principal, EntryID: "entry-1", FixtureID: "fx-1", TeamID: "team-liv",
	}); err != nil {
		t.Fatalf("first CreatePick error: %v", err)
	}

	_, err := h.service.CreatePick(context.Background(), CreatePickInput{
		Principal: principal, EntryID: "entry-1", FixtureID: "fx-2", TeamID: "team-ars",
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for second pick in gameweek, got %v", err)
	}
}

func TestPickService_CreatePick_RejectsTeamNotInFixture(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.August, 15, 10, 0, 0, 0, time.UTC)
	h := newPickServiceHarness(now)

	_, err := h.service.CreatePick(context.Background(), CreatePickInput{
		Principal: user.Principal{UserID: "user-1"},
		EntryID:   "entry-1",
		FixtureID: "fx-1",
		TeamID:    "team-ars",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPickService_CreatePick_RejectsLockedGameweek(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.August, 15, 10, 0, 0, 0, time.UTC)
	h := newPickServiceHarness(now)
	h.service.now = func() time.Time { return now.Add(2 * time.Hour) }

	_, err := h.service.CreatePick(context.Background(), CreatePickInput{
		Principal: user.Principal{UserID: "user-1"},
		EntryID:   "entry-1",
		FixtureID: "fx-1",
		TeamID:    "team-liv",
	})
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
}

func TestPickService_CreatePick_OwnershipAndAdminOverride(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.August, 15, 10, 0, 0, 0, time.UTC)
	h := newPickServiceHarness(now)

	_, err := h.service.CreatePick(context.Background(), CreatePickInput{
		Principal: user.Principal{UserID: "user-1"},
		EntryID:   "entry-2",
		FixtureID: "fx-1",
		TeamID:    "team-liv",
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for foreign entry, got %v", err)
	}

	if _, err := h.service.CreatePick(context.Background(), CreatePickInput{
		Principal: user.Principal{UserID: "admin-1", Role: user.RoleAdmin},
		EntryID:   "entry-2",
		FixtureID: "fx-1",
		TeamID:    "team-liv",
	}); err != nil {
		t.Fatalf("admin must be able to pick on a user's behalf: %v", err)
	}
}

func TestPickService_CreatePick_RejectsEliminatedEntry(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.August, 15, 10, 0, 0, 0, time.UTC)
	h := newPickServiceHarness(now)
	eliminatedAt := 3
	h.entryRepo.items["entry-1"] = entry.Entry{
		ID: "entry-1", UserID: "user-1", CompetitionID: "comp-1", RoundID: "round-1",
		LivesRemaining: 0, EliminatedAtGameweek: &eliminatedAt,
	}

	_, err := h.service.CreatePick(context.Background(), CreatePickInput{
		Principal: user.Principal{UserID: "user-1"},
		EntryID:   "entry-1",
		FixtureID: "fx-1",
		TeamID:    "team-liv",
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for eliminated entry, got %v", err)
	}
}

func TestPickService_UpdatePick_StaysWithinGameweek(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.August, 15, 10, 0, 0, 0, time.UTC)
	h := newPickServiceHarness(now)
	principal := user.Principal{UserID: "user-1"}

	created, err := h.service.CreatePick(context.Background(), CreatePickInput{
		Principal: principal, EntryID: "entry-1", FixtureID: "fx-1", TeamID: "team-liv",
	})
	if err != nil {
		t.Fatalf("CreatePick error: %v", err)
	}

	updated, err := h.service.UpdatePick(context.Background(), UpdatePickInput{
		Principal: principal, PickID: created.ID, FixtureID: "fx-2", TeamID: "team-che",
	})
	if err != nil {
		t.Fatalf("UpdatePick error: %v", err)
	}
	if updated.FixtureID != "fx-2" || updated.TeamID != "team-che" {
		t.Fatalf("unexpected updated pick: %+v", updated)
	}

	_, err = h.service.UpdatePick(context.Background(), UpdatePickInput{
		Principal: principal, PickID: created.ID, FixtureID: "fx-3", TeamID: "team-liv",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for cross-gameweek move, got %v", err)
	}
}

func TestPickService_DeletePick_RejectsSettledPick(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.August, 15, 10, 0, 0, 0, time.UTC)
	h := newPickServiceHarness(now)
	settledAt := now.Add(-time.Hour)
	h.pickRepo.items = map[string]pick.Pick{
		"pick-settled": {
			ID: "pick-settled", EntryID: "entry-1", GameweekID: "gw-1", FixtureID: "fx-1",
			TeamID: "team-liv", Outcome: pick.OutcomeWin, SettledAt: &settledAt,
		},
	}

	err := h.service.DeletePick(context.Background(), user.Principal{UserID: "user-1"}, "pick-settled")
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	if _, ok := h.pickRepo.items["pick-settled"]; !ok {
		t.Fatal("settled pick must not be deleted")
	}
}

func TestPickService_ListTeamPicks_OnlySettledGameweeks(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.August, 15, 10, 0, 0, 0, time.UTC)
	h := newPickServiceHarness(now)

	settledAt := now.Add(-24 * time.Hour)
	gwSettled := h.gameweekRepo.items["gw-1"]
	gwSettled.IsSettled = true
	gwSettled.SettledAt = &settledAt
	h.gameweekRepo.items["gw-1"] = gwSettled

	h.pickRepo.items = map[string]pick.Pick{
		"pick-old": {
			ID: "pick-old", EntryID: "entry-1", GameweekID: "gw-1", FixtureID: "fx-1",
			TeamID: "team-liv", Outcome: pick.OutcomeWin, SettledAt: &settledAt,
		},
		"pick-current": {
			ID: "pick-current", EntryID: "entry-1", GameweekID: "gw-2", FixtureID: "fx-3",
			TeamID: "team-liv", Outcome: pick.OutcomePending,
		},
	}

	picks, err := h.service.ListTeamPicks(context.Background(), "comp-1", "team-liv")
	if err != nil {
		t.Fatalf("ListTeamPicks error: %v", err)
	}
	if len(picks) != 1 {
		t.Fatalf("expected only settled-gameweek picks, got %d", len(picks))
	}
	if picks[0].PickID != "pick-old" || picks[0].Outcome != pick.OutcomeWin || picks[0].GameweekNumber != 1 {
		t.Fatalf("unexpected team pick: %+v", picks[0])
	}
}

func TestPickService_ListTeamPicks_ServesFromCache(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.August, 15, 10, 0, 0, 0, time.UTC)
	h := newPickServiceHarness(now)

	if _, err := h.service.ListTeamPicks(context.Background(), "comp-1", "team-liv"); err != nil {
		t.Fatalf("ListTeamPicks error: %v", err)
	}

	// Drop the backing data; a cached result must still be served.
	h.pickRepo.items = nil
	h.gameweekRepo.items = map[string]gameweek.Gameweek{}

	if _, err := h.service.ListTeamPicks(context.Background(), "comp-1", "team-liv"); err != nil {
		t.Fatalf("cached ListTeamPicks error: %v", err)
	}
}

func TestPickService_ListTeamPicks_UnknownTeam(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.August, 15, 10, 0, 0, 0, time.UTC)
	h := newPickServiceHarness(now)

	if _, err := h.service.ListTeamPicks(context.Background(), "comp-1", "team-xyz"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := h.service.ListTeamPicks(context.Background(), "comp-2", "team-liv"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for wrong competition, got %v", err)
	}
}
