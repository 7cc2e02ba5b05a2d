package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/survivorleague/survivor-api/internal/domain/competition"
	"github.com/survivorleague/survivor-api/internal/domain/credential"
	"github.com/survivorleague/survivor-api/internal/domain/entry"
	"github.com/survivorleague/survivor-api/internal/domain/exacto"
	"github.com/survivorleague/survivor-api/internal/domain/fixture"
	"github.com/survivorleague/survivor-api/internal/domain/gameweek"
	"github.com/survivorleague/survivor-api/internal/domain/pick"
	"github.com/survivorleague/survivor-api/internal/domain/settlement"
	"github.com/survivorleague/survivor-api/internal/domain/team"
	"github.com/survivorleague/survivor-api/internal/domain/user"
	"github.com/survivorleague/survivor-api/internal/domain/whomst"
)

type stubCredentialRepository struct {
	items []credential.AccessCode
}

func (r *stubCredentialRepository) GetByCodeHash(_ context.Context, codeHash string) (credential.AccessCode, bool, error) {
	for _, item := range r.items {
		if item.CodeHash == codeHash {
			return item, true, nil
		}
	}
	return credential.AccessCode{}, false, nil
}

func (r *stubCredentialRepository) GetByEmail(_ context.Context, email string) (credential.AccessCode, bool, error) {
	for _, item := range r.items {
		if item.Email == email {
			return item, true, nil
		}
	}
	return credential.AccessCode{}, false, nil
}

func (r *stubCredentialRepository) Upsert(_ context.Context, item credential.AccessCode) error {
	for i, existing := range r.items {
		if existing.ID == item.ID {
			r.items[i] = item
			return nil
		}
	}
	r.items = append(r.items, item)
	return nil
}

type stubUserRepository struct {
	items []user.User
}

func (r *stubUserRepository) GetByID(_ context.Context, userID string) (user.User, bool, error) {
	for _, item := range r.items {
		if item.ID == userID {
			return item, true, nil
		}
	}
	return user.User{}, false, nil
}

func (r *stubUserRepository) GetByEmail(_ context.Context, email string) (user.User, bool, error) {
	for _, item := range r.items {
		if item.Email == email {
			return item, true, nil
		}
	}
	return user.User{}, false, nil
}

func (r *stubUserRepository) Create(_ context.Context, item user.User) error {
	r.items = append(r.items, item)
	return nil
}

type stubCompetitionRepository struct {
	competitions []competition.Competition
	rounds       []competition.Round
}

func (r *stubCompetitionRepository) GetByID(_ context.Context, competitionID string) (competition.Competition, bool, error) {
	for _, item := range r.competitions {
		if item.ID == competitionID {
			return item, true, nil
		}
	}
	return competition.Competition{}, false, nil
}

func (r *stubCompetitionRepository) GetByInviteCode(_ context.Context, inviteCode string) (competition.Competition, bool, error) {
	for _, item := range r.competitions {
		if item.InviteCode == inviteCode {
			return item, true, nil
		}
	}
	return competition.Competition{}, false, nil
}

func (r *stubCompetitionRepository) GetRound(_ context.Context, competitionID string, roundNumber int) (competition.Round, bool, error) {
	for _, item := range r.rounds {
		if item.CompetitionID == competitionID && item.RoundNumber == roundNumber {
			return item, true, nil
		}
	}
	return competition.Round{}, false, nil
}

func (r *stubCompetitionRepository) ListRounds(_ context.Context, competitionID string) ([]competition.Round, error) {
	rounds := make([]competition.Round, 0, len(r.rounds))
	for _, item := range r.rounds {
		if item.CompetitionID == competitionID {
			rounds = append(rounds, item)
		}
	}
	return rounds, nil
}

type stubTeamRepository struct {
	items []team.Team
}

func (r *stubTeamRepository) ListByCompetition(_ context.Context, competitionID string) ([]team.Team, error) {
	teams := make([]team.Team, 0, len(r.items))
	for _, item := range r.items {
		if item.CompetitionID == competitionID {
			teams = append(teams, item)
		}
	}
	return teams, nil
}

func (r *stubTeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	for _, item := range r.items {
		if item.ID == teamID {
			return item, true, nil
		}
	}
	return team.Team{}, false, nil
}

type stubGameweekRepository struct {
	items       map[string]gameweek.Gameweek
	lockUpdates map[string]time.Time
}

func (r *stubGameweekRepository) GetByID(_ context.Context, gameweekID string) (gameweek.Gameweek, bool, error) {
	item, ok := r.items[gameweekID]
	return item, ok, nil
}

func (r *stubGameweekRepository) ListByCompetition(_ context.Context, competitionID string) ([]gameweek.Gameweek, error) {
	gameweeks := make([]gameweek.Gameweek, 0, len(r.items))
	for _, item := range r.items {
		if item.CompetitionID == competitionID {
			gameweeks = append(gameweeks, item)
		}
	}
	return gameweeks, nil
}

func (r *stubGameweekRepository) UpdateLockAt(_ context.Context, gameweekID string, lockAt time.Time) error {
	item, ok := r.items[gameweekID]
	if !ok {
		return fmt.Errorf("gameweek %s not found", gameweekID)
	}
	item.LockAt = lockAt
	r.items[gameweekID] = item
	if r.lockUpdates == nil {
		r.lockUpdates = make(map[string]time.Time)
	}
	r.lockUpdates[gameweekID] = lockAt
	return nil
}

type stubFixtureRepository struct {
	items map[string]fixture.Fixture
}

func (r *stubFixtureRepository) GetByID(_ context.Context, fixtureID string) (fixture.Fixture, bool, error) {
	item, ok := r.items[fixtureID]
	return item, ok, nil
}

func (r *stubFixtureRepository) ListByGameweek(_ context.Context, gameweekID string) ([]fixture.Fixture, error) {
	fixtures := make([]fixture.Fixture, 0, len(r.items))
	for _, item := range r.items {
		if item.GameweekID == gameweekID {
			fixtures = append(fixtures, item)
		}
	}
	return fixtures, nil
}

func (r *stubFixtureRepository) ListByCompetition(_ context.Context, competitionID string) ([]fixture.Fixture, error) {
	fixtures := make([]fixture.Fixture, 0, len(r.items))
	for _, item := range r.items {
		if item.CompetitionID == competitionID {
			fixtures = append(fixtures, item)
		}
	}
	return fixtures, nil
}

func (r *stubFixtureRepository) Create(_ context.Context, item fixture.Fixture) error {
	if r.items == nil {
		r.items = make(map[string]fixture.Fixture)
	}
	r.items[item.ID] = item
	return nil
}

func (r *stubFixtureRepository) Update(_ context.Context, item fixture.Fixture) error {
	if _, ok := r.items[item.ID]; !ok {
		return fmt.Errorf("fixture %s not found", item.ID)
	}
	r.items[item.ID] = item
	return nil
}

type stubEntryRepository struct {
	items   map[string]entry.Entry
	created []entry.Entry
}

func (r *stubEntryRepository) GetByID(_ context.Context, entryID string) (entry.Entry, bool, error) {
	item, ok := r.items[entryID]
	return item, ok, nil
}

func (r *stubEntryRepository) GetByUserAndRound(_ context.Context, userID, roundID string) (entry.Entry, bool, error) {
	for _, item := range r.items {
		if item.UserID == userID && item.RoundID == roundID {
			return item, true, nil
		}
	}
	return entry.Entry{}, false, nil
}

func (r *stubEntryRepository) ListByRound(_ context.Context, roundID string) ([]entry.Entry, error) {
	entries := make([]entry.Entry, 0, len(r.items))
	for _, item := range r.items {
		if item.RoundID == roundID {
			entries = append(entries, item)
		}
	}
	return entries, nil
}

func (r *stubEntryRepository) Create(_ context.Context, item entry.Entry) error {
	if r.items == nil {
		r.items = make(map[string]entry.Entry)
	}
	r.items[item.ID] = item
	r.created = append(r.created, item)
	return nil
}

type stubPickRepository struct {
	items map[string]pick.Pick
}

func (r *stubPickRepository) GetByID(_ context.Context, pickID string) (pick.Pick, bool, error) {
	item, ok := r.items[pickID]
	return item, ok, nil
}

func (r *stubPickRepository) GetByEntryAndGameweek(_ context.Context, entryID, gameweekID string) (pick.Pick, bool, error) {
	for _, item := range r.items {
		if item.EntryID == entryID && item.GameweekID == gameweekID {
			return item, true, nil
		}
	}
	return pick.Pick{}, false, nil
}

func (r *stubPickRepository) ListByGameweek(_ context.Context, gameweekID string) ([]pick.Pick, error) {
	picks := make([]pick.Pick, 0, len(r.items))
	for _, item := range r.items {
		if item.GameweekID == gameweekID {
			picks = append(picks, item)
		}
	}
	return picks, nil
}

func (r *stubPickRepository) ListByEntry(_ context.Context, entryID string) ([]pick.Pick, error) {
	picks := make([]pick.Pick, 0, len(r.items))
	for _, item := range r.items {
		if item.EntryID == entryID {
			picks = append(picks, item)
		}
	}
	return picks, nil
}

func (r *stubPickRepository) ListByCompetitionAndTeam(_ context.Context, _, teamID string) ([]pick.Pick, error) {
	picks := make([]pick.Pick, 0, len(r.items))
	for _, item := range r.items {
		if item.TeamID == teamID {
			picks = append(picks, item)
		}
	}
	return picks, nil
}

func (r *stubPickRepository) Create(_ context.Context, item pick.Pick) error {
	if r.items == nil {
		r.items = make(map[string]pick.Pick)
	}
	r.items[item.ID] = item
	return nil
}

func (r *stubPickRepository) UpdateSelection(_ context.Context, pickID, fixtureID, teamID string) error {
	item, ok := r.items[pickID]
	if !ok {
		return fmt.Errorf("pick %s not found", pickID)
	}
	item.FixtureID = fixtureID
	item.TeamID = teamID
	r.items[pickID] = item
	return nil
}

func (r *stubPickRepository) Delete(_ context.Context, pickID string) error {
	delete(r.items, pickID)
	return nil
}

type stubExactoRepository struct {
	items map[string]exacto.Prediction
}

func (r *stubExactoRepository) GetByEntryAndFixture(_ context.Context, entryID, fixtureID string) (exacto.Prediction, bool, error) {
	for _, item := range r.items {
		if item.EntryID == entryID && item.FixtureID == fixtureID {
			return item, true, nil
		}
	}
	return exacto.Prediction{}, false, nil
}

func (r *stubExactoRepository) ListByGameweek(_ context.Context, gameweekID string) ([]exacto.Prediction, error) {
	predictions := make([]exacto.Prediction, 0, len(r.items))
	for _, item := range r.items {
		if item.GameweekID == gameweekID {
			predictions = append(predictions, item)
		}
	}
	return predictions, nil
}

func (r *stubExactoRepository) Upsert(_ context.Context, item exacto.Prediction) error {
	if r.items == nil {
		r.items = make(map[string]exacto.Prediction)
	}
	r.items[item.ID] = item
	return nil
}

func (r *stubExactoRepository) MarkEvaluated(_ context.Context, predictionID string, isCorrect bool) error {
	item, ok := r.items[predictionID]
	if !ok {
		return fmt.Errorf("prediction %s not found", predictionID)
	}
	item.IsCorrect = &isCorrect
	r.items[predictionID] = item
	return nil
}

type stubWhomstRepository struct {
	items []whomst.Score
}

func (r *stubWhomstRepository) ListByCompetition(_ context.Context, competitionID string) ([]whomst.Score, error) {
	scores := make([]whomst.Score, 0, len(r.items))
	for _, item := range r.items {
		if item.CompetitionID == competitionID {
			scores = append(scores, item)
		}
	}
	return scores, nil
}

func (r *stubWhomstRepository) Upsert(_ context.Context, item whomst.Score) error {
	for i, existing := range r.items {
		if existing.ID == item.ID {
			r.items[i] = item
			return nil
		}
	}
	r.items = append(r.items, item)
	return nil
}

type stubSettlementRepository struct {
	applied []settlement.Result
	err     error
}

func (r *stubSettlementRepository) Apply(_ context.Context, result settlement.Result) error {
	if r.err != nil {
		return r.err
	}
	r.applied = append(r.applied, result)
	return nil
}

type stubTokenIssuer struct {
	token     string
	expiresAt time.Time
	issued    []user.Principal
}

func (i *stubTokenIssuer) Issue(principal user.Principal) (string, time.Time, error) {
	i.issued = append(i.issued, principal)
	return i.token, i.expiresAt, nil
}

type sequenceIDGenerator struct {
	prefix string
	next   int
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	g.next++
	return fmt.Sprintf("%s-%d", g.prefix, g.next), nil
}
