package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/survivorleague/survivor-api/internal/domain/fixture"
	qb "github.com/survivorleague/survivor-api/internal/platform/querybuilder"
)

type fixtureTableModel struct {
	ID            string    `db:"id"`
	CompetitionID string    `db:"competition_id"`
	GameweekID    string    `db:"gameweek_id"`
	HomeTeamID    string    `db:"home_team_id"`
	AwayTeamID    string    `db:"away_team_id"`
	HomeTeamName  string    `db:"home_team_name"`
	AwayTeamName  string    `db:"away_team_name"`
	KickoffAt     time.Time `db:"kickoff_at"`
	Status        string    `db:"status"`
	HomeGoals     *int      `db:"home_goals"`
	AwayGoals     *int      `db:"away_goals"`
}

type FixtureRepository struct {
	db *sqlx.DB
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

func (r *FixtureRepository) GetByID(ctx context.Context, fixtureID string) (fixture.Fixture, bool, error) {
	query, args, err := qb.Select("*").From("fixtures").
		Where(qb.Eq("id", fixtureID)).
		ToSQL()
	if err != nil {
		return fixture.Fixture{}, false, fmt.Errorf("build get fixture query: %w", err)
	}

	var row fixtureTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fixture.Fixture{}, false, nil
		}
		return fixture.Fixture{}, false, fmt.Errorf("get fixture: %w", err)
	}

	return fixtureFromRow(row), true, nil
}

func (r *FixtureRepository) ListByGameweek(ctx context.Context, gameweekID string) ([]fixture.Fixture, error) {
	return r.list(ctx, qb.Eq("gameweek_id", gameweekID))
}

func (r *FixtureRepository) ListByCompetition(ctx context.Context, competitionID string) ([]fixture.Fixture, error) {
	return r.list(ctx, qb.Eq("competition_id", competitionID))
}

func (r *FixtureRepository) list(ctx context.Context, cond qb.Condition) ([]fixture.Fixture, error) {
	query, args, err := qb.Select("*").From("fixtures").
		Where(cond).
		OrderBy("kickoff_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list fixtures query: %w", err)
	}

	var rows []fixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list fixtures: %w", err)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, fixtureFromRow(row))
	}
	return out, nil
}

func (r *FixtureRepository) Create(ctx context.Context, item fixture.Fixture) error {
	query, args, err := qb.InsertModel("fixtures", fixtureToRow(item), "")
	if err != nil {
		return fmt.Errorf("build insert fixture query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert fixture: %w", err)
	}
	return nil
}

func (r *FixtureRepository) Update(ctx context.Context, item fixture.Fixture) error {
	query, args, err := qb.Update("fixtures").
		Set("gameweek_id", item.GameweekID).
		Set("home_team_id", item.HomeTeamID).
		Set("away_team_id", item.AwayTeamID).
		Set("home_team_name", item.HomeTeamName).
		Set("away_team_name", item.AwayTeamName).
		Set("kickoff_at", item.KickoffAt).
		Set("status", item.Status).
		Set("home_goals", item.HomeGoals).
		Set("away_goals", item.AwayGoals).
		Where(qb.Eq("id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update fixture query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update fixture: %w", err)
	}
	return nil
}

func fixtureToRow(item fixture.Fixture) fixtureTableModel {
	return fixtureTableModel{
		ID:            item.ID,
		CompetitionID: item.CompetitionID,
		GameweekID:    item.GameweekID,
		HomeTeamID:    item.HomeTeamID,
		AwayTeamID:    item.AwayTeamID,
		HomeTeamName:  item.HomeTeamName,
		AwayTeamName:  item.AwayTeamName,
		KickoffAt:     item.KickoffAt,
		Status:        item.Status,
		HomeGoals:     item.HomeGoals,
		AwayGoals:     item.AwayGoals,
	}
}

func fixtureFromRow(row fixtureTableModel) fixture.Fixture {
	return fixture.Fixture{
		ID:            row.ID,
		CompetitionID: row.CompetitionID,
		GameweekID:    row.GameweekID,
		HomeTeamID:    row.HomeTeamID,
		AwayTeamID:    row.AwayTeamID,
		HomeTeamName:  row.HomeTeamName,
		AwayTeamName:  row.AwayTeamName,
		KickoffAt:     row.KickoffAt,
		Status:        row.Status,
		HomeGoals:     row.HomeGoals,
		AwayGoals:     row.AwayGoals,
	}
}
