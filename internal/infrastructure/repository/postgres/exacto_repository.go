package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/survivorleague/survivor-api/internal/domain/exacto"
	qb "github.com/survivorleague/survivor-api/internal/platform/querybuilder"
)

type exactoTableModel struct {
	ID         string `db:"id"`
	EntryID    string `db:"entry_id"`
	GameweekID string `db:"gameweek_id"`
	FixtureID  string `db:"fixture_id"`
	HomeGoals  int    `db:"home_goals"`
	AwayGoals  int    `db:"away_goals"`
	IsCorrect  *bool  `db:"is_correct"`
}

type ExactoRepository struct {
	db *sqlx.DB
}

func NewExactoRepository(db *sqlx.DB) *ExactoRepository {
	return &ExactoRepository{db: db}
}

func (r *ExactoRepository) GetByEntryAndFixture(ctx context.Context, entryID, fixtureID string) (exacto.Prediction, bool, error) {
	query, args, err := qb.Select("*").From("exacto_predictions").
		Where(
			qb.Eq("entry_id", entryID),
			qb.Eq("fixture_id", fixtureID),
		).
		ToSQL()
	if err != nil {
		return exacto.Prediction{}, false, fmt.Errorf("build get exacto prediction query: %w", err)
	}

	var row exactoTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return exacto.Prediction{}, false, nil
		}
		return exacto.Prediction{}, false, fmt.Errorf("get exacto prediction: %w", err)
	}

	return exactoFromRow(row), true, nil
}

func (r *ExactoRepository) ListByGameweek(ctx context.Context, gameweekID string) ([]exacto.Prediction, error) {
	query, args, err := qb.Select("*").From("exacto_predictions").
		Where(qb.Eq("gameweek_id", gameweekID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list exacto predictions query: %w", err)
	}

	var rows []exactoTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list exacto predictions: %w", err)
	}

	out := make([]exacto.Prediction, 0, len(rows))
	for _, row := range rows {
		out = append(out, exactoFromRow(row))
	}
	return out, nil
}

func (r *ExactoRepository) Upsert(ctx context.Context, item exacto.Prediction) error {
	query, args, err := qb.InsertModel("exacto_predictions", exactoTableModel{
		ID:         item.ID,
		EntryID:    item.EntryID,
		GameweekID: item.GameweekID,
		FixtureID:  item.FixtureID,
		HomeGoals:  item.HomeGoals,
		AwayGoals:  item.AwayGoals,
		IsCorrect:  item.IsCorrect,
	}, `ON CONFLICT (entry_id, fixture_id)
DO UPDATE SET
    home_goals = EXCLUDED.home_goals,
    away_goals = EXCLUDED.away_goals,
    is_correct = EXCLUDED.is_correct`)
	if err != nil {
		return fmt.Errorf("build upsert exacto prediction query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert exacto prediction: %w", err)
	}
	return nil
}

func (r *ExactoRepository) MarkEvaluated(ctx context.Context, predictionID string, isCorrect bool) error {
	query, args, err := qb.Update("exacto_predictions").
		Set("is_correct", isCorrect).
		Where(qb.Eq("id", predictionID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build mark exacto prediction query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("mark exacto prediction: %w", err)
	}
	return nil
}

func exactoFromRow(row exactoTableModel) exacto.Prediction {
	return exacto.Prediction{
		ID:         row.ID,
		EntryID:    row.EntryID,
		GameweekID: row.GameweekID,
		FixtureID:  row.FixtureID,
		HomeGoals:  row.HomeGoals,
		AwayGoals:  row.AwayGoals,
		IsCorrect:  row.IsCorrect,
	}
}
