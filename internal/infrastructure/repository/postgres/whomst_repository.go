package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/survivorleague/survivor-api/internal/domain/whomst"
	qb "github.com/survivorleague/survivor-api/internal/platform/querybuilder"
)

type whomstScoreTableModel struct {
	ID            string `db:"id"`
	EntryID       string `db:"entry_id"`
	CompetitionID string `db:"competition_id"`
	GameType      string `db:"game_type"`
	Score         int    `db:"score"`
}

type WhomstRepository struct {
	db *sqlx.DB
}

func NewWhomstRepository(db *sqlx.DB) *WhomstRepository {
	return &WhomstRepository{db: db}
}

func (r *WhomstRepository) ListByCompetition(ctx context.Context, competitionID string) ([]whomst.Score, error) {
	query, args, err := qb.Select("*").From("whomst_scores").
		Where(qb.Eq("competition_id", competitionID)).
		OrderBy("score DESC", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list whomst scores query: %w", err)
	}

	var rows []whomstScoreTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list whomst scores: %w", err)
	}

	out := make([]whomst.Score, 0, len(rows))
	for _, row := range rows {
		out = append(out, whomstScoreFromRow(row))
	}
	return out, nil
}

func (r *WhomstRepository) Upsert(ctx context.Context, item whomst.Score) error {
	query, args, err := qb.InsertModel("whomst_scores", whomstScoreTableModel{
		ID:            item.ID,
		EntryID:       item.EntryID,
		CompetitionID: item.CompetitionID,
		GameType:      item.GameType,
		Score:         item.Score,
	}, `ON CONFLICT (entry_id, game_type)
DO UPDATE SET score = EXCLUDED.score`)
	if err != nil {
		return fmt.Errorf("build upsert whomst score query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert whomst score: %w", err)
	}
	return nil
}

func whomstScoreFromRow(row whomstScoreTableModel) whomst.Score {
	return whomst.Score{
		ID:            row.ID,
		EntryID:       row.EntryID,
		CompetitionID: row.CompetitionID,
		GameType:      row.GameType,
		Score:         row.Score,
	}
}
