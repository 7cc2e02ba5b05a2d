package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/survivorleague/survivor-api/internal/domain/gameweek"
	qb "github.com/survivorleague/survivor-api/internal/platform/querybuilder"
)

type gameweekTableModel struct {
	ID            string     `db:"id"`
	CompetitionID string     `db:"competition_id"`
	Number        int        `db:"number"`
	LockAt        time.Time  `db:"lock_at"`
	IsSettled     bool       `db:"is_settled"`
	SettledAt     *time.Time `db:"settled_at"`
}

type GameweekRepository struct {
	db *sqlx.DB
}

func NewGameweekRepository(db *sqlx.DB) *GameweekRepository {
	return &GameweekRepository{db: db}
}

func (r *GameweekRepository) GetByID(ctx context.Context, gameweekID string) (gameweek.Gameweek, bool, error) {
	query, args, err := qb.Select("*").From("gameweeks").
		Where(qb.Eq("id", gameweekID)).
		ToSQL()
	if err != nil {
		return gameweek.Gameweek{}, false, fmt.Errorf("build get gameweek query: %w", err)
	}

	var row gameweekTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return gameweek.Gameweek{}, false, nil
		}
		return gameweek.Gameweek{}, false, fmt.Errorf("get gameweek: %w", err)
	}

	return gameweekFromRow(row), true, nil
}

func (r *GameweekRepository) ListByCompetition(ctx context.Context, competitionID string) ([]gameweek.Gameweek, error) {
	query, args, err := qb.Select("*").From("gameweeks").
		Where(qb.Eq("competition_id", competitionID)).
		OrderBy("number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list gameweeks query: %w", err)
	}

	var rows []gameweekTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list gameweeks: %w", err)
	}

	out := make([]gameweek.Gameweek, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameweekFromRow(row))
	}
	return out, nil
}

func (r *GameweekRepository) UpdateLockAt(ctx context.Context, gameweekID string, lockAt time.Time) error {
	query, args, err := qb.Update("gameweeks").
		Set("lock_at", lockAt).
		Where(qb.Eq("id", gameweekID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update gameweek lock query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update gameweek lock: %w", err)
	}
	return nil
}

func gameweekFromRow(row gameweekTableModel) gameweek.Gameweek {
	return gameweek.Gameweek{
		ID:            row.ID,
		CompetitionID: row.CompetitionID,
		Number:        row.Number,
		LockAt:        row.LockAt,
		IsSettled:     row.IsSettled,
		SettledAt:     row.SettledAt,
	}
}
