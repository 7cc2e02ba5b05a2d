package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/survivorleague/survivor-api/internal/domain/settlement"
	qb "github.com/survivorleague/survivor-api/internal/platform/querybuilder"
)

// SettlementRepository applies a computed settlement in a single transaction
// so a crash mid-settlement never leaves a gameweek half-applied.
type SettlementRepository struct {
	db *sqlx.DB
}

func NewSettlementRepository(db *sqlx.DB) *SettlementRepository {
	return &SettlementRepository{db: db}
}

func (r *SettlementRepository) Apply(ctx context.Context, result settlement.Result) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return crerr.Wrap(err, "begin settlement transaction")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, p := range result.Picks {
		query, args, err := qb.Update("picks").
			Set("outcome", p.Outcome).
			Set("settled_at", result.SettledAt).
			Set("updated_at", result.SettledAt).
			Where(qb.Eq("id", p.PickID)).
			ToSQL()
		if err != nil {
			return crerr.Wrap(err, "build settle pick query")
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return crerr.Wrapf(err, "settle pick %s", p.PickID)
		}
	}

	for _, e := range result.Entries {
		builder := qb.Update("entries").
			Set("lives_remaining", e.LivesRemaining).
			Where(qb.Eq("id", e.EntryID))
		if e.EliminatedAtGameweek != nil {
			builder = builder.Set("eliminated_at_gameweek", *e.EliminatedAtGameweek)
		}
		query, args, err := builder.ToSQL()
		if err != nil {
			return crerr.Wrap(err, "build settle entry query")
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return crerr.Wrapf(err, "settle entry %s", e.EntryID)
		}
	}

	for _, x := range result.Exactos {
		query, args, err := qb.Update("exacto_predictions").
			Set("is_correct", x.IsCorrect).
			Where(qb.Eq("id", x.PredictionID)).
			ToSQL()
		if err != nil {
			return crerr.Wrap(err, "build settle exacto query")
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return crerr.Wrapf(err, "settle exacto %s", x.PredictionID)
		}
	}

	// Flipping is_settled only when still unsettled makes concurrent
	// settlements of the same gameweek collapse to one winner.
	query, args, err := qb.Update("gameweeks").
		Set("is_settled", true).
		Set("settled_at", result.SettledAt).
		Where(
			qb.Eq("id", result.GameweekID),
			qb.Eq("is_settled", false),
		).
		ToSQL()
	if err != nil {
		return crerr.Wrap(err, "build settle gameweek query")
	}
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return crerr.Wrapf(err, "settle gameweek %s", result.GameweekID)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return crerr.Wrapf(err, "settle gameweek %s rows affected", result.GameweekID)
	}
	if affected == 0 {
		return crerr.Newf("settle gameweek %s: already settled", result.GameweekID)
	}

	if err := tx.Commit(); err != nil {
		return crerr.Wrap(err, "commit settlement transaction")
	}
	return nil
}
