package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/survivorleague/survivor-api/internal/domain/entry"
	qb "github.com/survivorleague/survivor-api/internal/platform/querybuilder"
)

type entryTableModel struct {
	ID                   string `db:"id"`
	UserID               string `db:"user_id"`
	CompetitionID        string `db:"competition_id"`
	RoundID              string `db:"round_id"`
	LivesRemaining       int    `db:"lives_remaining"`
	EliminatedAtGameweek *int   `db:"eliminated_at_gameweek"`
}

type EntryRepository struct {
	db *sqlx.DB
}

func NewEntryRepository(db *sqlx.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

func (r *EntryRepository) GetByID(ctx context.Context, entryID string) (entry.Entry, bool, error) {
	return r.getOne(ctx, qb.Eq("id", entryID))
}

func (r *EntryRepository) GetByUserAndRound(ctx context.Context, userID, roundID string) (entry.Entry, bool, error) {
	return r.getOne(ctx, qb.Eq("user_id", userID), qb.Eq("round_id", roundID))
}

func (r *EntryRepository) getOne(ctx context.Context, conds ...qb.Condition) (entry.Entry, bool, error) {
	query, args, err := qb.Select("*").From("entries").
		Where(conds...).
		ToSQL()
	if err != nil {
		return entry.Entry{}, false, fmt.Errorf("build get entry query: %w", err)
	}

	var row entryTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return entry.Entry{}, false, nil
		}
		return entry.Entry{}, false, fmt.Errorf("get entry: %w", err)
	}

	return entryFromRow(row), true, nil
}

func (r *EntryRepository) ListByRound(ctx context.Context, roundID string) ([]entry.Entry, error) {
	query, args, err := qb.Select("*").From("entries").
		Where(qb.Eq("round_id", roundID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list entries query: %w", err)
	}

	var rows []entryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	out := make([]entry.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, entryFromRow(row))
	}
	return out, nil
}

func (r *EntryRepository) Create(ctx context.Context, item entry.Entry) error {
	query, args, err := qb.InsertModel("entries", entryTableModel{
		ID:                   item.ID,
		UserID:               item.UserID,
		CompetitionID:        item.CompetitionID,
		RoundID:              item.RoundID,
		LivesRemaining:       item.LivesRemaining,
		EliminatedAtGameweek: item.EliminatedAtGameweek,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert entry query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

func entryFromRow(row entryTableModel) entry.Entry {
	return entry.Entry{
		ID:                   row.ID,
		UserID:               row.UserID,
		CompetitionID:        row.CompetitionID,
		RoundID:              row.RoundID,
		LivesRemaining:       row.LivesRemaining,
		EliminatedAtGameweek: row.EliminatedAtGameweek,
	}
}
