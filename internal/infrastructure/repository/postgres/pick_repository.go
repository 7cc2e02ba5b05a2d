package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/survivorleague/survivor-api/internal/domain/pick"
	qb "github.com/survivorleague/survivor-api/internal/platform/querybuilder"
)

type pickTableModel struct {
	ID         string     `db:"id"`
	EntryID    string     `db:"entry_id"`
	GameweekID string     `db:"gameweek_id"`
	FixtureID  string     `db:"fixture_id"`
	TeamID     string     `db:"team_id"`
	Outcome    string     `db:"outcome"`
	SettledAt  *time.Time `db:"settled_at"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
}

type PickRepository struct {
	db *sqlx.DB
}

func NewPickRepository(db *sqlx.DB) *PickRepository {
	return &PickRepository{db: db}
}

func (r *PickRepository) GetByID(ctx context.Context, pickID string) (pick.Pick, bool, error) {
	return r.getOne(ctx, qb.Eq("id", pickID))
}

func (r *PickRepository) GetByEntryAndGameweek(ctx context.Context, entryID, gameweekID string) (pick.Pick, bool, error) {
	return r.getOne(ctx, qb.Eq("entry_id", entryID), qb.Eq("gameweek_id", gameweekID))
}

func (r *PickRepository) getOne(ctx context.Context, conds ...qb.Condition) (pick.Pick, bool, error) {
	query, args, err := qb.Select("*").From("picks").
		Where(conds...).
		ToSQL()
	if err != nil {
		return pick.Pick{}, false, fmt.Errorf("build get pick query: %w", err)
	}

	var row pickTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return pick.Pick{}, false, nil
		}
		return pick.Pick{}, false, fmt.Errorf("get pick: %w", err)
	}

	return pickFromRow(row), true, nil
}

func (r *PickRepository) ListByGameweek(ctx context.Context, gameweekID string) ([]pick.Pick, error) {
	return r.list(ctx, qb.Eq("gameweek_id", gameweekID))
}

func (r *PickRepository) ListByEntry(ctx context.Context, entryID string) ([]pick.Pick, error) {
	return r.list(ctx, qb.Eq("entry_id", entryID))
}

func (r *PickRepository) ListByCompetitionAndTeam(ctx context.Context, competitionID, teamID string) ([]pick.Pick, error) {
	return r.list(ctx,
		qb.Eq("team_id", teamID),
		qb.Expr("gameweek_id IN (SELECT id FROM gameweeks WHERE competition_id = ?)", competitionID),
	)
}

func (r *PickRepository) list(ctx context.Context, conds ...qb.Condition) ([]pick.Pick, error) {
	query, args, err := qb.Select("*").From("picks").
		Where(conds...).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list picks query: %w", err)
	}

	var rows []pickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list picks: %w", err)
	}

	out := make([]pick.Pick, 0, len(rows))
	for _, row := range rows {
		out = append(out, pickFromRow(row))
	}
	return out, nil
}

func (r *PickRepository) Create(ctx context.Context, item pick.Pick) error {
	query, args, err := qb.InsertModel("picks", pickTableModel{
		ID:         item.ID,
		EntryID:    item.EntryID,
		GameweekID: item.GameweekID,
		FixtureID:  item.FixtureID,
		TeamID:     item.TeamID,
		Outcome:    item.Outcome,
		SettledAt:  item.SettledAt,
		CreatedAt:  item.CreatedAt,
		UpdatedAt:  item.UpdatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert pick query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert pick: %w", err)
	}
	return nil
}

func (r *PickRepository) UpdateSelection(ctx context.Context, pickID, fixtureID, teamID string) error {
	query, args, err := qb.Update("picks").
		Set("fixture_id", fixtureID).
		Set("team_id", teamID).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", pickID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update pick selection query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update pick selection: %w", err)
	}
	return nil
}

func (r *PickRepository) Delete(ctx context.Context, pickID string) error {
	query, args, err := qb.DeleteFrom("picks").
		Where(qb.Eq("id", pickID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete pick query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete pick: %w", err)
	}
	return nil
}

func pickFromRow(row pickTableModel) pick.Pick {
	return pick.Pick{
		ID:         row.ID,
		EntryID:    row.EntryID,
		GameweekID: row.GameweekID,
		FixtureID:  row.FixtureID,
		TeamID:     row.TeamID,
		Outcome:    row.Outcome,
		SettledAt:  row.SettledAt,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}
