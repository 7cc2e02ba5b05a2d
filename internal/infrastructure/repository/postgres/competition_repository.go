package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/survivorleague/survivor-api/internal/domain/competition"
	qb "github.com/survivorleague/survivor-api/internal/platform/querybuilder"
)

type competitionTableModel struct {
	ID            string `db:"id"`
	Name          string `db:"name"`
	Season        string `db:"season"`
	InviteCode    string `db:"invite_code"`
	LivesPerRound int    `db:"lives_per_round"`
}

type roundTableModel struct {
	ID            string     `db:"id"`
	CompetitionID string     `db:"competition_id"`
	RoundNumber   int        `db:"round_number"`
	StartedAt     time.Time  `db:"started_at"`
	EndedAt       *time.Time `db:"ended_at"`
}

type CompetitionRepository struct {
	db *sqlx.DB
}

func NewCompetitionRepository(db *sqlx.DB) *CompetitionRepository {
	return &CompetitionRepository{db: db}
}

func (r *CompetitionRepository) GetByID(ctx context.Context, competitionID string) (competition.Competition, bool, error) {
	return r.getOne(ctx, qb.Eq("id", competitionID))
}

func (r *CompetitionRepository) GetByInviteCode(ctx context.Context, inviteCode string) (competition.Competition, bool, error) {
	return r.getOne(ctx, qb.Eq("invite_code", inviteCode))
}

func (r *CompetitionRepository) getOne(ctx context.Context, cond qb.Condition) (competition.Competition, bool, error) {
	query, args, err := qb.Select("*").From("competitions").
		Where(cond).
		ToSQL()
	if err != nil {
		return competition.Competition{}, false, fmt.Errorf("build get competition query: %w", err)
	}

	var row competitionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return competition.Competition{}, false, nil
		}
		return competition.Competition{}, false, fmt.Errorf("get competition: %w", err)
	}

	return competitionFromRow(row), true, nil
}

func (r *CompetitionRepository) GetRound(ctx context.Context, competitionID string, roundNumber int) (competition.Round, bool, error) {
	query, args, err := qb.Select("*").From("rounds").
		Where(
			qb.Eq("competition_id", competitionID),
			qb.Eq("round_number", roundNumber),
		).
		ToSQL()
	if err != nil {
		return competition.Round{}, false, fmt.Errorf("build get round query: %w", err)
	}

	var row roundTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return competition.Round{}, false, nil
		}
		return competition.Round{}, false, fmt.Errorf("get round: %w", err)
	}

	return roundFromRow(row), true, nil
}

func (r *CompetitionRepository) ListRounds(ctx context.Context, competitionID string) ([]competition.Round, error) {
	query, args, err := qb.Select("*").From("rounds").
		Where(qb.Eq("competition_id", competitionID)).
		OrderBy("round_number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list rounds query: %w", err)
	}

	var rows []roundTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list rounds: %w", err)
	}

	out := make([]competition.Round, 0, len(rows))
	for _, row := range rows {
		out = append(out, roundFromRow(row))
	}
	return out, nil
}

func competitionFromRow(row competitionTableModel) competition.Competition {
	return competition.Competition{
		ID:            row.ID,
		Name:          row.Name,
		Season:        row.Season,
		InviteCode:    row.InviteCode,
		LivesPerRound: row.LivesPerRound,
	}
}

func roundFromRow(row roundTableModel) competition.Round {
	return competition.Round{
		ID:            row.ID,
		CompetitionID: row.CompetitionID,
		RoundNumber:   row.RoundNumber,
		StartedAt:     row.StartedAt,
		EndedAt:       row.EndedAt,
	}
}
