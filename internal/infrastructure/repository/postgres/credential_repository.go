package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/survivorleague/survivor-api/internal/domain/credential"
	qb "github.com/survivorleague/survivor-api/internal/platform/querybuilder"
)

type accessCodeTableModel struct {
	ID        string     `db:"id"`
	CodeHash  string     `db:"code_hash"`
	Email     string     `db:"email"`
	Name      string     `db:"name"`
	Role      string     `db:"role"`
	IssuedAt  time.Time  `db:"issued_at"`
	RotatedAt *time.Time `db:"rotated_at"`
}

type CredentialRepository struct {
	db *sqlx.DB
}

func NewCredentialRepository(db *sqlx.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

func (r *CredentialRepository) GetByCodeHash(ctx context.Context, codeHash string) (credential.AccessCode, bool, error) {
	return r.getOne(ctx, qb.Eq("code_hash", codeHash))
}

func (r *CredentialRepository) GetByEmail(ctx context.Context, email string) (credential.AccessCode, bool, error) {
	return r.getOne(ctx, qb.Eq("email", email))
}

func (r *CredentialRepository) getOne(ctx context.Context, cond qb.Condition) (credential.AccessCode, bool, error) {
	query, args, err := qb.Select("*").From("access_codes").
		Where(cond).
		ToSQL()
	if err != nil {
		return credential.AccessCode{}, false, fmt.Errorf("build get access code query: %w", err)
	}

	var row accessCodeTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return credential.AccessCode{}, false, nil
		}
		return credential.AccessCode{}, false, fmt.Errorf("get access code: %w", err)
	}

	return accessCodeFromRow(row), true, nil
}

func (r *CredentialRepository) Upsert(ctx context.Context, item credential.AccessCode) error {
	query, args, err := qb.InsertModel("access_codes", accessCodeTableModel{
		ID:        item.ID,
		CodeHash:  item.CodeHash,
		Email:     item.Email,
		Name:      item.Name,
		Role:      item.Role,
		IssuedAt:  item.IssuedAt,
		RotatedAt: item.RotatedAt,
	}, `ON CONFLICT (id)
DO UPDATE SET
    code_hash = EXCLUDED.code_hash,
    email = EXCLUDED.email,
    name = EXCLUDED.name,
    role = EXCLUDED.role,
    rotated_at = EXCLUDED.rotated_at`)
	if err != nil {
		return fmt.Errorf("build upsert access code query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert access code: %w", err)
	}
	return nil
}

func accessCodeFromRow(row accessCodeTableModel) credential.AccessCode {
	return credential.AccessCode{
		ID:        row.ID,
		CodeHash:  row.CodeHash,
		Email:     row.Email,
		Name:      row.Name,
		Role:      row.Role,
		IssuedAt:  row.IssuedAt,
		RotatedAt: row.RotatedAt,
	}
}
