package caregiver

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acolher/acolher/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type caregiverRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &caregiverRepoPG{pool: pool}
}

func (r *caregiverRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *caregiverRepoPG) Get(ctx context.Context, id string) (*Profile, error) {
	var p Profile
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT id, full_name, unit, shift, created_at, updated_at
		FROM caregiver_profiles WHERE id = $1`, id).
		Scan(&p.ID, &p.FullName, &p.Unit, &p.Shift, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *caregiverRepoPG) Upsert(ctx context.Context, p *Profile) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO caregiver_profiles (id, full_name, unit, shift)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			unit = EXCLUDED.unit,
			shift = EXCLUDED.shift,
			updated_at = NOW()
		RETURNING created_at, updated_at`,
		p.ID, p.FullName, p.Unit, p.Shift).Scan(&p.CreatedAt, &p.UpdatedAt)
}
