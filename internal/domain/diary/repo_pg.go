package diary

import (
	"context"
	"errors"

	"github.com/google/uuid"
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

type diaryRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &diaryRepoPG{pool: pool}
}

func (r *diaryRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const entryCols = `id, resident_id, category, description, created_at`

func (r *diaryRepoPG) scanEntry(row pgx.Row) (*Entry, error) {
	var e Entry
	err := row.Scan(&e.ID, &e.ResidentID, &e.Category, &e.Description, &e.CreatedAt)
	return &e, err
}

func (r *diaryRepoPG) Create(ctx context.Context, e *Entry) error {
	e.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO diary_entries (id, resident_id, category, description)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at`,
		e.ID, e.ResidentID, e.Category, e.Description).Scan(&e.CreatedAt)
}

func (r *diaryRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Entry, error) {
	e, err := r.scanEntry(r.conn(ctx).QueryRow(ctx, `SELECT `+entryCols+` FROM diary_entries WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *diaryRepoPG) ListByResident(ctx context.Context, residentID uuid.UUID, limit, offset int) ([]*Entry, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM diary_entries WHERE resident_id = $1`, residentID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+entryCols+` FROM diary_entries
		WHERE resident_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, residentID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Entry
	for rows.Next() {
		e, err := r.scanEntry(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, e)
	}
	return items, total, nil
}

func (r *diaryRepoPG) ListAll(ctx context.Context, residentID uuid.UUID) ([]*Entry, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+entryCols+` FROM diary_entries
		WHERE resident_id = $1 ORDER BY created_at DESC`, residentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Entry
	for rows.Next() {
		e, err := r.scanEntry(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, nil
}
