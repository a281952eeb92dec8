package resident

import (
	"context"
	"errors"
	"strings"

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

type residentRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &residentRepoPG{pool: pool}
}

func (r *residentRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const residentCols = `id, name, birth_date, location, sus_card, blood_type, allergies, photo_url,
	status, is_active, created_at, updated_at`

func (r *residentRepoPG) scanResident(row pgx.Row) (*Resident, error) {
	var res Resident
	err := row.Scan(&res.ID, &res.Name, &res.BirthDate, &res.Location, &res.SUSCard, &res.BloodType,
		&res.Allergies, &res.PhotoURL, &res.Status, &res.IsActive, &res.CreatedAt, &res.UpdatedAt)
	return &res, err
}

func (r *residentRepoPG) Create(ctx context.Context, res *Resident) error {
	res.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO residents (id, name, birth_date, location, sus_card, blood_type, allergies, photo_url, status, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		res.ID, res.Name, res.BirthDate, res.Location, res.SUSCard, res.BloodType, res.Allergies, res.PhotoURL, res.Status, res.IsActive)
	return err
}

func (r *residentRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Resident, error) {
	res, err := r.scanResident(r.conn(ctx).QueryRow(ctx, `SELECT `+residentCols+` FROM residents WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (r *residentRepoPG) Update(ctx context.Context, res *Resident) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE residents SET name=$2, birth_date=$3, location=$4, sus_card=$5, blood_type=$6,
			allergies=$7, photo_url=$8, updated_at=NOW()
		WHERE id = $1`,
		res.ID, res.Name, res.BirthDate, res.Location, res.SUSCard, res.BloodType, res.Allergies, res.PhotoURL)
	return err
}

func (r *residentRepoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	tag, err := r.conn(ctx).Exec(ctx, `UPDATE residents SET status=$2, updated_at=NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *residentRepoPG) Deactivate(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `UPDATE residents SET is_active=false, updated_at=NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// escapeLike neutralizes ILIKE metacharacters in a search term so that a
// name containing % or _ matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *residentRepoPG) List(ctx context.Context, name string, includeInactive bool, limit, offset int) ([]*Resident, int, error) {
	const filter = ` WHERE ($1 = '' OR name ILIKE '%' || $1 || '%') AND (is_active OR $2)`
	name = escapeLike(name)
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM residents`+filter, name, includeInactive).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+residentCols+` FROM residents`+filter+` ORDER BY name LIMIT $3 OFFSET $4`,
		name, includeInactive, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Resident
	for rows.Next() {
		res, err := r.scanResident(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, res)
	}
	return items, total, nil
}
