package prescription

import (
	"context"
	"errors"
	"time"

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

type prescriptionRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &prescriptionRepoPG{pool: pool}
}

func (r *prescriptionRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const prescriptionCols = `id, resident_id, name, time, dosage, start_date, end_date,
	status, administered_at, created_at, updated_at`

func (r *prescriptionRepoPG) scanPrescription(row pgx.Row) (*Prescription, error) {
	var p Prescription
	err := row.Scan(&p.ID, &p.ResidentID, &p.Name, &p.TimeOfDay, &p.Dosage, &p.StartDate, &p.EndDate,
		&p.Status, &p.AdministeredAt, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *prescriptionRepoPG) Create(ctx context.Context, p *Prescription) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO prescriptions (id, resident_id, name, time, dosage, start_date, end_date, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		p.ID, p.ResidentID, p.Name, p.TimeOfDay, p.Dosage, p.StartDate, p.EndDate, p.Status)
	return err
}

func (r *prescriptionRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	p, err := r.scanPrescription(r.conn(ctx).QueryRow(ctx, `SELECT `+prescriptionCols+` FROM prescriptions WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *prescriptionRepoPG) Update(ctx context.Context, p *Prescription) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE prescriptions SET name=$2, time=$3, dosage=$4, start_date=$5, end_date=$6, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.Name, p.TimeOfDay, p.Dosage, p.StartDate, p.EndDate)
	return err
}

func (r *prescriptionRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM prescriptions WHERE id = $1`, id)
	return err
}

func (r *prescriptionRepoPG) ListByResident(ctx context.Context, residentID uuid.UUID, limit, offset int) ([]*Prescription, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM prescriptions WHERE resident_id = $1`, residentID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+prescriptionCols+` FROM prescriptions WHERE resident_id = $1 ORDER BY time, created_at LIMIT $2 OFFSET $3`, residentID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Prescription
	for rows.Next() {
		p, err := r.scanPrescription(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, nil
}

func (r *prescriptionRepoPG) ListAdministered(ctx context.Context, residentID uuid.UUID) ([]*Prescription, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+prescriptionCols+` FROM prescriptions
		WHERE resident_id = $1 AND status = 'administered' AND administered_at IS NOT NULL
		ORDER BY administered_at DESC`, residentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Prescription
	for rows.Next() {
		p, err := r.scanPrescription(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, nil
}

// ConfirmAdministration relies on the WHERE clause to make the transition
// atomic: a row already in the terminal state matches nothing and the update
// writes nothing. The losing path re-reads to tell "gone" from "already done";
// both statements run on one transaction so the re-read sees the winner's row.
func (r *prescriptionRepoPG) ConfirmAdministration(ctx context.Context, id uuid.UUID, at time.Time) (*Prescription, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)
	ctx = db.WithTx(ctx, tx)

	row := r.conn(ctx).QueryRow(ctx, `
		UPDATE prescriptions SET status='administered', administered_at=$2, updated_at=NOW()
		WHERE id = $1 AND status <> 'administered'
		RETURNING `+prescriptionCols, id, at)
	p, err := r.scanPrescription(row)
	if err == nil {
		if err := tx.Commit(ctx); err != nil {
			return nil, err
		}
		return p, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	existing, getErr := r.GetByID(ctx, id)
	if getErr != nil {
		return nil, getErr
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return existing, ErrAlreadyAdministered
}
