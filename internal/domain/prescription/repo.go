package prescription

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no prescription exists for the given id.
	ErrNotFound = errors.New("prescription not found")
	// ErrAlreadyAdministered is returned when a confirmation targets a
	// prescription that is already in its terminal state. The store is left
	// untouched; callers treat it as a no-op.
	ErrAlreadyAdministered = errors.New("prescription already administered")
)

type Repository interface {
	Create(ctx context.Context, p *Prescription) error
	GetByID(ctx context.Context, id uuid.UUID) (*Prescription, error)
	Update(ctx context.Context, p *Prescription) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByResident(ctx context.Context, residentID uuid.UUID, limit, offset int) ([]*Prescription, int, error)
	ListAdministered(ctx context.Context, residentID uuid.UUID) ([]*Prescription, error)
	// ConfirmAdministration transitions the prescription to administered in a
	// single conditional update. Exactly one concurrent caller wins; losers
	// get the stored record and ErrAlreadyAdministered.
	ConfirmAdministration(ctx context.Context, id uuid.UUID, at time.Time) (*Prescription, error)
}
