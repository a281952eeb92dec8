package resident

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no resident exists for the given id.
var ErrNotFound = errors.New("resident not found")

type Repository interface {
	Create(ctx context.Context, r *Resident) error
	GetByID(ctx context.Context, id uuid.UUID) (*Resident, error)
	Update(ctx context.Context, r *Resident) error
	// UpdateStatus writes the semaphore value without touching the rest of
	// the record.
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, name string, includeInactive bool, limit, offset int) ([]*Resident, int, error)
}
