package diary

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no diary entry exists for the given id.
var ErrNotFound = errors.New("diary entry not found")

type Repository interface {
	Create(ctx context.Context, e *Entry) error
	GetByID(ctx context.Context, id uuid.UUID) (*Entry, error)
	ListByResident(ctx context.Context, residentID uuid.UUID, limit, offset int) ([]*Entry, int, error)
	// ListAll returns every entry for a resident, newest first. The timeline
	// builder needs the full history, not a page of it.
	ListAll(ctx context.Context, residentID uuid.UUID) ([]*Entry, error)
}
