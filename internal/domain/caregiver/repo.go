package caregiver

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no profile exists for the given subject.
var ErrNotFound = errors.New("caregiver profile not found")

type Repository interface {
	Get(ctx context.Context, id string) (*Profile, error)
	// Upsert inserts the profile or replaces its mutable fields if one
	// already exists for the subject.
	Upsert(ctx context.Context, p *Profile) error
}
