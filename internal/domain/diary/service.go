package diary

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/acolher/acolher/internal/platform/validation"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateEntry(ctx context.Context, e *Entry) (*Entry, error) {
	if e.ResidentID == uuid.Nil {
		return nil, validation.Required("resident_id")
	}
	if e.Description == "" {
		return nil, validation.Required("description")
	}
	if e.Category == "" {
		e.Category = DefaultCategory
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("create diary entry: %w", err)
	}
	return e, nil
}

func (s *Service) GetEntry(ctx context.Context, id uuid.UUID) (*Entry, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByResident(ctx context.Context, residentID uuid.UUID, limit, offset int) ([]*Entry, int, error) {
	return s.repo.ListByResident(ctx, residentID, limit, offset)
}

// ListAll returns the resident's full diary, newest first.
func (s *Service) ListAll(ctx context.Context, residentID uuid.UUID) ([]*Entry, error) {
	return s.repo.ListAll(ctx, residentID)
}
