package caregiver

import (
	"context"
	"fmt"

	"github.com/acolher/acolher/internal/platform/validation"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetProfile(ctx context.Context, id string) (*Profile, error) {
	if id == "" {
		return nil, validation.Required("id")
	}
	return s.repo.Get(ctx, id)
}

// SaveProfile writes the caller's profile. First save creates it; later
// saves replace the editable fields.
func (s *Service) SaveProfile(ctx context.Context, p *Profile) (*Profile, error) {
	if p.ID == "" {
		return nil, validation.Required("id")
	}
	if p.FullName == "" {
		return nil, validation.Required("full_name")
	}
	if err := s.repo.Upsert(ctx, p); err != nil {
		return nil, fmt.Errorf("save caregiver profile: %w", err)
	}
	return p, nil
}
