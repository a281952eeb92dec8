package resident

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

func (s *Service) CreateResident(ctx context.Context, r *Resident) (*Resident, error) {
	if r.Name == "" {
		return nil, validation.Required("name")
	}
	if r.BirthDate.IsZero() {
		return nil, validation.Required("birth_date")
	}
	if r.Location == "" {
		return nil, validation.Required("location")
	}
	if r.SUSCard == "" {
		return nil, validation.Required("sus_card")
	}
	if !ValidBloodTypes[r.BloodType] {
		return nil, validation.Invalid("blood_type", "must be one of A+, A-, B+, B-, AB+, AB-, O+, O-")
	}

	// Every resident starts on the green semaphore.
	r.Status = StatusGreen
	r.IsActive = true
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("create resident: %w", err)
	}
	return r, nil
}

func (s *Service) GetResident(ctx context.Context, id uuid.UUID) (*Resident, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListResidents(ctx context.Context, name string, includeInactive bool, limit, offset int) ([]*Resident, int, error) {
	return s.repo.List(ctx, name, includeInactive, limit, offset)
}

func (s *Service) UpdateResident(ctx context.Context, r *Resident) (*Resident, error) {
	existing, err := s.repo.GetByID(ctx, r.ID)
	if err != nil {
		return nil, err
	}
	if r.Name == "" {
		return nil, validation.Required("name")
	}
	if r.BirthDate.IsZero() {
		r.BirthDate = existing.BirthDate
	}
	if r.Location == "" {
		r.Location = existing.Location
	}
	if r.SUSCard == "" {
		r.SUSCard = existing.SUSCard
	}
	if r.BloodType == "" {
		r.BloodType = existing.BloodType
	}
	if !ValidBloodTypes[r.BloodType] {
		return nil, validation.Invalid("blood_type", "must be one of A+, A-, B+, B-, AB+, AB-, O+, O-")
	}
	if r.Allergies == "" {
		r.Allergies = existing.Allergies
	}
	if r.PhotoURL == "" {
		r.PhotoURL = existing.PhotoURL
	}
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, fmt.Errorf("update resident: %w", err)
	}
	return s.repo.GetByID(ctx, r.ID)
}

// SetStatus overrides the semaphore by hand. Coordinators use this to raise
// attention outside the automatic confirmation flow.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, status Status) (*Resident, error) {
	if !ValidStatuses[status] {
		return nil, validation.Invalid("status", "must be one of green, yellow, red")
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// DeactivateResident marks a resident inactive. The record stays in the store
// so the timeline keeps its history.
func (s *Service) DeactivateResident(ctx context.Context, id uuid.UUID) error {
	return s.repo.Deactivate(ctx, id)
}
