package prescription

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/acolher/acolher/internal/platform/validation"
)

// Service owns prescription lifecycle rules: creation validation, the late
// projection applied to reads, and publishing administration events to the
// registered listeners.
type Service struct {
	repo      Repository
	listeners []AdministrationListener
	now       func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// AddListener registers a listener for administration events. Not safe to
// call after the service starts handling requests.
func (s *Service) AddListener(l AdministrationListener) {
	s.listeners = append(s.listeners, l)
}

func (s *Service) CreatePrescription(ctx context.Context, p *Prescription) (*Prescription, error) {
	if p.ResidentID == uuid.Nil {
		return nil, validation.Required("resident_id")
	}
	if p.Name == "" {
		return nil, validation.Required("name")
	}
	if p.Dosage == "" {
		return nil, validation.Required("dosage")
	}
	if p.TimeOfDay == "" {
		return nil, validation.Required("time")
	}
	if _, err := time.Parse(TimeLayout, p.TimeOfDay); err != nil {
		return nil, validation.Invalid("time", "must be in HH:MM format")
	}
	if p.StartDate.IsZero() {
		return nil, validation.Required("start_date")
	}
	if p.EndDate.IsZero() {
		return nil, validation.Required("end_date")
	}
	if p.EndDate.Before(p.StartDate) {
		return nil, validation.Invalid("end_date", "must not be before start_date")
	}

	p.Status = StatusPending
	p.AdministeredAt = nil
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create prescription: %w", err)
	}
	return p, nil
}

// GetPrescription returns a single prescription with its display status
// projected against the current clock.
func (s *Service) GetPrescription(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.project(p)
	return p, nil
}

// ListByResident returns a resident's prescriptions, each carrying its
// projected display status.
func (s *Service) ListByResident(ctx context.Context, residentID uuid.UUID, limit, offset int) ([]*Prescription, int, error) {
	items, total, err := s.repo.ListByResident(ctx, residentID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	for _, p := range items {
		s.project(p)
	}
	return items, total, nil
}

// ListAdministered returns the administered doses for a resident, newest
// first. The timeline builder consumes this.
func (s *Service) ListAdministered(ctx context.Context, residentID uuid.UUID) ([]*Prescription, error) {
	return s.repo.ListAdministered(ctx, residentID)
}

func (s *Service) UpdatePrescription(ctx context.Context, p *Prescription) (*Prescription, error) {
	existing, err := s.repo.GetByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if p.Name == "" {
		return nil, validation.Required("name")
	}
	if p.TimeOfDay != "" {
		if _, err := time.Parse(TimeLayout, p.TimeOfDay); err != nil {
			return nil, validation.Invalid("time", "must be in HH:MM format")
		}
	} else {
		p.TimeOfDay = existing.TimeOfDay
	}
	if p.Dosage == "" {
		p.Dosage = existing.Dosage
	}
	if p.StartDate.IsZero() {
		p.StartDate = existing.StartDate
	}
	if p.EndDate.IsZero() {
		p.EndDate = existing.EndDate
	}
	if p.EndDate.Before(p.StartDate) {
		return nil, validation.Invalid("end_date", "must not be before start_date")
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update prescription: %w", err)
	}
	return s.GetPrescription(ctx, p.ID)
}

func (s *Service) DeletePrescription(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ConfirmAdministration records that a dose was given. The store transition
// is conditional, so a double confirmation leaves the first timestamp in
// place and comes back with ErrAlreadyAdministered and the stored record.
// Listeners are notified exactly once, by the winning call only.
func (s *Service) ConfirmAdministration(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	at := s.now().UTC()
	p, err := s.repo.ConfirmAdministration(ctx, id, at)
	if err != nil {
		return p, err
	}

	ev := AdministrationEvent{
		PrescriptionID: p.ID,
		ResidentID:     p.ResidentID,
		AdministeredAt: at,
	}
	for _, l := range s.listeners {
		if err := l.AdministrationConfirmed(ctx, ev); err != nil {
			return p, fmt.Errorf("notify administration listener: %w", err)
		}
	}
	return p, nil
}

func (s *Service) project(p *Prescription) {
	p.Status = p.EffectiveStatus(s.now())
}
