package resident

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/acolher/acolher/internal/domain/prescription"
)

func TestStatusAggregator_ClearsToGreenAfterDose(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	r, _ := svc.CreateResident(context.Background(), validResident())
	if _, err := svc.SetStatus(context.Background(), r.ID, StatusYellow); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	agg := NewStatusAggregator(repo, ConfirmationClears{}, zerolog.Nop())
	ev := prescription.AdministrationEvent{ResidentID: r.ID}
	if err := agg.AdministrationConfirmed(context.Background(), ev); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := repo.GetByID(context.Background(), r.ID)
	if got.Status != StatusGreen {
		t.Errorf("expected green after dose confirmation, got %s", got.Status)
	}
}

func TestStatusAggregator_UnknownResident(t *testing.T) {
	agg := NewStatusAggregator(newMockRepo(), ConfirmationClears{}, zerolog.Nop())
	ev := prescription.AdministrationEvent{}
	if err := agg.AdministrationConfirmed(context.Background(), ev); err == nil {
		t.Error("expected error for unknown resident")
	}
}

type stickyPolicy struct{}

func (stickyPolicy) AfterDose(current Status) Status {
	if current == StatusRed {
		return StatusRed
	}
	return StatusGreen
}

func TestStatusAggregator_CustomPolicy(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	r, _ := svc.CreateResident(context.Background(), validResident())
	svc.SetStatus(context.Background(), r.ID, StatusRed)

	agg := NewStatusAggregator(repo, stickyPolicy{}, zerolog.Nop())
	ev := prescription.AdministrationEvent{ResidentID: r.ID}
	if err := agg.AdministrationConfirmed(context.Background(), ev); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := repo.GetByID(context.Background(), r.ID)
	if got.Status != StatusRed {
		t.Errorf("expected red to stick under the custom policy, got %s", got.Status)
	}
}
