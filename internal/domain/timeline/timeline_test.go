package timeline

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/acolher/acolher/internal/domain/diary"
	"github.com/acolher/acolher/internal/domain/prescription"
)

type stubDoses struct {
	doses []*prescription.Prescription
}

func (s *stubDoses) ListAdministered(_ context.Context, _ uuid.UUID) ([]*prescription.Prescription, error) {
	return s.doses, nil
}

type stubNotes struct {
	entries []*diary.Entry
}

func (s *stubNotes) ListAll(_ context.Context, _ uuid.UUID) ([]*diary.Entry, error) {
	return s.entries, nil
}

func administered(name, dosage string, at time.Time) *prescription.Prescription {
	return &prescription.Prescription{
		ID:             uuid.New(),
		Name:           name,
		Dosage:         dosage,
		Status:         prescription.StatusAdministered,
		AdministeredAt: &at,
	}
}

func TestBuild_MergesNewestFirst(t *testing.T) {
	morning := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	noon := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 6, 10, 19, 0, 0, 0, time.UTC)

	doses := &stubDoses{doses: []*prescription.Prescription{
		administered("Amoxicilina", "250mg", morning),
		administered("Dipirona", "500mg", evening),
	}}
	notes := &stubNotes{entries: []*diary.Entry{
		{ID: uuid.New(), Category: "Alimentação", Description: "Almoçou bem", CreatedAt: noon},
	}}

	events, err := NewBuilder(doses, notes).Build(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	for i := 1; i < len(events); i++ {
		if events[i].Timestamp.After(events[i-1].Timestamp) {
			t.Errorf("events out of order at %d: %v after %v", i, events[i].Timestamp, events[i-1].Timestamp)
		}
	}
	if events[0].Description != "Dipirona (500mg)" {
		t.Errorf("expected newest event first, got %q", events[0].Description)
	}
	if events[1].Title != "Alimentação" {
		t.Errorf("expected diary entry in the middle, got %q", events[1].Title)
	}
}

func TestBuild_MedicationDescription(t *testing.T) {
	at := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	doses := &stubDoses{doses: []*prescription.Prescription{administered("Amoxicilina", "250mg", at)}}

	events, err := NewBuilder(doses, &stubNotes{}).Build(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Title != "Medicamento" {
		t.Errorf("expected title Medicamento, got %q", events[0].Title)
	}
	if events[0].Description != "Amoxicilina (250mg)" {
		t.Errorf("expected name with dosage in parentheses, got %q", events[0].Description)
	}
	if events[0].Display != "10/06/2024 às 08:00" {
		t.Errorf("unexpected display time %q", events[0].Display)
	}
}

func TestBuild_TieBreakIsStable(t *testing.T) {
	at := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	doses := &stubDoses{doses: []*prescription.Prescription{
		administered("Amoxicilina", "250mg", at),
		administered("Dipirona", "500mg", at),
	}}
	notes := &stubNotes{entries: []*diary.Entry{
		{ID: uuid.New(), Category: "Geral", Description: "Mesmo horário", CreatedAt: at},
	}}

	b := NewBuilder(doses, notes)
	first, err := b.Build(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := b.Build(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical ordering across rebuilds")
	}
	for i := 1; i < len(first); i++ {
		if first[i-1].SourceID > first[i].SourceID {
			t.Errorf("tied events not ordered by source id: %q before %q", first[i-1].SourceID, first[i].SourceID)
		}
	}
}

func TestBuild_SkipsDosesWithoutTimestamp(t *testing.T) {
	p := &prescription.Prescription{
		ID:     uuid.New(),
		Name:   "Amoxicilina",
		Dosage: "250mg",
		Status: prescription.StatusAdministered,
	}
	doses := &stubDoses{doses: []*prescription.Prescription{p}}

	events, err := NewBuilder(doses, &stubNotes{}).Build(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected dose without timestamp skipped, got %d events", len(events))
	}
}

func TestBuild_EmptySources(t *testing.T) {
	events, err := NewBuilder(&stubDoses{}, &stubNotes{}).Build(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected empty timeline, got %d events", len(events))
	}
}
