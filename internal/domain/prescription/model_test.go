package prescription

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newWindowed(timeOfDay string, start, end time.Time) *Prescription {
	return &Prescription{
		ID:         uuid.New(),
		ResidentID: uuid.New(),
		Name:       "Amoxicilina",
		TimeOfDay:  timeOfDay,
		Dosage:     "250mg",
		StartDate:  start,
		EndDate:    end,
		Status:     StatusPending,
	}
}

func TestEffectiveStatus_PendingBeforeScheduledTime(t *testing.T) {
	p := newWindowed("08:00", day(2024, 6, 1), day(2024, 6, 30))
	now := time.Date(2024, 6, 10, 7, 30, 0, 0, time.UTC)
	if got := p.EffectiveStatus(now); got != StatusPending {
		t.Errorf("expected pending before 08:00, got %s", got)
	}
}

func TestEffectiveStatus_LateAfterScheduledTime(t *testing.T) {
	p := newWindowed("08:00", day(2024, 6, 1), day(2024, 6, 30))
	now := time.Date(2024, 6, 10, 8, 1, 0, 0, time.UTC)
	if got := p.EffectiveStatus(now); got != StatusLate {
		t.Errorf("expected late after 08:00, got %s", got)
	}
}

func TestEffectiveStatus_PendingAtExactScheduledTime(t *testing.T) {
	p := newWindowed("08:00", day(2024, 6, 1), day(2024, 6, 30))
	now := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	if got := p.EffectiveStatus(now); got != StatusPending {
		t.Errorf("expected pending exactly at 08:00, got %s", got)
	}
}

func TestEffectiveStatus_OutsideWindowNeverLate(t *testing.T) {
	p := newWindowed("08:00", day(2024, 6, 1), day(2024, 6, 30))

	before := time.Date(2024, 5, 31, 23, 0, 0, 0, time.UTC)
	if got := p.EffectiveStatus(before); got != StatusPending {
		t.Errorf("expected pending before the window, got %s", got)
	}
	after := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	if got := p.EffectiveStatus(after); got != StatusPending {
		t.Errorf("expected pending after the window, got %s", got)
	}
}

func TestEffectiveStatus_WindowBoundariesInclusive(t *testing.T) {
	p := newWindowed("08:00", day(2024, 6, 1), day(2024, 6, 30))

	firstDay := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	if got := p.EffectiveStatus(firstDay); got != StatusLate {
		t.Errorf("expected late on the start date, got %s", got)
	}
	lastDay := time.Date(2024, 6, 30, 9, 0, 0, 0, time.UTC)
	if got := p.EffectiveStatus(lastDay); got != StatusLate {
		t.Errorf("expected late on the end date, got %s", got)
	}
}

func TestEffectiveStatus_AdministeredIsTerminal(t *testing.T) {
	p := newWindowed("08:00", day(2024, 6, 1), day(2024, 6, 30))
	at := time.Date(2024, 6, 10, 8, 30, 0, 0, time.UTC)
	p.Status = StatusAdministered
	p.AdministeredAt = &at

	now := time.Date(2024, 6, 10, 23, 0, 0, 0, time.UTC)
	if got := p.EffectiveStatus(now); got != StatusAdministered {
		t.Errorf("expected administered to stay administered, got %s", got)
	}
}

func TestEffectiveStatus_MalformedTimeStaysPending(t *testing.T) {
	p := newWindowed("8 o'clock", day(2024, 6, 1), day(2024, 6, 30))
	now := time.Date(2024, 6, 10, 23, 0, 0, 0, time.UTC)
	if got := p.EffectiveStatus(now); got != StatusPending {
		t.Errorf("expected pending for malformed time, got %s", got)
	}
}

func TestEffectiveStatus_Deterministic(t *testing.T) {
	p := newWindowed("14:00", day(2024, 6, 1), day(2024, 6, 30))
	now := time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)
	first := p.EffectiveStatus(now)
	second := p.EffectiveStatus(now)
	if first != second {
		t.Errorf("projection disagrees with itself: %s then %s", first, second)
	}
}
