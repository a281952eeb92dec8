package prescription

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Status is the persisted lifecycle state of a prescription. Only "pending"
// and "administered" are ever written to the store; "late" is a read-time
// projection derived by EffectiveStatus.
type Status string

const (
	StatusPending      Status = "pending"
	StatusLate         Status = "late"
	StatusAdministered Status = "administered"
)

// TimeLayout is the scheduled time-of-day format, e.g. "08:00".
const TimeLayout = "15:04"

// Prescription maps to the prescriptions table. A prescription is a standing
// order: a medication to be given at a fixed time of day on every day inside
// the validity window.
type Prescription struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	ResidentID     uuid.UUID  `db:"resident_id" json:"resident_id"`
	Name           string     `db:"name" json:"name"`
	TimeOfDay      string     `db:"time" json:"time"`
	Dosage         string     `db:"dosage" json:"dosage"`
	StartDate      time.Time  `db:"start_date" json:"start_date"`
	EndDate        time.Time  `db:"end_date" json:"end_date"`
	Status         Status     `db:"status" json:"status"`
	AdministeredAt *time.Time `db:"administered_at" json:"administered_at,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// EffectiveStatus projects the display status at the given wall-clock time.
// A pending prescription whose scheduled time of day has already passed on a
// day inside the validity window shows as late. The projection is pure; it
// never touches the store and two calls with the same clock agree.
func (p *Prescription) EffectiveStatus(now time.Time) Status {
	if p.Status != StatusPending {
		return p.Status
	}
	if !p.activeOn(now) {
		return StatusPending
	}
	sched, err := time.Parse(TimeLayout, p.TimeOfDay)
	if err != nil {
		return StatusPending
	}
	y, m, d := now.Date()
	due := time.Date(y, m, d, sched.Hour(), sched.Minute(), 0, 0, now.Location())
	if now.After(due) {
		return StatusLate
	}
	return StatusPending
}

// activeOn reports whether the calendar day of t falls inside the validity
// window, boundaries included. Comparison is at day granularity so the
// timezone of the stored dates does not matter.
func (p *Prescription) activeOn(t time.Time) bool {
	day := truncateDay(t)
	return !day.Before(truncateDay(p.StartDate)) && !day.After(truncateDay(p.EndDate))
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AdministrationEvent is published after a dose confirmation commits.
type AdministrationEvent struct {
	PrescriptionID uuid.UUID `json:"prescription_id"`
	ResidentID     uuid.UUID `json:"resident_id"`
	AdministeredAt time.Time `json:"administered_at"`
}

// AdministrationListener receives administration events. Listeners run
// synchronously after the confirmation write; the confirming caller sees
// their errors.
type AdministrationListener interface {
	AdministrationConfirmed(ctx context.Context, ev AdministrationEvent) error
}
