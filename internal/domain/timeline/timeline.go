// Package timeline merges administered medication doses and diary entries
// into a single reverse-chronological feed per resident.
package timeline

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/acolher/acolher/internal/domain/diary"
	"github.com/acolher/acolher/internal/domain/prescription"
	"github.com/acolher/acolher/pkg/timefmt"
)

// Event is one row in the merged feed. SourceID carries the origin record's
// id with a source prefix, so two events never collide and ordering ties
// resolve the same way on every request.
type Event struct {
	SourceID    string    `json:"source_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	Display     string    `json:"display_time"`
}

// DoseSource yields administered doses. prescription.Service implements it.
type DoseSource interface {
	ListAdministered(ctx context.Context, residentID uuid.UUID) ([]*prescription.Prescription, error)
}

// NoteSource yields diary entries. diary.Service implements it.
type NoteSource interface {
	ListAll(ctx context.Context, residentID uuid.UUID) ([]*diary.Entry, error)
}

// Builder assembles the merged timeline for a resident.
type Builder struct {
	doses DoseSource
	notes NoteSource
}

func NewBuilder(doses DoseSource, notes NoteSource) *Builder {
	return &Builder{doses: doses, notes: notes}
}

// Build returns all timeline events for the resident, newest first. Events
// sharing a timestamp order by SourceID ascending so the feed is stable
// across rebuilds.
func (b *Builder) Build(ctx context.Context, residentID uuid.UUID) ([]Event, error) {
	doses, err := b.doses.ListAdministered(ctx, residentID)
	if err != nil {
		return nil, fmt.Errorf("list administered doses: %w", err)
	}
	notes, err := b.notes.ListAll(ctx, residentID)
	if err != nil {
		return nil, fmt.Errorf("list diary entries: %w", err)
	}

	events := make([]Event, 0, len(doses)+len(notes))
	for _, p := range doses {
		if p.AdministeredAt == nil {
			continue
		}
		events = append(events, Event{
			SourceID:    "med-" + p.ID.String(),
			Title:       "Medicamento",
			Description: fmt.Sprintf("%s (%s)", p.Name, p.Dosage),
			Timestamp:   *p.AdministeredAt,
			Display:     timefmt.DateTime(*p.AdministeredAt),
		})
	}
	for _, e := range notes {
		events = append(events, Event{
			SourceID:    "diario-" + e.ID.String(),
			Title:       e.Category,
			Description: e.Description,
			Timestamp:   e.CreatedAt,
			Display:     timefmt.DateTime(e.CreatedAt),
		})
	}

	sort.Slice(events, func(i, j int) bool {
		if !events[i].Timestamp.Equal(events[j].Timestamp) {
			return events[i].Timestamp.After(events[j].Timestamp)
		}
		return events[i].SourceID < events[j].SourceID
	})
	return events, nil
}
