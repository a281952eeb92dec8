package diary

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCategory is applied when an entry comes in without one.
const DefaultCategory = "Geral"

// Entry maps to the diary_entries table. The diary is append only: entries
// are never edited or removed once written.
type Entry struct {
	ID          uuid.UUID `db:"id" json:"id"`
	ResidentID  uuid.UUID `db:"resident_id" json:"resident_id"`
	Category    string    `db:"category" json:"category"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
