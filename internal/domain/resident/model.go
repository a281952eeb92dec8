package resident

import (
	"time"

	"github.com/google/uuid"
)

// Status is the care semaphore shown on the resident's card. Green means no
// open care demand, yellow means attention, red means urgent.
type Status string

const (
	StatusGreen  Status = "green"
	StatusYellow Status = "yellow"
	StatusRed    Status = "red"
)

// ValidStatuses lists the accepted semaphore values.
var ValidStatuses = map[Status]bool{
	StatusGreen:  true,
	StatusYellow: true,
	StatusRed:    true,
}

// ValidBloodTypes lists the accepted ABO/Rh values.
var ValidBloodTypes = map[string]bool{
	"A+": true, "A-": true,
	"B+": true, "B-": true,
	"AB+": true, "AB-": true,
	"O+": true, "O-": true,
}

// Resident maps to the residents table.
type Resident struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	BirthDate time.Time `db:"birth_date" json:"birth_date"`
	Location  string    `db:"location" json:"location"`
	SUSCard   string    `db:"sus_card" json:"sus_card"`
	BloodType string    `db:"blood_type" json:"blood_type"`
	Allergies string    `db:"allergies" json:"allergies,omitempty"`
	PhotoURL  string    `db:"photo_url" json:"photo_url,omitempty"`
	Status    Status    `db:"status" json:"status"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
