package caregiver

import "time"

// Profile maps to the caregiver_profiles table. The id is the subject claim
// of the caregiver's token, so the profile follows the login rather than a
// locally issued id.
type Profile struct {
	ID        string    `db:"id" json:"id"`
	FullName  string    `db:"full_name" json:"full_name"`
	Unit      string    `db:"unit" json:"unit"`
	Shift     string    `db:"shift" json:"shift"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
