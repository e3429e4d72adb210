package models

import (
	"strings"
	"time"
)

// Visitor is a deduplicated identity record. A person is matched by email or
// contact number; repeat visits reuse the same row.
type Visitor struct {
	ID            string    `gorm:"primaryKey;type:uuid" json:"visitor_id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `gorm:"index" json:"email"`
	ContactNumber string    `gorm:"index" json:"contact_number"`
	Company       string    `json:"company"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName specifies the table name for Visitor
func (Visitor) TableName() string {
	return "vms_visitors"
}

// MergeContact backfills empty fields from an incoming registration.
// A populated field is never overwritten; only blank/whitespace fields take
// the incoming value. Returns true if anything changed.
func (v *Visitor) MergeContact(firstName, lastName, email, contactNumber, company string) bool {
	changed := false
	merge := func(dst *string, incoming string) {
		if strings.TrimSpace(*dst) == "" && strings.TrimSpace(incoming) != "" {
			*dst = incoming
			changed = true
		}
	}
	merge(&v.FirstName, firstName)
	merge(&v.LastName, lastName)
	merge(&v.Email, email)
	merge(&v.ContactNumber, contactNumber)
	merge(&v.Company, company)
	return changed
}
