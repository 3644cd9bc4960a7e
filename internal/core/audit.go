package core

import "time"

// AuditEntry is a write-once record of a state-changing action. Entries
// are never updated or deleted by this service.
type AuditEntry struct {
	ID         string    `json:"id" db:"id"`
	ClinicID   string    `json:"clinic_id" db:"clinic_id"`
	UserID     string    `json:"user_id" db:"user_id"`
	Action     string    `json:"action" db:"action"`
	EntityType string    `json:"entity_type" db:"entity_type"`
	EntityID   string    `json:"entity_id" db:"entity_id"`
	Before     []byte    `json:"before,omitempty" db:"before_json"`
	After      []byte    `json:"after,omitempty" db:"after_json"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
