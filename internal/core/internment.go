package core

import (
	"time"

	"github.com/google/uuid"
)

type InternmentStatus string

const (
	InternmentActive     InternmentStatus = "ACTIVE"
	InternmentDischarged InternmentStatus = "DISCHARGED"
)

// Internment is one inpatient stay. Active stays block disabling the
// internment module for their clinic.
type Internment struct {
	ID        uuid.UUID        `json:"id" db:"id"`
	ClinicID  uuid.UUID        `json:"clinic_id" db:"clinic_id"`
	PetID     uuid.UUID        `json:"pet_id" db:"pet_id"`
	Reason    string           `json:"reason" db:"reason"`
	BedNumber string           `json:"bed_number" db:"bed_number"`
	Status    InternmentStatus `json:"status" db:"status"`
	EntryDate time.Time        `json:"entry_date" db:"entry_date"`
	ExitDate  *time.Time       `json:"exit_date,omitempty" db:"exit_date"`
}
