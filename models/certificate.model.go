package models

import (
	"time"

	"gorm.io/gorm"
)

// Certificate is the immutable audit artifact issued once per
// (task, volunteer) pair. The composite unique index is the hard guarantee
// against double issuance; a second writer's insert is a no-op and it
// returns the existing row instead.
type Certificate struct {
	gorm.Model
	TaskID            uint      `json:"task_id" gorm:"not null;uniqueIndex:idx_certificate_pair"`
	VolunteerID       uint      `json:"volunteer_id" gorm:"not null;uniqueIndex:idx_certificate_pair"`
	CertificateNumber string    `json:"certificate_number" gorm:"unique;not null"`
	HoursCompleted    float64   `json:"hours_completed"`
	IssuedAt          time.Time `json:"issued_at"`
	DocumentRef       string    `json:"document_ref"` // opaque handle to the rendered PDF artifact
}
