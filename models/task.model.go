package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	TaskStatusOpen      = "OPEN"
	TaskStatusClosed    = "CLOSED"
	TaskStatusCompleted = "COMPLETED"
	TaskStatusCancelled = "CANCELLED"
)

// Task is a volunteering opportunity posted by an NGO. Status moves forward
// only: OPEN → CLOSED/CANCELLED, CLOSED → COMPLETED. It is derived on every
// read, never set directly by an update.
type Task struct {
	gorm.Model
	Title           string    `json:"title"`
	Description     string    `json:"description" gorm:"type:text"`
	Location        string    `json:"location"`
	ScheduledDate   time.Time `json:"scheduled_date" gorm:"index;not null"` // calendar date, stored at midnight UTC
	HoursPerSession float64   `json:"hours_per_session" gorm:"default:0"`
	MaxVolunteers   int       `json:"max_volunteers" gorm:"default:1"`
	Status          string    `json:"status" gorm:"default:'OPEN';index"`
	OwnerID         uint      `json:"owner_id" gorm:"index;not null"` // NGO user, immutable after creation
	IsDeleted       bool      `gorm:"default:false"`

	// Derived from Application rows on read, never persisted.
	AppliedVolunteerIDs  []uint `json:"applied_volunteer_ids" gorm:"-"`
	ApprovedVolunteerIDs []uint `json:"approved_volunteer_ids" gorm:"-"`
}
