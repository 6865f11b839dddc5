package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ApplicationStatusPending  = "PENDING"
	ApplicationStatusApproved = "APPROVED"
	ApplicationStatusRejected = "REJECTED"
)

// Application is a volunteer's request to join a task. At most one
// non-rejected row may exist per (task, volunteer) pair; the workflow
// enforces this under the task's decision lock since a plain unique index
// cannot express "unique unless rejected".
type Application struct {
	gorm.Model
	TaskID      uint       `json:"task_id" gorm:"index;not null"`
	VolunteerID uint       `json:"volunteer_id" gorm:"index;not null"`
	Status      string     `json:"status" gorm:"default:'PENDING'"` // PENDING, APPROVED, REJECTED
	Motivation  string     `json:"motivation" gorm:"type:text"`
	AppliedAt   time.Time  `json:"applied_at"`
	DecidedAt   *time.Time `json:"decided_at"`
	DecidedBy   *uint      `json:"decided_by"` // nil until decided; 0 when rejected by the system
	IsDeleted   bool       `gorm:"default:false"`
	Task        Task       `json:"-" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	Volunteer   User       `json:"-" gorm:"foreignKey:VolunteerID;constraint:OnDelete:CASCADE"`
}
