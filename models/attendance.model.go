package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	AttendanceStatusPending = "PENDING"
	AttendanceStatusPresent = "PRESENT"
	AttendanceStatusAbsent  = "ABSENT"
)

// Attendance links an approved volunteer to a presence decision for a task.
// A row is auto-created as PENDING when the application is approved and is
// re-markable afterwards (mis-marked attendance gets corrected, not
// duplicated).
type Attendance struct {
	gorm.Model
	TaskID         uint       `json:"task_id" gorm:"not null;uniqueIndex:idx_attendance_pair"`
	VolunteerID    uint       `json:"volunteer_id" gorm:"not null;uniqueIndex:idx_attendance_pair"`
	Status         string     `json:"status" gorm:"default:'PENDING'"` // PENDING, PRESENT, ABSENT
	HoursCompleted float64    `json:"hours_completed" gorm:"default:0"`
	MarkedAt       *time.Time `json:"marked_at"`
	MarkedBy       *uint      `json:"marked_by"`
}
