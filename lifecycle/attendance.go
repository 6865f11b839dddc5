package lifecycle

import (
	"volunect/models"

	"gorm.io/gorm"
)

// MarkAttendance records or corrects a volunteer's presence for a task.
// Re-marking overwrites the prior decision and hours; attendance rows are
// corrected in place, never duplicated. Hours carry meaning only for
// PRESENT; an ABSENT mark always stores zero.
func (e *Engine) MarkAttendance(taskID, volunteerID, markerID uint, status string, hoursCompleted float64) (*models.Attendance, error) {
	if status != models.AttendanceStatusPresent && status != models.AttendanceStatusAbsent {
		return nil, newValidationError("status", "Status must be PRESENT or ABSENT!")
	}
	if hoursCompleted < 0 {
		return nil, newValidationError("hours_completed", "Hours completed cannot be negative!")
	}
	if status == models.AttendanceStatusAbsent {
		hoursCompleted = 0
	}

	var task models.Task
	if err := e.db.Where("id = ? AND is_deleted = ?", taskID, false).First(&task).Error; err != nil {
		return nil, err
	}
	if task.OwnerID != markerID {
		return nil, &AuthorizationError{Msg: "Only the task owner can mark attendance"}
	}

	var app models.Application
	err := e.db.Where("task_id = ? AND volunteer_id = ? AND status = ? AND is_deleted = ?",
		taskID, volunteerID, models.ApplicationStatusApproved, false).
		First(&app).Error
	if err == gorm.ErrRecordNotFound {
		return nil, &NotApprovedError{TaskID: taskID, VolunteerID: volunteerID}
	}
	if err != nil {
		return nil, err
	}

	now := e.clock.Now()

	var attendance models.Attendance
	err = e.db.Where("task_id = ? AND volunteer_id = ?", taskID, volunteerID).First(&attendance).Error
	if err == gorm.ErrRecordNotFound {
		// Approval auto-creates the row; recover here if it is missing anyway.
		attendance = models.Attendance{
			TaskID:      taskID,
			VolunteerID: volunteerID,
		}
	} else if err != nil {
		return nil, err
	}

	attendance.Status = status
	attendance.HoursCompleted = hoursCompleted
	attendance.MarkedAt = &now
	attendance.MarkedBy = &markerID

	if err := e.db.Save(&attendance).Error; err != nil {
		return nil, err
	}
	return &attendance, nil
}

// GetAttendance loads the attendance row for a pair.
func (e *Engine) GetAttendance(taskID, volunteerID uint) (*models.Attendance, error) {
	var attendance models.Attendance
	if err := e.db.Where("task_id = ? AND volunteer_id = ?", taskID, volunteerID).
		First(&attendance).Error; err != nil {
		return nil, err
	}
	return &attendance, nil
}

// ListAttendanceForTask returns a task's attendance rows, owner only.
func (e *Engine) ListAttendanceForTask(taskID, callerID uint) ([]models.Attendance, error) {
	var task models.Task
	if err := e.db.Where("id = ? AND is_deleted = ?", taskID, false).First(&task).Error; err != nil {
		return nil, err
	}
	if task.OwnerID != callerID {
		return nil, &AuthorizationError{Msg: "Only the task owner can list attendance"}
	}

	var rows []models.Attendance
	if err := e.db.Where("task_id = ?", taskID).Order("volunteer_id asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
