package lifecycle

import (
	"fmt"

	"volunect/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// Apply creates a PENDING application for an open task. The task read
// triggers status reconciliation first, so a past-dated task can never
// accept a new application no matter how stale its stored status was.
func (e *Engine) Apply(taskID, volunteerID uint, motivation string) (*models.Application, error) {
	var volunteer models.User
	if err := e.db.Where("id = ? AND is_deleted = ?", volunteerID, false).First(&volunteer).Error; err != nil {
		return nil, &AuthorizationError{Msg: "Volunteer not found"}
	}
	if volunteer.Role != models.RoleVolunteer {
		return nil, &AuthorizationError{Msg: "Only volunteer accounts can apply"}
	}

	task, err := e.GetTask(taskID)
	if err != nil {
		return nil, err
	}
	if task.Status != models.TaskStatusOpen {
		return nil, &ClosedTaskError{TaskID: task.ID, Status: task.Status}
	}

	// The pair lock keeps two concurrent applies from both passing the
	// duplicate check.
	lock := e.pairLocks.acquire(pairKey(taskID, volunteerID))
	defer lock.Unlock()

	var existing models.Application
	err = e.db.Where("task_id = ? AND volunteer_id = ? AND is_deleted = ? AND status <> ?",
		taskID, volunteerID, false, models.ApplicationStatusRejected).
		First(&existing).Error
	if err == nil {
		return nil, &DuplicateApplicationError{TaskID: taskID, VolunteerID: volunteerID}
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	app := models.Application{
		TaskID:      taskID,
		VolunteerID: volunteerID,
		Status:      models.ApplicationStatusPending,
		Motivation:  motivation,
		AppliedAt:   e.clock.Now(),
	}
	if err := e.db.Create(&app).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// Decide settles a pending application. Approvals for the same task are
// serialized so two concurrent approvals cannot both pass the capacity
// check; approval also creates the volunteer's PENDING attendance row.
func (e *Engine) Decide(applicationID, deciderID uint, outcome string) (*models.Application, error) {
	if outcome != DecisionApprove && outcome != DecisionReject {
		return nil, newValidationError("outcome", "Outcome must be approve or reject!")
	}

	var app models.Application
	if err := e.db.Where("id = ? AND is_deleted = ?", applicationID, false).First(&app).Error; err != nil {
		return nil, err
	}

	var task models.Task
	if err := e.db.Where("id = ? AND is_deleted = ?", app.TaskID, false).First(&task).Error; err != nil {
		return nil, err
	}
	if task.OwnerID != deciderID {
		return nil, &AuthorizationError{Msg: "Only the task owner can decide applications"}
	}

	lock := e.taskLocks.acquire(fmt.Sprintf("%d", task.ID))
	defer lock.Unlock()

	// Re-read under the lock; a concurrent decision may have settled it.
	if err := e.db.Where("id = ?", applicationID).First(&app).Error; err != nil {
		return nil, err
	}
	if app.Status != models.ApplicationStatusPending {
		return nil, &InvalidStateError{Entity: "application", ID: app.ID, Status: app.Status, Op: "decide"}
	}

	newStatus := models.ApplicationStatusRejected
	if outcome == DecisionApprove {
		newStatus = models.ApplicationStatusApproved

		var approved int64
		if err := e.db.Model(&models.Application{}).
			Where("task_id = ? AND status = ? AND is_deleted = ?", task.ID, models.ApplicationStatusApproved, false).
			Count(&approved).Error; err != nil {
			return nil, err
		}
		if approved >= int64(task.MaxVolunteers) {
			return nil, &ConflictError{Msg: "Task already has the maximum number of approved volunteers"}
		}
	}

	now := e.clock.Now()
	res := e.db.Model(&models.Application{}).
		Where("id = ? AND status = ?", app.ID, models.ApplicationStatusPending).
		Updates(map[string]interface{}{
			"status":     newStatus,
			"decided_at": now,
			"decided_by": deciderID,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, &InvalidStateError{Entity: "application", ID: app.ID, Status: app.Status, Op: "decide"}
	}

	app.Status = newStatus
	app.DecidedAt = &now
	app.DecidedBy = &deciderID

	if newStatus == models.ApplicationStatusApproved {
		// Attendance tracking should not need a second manual step. The
		// pair's unique index makes the create idempotent under replays.
		attendance := models.Attendance{
			TaskID:      app.TaskID,
			VolunteerID: app.VolunteerID,
			Status:      models.AttendanceStatusPending,
		}
		if err := e.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "task_id"}, {Name: "volunteer_id"}},
			DoNothing: true,
		}).Create(&attendance).Error; err != nil {
			return nil, err
		}
	}

	return &app, nil
}

// GetApplication loads a single application.
func (e *Engine) GetApplication(id uint) (*models.Application, error) {
	var app models.Application
	if err := e.db.Where("id = ? AND is_deleted = ?", id, false).First(&app).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// ListApplicationsForTask returns a task's applications, owner only.
func (e *Engine) ListApplicationsForTask(taskID, callerID uint) ([]models.Application, error) {
	var task models.Task
	if err := e.db.Where("id = ? AND is_deleted = ?", taskID, false).First(&task).Error; err != nil {
		return nil, err
	}
	if task.OwnerID != callerID {
		return nil, &AuthorizationError{Msg: "Only the task owner can list its applications"}
	}

	var apps []models.Application
	if err := e.db.Where("task_id = ? AND is_deleted = ?", taskID, false).
		Order("applied_at asc").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// ListApplicationsForVolunteer returns a volunteer's own applications.
func (e *Engine) ListApplicationsForVolunteer(volunteerID uint) ([]models.Application, error) {
	var apps []models.Application
	if err := e.db.Where("volunteer_id = ? AND is_deleted = ?", volunteerID, false).
		Order("applied_at desc").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}
