package lifecycle

import (
	"time"

	"volunect/models"

	"gorm.io/gorm"
)

// TaskInput carries the caller-settable task fields. Status is not among
// them; it is derived.
type TaskInput struct {
	Title           string
	Description     string
	Location        string
	ScheduledDate   time.Time
	HoursPerSession float64
	MaxVolunteers   int
}

// TaskUpdate carries the mutable fields for an update. Nil means unchanged.
type TaskUpdate struct {
	Title           *string
	Description     *string
	Location        *string
	ScheduledDate   *time.Time
	HoursPerSession *float64
	MaxVolunteers   *int
}

// TaskFilter narrows ListTasks results.
type TaskFilter struct {
	OwnerID  *uint
	Status   *string
	Location *string
}

// CreateTask creates an OPEN task owned by the given NGO user.
func (e *Engine) CreateTask(ownerID uint, in TaskInput) (*models.Task, error) {
	fields := map[string]string{}
	if in.Title == "" {
		fields["title"] = "Title is required!"
	}
	if in.ScheduledDate.IsZero() {
		fields["scheduled_date"] = "Scheduled date is required!"
	}
	if in.HoursPerSession < 0 {
		fields["hours_per_session"] = "Hours per session cannot be negative!"
	}
	if in.MaxVolunteers <= 0 {
		fields["max_volunteers"] = "Max volunteers must be greater than 0!"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	var owner models.User
	if err := e.db.Where("id = ? AND is_deleted = ?", ownerID, false).First(&owner).Error; err != nil {
		return nil, &AuthorizationError{Msg: "Owner not found"}
	}
	if owner.Role != models.RoleNGO {
		return nil, &AuthorizationError{Msg: "Only NGO accounts can create tasks"}
	}

	task := models.Task{
		Title:           in.Title,
		Description:     in.Description,
		Location:        in.Location,
		ScheduledDate:   DateOnly(in.ScheduledDate),
		HoursPerSession: in.HoursPerSession,
		MaxVolunteers:   in.MaxVolunteers,
		Status:          models.TaskStatusOpen,
		OwnerID:         ownerID,
	}
	if err := e.db.Create(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// GetTask loads a task, reconciling its status with the clock before
// returning. Auto-close is a property of the read path, not a background job.
func (e *Engine) GetTask(id uint) (*models.Task, error) {
	var task models.Task
	if err := e.db.Where("id = ? AND is_deleted = ?", id, false).First(&task).Error; err != nil {
		return nil, err
	}
	if err := e.syncStatus(&task); err != nil {
		return nil, err
	}
	if err := e.loadVolunteerViews(&task); err != nil {
		return nil, err
	}
	return &task, nil
}

// ListTasks returns tasks matching the filter, each status-reconciled first.
// The status filter applies after reconciliation so a stale OPEN row never
// leaks through an OPEN query.
func (e *Engine) ListTasks(filter TaskFilter) ([]models.Task, error) {
	query := e.db.Where("is_deleted = ?", false)
	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}
	if filter.Location != nil {
		query = query.Where("location = ?", *filter.Location)
	}

	var tasks []models.Task
	if err := query.Order("scheduled_date asc").Find(&tasks).Error; err != nil {
		return nil, err
	}

	result := make([]models.Task, 0, len(tasks))
	for i := range tasks {
		if err := e.syncStatus(&tasks[i]); err != nil {
			return nil, err
		}
		if filter.Status != nil && tasks[i].Status != *filter.Status {
			continue
		}
		if err := e.loadVolunteerViews(&tasks[i]); err != nil {
			return nil, err
		}
		result = append(result, tasks[i])
	}
	return result, nil
}

// UpdateTask applies field changes for the owning NGO. Status is not
// settable here; cancellation has its own operation.
func (e *Engine) UpdateTask(id, callerID uint, in TaskUpdate) (*models.Task, error) {
	task, err := e.GetTask(id)
	if err != nil {
		return nil, err
	}
	if task.OwnerID != callerID {
		return nil, &AuthorizationError{Msg: "Only the task owner can update it"}
	}

	if in.ScheduledDate != nil && task.Status != models.TaskStatusOpen {
		return nil, &InvalidStateError{Entity: "task", ID: task.ID, Status: task.Status, Op: "reschedule"}
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, newValidationError("title", "Title cannot be empty!")
		}
		task.Title = *in.Title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Location != nil {
		task.Location = *in.Location
	}
	if in.ScheduledDate != nil {
		if in.ScheduledDate.IsZero() {
			return nil, newValidationError("scheduled_date", "Scheduled date cannot be empty!")
		}
		task.ScheduledDate = DateOnly(*in.ScheduledDate)
	}
	if in.HoursPerSession != nil {
		if *in.HoursPerSession < 0 {
			return nil, newValidationError("hours_per_session", "Hours per session cannot be negative!")
		}
		task.HoursPerSession = *in.HoursPerSession
	}
	if in.MaxVolunteers != nil {
		if *in.MaxVolunteers <= 0 {
			return nil, newValidationError("max_volunteers", "Max volunteers must be greater than 0!")
		}
		task.MaxVolunteers = *in.MaxVolunteers
	}

	if err := e.db.Save(task).Error; err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask soft-deletes a task and system-rejects its pending
// applications so no orphaned application stays decidable.
func (e *Engine) DeleteTask(id, callerID uint) error {
	task, err := e.GetTask(id)
	if err != nil {
		return err
	}
	if task.OwnerID != callerID {
		return &AuthorizationError{Msg: "Only the task owner can delete it"}
	}

	now := e.clock.Now()
	system := uint(0)
	return e.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Task{}).Where("id = ?", task.ID).
			Update("is_deleted", true).Error; err != nil {
			return err
		}
		return tx.Model(&models.Application{}).
			Where("task_id = ? AND status = ?", task.ID, models.ApplicationStatusPending).
			Updates(map[string]interface{}{
				"status":     models.ApplicationStatusRejected,
				"decided_at": now,
				"decided_by": system,
			}).Error
	})
}

// CancelTask is the one direct status write: OPEN → CANCELLED, owner only.
func (e *Engine) CancelTask(id, callerID uint) (*models.Task, error) {
	task, err := e.GetTask(id)
	if err != nil {
		return nil, err
	}
	if task.OwnerID != callerID {
		return nil, &AuthorizationError{Msg: "Only the task owner can cancel it"}
	}
	if task.Status != models.TaskStatusOpen {
		return nil, &InvalidStateError{Entity: "task", ID: task.ID, Status: task.Status, Op: "cancel"}
	}

	res := e.db.Model(&models.Task{}).
		Where("id = ? AND status = ?", task.ID, models.TaskStatusOpen).
		Update("status", models.TaskStatusCancelled)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, &ConflictError{Msg: "Task status changed concurrently, re-read and retry"}
	}
	task.Status = models.TaskStatusCancelled
	return task, nil
}

// MarkCompleted moves a CLOSED task to COMPLETED and triggers the
// certificate sweep over its approved volunteers. Issuance results are
// returned alongside the task; one volunteer's failure never blocks another.
func (e *Engine) MarkCompleted(id, callerID uint) (*models.Task, []IssueResult, error) {
	task, err := e.GetTask(id)
	if err != nil {
		return nil, nil, err
	}
	if task.OwnerID != callerID {
		return nil, nil, &AuthorizationError{Msg: "Only the task owner can complete it"}
	}
	if task.Status != models.TaskStatusClosed {
		return nil, nil, &InvalidStateError{Entity: "task", ID: task.ID, Status: task.Status, Op: "complete"}
	}

	res := e.db.Model(&models.Task{}).
		Where("id = ? AND status = ?", task.ID, models.TaskStatusClosed).
		Update("status", models.TaskStatusCompleted)
	if res.Error != nil {
		return nil, nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil, &ConflictError{Msg: "Task status changed concurrently, re-read and retry"}
	}
	task.Status = models.TaskStatusCompleted

	results, err := e.IssueAllForTask(task.ID)
	if err != nil {
		return nil, nil, err
	}
	return task, results, nil
}

// syncStatus reconciles a task's stored status with the clock. Forward-only:
// OPEN becomes CLOSED once the scheduled day is today or past; every other
// status is left untouched. The guarded update tolerates concurrent readers
// racing on the same stale row.
func (e *Engine) syncStatus(task *models.Task) error {
	if task.Status != models.TaskStatusOpen {
		return nil
	}
	if !OnOrBeforeToday(task.ScheduledDate, e.clock.Now()) {
		return nil
	}

	res := e.db.Model(&models.Task{}).
		Where("id = ? AND status = ?", task.ID, models.TaskStatusOpen).
		Update("status", models.TaskStatusClosed)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Lost the race; adopt whatever the winner wrote.
		var current models.Task
		if err := e.db.Select("status").Where("id = ?", task.ID).First(&current).Error; err != nil {
			return err
		}
		task.Status = current.Status
		return nil
	}
	task.Status = models.TaskStatusClosed
	return nil
}

// SweepOpenTasks walks every open task through the same derivation the read
// path uses. Only consumers reading storage directly need this; the engine's
// own reads are always reconciled.
func (e *Engine) SweepOpenTasks() (int, error) {
	var tasks []models.Task
	if err := e.db.Where("status = ? AND is_deleted = ?", models.TaskStatusOpen, false).
		Find(&tasks).Error; err != nil {
		return 0, err
	}

	closed := 0
	for i := range tasks {
		before := tasks[i].Status
		if err := e.syncStatus(&tasks[i]); err != nil {
			return closed, err
		}
		if before != tasks[i].Status {
			closed++
		}
	}
	return closed, nil
}

// loadVolunteerViews fills the task's derived volunteer ID sets from its
// application rows.
func (e *Engine) loadVolunteerViews(task *models.Task) error {
	var apps []models.Application
	if err := e.db.Where("task_id = ? AND is_deleted = ? AND status <> ?",
		task.ID, false, models.ApplicationStatusRejected).
		Order("applied_at asc").Find(&apps).Error; err != nil {
		return err
	}

	task.AppliedVolunteerIDs = make([]uint, 0, len(apps))
	task.ApprovedVolunteerIDs = make([]uint, 0)
	for _, app := range apps {
		task.AppliedVolunteerIDs = append(task.AppliedVolunteerIDs, app.VolunteerID)
		if app.Status == models.ApplicationStatusApproved {
			task.ApprovedVolunteerIDs = append(task.ApprovedVolunteerIDs, app.VolunteerID)
		}
	}
	return nil
}
