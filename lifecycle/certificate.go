package lifecycle

import (
	"fmt"
	"strings"

	"volunect/models"
	"volunect/renderer"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IssueResult reports one volunteer's outcome within a certificate sweep.
type IssueResult struct {
	VolunteerID uint                `json:"volunteer_id"`
	Certificate *models.Certificate `json:"certificate,omitempty"`
	Err         error               `json:"-"`
	Error       string              `json:"error,omitempty"`
}

// IssueIfEligible mints the certificate for a (task, volunteer) pair, or
// returns the existing one unchanged. Eligibility: task COMPLETED,
// application APPROVED, attendance PRESENT. The render happens before
// anything is persisted, so a renderer failure leaves no partial record; the
// storage unique index makes the final insert create-if-absent, with a
// losing writer adopting the winner's row.
func (e *Engine) IssueIfEligible(taskID, volunteerID uint) (*models.Certificate, error) {
	lock := e.pairLocks.acquire(pairKey(taskID, volunteerID))
	defer lock.Unlock()

	var existing models.Certificate
	err := e.db.Where("task_id = ? AND volunteer_id = ?", taskID, volunteerID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	var task models.Task
	if err := e.db.Where("id = ? AND is_deleted = ?", taskID, false).First(&task).Error; err != nil {
		return nil, err
	}
	if task.Status != models.TaskStatusCompleted {
		return nil, &EligibilityError{TaskID: taskID, VolunteerID: volunteerID,
			Reason: fmt.Sprintf("task status is %s, not COMPLETED", task.Status)}
	}

	var app models.Application
	err = e.db.Where("task_id = ? AND volunteer_id = ? AND status = ? AND is_deleted = ?",
		taskID, volunteerID, models.ApplicationStatusApproved, false).
		First(&app).Error
	if err == gorm.ErrRecordNotFound {
		return nil, &EligibilityError{TaskID: taskID, VolunteerID: volunteerID,
			Reason: "no approved application"}
	}
	if err != nil {
		return nil, err
	}

	var attendance models.Attendance
	err = e.db.Where("task_id = ? AND volunteer_id = ?", taskID, volunteerID).First(&attendance).Error
	if err == gorm.ErrRecordNotFound {
		return nil, &EligibilityError{TaskID: taskID, VolunteerID: volunteerID,
			Reason: "no attendance record"}
	}
	if err != nil {
		return nil, err
	}
	if attendance.Status != models.AttendanceStatusPresent {
		return nil, &EligibilityError{TaskID: taskID, VolunteerID: volunteerID,
			Reason: fmt.Sprintf("attendance is %s, not PRESENT", attendance.Status)}
	}

	var volunteer models.User
	if err := e.db.Where("id = ?", volunteerID).First(&volunteer).Error; err != nil {
		return nil, err
	}
	var owner models.User
	if err := e.db.Where("id = ?", task.OwnerID).First(&owner).Error; err != nil {
		return nil, err
	}

	number, err := e.uniqueCertificateNumber(taskID, volunteerID)
	if err != nil {
		return nil, err
	}

	issuedAt := e.clock.Now()
	data := renderer.CertificateData{
		CertificateNumber: number,
		TaskTitle:         task.Title,
		TaskLocation:      task.Location,
		TaskDate:          task.ScheduledDate,
		VolunteerName:     volunteer.Name,
		OrganizationName:  owner.OrganizationName,
		HoursCompleted:    attendance.HoursCompleted,
		IssuedAt:          issuedAt,
	}

	document, err := e.renderer.Render(data)
	if err != nil {
		return nil, &RenderError{Err: err}
	}

	docRef, err := e.docs.Save(number+".pdf", document)
	if err != nil {
		return nil, &RenderError{Err: err}
	}

	certificate := models.Certificate{
		TaskID:            taskID,
		VolunteerID:       volunteerID,
		CertificateNumber: number,
		HoursCompleted:    attendance.HoursCompleted,
		IssuedAt:          issuedAt,
		DocumentRef:       docRef,
	}

	res := e.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "task_id"}, {Name: "volunteer_id"}},
		DoNothing: true,
	}).Create(&certificate)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Another writer got there first; idempotence means returning theirs.
		var winner models.Certificate
		if err := e.db.Where("task_id = ? AND volunteer_id = ?", taskID, volunteerID).
			First(&winner).Error; err != nil {
			return nil, err
		}
		return &winner, nil
	}
	return &certificate, nil
}

// IssueAllForTask sweeps a task's approved applications, issuing
// independently per volunteer. Failures are collected, never aborting the
// sweep.
func (e *Engine) IssueAllForTask(taskID uint) ([]IssueResult, error) {
	var apps []models.Application
	if err := e.db.Where("task_id = ? AND status = ? AND is_deleted = ?",
		taskID, models.ApplicationStatusApproved, false).
		Order("volunteer_id asc").Find(&apps).Error; err != nil {
		return nil, err
	}

	results := make([]IssueResult, 0, len(apps))
	for _, app := range apps {
		cert, err := e.IssueIfEligible(taskID, app.VolunteerID)
		result := IssueResult{VolunteerID: app.VolunteerID, Certificate: cert, Err: err}
		if err != nil {
			result.Error = err.Error()
		}
		results = append(results, result)
	}
	return results, nil
}

// GetCertificate loads a certificate by id.
func (e *Engine) GetCertificate(id uint) (*models.Certificate, error) {
	var cert models.Certificate
	if err := e.db.Where("id = ?", id).First(&cert).Error; err != nil {
		return nil, err
	}
	return &cert, nil
}

// ListCertificatesForVolunteer returns a volunteer's certificates.
func (e *Engine) ListCertificatesForVolunteer(volunteerID uint) ([]models.Certificate, error) {
	var certs []models.Certificate
	if err := e.db.Where("volunteer_id = ?", volunteerID).
		Order("issued_at desc").Find(&certs).Error; err != nil {
		return nil, err
	}
	return certs, nil
}

// uniqueCertificateNumber generates a human-legible, globally unique
// certificate number and collision-checks it against existing rows.
func (e *Engine) uniqueCertificateNumber(taskID, volunteerID uint) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
		number := fmt.Sprintf("VOL-%d-%d-%s", taskID, volunteerID, suffix)

		var count int64
		if err := e.db.Model(&models.Certificate{}).
			Where("certificate_number = ?", number).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return number, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique certificate number")
}
