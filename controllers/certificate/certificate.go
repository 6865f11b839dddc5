package controllers

import (
	"strconv"
	"strings"

	"volunect/lifecycle"
	"volunect/middleware"
	"volunect/utils"

	"github.com/gofiber/fiber/v2"
)

// IssueForTask re-runs the certificate sweep over a completed task's
// approved volunteers. Issuance is idempotent, so retrying after a renderer
// outage is safe.
func IssueForTask(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	taskID := c.Locals("taskID").(uint)

	task, err := lifecycle.Default.GetTask(taskID)
	if err != nil {
		return middleware.EngineErrorResponse(c, err)
	}
	if task.OwnerID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the task owner can issue certificates!", nil)
	}

	results, err := lifecycle.Default.IssueAllForTask(taskID)
	if err != nil {
		return middleware.EngineErrorResponse(c, err)
	}

	issued := 0
	for _, r := range results {
		if r.Err == nil {
			issued++
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate sweep finished!", fiber.Map{
		"results": results,
		"issued":  issued,
		"total":   len(results),
	})
}

// ListMine returns the authenticated volunteer's certificates.
func ListMine(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	certs, err := lifecycle.Default.ListCertificatesForVolunteer(userID)
	if err != nil {
		return middleware.EngineErrorResponse(c, err)
	}

	type certificateWithURL struct {
		ID                uint    `json:"id"`
		TaskID            uint    `json:"task_id"`
		CertificateNumber string  `json:"certificate_number"`
		HoursCompleted    float64 `json:"hours_completed"`
		IssuedAt          string  `json:"issued_at"`
		DocumentURL       string  `json:"document_url"`
	}

	result := make([]certificateWithURL, len(certs))
	for i, cert := range certs {
		result[i] = certificateWithURL{
			ID:                cert.ID,
			TaskID:            cert.TaskID,
			CertificateNumber: cert.CertificateNumber,
			HoursCompleted:    cert.HoursCompleted,
			IssuedAt:          cert.IssuedAt.Format("2006-01-02"),
			DocumentURL:       utils.GetDocumentURL(cert.DocumentRef),
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": result,
		"total":        len(result),
	})
}

// GetCertificate returns one certificate; visible to its volunteer and the
// issuing task's owner.
func GetCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	idStr := strings.TrimSpace(c.Params("id"))
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Certificate ID!", nil)
	}

	cert, err := lifecycle.Default.GetCertificate(uint(id))
	if err != nil {
		return middleware.EngineErrorResponse(c, err)
	}

	if cert.VolunteerID != userID {
		task, err := lifecycle.Default.GetTask(cert.TaskID)
		if err != nil || task.OwnerID != userID {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You cannot view this certificate!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate fetched successfully!", cert)
}
