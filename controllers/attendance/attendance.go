package controllers

import (
	"volunect/lifecycle"
	"volunect/middleware"
	attendanceValidator "volunect/validators/attendance"

	"github.com/gofiber/fiber/v2"
)

// MarkAttendance records or corrects a volunteer's presence for a task.
func MarkAttendance(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	taskID := c.Locals("taskID").(uint)
	req := c.Locals("validatedMarkAttendance").(*attendanceValidator.MarkAttendanceRequest)

	attendance, err := lifecycle.Default.MarkAttendance(taskID, req.VolunteerID, userID, req.Status, req.HoursCompleted)
	if err != nil {
		return middleware.EngineErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attendance marked successfully!", attendance)
}

// ListForTask returns a task's attendance records for its owning NGO.
func ListForTask(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	taskID := c.Locals("taskID").(uint)

	rows, err := lifecycle.Default.ListAttendanceForTask(taskID, userID)
	if err != nil {
		return middleware.EngineErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attendance fetched successfully!", fiber.Map{
		"attendance": rows,
		"total":      len(rows),
	})
}
