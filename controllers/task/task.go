package controllers

import (
	"time"

	"volunect/lifecycle"
	"volunect/middleware"
	taskValidator "volunect/validators/task"

	"github.com/gofiber/fiber/v2"
)

// CreateTask creates a new volunteering task for the authenticated NGO.
func CreateTask(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	req := c.Locals("validatedCreateTask").(*taskValidator.CreateTaskRequest)
	date := c.Locals("scheduledDate").(time.Time)

	task, err := lifecycle.Default.CreateTask(userID, lifecycle.TaskInput{
		Title:           req.Title,
		Description:     req.Description,
		Location:        req.Location,
		ScheduledDate:   date,
		HoursPerSession: req.HoursPerSession,
		MaxVolunteers:   req.MaxVolunteers,
	})
	if err != nil {
		return middleware.EngineErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Task created successfully!", task)
}

// GetTask returns a single task with its status reconciled.
func GetTask(c *fiber.Ctx) error {
	taskID := c.Locals("taskID").(uint)

	task, err := lifecycle.Default.GetTask(taskID)
	if err != nil {
		return middleware.EngineErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Task fetched successfully!", task)
}

// ListTasks returns tasks matching the optional filters.
func ListTasks(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	filter := lifecycle.TaskFilter{}
	if status, ok := c.Locals("filterStatus").(string); ok {
		filter.Status = &status
	}
	if location, ok := c.Locals("filterLocation").(string); ok {
		filter.Location = &location
	}
	if mine, ok := c.Locals("filterMine").(bool); ok && mine {
		filter.OwnerID = &userID
	}

	tasks, err := lifecycle.Default.ListTasks(filter)
	if err != nil {
		return middleware.EngineErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Tasks fetched successfully!", fiber.Map{
		"tasks": tasks,
		"total": len(tasks),
	})
}

// UpdateTask applies field changes for the owning NGO.
func UpdateTask(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	taskID := c.Locals("taskID").(uint)
	req := c.Locals("validatedUpdateTask").(*taskValidator.UpdateTaskRequest)

	update := lifecycle.TaskUpdate{
		Title:           req.Title,
		Description:     req.Description,
		Location:        req.Location,
		HoursPerSession: req.HoursPerSession,
		MaxVolunteers:   req.MaxVolunteers,
	}
	if date, ok := c.Locals("scheduledDate").(time.Time); ok {
		update.ScheduledDate = &date
	}

	task, err := lifecycle.Default.UpdateTask(taskID, userID, update)
	if err != nil {
		return middleware.EngineErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Task updated successfully!", task)
}

// DeleteTask soft-deletes a task; its pending applications get
// system-rejected.
func DeleteTask(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	taskID := c.Locals("taskID").(uint)

	if err := lifecycle.Default.DeleteTask(taskID, userID); err != nil {
		return middleware.EngineErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Task deleted successfully!", nil)
}

// CancelTask moves an open task to CANCELLED.
func CancelTask(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	taskID := c.Locals("taskID").(uint)

	task, err := lifecycle.Default.CancelTask(taskID, userID)
	if err != nil {
		return middleware.EngineErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Task cancelled successfully!", task)
}

// CompleteTask moves a closed task to COMPLETED and sweeps certificate
// issuance for its approved volunteers.
func CompleteTask(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	taskID := c.Locals("taskID").(uint)

	task, results, err := lifecycle.Default.MarkCompleted(taskID, userID)
	if err != nil {
		return middleware.EngineErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Task completed successfully!", fiber.Map{
		"task":     task,
		"issuance": results,
	})
}
