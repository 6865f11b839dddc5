package controllers

import (
	"volunect/lifecycle"
	"volunect/middleware"
	applicationValidator "volunect/validators/application"

	"github.com/gofiber/fiber/v2"
)

// Apply creates a volunteer application for an open task.
func Apply(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	taskID := c.Locals("taskID").(uint)
	req := c.Locals("validatedApply").(*applicationValidator.ApplyRequest)

	app, err := lifecycle.Default.Apply(taskID, userID, req.Motivation)
	if err != nil {
		return middleware.EngineErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Application submitted successfully!", app)
}

// Decide approves or rejects a pending application, owner only.
func Decide(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	applicationID := c.Locals("applicationID").(uint)
	req := c.Locals("validatedDecide").(*applicationValidator.DecideRequest)

	app, err := lifecycle.Default.Decide(applicationID, userID, req.Outcome)
	if err != nil {
		return middleware.EngineErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Application decided successfully!", app)
}

// ListMine returns the authenticated volunteer's applications.
func ListMine(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	apps, err := lifecycle.Default.ListApplicationsForVolunteer(userID)
	if err != nil {
		return middleware.EngineErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Applications fetched successfully!", fiber.Map{
		"applications": apps,
		"total":        len(apps),
	})
}

// ListForTask returns a task's applications for its owning NGO.
func ListForTask(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	taskID := c.Locals("taskID").(uint)

	apps, err := lifecycle.Default.ListApplicationsForTask(taskID, userID)
	if err != nil {
		return middleware.EngineErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Applications fetched successfully!", fiber.Map{
		"applications": apps,
		"total":        len(apps),
	})
}
