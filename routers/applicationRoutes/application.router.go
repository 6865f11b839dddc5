package applicationRoutes

import (
	applicationControllers "volunect/controllers/application"
	"volunect/middleware"
	"volunect/models"
	applicationValidator "volunect/validators/application"
	taskValidator "volunect/validators/task"

	"github.com/gofiber/fiber/v2"
)

// SetupApplicationRoutes sets up the application workflow routes
func SetupApplicationRoutes(app *fiber.App) {
	taskGroup := app.Group("/task")

	// Volunteer applies to an open task
	taskGroup.Post("/:id/apply", middleware.JWTMiddleware, middleware.RequireRole(models.RoleVolunteer), taskValidator.TaskID(), applicationValidator.Apply(), applicationControllers.Apply)

	// Owning NGO reviews a task's applications
	taskGroup.Get("/:id/applications", middleware.JWTMiddleware, middleware.RequireRole(models.RoleNGO), taskValidator.TaskID(), applicationControllers.ListForTask)

	applicationGroup := app.Group("/application")

	// Volunteer's own applications
	applicationGroup.Get("/list", middleware.JWTMiddleware, middleware.RequireRole(models.RoleVolunteer), applicationControllers.ListMine)

	// Owning NGO settles a pending application
	applicationGroup.Post("/:id/decide", middleware.JWTMiddleware, middleware.RequireRole(models.RoleNGO), applicationValidator.ApplicationID(), applicationValidator.Decide(), applicationControllers.Decide)
}
