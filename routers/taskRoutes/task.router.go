package taskRoutes

import (
	taskControllers "volunect/controllers/task"
	"volunect/middleware"
	"volunect/models"
	taskValidator "volunect/validators/task"

	"github.com/gofiber/fiber/v2"
)

// SetupTaskRoutes sets up all task lifecycle routes
func SetupTaskRoutes(app *fiber.App) {
	taskGroup := app.Group("/task")

	// Listing and details (any authenticated user)
	taskGroup.Get("/list", middleware.JWTMiddleware, taskValidator.ListTasks(), taskControllers.ListTasks)
	taskGroup.Get("/:id", middleware.JWTMiddleware, taskValidator.TaskID(), taskControllers.GetTask)

	// Owner-side task management (NGO only)
	taskGroup.Post("/create", middleware.JWTMiddleware, middleware.RequireRole(models.RoleNGO), taskValidator.CreateTask(), taskControllers.CreateTask)
	taskGroup.Put("/:id", middleware.JWTMiddleware, middleware.RequireRole(models.RoleNGO), taskValidator.TaskID(), taskValidator.UpdateTask(), taskControllers.UpdateTask)
	taskGroup.Delete("/:id", middleware.JWTMiddleware, middleware.RequireRole(models.RoleNGO), taskValidator.TaskID(), taskControllers.DeleteTask)
	taskGroup.Post("/:id/cancel", middleware.JWTMiddleware, middleware.RequireRole(models.RoleNGO), taskValidator.TaskID(), taskControllers.CancelTask)
	taskGroup.Post("/:id/complete", middleware.JWTMiddleware, middleware.RequireRole(models.RoleNGO), taskValidator.TaskID(), taskControllers.CompleteTask)
}
