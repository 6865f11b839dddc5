package attendanceRoutes

import (
	attendanceControllers "volunect/controllers/attendance"
	"volunect/middleware"
	"volunect/models"
	attendanceValidator "volunect/validators/attendance"
	taskValidator "volunect/validators/task"

	"github.com/gofiber/fiber/v2"
)

// SetupAttendanceRoutes sets up the attendance recording routes
func SetupAttendanceRoutes(app *fiber.App) {
	taskGroup := app.Group("/task")

	taskGroup.Post("/:id/attendance", middleware.JWTMiddleware, middleware.RequireRole(models.RoleNGO), taskValidator.TaskID(), attendanceValidator.MarkAttendance(), attendanceControllers.MarkAttendance)
	taskGroup.Get("/:id/attendance", middleware.JWTMiddleware, middleware.RequireRole(models.RoleNGO), taskValidator.TaskID(), attendanceControllers.ListForTask)
}
