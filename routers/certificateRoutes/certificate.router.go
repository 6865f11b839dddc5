package certificateRoutes

import (
	certificateControllers "volunect/controllers/certificate"
	"volunect/middleware"
	"volunect/models"
	taskValidator "volunect/validators/task"

	"github.com/gofiber/fiber/v2"
)

// SetupCertificateRoutes sets up the certificate issuance and lookup routes
func SetupCertificateRoutes(app *fiber.App) {
	taskGroup := app.Group("/task")

	// Owning NGO re-triggers the idempotent issuance sweep
	taskGroup.Post("/:id/certificates/issue", middleware.JWTMiddleware, middleware.RequireRole(models.RoleNGO), taskValidator.TaskID(), certificateControllers.IssueForTask)

	certificateGroup := app.Group("/certificate")

	certificateGroup.Get("/list", middleware.JWTMiddleware, middleware.RequireRole(models.RoleVolunteer), certificateControllers.ListMine)
	certificateGroup.Get("/:id", middleware.JWTMiddleware, certificateControllers.GetCertificate)
}
