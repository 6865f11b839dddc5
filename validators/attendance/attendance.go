package attendanceValidator

import (
	"strings"

	"volunect/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// MarkAttendanceRequest records a presence decision for one volunteer.
type MarkAttendanceRequest struct {
	VolunteerID    uint    `json:"volunteer_id" validate:"required,gt=0"`
	Status         string  `json:"status" validate:"required,oneof=PRESENT ABSENT"`
	HoursCompleted float64 `json:"hours_completed" validate:"gte=0"`
}

func MarkAttendance() fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := new(MarkAttendanceRequest)
		if err := c.BodyParser(req); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(req); err != nil {
			errors := make(map[string]string)
			if verrs, ok := err.(validator.ValidationErrors); ok {
				for _, fe := range verrs {
					switch strings.ToLower(fe.Field()) {
					case "volunteerid":
						errors["volunteer_id"] = "Volunteer ID is required!"
					case "status":
						errors["status"] = "Status must be PRESENT or ABSENT!"
					case "hourscompleted":
						errors["hours_completed"] = "Hours completed cannot be negative!"
					}
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedMarkAttendance", req)
		return c.Next()
	}
}
