package applicationValidator

import (
	"strconv"
	"strings"

	"volunect/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ApplyRequest is the validated payload for a volunteer application.
type ApplyRequest struct {
	Motivation string `json:"motivation" validate:"max=2000"`
}

// DecideRequest settles a pending application.
type DecideRequest struct {
	Outcome string `json:"outcome" validate:"required,oneof=approve reject"`
}

func Apply() fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := new(ApplyRequest)
		// Body is optional; an empty motivation is allowed.
		if len(c.Body()) > 0 {
			if err := c.BodyParser(req); err != nil {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
			}
		}

		if err := validate.Struct(req); err != nil {
			errors := map[string]string{"motivation": "Motivation may not exceed 2000 characters!"}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedApply", req)
		return c.Next()
	}
}

func Decide() fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := new(DecideRequest)
		if err := c.BodyParser(req); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(req); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"outcome": "Outcome must be approve or reject!",
			})
		}

		c.Locals("validatedDecide", req)
		return c.Next()
	}
}

// ApplicationID validates the :id route parameter.
func ApplicationID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Application ID is required!", nil)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Application ID!", nil)
		}

		c.Locals("applicationID", uint(id))
		return c.Next()
	}
}
