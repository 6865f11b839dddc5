package middleware

import (
	"errors"

	"volunect/lifecycle"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// EngineErrorResponse translates a typed lifecycle error into the standard
// JSON envelope. Retryable failures surface as such; everything else is a
// caller logic error and should not be retried verbatim.
func EngineErrorResponse(c *fiber.Ctx, err error) error {
	var (
		validation  *lifecycle.ValidationError
		authz       *lifecycle.AuthorizationError
		closedTask  *lifecycle.ClosedTaskError
		invalid     *lifecycle.InvalidStateError
		duplicate   *lifecycle.DuplicateApplicationError
		notApproved *lifecycle.NotApprovedError
		eligibility *lifecycle.EligibilityError
		render      *lifecycle.RenderError
		conflict    *lifecycle.ConflictError
	)

	switch {
	case errors.As(err, &validation):
		return ValidationErrorResponse(c, validation.Fields)
	case errors.As(err, &authz):
		return JsonResponse(c, fiber.StatusForbidden, false, authz.Error(), nil)
	case errors.As(err, &closedTask):
		return JsonResponse(c, fiber.StatusBadRequest, false, closedTask.Error(), nil)
	case errors.As(err, &invalid):
		return JsonResponse(c, fiber.StatusBadRequest, false, invalid.Error(), nil)
	case errors.As(err, &duplicate):
		return JsonResponse(c, fiber.StatusConflict, false, duplicate.Error(), nil)
	case errors.As(err, &notApproved):
		return JsonResponse(c, fiber.StatusBadRequest, false, notApproved.Error(), nil)
	case errors.As(err, &eligibility):
		return JsonResponse(c, fiber.StatusConflict, false, eligibility.Error(), fiber.Map{"retryable": true})
	case errors.As(err, &render):
		return JsonResponse(c, fiber.StatusServiceUnavailable, false, render.Error(), fiber.Map{"retryable": true})
	case errors.As(err, &conflict):
		return JsonResponse(c, fiber.StatusConflict, false, conflict.Error(), nil)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return JsonResponse(c, fiber.StatusNotFound, false, "Record not found!", nil)
	default:
		return JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
	}
}
