package taskValidator

import (
	"strconv"
	"strings"
	"time"

	"volunect/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CreateTaskRequest is the validated payload for task creation.
type CreateTaskRequest struct {
	Title           string  `json:"title" validate:"required,min=3,max=200"`
	Description     string  `json:"description" validate:"max=5000"`
	Location        string  `json:"location" validate:"required"`
	ScheduledDate   string  `json:"scheduled_date" validate:"required,datetime=2006-01-02"`
	HoursPerSession float64 `json:"hours_per_session" validate:"gte=0"`
	MaxVolunteers   int     `json:"max_volunteers" validate:"required,gt=0"`
}

// UpdateTaskRequest carries optional field updates.
type UpdateTaskRequest struct {
	Title           *string  `json:"title" validate:"omitempty,min=3,max=200"`
	Description     *string  `json:"description" validate:"omitempty,max=5000"`
	Location        *string  `json:"location"`
	ScheduledDate   *string  `json:"scheduled_date" validate:"omitempty,datetime=2006-01-02"`
	HoursPerSession *float64 `json:"hours_per_session" validate:"omitempty,gte=0"`
	MaxVolunteers   *int     `json:"max_volunteers" validate:"omitempty,gt=0"`
}

func CreateTask() fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := new(CreateTaskRequest)
		if err := c.BodyParser(req); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(req); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		date, err := time.Parse("2006-01-02", req.ScheduledDate)
		if err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"scheduled_date": "Scheduled date must be in YYYY-MM-DD format!",
			})
		}

		c.Locals("validatedCreateTask", req)
		c.Locals("scheduledDate", date)
		return c.Next()
	}
}

func UpdateTask() fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := new(UpdateTaskRequest)
		if err := c.BodyParser(req); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(req); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		if req.ScheduledDate != nil {
			date, err := time.Parse("2006-01-02", *req.ScheduledDate)
			if err != nil {
				return middleware.ValidationErrorResponse(c, map[string]string{
					"scheduled_date": "Scheduled date must be in YYYY-MM-DD format!",
				})
			}
			c.Locals("scheduledDate", date)
		}

		c.Locals("validatedUpdateTask", req)
		return c.Next()
	}
}

// TaskID validates the :id route parameter.
func TaskID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Task ID is required!", nil)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Task ID!", nil)
		}

		c.Locals("taskID", uint(id))
		return c.Next()
	}
}

// ListTasks validates optional query filters.
func ListTasks() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if status := c.Query("status"); status != "" {
			switch status {
			case "OPEN", "CLOSED", "COMPLETED", "CANCELLED":
				c.Locals("filterStatus", status)
			default:
				return middleware.ValidationErrorResponse(c, map[string]string{
					"status": "Status must be one of OPEN, CLOSED, COMPLETED, CANCELLED!",
				})
			}
		}
		if location := c.Query("location"); location != "" {
			c.Locals("filterLocation", location)
		}
		if mine := c.Query("mine"); mine == "true" {
			c.Locals("filterMine", true)
		}
		return c.Next()
	}
}

func fieldErrors(err error) map[string]string {
	errors := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			errors[strings.ToLower(fe.Field())] = "Failed validation: " + fe.Tag()
		}
		return errors
	}
	errors["request"] = err.Error()
	return errors
}
