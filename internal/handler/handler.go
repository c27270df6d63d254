// Package handler translates HTTP requests into service calls and domain
// errors back into status codes.
package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/AdityaYInamdar/interview-portal-backend/internal/domainerr"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/middleware"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/service"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/utils"
)

func actor(c *fiber.Ctx) service.Actor {
	return middleware.ActorFromCtx(c)
}

// sendDomainError maps the service error taxonomy onto HTTP status codes.
func sendDomainError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	}

	switch {
	case domainerr.IsNotFound(err):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case domainerr.IsValidation(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case domainerr.IsConflict(err), domainerr.IsInvalidTransition(err), errors.Is(err, domainerr.ErrAlreadyResolved):
		return utils.SendError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, domainerr.ErrForbidden):
		return utils.SendError(c, fiber.StatusForbidden, err.Error())
	default:
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
