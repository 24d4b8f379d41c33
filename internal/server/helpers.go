package server

import (
	"errors"

	"devconnect/internal/middleware"
	"devconnect/internal/models"

	"github.com/gofiber/fiber/v2"
)

// handleError maps an application error onto the wire format. Missing
// resources and malformed ids are reported as 400 by contract, so not-found
// shares the validation status.
func handleError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case models.CodeNotFound, models.CodeValidation:
			return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
		case models.CodeUnauthorized:
			return models.RespondWithError(c, fiber.StatusUnauthorized, appErr)
		}
		middleware.Logger.ErrorContext(c.UserContext(), "internal error",
			"error", appErr.Error())
		return models.RespondWithError(c, fiber.StatusInternalServerError, appErr)
	}

	middleware.Logger.ErrorContext(c.UserContext(), "unhandled error",
		"error", err.Error())
	return models.RespondWithError(c, fiber.StatusInternalServerError,
		models.NewInternalError(err))
}

// currentUserID returns the authenticated user id set by AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	if uid, ok := c.Locals("userID").(uint); ok {
		return uid
	}
	return 0
}
