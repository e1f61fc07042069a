package serverutils

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"ai-vocabcoach-be/internal/service"
)

// ErrorHandlerMiddleware maps service sentinel errors to HTTP status codes
// so controllers can just return errors. Unknown errors become 500s with a
// generic message, the detail only goes to the log.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ErrorResponse(ctx, fiberErr.Code, fiberErr.Message)
		}

		status := statusForError(err)
		if status == fiber.StatusInternalServerError {
			log.Printf("[ERROR] %s %s: %v", ctx.Method(), ctx.Path(), err)
			return ErrorResponse(ctx, status, "Internal server error")
		}
		return ErrorResponse(ctx, status, err.Error())
	}
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrWordNotFound),
		errors.Is(err, service.ErrSessionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrSessionComplete),
		errors.Is(err, service.ErrWordAlreadyAdvanced):
		return fiber.StatusConflict
	case errors.Is(err, service.ErrNoEligibleWords),
		errors.Is(err, service.ErrNoActiveWord):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, service.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}
