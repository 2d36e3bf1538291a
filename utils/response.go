package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/victtorciferri/business-management-system-sub005/booking"
)

// ErrorResponse is the JSON error shape used across all handlers.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// StatusForBookingError maps engine outcomes to HTTP statuses.
func StatusForBookingError(err error) int {
	switch {
	case errors.Is(err, booking.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, booking.ErrOutsideAvailability):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, booking.ErrSlotConflict),
		errors.Is(err, booking.ErrCapacityExceeded),
		errors.Is(err, booking.ErrInvalidTransition):
		return fiber.StatusConflict
	case errors.Is(err, booking.ErrPolicyViolation):
		return fiber.StatusForbidden
	case errors.Is(err, booking.ErrRetryable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// BookingError writes an engine error with its mapped status.
func BookingError(c *fiber.Ctx, message string, err error) error {
	return c.Status(StatusForBookingError(err)).JSON(ErrorResponse{
		Message: message,
		Error:   err.Error(),
	})
}
