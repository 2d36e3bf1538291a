package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/victtorciferri/business-management-system-sub005/booking"
	"github.com/victtorciferri/business-management-system-sub005/utils"
)

// GetAvailableSlots godoc
// @Summary List bookable slots for a staff member and service on a date
// @Description Slot lists are advisory; booking revalidates under a lock
// @Tags slots
// @Produce json
// @Param staff_id query int true "Staff ID"
// @Param service_id query int true "Service ID"
// @Param date query string true "Date in the business timezone (YYYY-MM-DD)"
// @Success 200 {object} fiber.Map
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /dashboard/slots [get]
func GetAvailableSlots(c *fiber.Ctx) error {
	businessID, ok := c.Locals("businessID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Business ID not found in context",
		})
	}

	staffID := c.QueryInt("staff_id")
	serviceID := c.QueryInt("service_id")
	date := c.Query("date")
	if staffID < 1 || serviceID < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "staff_id and service_id are required",
		})
	}
	if _, err := time.Parse(utils.DateLayout, date); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid date format, use YYYY-MM-DD",
		})
	}

	query := booking.SlotQuery{
		BusinessID: businessID,
		StaffID:    uint(staffID),
		ServiceID:  uint(serviceID),
		Date:       date,
	}

	slots, found := Slots.Get(c.Context(), query)
	if !found {
		var err error
		slots, err = Engine.GenerateSlots(c.Context(), query)
		if err != nil {
			return utils.BookingError(c, "Could not compute available slots", err)
		}
		Slots.Set(c.Context(), query, slots)
	}

	return c.JSON(fiber.Map{
		"slots":      slots,
		"staff_id":   staffID,
		"service_id": serviceID,
		"date":       date,
	})
}
