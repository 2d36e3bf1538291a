package consumer

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/victtorciferri/business-management-system-sub005/booking"
	"github.com/victtorciferri/business-management-system-sub005/controllers"
	"github.com/victtorciferri/business-management-system-sub005/db"
	"github.com/victtorciferri/business-management-system-sub005/middleware"
	"github.com/victtorciferri/business-management-system-sub005/models"
	"github.com/victtorciferri/business-management-system-sub005/utils"
)

// GetServices returns the active services of the business behind the slug.
func GetServices(c *fiber.Ctx) error {
	business := middleware.BusinessFromLocals(c)
	if business == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Business not found",
		})
	}

	var services []models.Service
	if err := db.DB.Where("business_id = ? AND is_active = ?", business.ID, true).
		Order("name asc").
		Find(&services).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch services",
		})
	}

	return c.JSON(fiber.Map{
		"business": fiber.Map{
			"name":     business.Name,
			"slug":     business.Slug,
			"timezone": business.Timezone,
		},
		"services": services,
	})
}

// GetStaff returns the active staff members of the business behind the slug.
func GetStaff(c *fiber.Ctx) error {
	business := middleware.BusinessFromLocals(c)
	if business == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Business not found",
		})
	}

	var staff []models.Staff
	if err := db.DB.Where("business_id = ? AND is_active = ?", business.ID, true).
		Order("name asc").
		Find(&staff).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch staff",
		})
	}
	return c.JSON(fiber.Map{"staff": staff})
}

// GetAvailableSlots returns bookable slots for a staff member and service on
// a given date. The date is interpreted in the business timezone; slot times
// come back as UTC instants.
func GetAvailableSlots(c *fiber.Ctx) error {
	business := middleware.BusinessFromLocals(c)
	if business == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Business not found",
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

	// Hide inactive listings from the portal even when IDs are guessed.
	var service models.Service
	if err := db.DB.Where("id = ? AND business_id = ? AND is_active = ?", serviceID, business.ID, true).
		First(&service).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}
	var staff models.Staff
	if err := db.DB.Where("id = ? AND business_id = ? AND is_active = ?", staffID, business.ID, true).
		First(&staff).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Staff member not found",
		})
	}

	query := booking.SlotQuery{
		BusinessID: business.ID,
		StaffID:    uint(staffID),
		ServiceID:  uint(serviceID),
		Date:       date,
	}

	slots, found := controllers.Slots.Get(c.Context(), query)
	if !found {
		var err error
		slots, err = controllers.Engine.GenerateSlots(c.Context(), query)
		if err != nil {
			return utils.BookingError(c, "Could not compute available slots", err)
		}
		controllers.Slots.Set(c.Context(), query, slots)
	}

	return c.JSON(fiber.Map{
		"slots":      slots,
		"staff_id":   staffID,
		"service_id": serviceID,
		"date":       date,
	})
}
