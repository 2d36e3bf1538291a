package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/victtorciferri/business-management-system-sub005/db"
	"github.com/victtorciferri/business-management-system-sub005/models"
	"github.com/victtorciferri/business-management-system-sub005/utils"
)

// AvailabilityWindowInput is the payload for creating or updating a weekly
// availability window. Times are wall clocks in the business timezone.
type AvailabilityWindowInput struct {
	StaffID     uint   `json:"staff_id" validate:"required"`
	DayOfWeek   *int   `json:"day_of_week" validate:"required,min=0,max=6"`
	StartTime   string `json:"start_time" validate:"required"`
	EndTime     string `json:"end_time" validate:"required"`
	IsAvailable *bool  `json:"is_available"`
}

// GetStaffAvailability lists the weekly windows for one staff member.
func GetStaffAvailability(c *fiber.Ctx) error {
	businessID, ok := c.Locals("businessID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Business ID not found in context",
		})
	}

	staffID, err := c.ParamsInt("id")
	if err != nil || staffID < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid staff ID",
		})
	}

	var staff models.Staff
	if err := db.DB.Where("business_id = ?", businessID).First(&staff, staffID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Staff member not found",
		})
	}

	var windows []models.AvailabilityWindow
	if err := db.DB.Where("staff_id = ?", staffID).
		Order("day_of_week asc, start_time asc").
		Find(&windows).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch availability windows",
		})
	}
	return c.JSON(windows)
}

// CreateAvailabilityWindow adds a weekly window after checking clock order
// and overlap against the staff member's other windows on the same day.
func CreateAvailabilityWindow(c *fiber.Ctx) error {
	businessID, ok := c.Locals("businessID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Business ID not found in context",
		})
	}

	var input AvailabilityWindowInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid availability window",
			Error:   err.Error(),
		})
	}

	var staff models.Staff
	if err := db.DB.Where("business_id = ?", businessID).First(&staff, input.StaffID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Staff member not found",
		})
	}

	window := models.AvailabilityWindow{
		BusinessID: businessID,
		StaffID:    input.StaffID,
		DayOfWeek:  models.DayOfWeek(*input.DayOfWeek),
		StartTime:  input.StartTime,
		EndTime:    input.EndTime,
	}
	if input.IsAvailable != nil {
		window.IsAvailable = *input.IsAvailable
	} else {
		window.IsAvailable = true
	}

	if err := checkWindow(&window, 0); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
			Message: "Invalid availability window",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Create(&window).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create availability window",
			Error:   err.Error(),
		})
	}

	Slots.InvalidateStaff(c.Context(), businessID, window.StaffID)
	return c.Status(fiber.StatusCreated).JSON(window)
}

// UpdateAvailabilityWindow edits a window in place with the same checks as
// creation, excluding the window itself from the overlap scan.
func UpdateAvailabilityWindow(c *fiber.Ctx) error {
	businessID, ok := c.Locals("businessID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Business ID not found in context",
		})
	}

	id := c.Params("id")
	var window models.AvailabilityWindow
	if err := db.DB.Where("business_id = ?", businessID).First(&window, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Availability window not found",
		})
	}

	var input AvailabilityWindowInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	// Partial update: only the provided fields change. StaffID is fixed,
	// windows move with their staff member.
	if input.DayOfWeek != nil {
		window.DayOfWeek = models.DayOfWeek(*input.DayOfWeek)
	}
	if input.StartTime != "" {
		window.StartTime = input.StartTime
	}
	if input.EndTime != "" {
		window.EndTime = input.EndTime
	}
	if input.IsAvailable != nil {
		window.IsAvailable = *input.IsAvailable
	}

	if window.DayOfWeek < models.Sunday || window.DayOfWeek > models.Saturday {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "day_of_week must be between 0 (Sunday) and 6 (Saturday)",
		})
	}
	if err := checkWindow(&window, window.ID); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(utils.ErrorResponse{
			Message: "Invalid availability window",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Save(&window).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update availability window",
			Error:   err.Error(),
		})
	}

	Slots.InvalidateStaff(c.Context(), businessID, window.StaffID)
	return c.JSON(window)
}

// DeleteAvailabilityWindow removes a window.
func DeleteAvailabilityWindow(c *fiber.Ctx) error {
	businessID, ok := c.Locals("businessID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Business ID not found in context",
		})
	}

	id := c.Params("id")
	var window models.AvailabilityWindow
	if err := db.DB.Where("business_id = ?", businessID).First(&window, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Availability window not found",
		})
	}

	if err := db.DB.Delete(&window).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete availability window",
		})
	}

	Slots.InvalidateStaff(c.Context(), businessID, window.StaffID)
	return c.SendStatus(fiber.StatusNoContent)
}

// checkWindow validates clock order and rejects overlap with the staff
// member's other windows on the same weekday. excludeID skips the window
// being updated.
func checkWindow(window *models.AvailabilityWindow, excludeID uint) error {
	start, end, err := window.ClockRange()
	if err != nil {
		return err
	}
	if start >= end {
		return fmt.Errorf("start_time %s must be before end_time %s", window.StartTime, window.EndTime)
	}

	var others []models.AvailabilityWindow
	query := db.DB.Where("staff_id = ? AND day_of_week = ?", window.StaffID, window.DayOfWeek)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Find(&others).Error; err != nil {
		return err
	}

	for i := range others {
		os, oe, err := others[i].ClockRange()
		if err != nil {
			continue // skip windows with bad stored clocks rather than block edits
		}
		if start < oe && os < end {
			return fmt.Errorf("window %s-%s overlaps existing window %s-%s",
				window.StartTime, window.EndTime, others[i].StartTime, others[i].EndTime)
		}
	}
	return nil
}
