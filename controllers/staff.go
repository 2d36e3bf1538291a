package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/victtorciferri/business-management-system-sub005/db"
	"github.com/victtorciferri/business-management-system-sub005/models"
	"github.com/victtorciferri/business-management-system-sub005/utils"
)

// StaffInput is the create/update payload for a staff member.
type StaffInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone"`
	Title    string `json:"title"`
	IsActive *bool  `json:"is_active"`
}

// GetAllStaff returns every staff member of the business.
func GetAllStaff(c *fiber.Ctx) error {
	businessID, ok := c.Locals("businessID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Business ID not found in context",
		})
	}

	var staff []models.Staff
	if err := db.DB.Where("business_id = ?", businessID).
		Order("name asc").
		Find(&staff).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch staff",
		})
	}
	return c.JSON(staff)
}

func GetStaff(c *fiber.Ctx) error {
	businessID, ok := c.Locals("businessID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Business ID not found in context",
		})
	}

	id := c.Params("id")
	var staff models.Staff
	if err := db.DB.Preload("AvailabilityWindows").
		Where("business_id = ?", businessID).
		First(&staff, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Staff member not found",
		})
	}
	return c.JSON(staff)
}

// CreateStaff creates a new staff member
func CreateStaff(c *fiber.Ctx) error {
	businessID, ok := c.Locals("businessID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Business ID not found in context",
		})
	}

	var input StaffInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid staff payload",
			Error:   err.Error(),
		})
	}

	staff := models.Staff{
		BusinessID: businessID,
		Name:       input.Name,
		Email:      input.Email,
		Phone:      input.Phone,
		Title:      input.Title,
		IsActive:   true,
	}
	if input.IsActive != nil {
		staff.IsActive = *input.IsActive
	}

	if err := db.DB.Create(&staff).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create staff member",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(staff)
}

// UpdateStaff updates a staff member
func UpdateStaff(c *fiber.Ctx) error {
	businessID, ok := c.Locals("businessID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Business ID not found in context",
		})
	}

	id := c.Params("id")
	var staff models.Staff
	if err := db.DB.Where("business_id = ?", businessID).First(&staff, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Staff member not found",
		})
	}

	var input StaffInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if input.Name != "" {
		staff.Name = input.Name
	}
	if input.Email != "" {
		staff.Email = input.Email
	}
	if input.Phone != "" {
		staff.Phone = input.Phone
	}
	if input.Title != "" {
		staff.Title = input.Title
	}
	if input.IsActive != nil {
		staff.IsActive = *input.IsActive
	}

	if err := db.DB.Save(&staff).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update staff member",
		})
	}

	// Deactivation hides the staff member from the portal; cached slot
	// lists may still show them until the TTL runs out.
	if input.IsActive != nil && !*input.IsActive {
		Slots.InvalidateStaff(c.Context(), businessID, staff.ID)
	}
	return c.JSON(staff)
}

// DeleteStaff soft-deletes a staff member. Their appointment history stays.
func DeleteStaff(c *fiber.Ctx) error {
	businessID, ok := c.Locals("businessID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Business ID not found in context",
		})
	}

	id := c.Params("id")
	var staff models.Staff
	if err := db.DB.Where("business_id = ?", businessID).First(&staff, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Staff member not found",
		})
	}
	if err := db.DB.Delete(&staff).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete staff member",
		})
	}

	Slots.InvalidateStaff(c.Context(), businessID, staff.ID)
	return c.SendStatus(fiber.StatusNoContent)
}
