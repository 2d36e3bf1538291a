package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/victtorciferri/business-management-system-sub005/db"
	"github.com/victtorciferri/business-management-system-sub005/models"
	"github.com/victtorciferri/business-management-system-sub005/utils"
)

// ServiceInput is the create/update payload for a service offering.
type ServiceInput struct {
	Name            string  `json:"name" validate:"required"`
	Description     string  `json:"description"`
	DurationMinutes int     `json:"duration_minutes" validate:"required,gt=0"`
	Price           float64 `json:"price" validate:"gte=0"`
	ServiceType     string  `json:"service_type" validate:"omitempty,oneof=individual class"`
	Capacity        int     `json:"capacity" validate:"omitempty,gte=1"`
	IsActive        *bool   `json:"is_active"`
}

// GetAllServices returns every service of the business, including inactive
// ones. The portal catalog filters to active; the dashboard sees all.
func GetAllServices(c *fiber.Ctx) error {
	businessID, ok := c.Locals("businessID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Business ID not found in context",
		})
	}

	var services []models.Service
	if err := db.DB.Where("business_id = ?", businessID).
		Order("name asc").
		Find(&services).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(services)
}

func GetService(c *fiber.Ctx) error {
	businessID, ok := c.Locals("businessID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Business ID not found in context",
		})
	}

	id := c.Params("id")
	var service models.Service
	if err := db.DB.Where("business_id = ?", businessID).First(&service, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}
	return c.JSON(service)
}

// CreateService creates a new service offering
func CreateService(c *fiber.Ctx) error {
	businessID, ok := c.Locals("businessID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Business ID not found in context",
		})
	}

	var input ServiceInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid service payload",
			Error:   err.Error(),
		})
	}

	service := models.Service{
		BusinessID:      businessID,
		Name:            input.Name,
		Description:     input.Description,
		DurationMinutes: input.DurationMinutes,
		Price:           input.Price,
		ServiceType:     models.ServiceType(input.ServiceType),
		Capacity:        input.Capacity,
	}
	if input.IsActive != nil {
		service.IsActive = *input.IsActive
	} else {
		service.IsActive = true
	}

	if err := db.DB.Create(&service).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create service",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(service)
}

// UpdateService updates a service. Duration and capacity changes only
// affect future bookings: existing appointments keep their snapshots.
func UpdateService(c *fiber.Ctx) error {
	businessID, ok := c.Locals("businessID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Business ID not found in context",
		})
	}

	id := c.Params("id")
	var service models.Service
	if err := db.DB.Where("business_id = ?", businessID).First(&service, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}

	var input ServiceInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if input.Name != "" {
		service.Name = input.Name
	}
	if input.Description != "" {
		service.Description = input.Description
	}
	if input.DurationMinutes != 0 {
		if input.DurationMinutes < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "duration_minutes must be positive",
			})
		}
		service.DurationMinutes = input.DurationMinutes
	}
	if input.Price != 0 {
		service.Price = input.Price
	}
	if input.ServiceType != "" {
		if input.ServiceType != string(models.ServiceIndividual) && input.ServiceType != string(models.ServiceClass) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "service_type must be individual or class",
			})
		}
		service.ServiceType = models.ServiceType(input.ServiceType)
	}
	if input.Capacity != 0 {
		if input.Capacity < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "capacity must be at least 1",
			})
		}
		service.Capacity = input.Capacity
	}
	if input.IsActive != nil {
		service.IsActive = *input.IsActive
	}

	if err := db.DB.Save(&service).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update service",
		})
	}
	return c.JSON(service)
}

// DeleteService soft-deletes a service. Existing appointments keep their
// duration snapshots, so history stays intact.
func DeleteService(c *fiber.Ctx) error {
	businessID, ok := c.Locals("businessID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Business ID not found in context",
		})
	}

	id := c.Params("id")
	var service models.Service
	if err := db.DB.Where("business_id = ?", businessID).First(&service, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}
	if err := db.DB.Delete(&service).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete service",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
