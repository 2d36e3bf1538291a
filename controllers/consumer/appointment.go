package consumer

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/victtorciferri/business-management-system-sub005/booking"
	"github.com/victtorciferri/business-management-system-sub005/controllers"
	"github.com/victtorciferri/business-management-system-sub005/db"
	"github.com/victtorciferri/business-management-system-sub005/middleware"
	"github.com/victtorciferri/business-management-system-sub005/models"
	"github.com/victtorciferri/business-management-system-sub005/utils"
)

var validate = validator.New()

// CustomerInput identifies the person booking. Customers are keyed by email
// within a business; repeat bookers are matched to their existing record.
type CustomerInput struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone"`
}

// BookAppointmentInput is the portal booking payload.
type BookAppointmentInput struct {
	ServiceID uint          `json:"service_id" validate:"required"`
	StaffID   uint          `json:"staff_id" validate:"required"`
	StartTime time.Time     `json:"start_time" validate:"required"`
	Notes     string        `json:"notes"`
	Customer  CustomerInput `json:"customer" validate:"required"`
}

// CancelAppointmentInput carries the proof of ownership for a cancellation.
type CancelAppointmentInput struct {
	ConfirmationCode string `json:"confirmation_code" validate:"required"`
}

// BookAppointment books a slot for a portal visitor. The response includes
// the confirmation code the customer needs to view or cancel the booking.
func BookAppointment(c *fiber.Ctx) error {
	business := middleware.BusinessFromLocals(c)
	if business == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Business not found",
		})
	}

	var input BookAppointmentInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid booking payload",
			Error:   err.Error(),
		})
	}

	// Staff can backfill past appointments from the dashboard; portal
	// visitors cannot book into the past beyond the grace period.
	if input.StartTime.UTC().Before(time.Now().UTC().Add(-business.BookingGrace())) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "start_time is in the past",
		})
	}

	var service models.Service
	if err := db.DB.Where("id = ? AND business_id = ? AND is_active = ?", input.ServiceID, business.ID, true).
		First(&service).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}
	var staff models.Staff
	if err := db.DB.Where("id = ? AND business_id = ? AND is_active = ?", input.StaffID, business.ID, true).
		First(&staff).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Staff member not found",
		})
	}

	customer, err := findOrCreateCustomer(business.ID, input.Customer)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to record customer",
			Error:   err.Error(),
		})
	}

	appointment, err := controllers.Engine.TryBook(c.Context(), booking.BookingRequest{
		BusinessID: business.ID,
		CustomerID: customer.ID,
		ServiceID:  input.ServiceID,
		StaffID:    input.StaffID,
		StartTime:  input.StartTime,
		Notes:      input.Notes,
	})
	if err != nil {
		return utils.BookingError(c, "Could not book appointment", err)
	}

	controllers.InvalidateSlotDay(c.Context(), appointment)
	return c.Status(fiber.StatusCreated).JSON(appointment)
}

// GetAppointment returns one appointment to the customer who booked it. The
// confirmation code doubles as the access token.
func GetAppointment(c *fiber.Ctx) error {
	business := middleware.BusinessFromLocals(c)
	if business == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Business not found",
		})
	}

	code := c.Query("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Confirmation code is required",
		})
	}

	id := c.Params("id")
	var appointment models.Appointment
	if err := db.DB.Preload("Service").Preload("Staff").
		Where("business_id = ? AND confirmation_code = ?", business.ID, code).
		First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Appointment not found",
		})
	}
	return c.JSON(appointment)
}

// CancelAppointment cancels a booking on behalf of the customer. Customer
// cancellations are refused inside the business's cancellation window.
func CancelAppointment(c *fiber.Ctx) error {
	business := middleware.BusinessFromLocals(c)
	if business == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Business not found",
		})
	}

	var input CancelAppointmentInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Confirmation code is required",
			Error:   err.Error(),
		})
	}

	id := c.Params("id")
	var appointment models.Appointment
	if err := db.DB.Where("business_id = ? AND confirmation_code = ?", business.ID, input.ConfirmationCode).
		First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Appointment not found",
		})
	}

	cancelled, err := controllers.Engine.Cancel(c.Context(), business.ID, appointment.ID, booking.Actor{
		Role:       booking.ActorCustomer,
		CustomerID: appointment.CustomerID,
	})
	if err != nil {
		return utils.BookingError(c, "Could not cancel appointment", err)
	}

	controllers.InvalidateSlotDay(c.Context(), cancelled)
	return c.JSON(cancelled)
}

// findOrCreateCustomer matches the booker to an existing customer record by
// email or creates one. Concurrent first-time bookings can race on the
// unique (business, email) index; losing the insert falls back to the row
// the winner created.
func findOrCreateCustomer(businessID uint, input CustomerInput) (*models.Customer, error) {
	var customer models.Customer
	err := db.DB.Where("business_id = ? AND email = ?", businessID, input.Email).First(&customer).Error
	if err == nil {
		return &customer, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	customer = models.Customer{
		BusinessID: businessID,
		Name:       input.Name,
		Email:      input.Email,
		Phone:      input.Phone,
	}
	if createErr := db.DB.Create(&customer).Error; createErr != nil {
		if err := db.DB.Where("business_id = ? AND email = ?", businessID, input.Email).First(&customer).Error; err != nil {
			return nil, createErr
		}
	}
	return &customer, nil
}
