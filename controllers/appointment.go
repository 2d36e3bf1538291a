package controllers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/victtorciferri/business-management-system-sub005/booking"
	"github.com/victtorciferri/business-management-system-sub005/db"
	"github.com/victtorciferri/business-management-system-sub005/models"
	"github.com/victtorciferri/business-management-system-sub005/utils"
)

// BookAppointmentInput is the dashboard booking payload. Staff book on
// behalf of an existing customer, so the customer ID is explicit.
type BookAppointmentInput struct {
	CustomerID uint      `json:"customer_id" validate:"required"`
	ServiceID  uint      `json:"service_id" validate:"required"`
	StaffID    uint      `json:"staff_id" validate:"required"`
	StartTime  time.Time `json:"start_time" validate:"required"`
	Notes      string    `json:"notes"`
}

// GetAppointments godoc
// @Summary List appointments for the business
// @Description List appointments, scoped to upcoming or history
// @Tags appointments
// @Accept json
// @Produce json
// @Param scope query string false "upcoming, history or all"
// @Param status query string false "scheduled, completed or cancelled"
// @Param staff_id query int false "Filter by staff member"
// @Success 200 {object} fiber.Map
// @Failure 500 {object} utils.ErrorResponse
// @Router /dashboard/appointments [get]
func GetAppointments(c *fiber.Ctx) error {
	businessID, ok := c.Locals("businessID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Business ID not found in context",
		})
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	scope := c.Query("scope", "upcoming")
	if scope != "upcoming" && scope != "history" && scope != "all" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "scope must be upcoming, history or all",
		})
	}
	status := c.Query("status")
	switch models.AppointmentStatus(status) {
	case "", models.StatusScheduled, models.StatusCompleted, models.StatusCancelled:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "status must be scheduled, completed or cancelled",
		})
	}
	staffID := c.QueryInt("staff_id")
	now := time.Now().UTC()

	scoped := func() *gorm.DB {
		q := db.DB.Model(&models.Appointment{}).Where("business_id = ?", businessID)
		if staffID > 0 {
			q = q.Where("staff_id = ?", staffID)
		}
		if status != "" {
			q = q.Where("status = ?", status)
		}
		switch scope {
		case "upcoming":
			q = q.Where("start_time >= ? AND status = ?", now, models.StatusScheduled)
		case "history":
			q = q.Where("start_time < ? OR status <> ?", now, models.StatusScheduled)
		}
		return q
	}

	var count int64
	scoped().Count(&count)

	order := "start_time asc"
	if scope != "upcoming" {
		order = "start_time desc"
	}

	var appointments []models.Appointment
	if err := scoped().
		Preload("Service").Preload("Staff").Preload("Customer").
		Order(order).
		Limit(limit).
		Offset(offset).
		Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"appointments": appointments,
		"total":        count,
		"page":         page,
		"limit":        limit,
		"pages":        (int(count) + limit - 1) / limit,
	})
}

// GetAppointment godoc
// @Summary Get an appointment by ID
// @Tags appointments
// @Produce json
// @Param id path int true "Appointment ID"
// @Success 200 {object} models.Appointment
// @Failure 404 {object} utils.ErrorResponse
// @Router /dashboard/appointments/{id} [get]
func GetAppointment(c *fiber.Ctx) error {
	businessID, ok := c.Locals("businessID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Business ID not found in context",
		})
	}

	id := c.Params("id")
	var appointment models.Appointment
	if err := db.DB.Preload("Service").Preload("Staff").Preload("Customer").
		Where("business_id = ?", businessID).
		First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointment)
}

// CreateAppointment godoc
// @Summary Book an appointment on behalf of a customer
// @Tags appointments
// @Accept json
// @Produce json
// @Param appointment body BookAppointmentInput true "Booking"
// @Success 201 {object} models.Appointment
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /dashboard/appointments [post]
func CreateAppointment(c *fiber.Ctx) error {
	businessID, ok := c.Locals("businessID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Business ID not found in context",
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

	var customer models.Customer
	if err := db.DB.Where("business_id = ?", businessID).First(&customer, input.CustomerID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Customer not found",
			Error:   err.Error(),
		})
	}

	appointment, err := Engine.TryBook(c.Context(), booking.BookingRequest{
		BusinessID: businessID,
		CustomerID: customer.ID,
		ServiceID:  input.ServiceID,
		StaffID:    input.StaffID,
		StartTime:  input.StartTime,
		Notes:      input.Notes,
	})
	if err != nil {
		return utils.BookingError(c, "Could not book appointment", err)
	}

	InvalidateSlotDay(c.Context(), appointment)
	return c.Status(fiber.StatusCreated).JSON(appointment)
}

// CancelAppointment godoc
// @Summary Cancel an appointment
// @Description Staff cancellations are not bound by the customer cancellation window
// @Tags appointments
// @Produce json
// @Param id path int true "Appointment ID"
// @Success 200 {object} models.Appointment
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /dashboard/appointments/{id}/cancel [post]
func CancelAppointment(c *fiber.Ctx) error {
	businessID, ok := c.Locals("businessID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Business ID not found in context",
		})
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid appointment ID",
		})
	}

	actor := booking.Actor{Role: booking.ActorStaff}
	if role, _ := c.Locals("role").(string); role == "admin" {
		actor.Role = booking.ActorAdmin
	}

	appointment, err := Engine.Cancel(c.Context(), businessID, uint(id), actor)
	if err != nil {
		return utils.BookingError(c, "Could not cancel appointment", err)
	}

	InvalidateSlotDay(c.Context(), appointment)
	return c.JSON(appointment)
}

// CompleteAppointment godoc
// @Summary Mark an appointment as completed
// @Tags appointments
// @Produce json
// @Param id path int true "Appointment ID"
// @Success 200 {object} models.Appointment
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /dashboard/appointments/{id}/complete [post]
func CompleteAppointment(c *fiber.Ctx) error {
	businessID, ok := c.Locals("businessID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Business ID not found in context",
		})
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid appointment ID",
		})
	}

	appointment, err := Engine.Complete(c.Context(), businessID, uint(id))
	if err != nil {
		return utils.BookingError(c, "Could not complete appointment", err)
	}
	return c.JSON(appointment)
}
