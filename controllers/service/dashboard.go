package service

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/victtorciferri/business-management-system-sub005/db"
	"github.com/victtorciferri/business-management-system-sub005/models"
	"github.com/victtorciferri/business-management-system-sub005/utils"
)

// GetDashboardOverview returns headline numbers for the business: today's
// schedule size, upcoming load, lifetime outcomes, and revenue from
// completed appointments.
func GetDashboardOverview(c *fiber.Ctx) error {
	businessID, ok := c.Locals("businessID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Business ID not found in context",
		})
	}

	var business models.Business
	if err := db.DB.First(&business, businessID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Business not found",
		})
	}
	loc, err := business.Location()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Invalid business timezone",
		})
	}

	now := time.Now()
	dayStart, dayEnd, err := utils.DayBounds(utils.LocalDate(now, loc), loc)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute day bounds",
		})
	}

	var statistics struct {
		TodayCount          int64     `json:"today_count"`
		UpcomingCount       int64     `json:"upcoming_count"`
		CompletedCount      int64     `json:"completed_count"`
		CancelledCount      int64     `json:"cancelled_count"`
		PendingPaymentCount int64     `json:"pending_payment_count"`
		TotalRevenue        float64   `json:"total_revenue"`
		LastUpdated         time.Time `json:"last_updated"`
	}

	scoped := func() *gorm.DB {
		return db.DB.Model(&models.Appointment{}).Where("business_id = ?", businessID)
	}

	scoped().Where("start_time >= ? AND start_time < ? AND status = ?",
		dayStart, dayEnd, models.StatusScheduled).Count(&statistics.TodayCount)
	scoped().Where("start_time >= ? AND status = ?",
		now.UTC(), models.StatusScheduled).Count(&statistics.UpcomingCount)
	scoped().Where("status = ?", models.StatusCompleted).Count(&statistics.CompletedCount)
	scoped().Where("status = ?", models.StatusCancelled).Count(&statistics.CancelledCount)
	scoped().Where("status = ? AND payment_status = ?",
		models.StatusScheduled, models.PaymentPending).Count(&statistics.PendingPaymentCount)

	// Revenue counts completed appointments at the service's current price.
	type revenueResult struct {
		TotalRevenue float64
	}
	var revenue revenueResult
	db.DB.Table("appointments").
		Joins("JOIN services ON appointments.service_id = services.id").
		Where("appointments.business_id = ? AND appointments.status = ?", businessID, models.StatusCompleted).
		Select("COALESCE(SUM(services.price), 0) as total_revenue").
		Scan(&revenue)
	statistics.TotalRevenue = revenue.TotalRevenue

	statistics.LastUpdated = time.Now()
	return c.JSON(statistics)
}

// GetDaySchedule returns the appointments of one business-local day, for
// the whole business or one staff member.
func GetDaySchedule(c *fiber.Ctx) error {
	businessID, ok := c.Locals("businessID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Business ID not found in context",
		})
	}

	var business models.Business
	if err := db.DB.First(&business, businessID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Business not found",
		})
	}
	loc, err := business.Location()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Invalid business timezone",
		})
	}

	date := c.Query("date")
	if date == "" {
		date = utils.LocalDate(time.Now(), loc)
	}
	dayStart, dayEnd, err := utils.DayBounds(date, loc)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid date format, use YYYY-MM-DD",
		})
	}

	query := db.DB.Preload("Service").Preload("Staff").Preload("Customer").
		Where("business_id = ? AND start_time >= ? AND start_time < ?", businessID, dayStart, dayEnd)
	if staffID := c.QueryInt("staff_id"); staffID > 0 {
		query = query.Where("staff_id = ?", staffID)
	}

	var appointments []models.Appointment
	if err := query.Order("start_time asc").Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"date":         date,
		"appointments": appointments,
	})
}
