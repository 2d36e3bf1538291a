package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/victtorciferri/business-management-system-sub005/controllers"
	"github.com/victtorciferri/business-management-system-sub005/controllers/service"
	"github.com/victtorciferri/business-management-system-sub005/middleware"
)

// SetupDashboardRoutes configures the staff-facing routes. Everything here
// requires a dashboard JWT; the business scope comes from the token claims.
func SetupDashboardRoutes(app *fiber.App) {
	dashboard := app.Group("/dashboard", middleware.Protected())

	appointments := dashboard.Group("/appointments")
	appointments.Get("/", controllers.GetAppointments)
	appointments.Post("/", controllers.CreateAppointment)
	appointments.Get("/:id", controllers.GetAppointment)
	appointments.Post("/:id/cancel", controllers.CancelAppointment)
	appointments.Post("/:id/complete", controllers.CompleteAppointment)

	dashboard.Get("/slots", controllers.GetAvailableSlots)
	dashboard.Get("/overview", service.GetDashboardOverview)
	dashboard.Get("/schedule", service.GetDaySchedule)

	staff := dashboard.Group("/staff")
	staff.Get("/", controllers.GetAllStaff)
	staff.Post("/", controllers.CreateStaff)
	staff.Get("/:id", controllers.GetStaff)
	staff.Patch("/:id", controllers.UpdateStaff)
	staff.Delete("/:id", middleware.RequireAdmin(), controllers.DeleteStaff)
	staff.Get("/:id/availability", controllers.GetStaffAvailability)

	availability := dashboard.Group("/availability")
	availability.Post("/", controllers.CreateAvailabilityWindow)
	availability.Patch("/:id", controllers.UpdateAvailabilityWindow)
	availability.Delete("/:id", controllers.DeleteAvailabilityWindow)

	services := dashboard.Group("/services")
	services.Get("/", controllers.GetAllServices)
	services.Post("/", controllers.CreateService)
	services.Get("/:id", controllers.GetService)
	services.Put("/:id", controllers.UpdateService)
	services.Delete("/:id", middleware.RequireAdmin(), controllers.DeleteService)
}
