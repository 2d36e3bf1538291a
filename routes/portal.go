package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/victtorciferri/business-management-system-sub005/controllers/consumer"
	"github.com/victtorciferri/business-management-system-sub005/middleware"
)

// SetupPortalRoutes configures the public booking portal. Routes are keyed
// by the business slug; no authentication, the confirmation code gates
// access to individual bookings.
func SetupPortalRoutes(app *fiber.App) {
	portal := app.Group("/portal/:slug", middleware.ResolveBusiness())
	portal.Get("/services", consumer.GetServices)
	portal.Get("/staff", consumer.GetStaff)
	portal.Get("/slots", consumer.GetAvailableSlots)
	portal.Post("/appointments", consumer.BookAppointment)
	portal.Get("/appointments/:id", consumer.GetAppointment)
	portal.Post("/appointments/:id/cancel", consumer.CancelAppointment)
}
