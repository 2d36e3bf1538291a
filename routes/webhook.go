package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/victtorciferri/business-management-system-sub005/controllers"
)

// SetupWebhookRoutes configures gateway callback routes. The Stripe
// signature check inside the handler is the authentication.
func SetupWebhookRoutes(app *fiber.App) {
	app.Post("/webhooks/payment", controllers.HandlePaymentWebhook)
}
