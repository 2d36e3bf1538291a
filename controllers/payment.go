package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/victtorciferri/business-management-system-sub005/booking"
	"github.com/victtorciferri/business-management-system-sub005/payments"
)

// HandlePaymentWebhook receives payment gateway events and moves the
// payment status of the referenced appointment. The gateway retries on
// non-2xx, so permanent mismatches (unknown appointment, stale event for an
// already-settled payment) are acknowledged with 200 and logged; only
// transient failures return 5xx.
func HandlePaymentWebhook(c *fiber.Ctx) error {
	evt, err := payments.VerifyWebhook(c.Body(), c.Get("Stripe-Signature"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid webhook signature",
		})
	}

	switch evt.Type {
	case "payment_intent.succeeded", "payment_intent.payment_failed":
	default:
		return c.JSON(fiber.Map{"status": "ignored"})
	}

	intent, err := payments.PaymentIntent(evt)
	if err != nil {
		log.Printf("payment webhook %s: %v", evt.ID, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Malformed event payload",
		})
	}
	businessID, appointmentID, err := payments.AppointmentMetadata(intent)
	if err != nil {
		// Not one of ours; some intents on the account belong to other flows.
		log.Printf("payment webhook %s: %v", evt.ID, err)
		return c.JSON(fiber.Map{"status": "ignored"})
	}

	switch evt.Type {
	case "payment_intent.succeeded":
		appointment, err := Engine.MarkPaid(c.Context(), businessID, appointmentID, intent.ID)
		if err != nil {
			if errors.Is(err, booking.ErrNotFound) || errors.Is(err, booking.ErrInvalidTransition) {
				log.Printf("payment webhook %s: appointment %d: %v", evt.ID, appointmentID, err)
				return c.JSON(fiber.Map{"status": "ignored"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to record payment",
			})
		}
		return c.JSON(fiber.Map{"status": "ok", "appointment_id": appointment.ID})

	default: // payment_intent.payment_failed
		appointment, err := Engine.MarkFailed(c.Context(), businessID, appointmentID, intent.ID)
		if err != nil {
			if errors.Is(err, booking.ErrNotFound) || errors.Is(err, booking.ErrInvalidTransition) {
				log.Printf("payment webhook %s: appointment %d: %v", evt.ID, appointmentID, err)
				return c.JSON(fiber.Map{"status": "ignored"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to record payment failure",
			})
		}
		return c.JSON(fiber.Map{"status": "ok", "appointment_id": appointment.ID})
	}
}
