package payments

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
)

// Webhook events older than this are rejected to blunt replay.
const signatureTolerance = 5 * time.Minute

// VerifyWebhook checks the Stripe signature header and parses the event.
// The signature is the only authentication on the webhook route, so a
// missing secret is an error, not a pass-through.
func VerifyWebhook(payload []byte, sigHeader string) (stripe.Event, error) {
	secret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	if secret == "" {
		return stripe.Event{}, fmt.Errorf("STRIPE_WEBHOOK_SECRET is not set")
	}
	return webhook.ConstructEventWithTolerance(payload, sigHeader, secret, signatureTolerance)
}

// PaymentIntent unmarshals the payment intent carried in the event.
func PaymentIntent(evt stripe.Event) (*stripe.PaymentIntent, error) {
	var intent stripe.PaymentIntent
	if err := json.Unmarshal(evt.Data.Raw, &intent); err != nil {
		return nil, fmt.Errorf("parse payment intent: %w", err)
	}
	return &intent, nil
}

// AppointmentMetadata extracts the appointment reference the checkout flow
// stamps on every payment intent it creates for us.
func AppointmentMetadata(intent *stripe.PaymentIntent) (businessID, appointmentID uint, err error) {
	b, err := strconv.ParseUint(intent.Metadata["business_id"], 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("missing or invalid business_id metadata")
	}
	a, err := strconv.ParseUint(intent.Metadata["appointment_id"], 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("missing or invalid appointment_id metadata")
	}
	return uint(b), uint(a), nil
}
