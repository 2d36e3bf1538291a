package notifications

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/victtorciferri/business-management-system-sub005/booking"
	"github.com/victtorciferri/business-management-system-sub005/models"
	"github.com/victtorciferri/business-management-system-sub005/utils"
)

// EmailNotifier mails customers and staff about booking lifecycle events.
// Every send runs on its own goroutine so SMTP latency never sits on the
// booking path; failures are logged and dropped, never surfaced to the
// caller. The engine only invokes these after the database commit.
type EmailNotifier struct {
	db *gorm.DB
}

var _ booking.Notifier = (*EmailNotifier)(nil)

func NewEmailNotifier(db *gorm.DB) *EmailNotifier {
	return &EmailNotifier{db: db}
}

func (n *EmailNotifier) AppointmentBooked(ctx context.Context, appt *models.Appointment) {
	go n.deliver(appt.ID, "booked")
}

func (n *EmailNotifier) AppointmentCancelled(ctx context.Context, appt *models.Appointment) {
	go n.deliver(appt.ID, "cancelled")
}

func (n *EmailNotifier) PaymentReceived(ctx context.Context, appt *models.Appointment) {
	go n.deliver(appt.ID, "paid")
}

func (n *EmailNotifier) AppointmentReminder(ctx context.Context, appt *models.Appointment) {
	go n.deliver(appt.ID, "reminder")
}

// deliver reloads the appointment with its relations and sends the emails
// for the event. Reloading avoids carrying half-populated associations
// across the engine boundary.
func (n *EmailNotifier) deliver(appointmentID uint, event string) {
	var appt models.Appointment
	if err := n.db.Preload("Customer").Preload("Staff").Preload("Service").
		First(&appt, appointmentID).Error; err != nil {
		log.Printf("notify %s: load appointment %d: %v", event, appointmentID, err)
		return
	}
	var business models.Business
	if err := n.db.First(&business, appt.BusinessID).Error; err != nil {
		log.Printf("notify %s: load business %d: %v", event, appt.BusinessID, err)
		return
	}

	loc, err := business.Location()
	if err != nil {
		loc = time.UTC
	}
	start := appt.StartTime.In(loc).Format("Monday, 02 Jan 2006 at 15:04")

	details := fmt.Sprintf(`
		<ul>
			<li><strong>Service:</strong> %s</li>
			<li><strong>With:</strong> %s</li>
			<li><strong>When:</strong> %s</li>
			<li><strong>Confirmation code:</strong> %s</li>
		</ul>
	`, appt.Service.Name, appt.Staff.Name, start, appt.ConfirmationCode)

	var subject, body string
	switch event {
	case "booked":
		subject = fmt.Sprintf("Appointment confirmed with %s", business.Name)
		body = fmt.Sprintf(`
			<p>Dear %s,</p>
			<p>Your appointment has been booked.</p>
			%s
			<p>Keep the confirmation code to view or cancel your booking.</p>
			<p>Best regards,<br>%s</p>
		`, appt.Customer.Name, details, business.Name)
	case "cancelled":
		subject = fmt.Sprintf("Appointment cancelled with %s", business.Name)
		body = fmt.Sprintf(`
			<p>Dear %s,</p>
			<p>Your appointment has been cancelled.</p>
			%s
			<p>Best regards,<br>%s</p>
		`, appt.Customer.Name, details, business.Name)
	case "paid":
		subject = fmt.Sprintf("Payment received by %s", business.Name)
		body = fmt.Sprintf(`
			<p>Dear %s,</p>
			<p>We received your payment. Your appointment is all set.</p>
			%s
			<p>Best regards,<br>%s</p>
		`, appt.Customer.Name, details, business.Name)
	case "reminder":
		subject = fmt.Sprintf("Reminder: upcoming appointment with %s", business.Name)
		body = fmt.Sprintf(`
			<p>Dear %s,</p>
			<p>This is a reminder that your appointment is coming up in about an hour.</p>
			%s
			<p>Best regards,<br>%s</p>
		`, appt.Customer.Name, details, business.Name)
	default:
		log.Printf("notify: unknown event %q for appointment %d", event, appointmentID)
		return
	}

	if appt.Customer.Email != "" {
		if err := utils.SendEmail(appt.Customer.Email, subject, body); err != nil {
			log.Printf("notify %s: email customer %s: %v", event, appt.Customer.Email, err)
		}
	}

	// Staff get a copy for bookings and cancellations so the day's
	// schedule changes never go unseen.
	if (event == "booked" || event == "cancelled") && appt.Staff.Email != "" {
		staffBody := fmt.Sprintf(`
			<p>Dear %s,</p>
			<p>An appointment on your schedule was %s.</p>
			<ul>
				<li><strong>Service:</strong> %s</li>
				<li><strong>Customer:</strong> %s</li>
				<li><strong>When:</strong> %s</li>
			</ul>
		`, appt.Staff.Name, event, appt.Service.Name, appt.Customer.Name, start)
		if err := utils.SendEmail(appt.Staff.Email, subject, staffBody); err != nil {
			log.Printf("notify %s: email staff %s: %v", event, appt.Staff.Email, err)
		}
	}
}
