package booking

import (
	"context"

	"github.com/victtorciferri/business-management-system-sub005/models"
)

// Notifier receives lifecycle events after they have been committed.
// Delivery is a collaborator concern: implementations must never fail the
// booking over a notification problem (log and move on).
type Notifier interface {
	AppointmentBooked(ctx context.Context, appt *models.Appointment)
	AppointmentCancelled(ctx context.Context, appt *models.Appointment)
	PaymentReceived(ctx context.Context, appt *models.Appointment)
	AppointmentReminder(ctx context.Context, appt *models.Appointment)
}

// NopNotifier is the default when no notifier is wired.
type NopNotifier struct{}

func (NopNotifier) AppointmentBooked(context.Context, *models.Appointment)    {}
func (NopNotifier) AppointmentCancelled(context.Context, *models.Appointment) {}
func (NopNotifier) PaymentReceived(context.Context, *models.Appointment)      {}
func (NopNotifier) AppointmentReminder(context.Context, *models.Appointment)  {}
