package booking

import (
	"context"
	"fmt"

	"github.com/victtorciferri/business-management-system-sub005/models"
)

type ActorRole string

const (
	ActorCustomer ActorRole = "customer"
	ActorStaff    ActorRole = "staff"
	ActorAdmin    ActorRole = "admin"
)

// Actor identifies who asked for a lifecycle change. CustomerID is only
// meaningful for ActorCustomer, where it gates ownership.
type Actor struct {
	Role       ActorRole
	CustomerID uint
}

// Cancel moves a scheduled appointment to cancelled. Customers may only
// cancel their own appointments and only outside the business's cancellation
// window; staff and admins skip the window but not the status rule. A
// cancelled appointment immediately stops counting against conflicts and
// class capacity, so the slot reappears in GenerateSlots.
func (e *Engine) Cancel(ctx context.Context, businessID, appointmentID uint, actor Actor) (*models.Appointment, error) {
	var appt *models.Appointment
	err := e.store.Atomic(ctx, func(tx Store) error {
		a, err := tx.GetAppointmentForUpdate(ctx, businessID, appointmentID)
		if err != nil {
			return err
		}
		if actor.Role == ActorCustomer && a.CustomerID != actor.CustomerID {
			// Someone else's appointment reads as absent.
			return fmt.Errorf("appointment %d: %w", appointmentID, ErrNotFound)
		}
		if a.Status != models.StatusScheduled {
			return fmt.Errorf("cannot cancel a %s appointment: %w", a.Status, ErrInvalidTransition)
		}
		if actor.Role == ActorCustomer {
			business, err := tx.GetBusiness(ctx, businessID)
			if err != nil {
				return err
			}
			deadline := a.StartTime.Add(-business.CancellationWindow())
			if e.now().UTC().After(deadline) {
				return fmt.Errorf("cancellations close %d hours before the appointment: %w",
					business.CancellationWindowHours, ErrPolicyViolation)
			}
		}

		now := e.now().UTC()
		a.Status = models.StatusCancelled
		a.CancelledBy = string(actor.Role)
		a.CancelledAt = &now
		if err := tx.SaveAppointment(ctx, a); err != nil {
			return err
		}
		appt = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.notifier.AppointmentCancelled(ctx, appt)
	return appt, nil
}

// Complete marks a scheduled appointment as completed. Administrative only,
// and only once the start time has passed.
func (e *Engine) Complete(ctx context.Context, businessID, appointmentID uint) (*models.Appointment, error) {
	var appt *models.Appointment
	err := e.store.Atomic(ctx, func(tx Store) error {
		a, err := tx.GetAppointmentForUpdate(ctx, businessID, appointmentID)
		if err != nil {
			return err
		}
		if a.Status != models.StatusScheduled {
			return fmt.Errorf("cannot complete a %s appointment: %w", a.Status, ErrInvalidTransition)
		}
		if !e.now().UTC().After(a.StartTime) {
			return fmt.Errorf("appointment has not started yet: %w", ErrInvalidTransition)
		}
		a.Status = models.StatusCompleted
		if err := tx.SaveAppointment(ctx, a); err != nil {
			return err
		}
		appt = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return appt, nil
}

// MarkPaid records a gateway confirmation. Called by the payment callback
// handler, never by clients. Redelivery of the same paymentRef is a no-op
// with no repeated side effects; a different ref on a paid appointment is
// rejected. Payments are accepted from pending or failed (a retried charge
// that finally went through must be recordable), and independently of the
// status axis, so a confirmation landing after a cancellation still gets
// recorded.
func (e *Engine) MarkPaid(ctx context.Context, businessID, appointmentID uint, paymentRef string) (*models.Appointment, error) {
	var appt *models.Appointment
	applied := false
	err := e.store.Atomic(ctx, func(tx Store) error {
		a, err := tx.GetAppointmentForUpdate(ctx, businessID, appointmentID)
		if err != nil {
			return err
		}
		if a.PaymentStatus == models.PaymentPaid {
			if a.PaymentRef == paymentRef {
				appt = a
				return nil
			}
			return fmt.Errorf("already paid with reference %q: %w", a.PaymentRef, ErrInvalidTransition)
		}

		a.PaymentStatus = models.PaymentPaid
		a.PaymentRef = paymentRef
		if err := tx.SaveAppointment(ctx, a); err != nil {
			return err
		}
		appt = a
		applied = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	if applied {
		e.notifier.PaymentReceived(ctx, appt)
	}
	return appt, nil
}

// MarkFailed records a gateway failure. The appointment stays scheduled and
// keeps its slot until someone cancels it explicitly; there is no automatic
// release. Repeated failure callbacks are no-ops.
func (e *Engine) MarkFailed(ctx context.Context, businessID, appointmentID uint, paymentRef string) (*models.Appointment, error) {
	var appt *models.Appointment
	err := e.store.Atomic(ctx, func(tx Store) error {
		a, err := tx.GetAppointmentForUpdate(ctx, businessID, appointmentID)
		if err != nil {
			return err
		}
		switch a.PaymentStatus {
		case models.PaymentFailed:
			appt = a
			return nil
		case models.PaymentPaid:
			return fmt.Errorf("cannot fail a paid appointment: %w", ErrInvalidTransition)
		}

		a.PaymentStatus = models.PaymentFailed
		a.PaymentRef = paymentRef
		if err := tx.SaveAppointment(ctx, a); err != nil {
			return err
		}
		appt = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return appt, nil
}
