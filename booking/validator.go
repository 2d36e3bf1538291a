package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/victtorciferri/business-management-system-sub005/models"
)

// serializationBackoff separates the two attempts TryBook makes when the
// store reports a serialization conflict.
const serializationBackoff = 75 * time.Millisecond

// BookingRequest is one booking attempt. StartTime may carry any location;
// it is normalized to UTC before anything is compared or stored.
type BookingRequest struct {
	BusinessID uint
	StaffID    uint
	ServiceID  uint
	CustomerID uint
	StartTime  time.Time
	Notes      string
}

// TryBook admits or rejects a booking atomically. It is the only path that
// creates appointments; both the dashboard and the customer portal funnel
// through it, so the availability and conflict rules hold no matter which
// surface the request came from. Logical rejections (conflict, capacity,
// outside availability) are returned as-is; a serialization conflict is
// retried once before surfacing as ErrRetryable.
func (e *Engine) TryBook(ctx context.Context, req BookingRequest) (*models.Appointment, error) {
	appt, err := e.tryBookOnce(ctx, req)
	if errors.Is(err, ErrRetryable) {
		time.Sleep(serializationBackoff)
		appt, err = e.tryBookOnce(ctx, req)
	}
	if err != nil {
		return nil, err
	}
	e.notifier.AppointmentBooked(ctx, appt)
	return appt, nil
}

func (e *Engine) tryBookOnce(ctx context.Context, req BookingRequest) (*models.Appointment, error) {
	business, err := e.store.GetBusiness(ctx, req.BusinessID)
	if err != nil {
		return nil, err
	}
	service, err := e.store.GetService(ctx, req.BusinessID, req.ServiceID)
	if err != nil {
		return nil, err
	}
	if _, err := e.store.GetStaff(ctx, req.BusinessID, req.StaffID); err != nil {
		return nil, err
	}
	if service.DurationMinutes <= 0 {
		return nil, fmt.Errorf("service %d has non-positive duration", service.ID)
	}
	loc, err := business.Location()
	if err != nil {
		return nil, fmt.Errorf("business %d has invalid timezone %q: %w", business.ID, business.Timezone, err)
	}

	start := req.StartTime.UTC()
	duration := service.Duration()
	buffer := business.Buffer()

	var appt *models.Appointment
	err = e.store.Atomic(ctx, func(tx Store) error {
		// Serialize bookings per staff member before reading anything, so
		// two concurrent requests cannot both pass the checks below.
		if err := tx.LockStaff(ctx, req.StaffID); err != nil {
			return err
		}

		// Containment is re-derived here; whatever slot list the client saw
		// earlier counts for nothing.
		local := start.In(loc)
		windows, err := tx.ListOpenWindows(ctx, req.StaffID, models.DayOfWeek(local.Weekday()))
		if err != nil {
			return err
		}
		contained, err := windowsContain(windows, local, duration, loc)
		if err != nil {
			return err
		}
		if !contained {
			return fmt.Errorf("%s is outside staff %d availability: %w",
				local.Format("Mon 15:04"), req.StaffID, ErrOutsideAvailability)
		}

		busy, err := tx.ListActiveAppointments(ctx, req.StaffID, start.Add(-buffer), start.Add(duration+buffer))
		if err != nil {
			return err
		}
		if _, err := checkSlot(business, service, start, busy); err != nil {
			return err
		}

		appt = &models.Appointment{
			BusinessID:      req.BusinessID,
			CustomerID:      req.CustomerID,
			ServiceID:       service.ID,
			StaffID:         req.StaffID,
			StartTime:       start,
			DurationMinutes: service.DurationMinutes,
			ServiceType:     service.ServiceType,
			Status:          models.StatusScheduled,
			PaymentStatus:   models.PaymentPending,
			Notes:           req.Notes,
		}
		return tx.CreateAppointment(ctx, appt)
	})
	if err != nil {
		return nil, err
	}
	return appt, nil
}

// windowsContain reports whether [local, local+duration) sits fully inside
// one of the windows, resolved on local's calendar day.
func windowsContain(windows []models.AvailabilityWindow, local time.Time, duration time.Duration, loc *time.Location) (bool, error) {
	end := local.Add(duration)
	for _, w := range windows {
		ws, we, err := w.Bounds(local.Year(), local.Month(), local.Day(), loc)
		if err != nil {
			return false, fmt.Errorf("availability window %d: %w", w.ID, err)
		}
		if !local.Before(ws) && !end.After(we) {
			return true, nil
		}
	}
	return false, nil
}
