package booking

import (
	"context"
	"time"

	"github.com/victtorciferri/business-management-system-sub005/models"
)

// Store is the persistence boundary of the engine. The production
// implementation lives in the store package (GORM over Postgres); tests use
// an in-memory fake.
//
// Error contract: lookups wrap ErrNotFound when the row does not exist,
// CreateAppointment wraps ErrSlotConflict when the database-level uniqueness
// backstop fires, and Atomic wraps ErrRetryable on serialization failures.
type Store interface {
	GetBusiness(ctx context.Context, businessID uint) (*models.Business, error)
	GetService(ctx context.Context, businessID, serviceID uint) (*models.Service, error)
	GetStaff(ctx context.Context, businessID, staffID uint) (*models.Staff, error)

	// ListOpenWindows returns the IsAvailable windows for one staff member
	// on one weekday, ordered by start time.
	ListOpenWindows(ctx context.Context, staffID uint, day models.DayOfWeek) ([]models.AvailabilityWindow, error)

	// ListActiveAppointments returns the non-cancelled appointments for one
	// staff member whose [start, end) interval intersects [from, to),
	// ordered by start time.
	ListActiveAppointments(ctx context.Context, staffID uint, from, to time.Time) ([]models.Appointment, error)

	GetAppointment(ctx context.Context, businessID, appointmentID uint) (*models.Appointment, error)
	// GetAppointmentForUpdate is GetAppointment with a row lock; only valid
	// inside Atomic.
	GetAppointmentForUpdate(ctx context.Context, businessID, appointmentID uint) (*models.Appointment, error)
	CreateAppointment(ctx context.Context, appt *models.Appointment) error
	SaveAppointment(ctx context.Context, appt *models.Appointment) error

	// LockStaff serializes bookings per staff member for the duration of the
	// surrounding transaction; only valid inside Atomic. Row locks alone
	// cannot stop two fresh inserts from passing the conflict check at the
	// same time, so the validator takes this lock before reading.
	LockStaff(ctx context.Context, staffID uint) error

	// Atomic runs fn inside a single transaction and passes it a Store bound
	// to that transaction. fn's error rolls everything back and is returned.
	Atomic(ctx context.Context, fn func(tx Store) error) error
}
