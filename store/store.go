package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/victtorciferri/business-management-system-sub005/booking"
	"github.com/victtorciferri/business-management-system-sub005/models"
)

// Store implements booking.Store over GORM/Postgres. Zero value is not
// usable; construct with New.
type Store struct {
	db *gorm.DB
}

var _ booking.Store = (*Store)(nil)

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetBusiness(ctx context.Context, businessID uint) (*models.Business, error) {
	var business models.Business
	if err := s.db.WithContext(ctx).First(&business, businessID).Error; err != nil {
		return nil, notFoundOr(err, "business %d", businessID)
	}
	return &business, nil
}

func (s *Store) GetService(ctx context.Context, businessID, serviceID uint) (*models.Service, error) {
	var service models.Service
	err := s.db.WithContext(ctx).
		First(&service, "id = ? AND business_id = ?", serviceID, businessID).Error
	if err != nil {
		return nil, notFoundOr(err, "service %d", serviceID)
	}
	return &service, nil
}

func (s *Store) GetStaff(ctx context.Context, businessID, staffID uint) (*models.Staff, error) {
	var staff models.Staff
	err := s.db.WithContext(ctx).
		First(&staff, "id = ? AND business_id = ?", staffID, businessID).Error
	if err != nil {
		return nil, notFoundOr(err, "staff %d", staffID)
	}
	return &staff, nil
}

func (s *Store) ListOpenWindows(ctx context.Context, staffID uint, day models.DayOfWeek) ([]models.AvailabilityWindow, error) {
	var windows []models.AvailabilityWindow
	err := s.db.WithContext(ctx).
		Where("staff_id = ? AND day_of_week = ? AND is_available = ?", staffID, day, true).
		Order("start_time asc").
		Find(&windows).Error
	if err != nil {
		return nil, err
	}
	return windows, nil
}

// ListActiveAppointments computes each appointment's end from its
// snapshotted duration, so the query needs no end_time column to drift out
// of sync with.
func (s *Store) ListActiveAppointments(ctx context.Context, staffID uint, from, to time.Time) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := s.db.WithContext(ctx).
		Where("staff_id = ? AND status <> ?", staffID, models.StatusCancelled).
		Where("start_time < ? AND start_time + make_interval(mins => duration_minutes) > ?", to, from).
		Order("start_time asc").
		Find(&appts).Error
	if err != nil {
		return nil, err
	}
	return appts, nil
}

func (s *Store) GetAppointment(ctx context.Context, businessID, appointmentID uint) (*models.Appointment, error) {
	var appt models.Appointment
	err := s.db.WithContext(ctx).
		First(&appt, "id = ? AND business_id = ?", appointmentID, businessID).Error
	if err != nil {
		return nil, notFoundOr(err, "appointment %d", appointmentID)
	}
	return &appt, nil
}

func (s *Store) GetAppointmentForUpdate(ctx context.Context, businessID, appointmentID uint) (*models.Appointment, error) {
	var appt models.Appointment
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&appt, "id = ? AND business_id = ?", appointmentID, businessID).Error
	if err != nil {
		return nil, notFoundOr(err, "appointment %d", appointmentID)
	}
	return &appt, nil
}

func (s *Store) CreateAppointment(ctx context.Context, appt *models.Appointment) error {
	if err := s.db.WithContext(ctx).Create(appt).Error; err != nil {
		if code := pgErrCode(err); code == pgUniqueViolation || code == pgExclusionViolation {
			// The partial exclusion constraint is the backstop behind the
			// validator's own checks.
			return fmt.Errorf("slot already booked: %w", booking.ErrSlotConflict)
		}
		return classifySerialization(err)
	}
	return nil
}

func (s *Store) SaveAppointment(ctx context.Context, appt *models.Appointment) error {
	return classifySerialization(s.db.WithContext(ctx).Save(appt).Error)
}

// LockStaff takes a transaction-scoped advisory lock keyed by staff ID.
// Postgres releases it at commit/rollback, so it is only meaningful inside
// Atomic.
func (s *Store) LockStaff(ctx context.Context, staffID uint) error {
	return s.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(?)", int64(staffID)).Error
}

func (s *Store) Atomic(ctx context.Context, fn func(tx booking.Store) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
	return classifySerialization(err)
}

const (
	pgUniqueViolation      = "23505"
	pgExclusionViolation   = "23P01"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// classifySerialization wraps retryable transaction failures so the booking
// validator can decide to run the attempt again.
func classifySerialization(err error) error {
	if err == nil {
		return nil
	}
	if code := pgErrCode(err); code == pgSerializationFailure || code == pgDeadlockDetected {
		return fmt.Errorf("%v: %w", err, booking.ErrRetryable)
	}
	return err
}

func notFoundOr(err error, format string, args ...interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf(format+": %w", append(args, booking.ErrNotFound)...)
	}
	return err
}
