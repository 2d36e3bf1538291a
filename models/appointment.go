package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// Who cancelled an appointment, recorded alongside CancelledAt.
const (
	CancelledByCustomer = "customer"
	CancelledByStaff    = "staff"
	CancelledByAdmin    = "admin"
)

type Appointment struct {
	gorm.Model
	BusinessID uint     `json:"business_id" gorm:"index"`
	CustomerID uint     `json:"customer_id"`
	Customer   Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	ServiceID  uint     `json:"service_id"`
	Service    Service  `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	StaffID    uint     `json:"staff_id" gorm:"index:idx_appointments_staff_start"`
	Staff      Staff    `json:"staff,omitempty" gorm:"foreignKey:StaffID"`

	StartTime time.Time `json:"start_time" gorm:"index:idx_appointments_staff_start"` // UTC instant

	// Duration and service type are snapshotted at booking time so later
	// service edits never shift or re-type existing bookings.
	DurationMinutes int         `json:"duration_minutes"`
	ServiceType     ServiceType `json:"service_type"`

	Status        AppointmentStatus `json:"status" gorm:"default:scheduled;index"`
	PaymentStatus PaymentStatus     `json:"payment_status" gorm:"default:pending"`
	PaymentRef    string            `json:"payment_ref,omitempty"` // last applied gateway reference

	ConfirmationCode string     `json:"confirmation_code" gorm:"uniqueIndex"`
	Notes            string     `json:"notes"`
	CancelledBy      string     `json:"cancelled_by,omitempty"`
	CancelledAt      *time.Time `json:"cancelled_at,omitempty"`
	ReminderSentAt   *time.Time `json:"-"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	if a.PaymentStatus == "" {
		a.PaymentStatus = PaymentPending
	}
	if a.ConfirmationCode == "" {
		a.ConfirmationCode = uuid.NewString()
	}
	return nil
}

func (a *Appointment) Duration() time.Duration {
	return time.Duration(a.DurationMinutes) * time.Minute
}

// EndTime is derived from the snapshotted duration.
func (a *Appointment) EndTime() time.Time {
	return a.StartTime.Add(a.Duration())
}

// IsTerminal reports whether the status axis can no longer move.
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCompleted || a.Status == StatusCancelled
}
