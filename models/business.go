package models

import (
	"time"

	"gorm.io/gorm"
)

// Business is the tenant root. Every other record belongs to exactly one
// business, and every engine call carries an explicit business ID.
type Business struct {
	gorm.Model
	Name     string `json:"name"`
	Slug     string `json:"slug" gorm:"uniqueIndex"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Timezone string `json:"timezone" gorm:"default:UTC"` // IANA name, e.g. "America/Santiago"

	// Booking policy
	BufferMinutes                     int  `json:"buffer_minutes" gorm:"default:0"`
	CancellationWindowHours           int  `json:"cancellation_window_hours" gorm:"default:24"`
	AllowSameSlotForDifferentServices bool `json:"allow_same_slot_for_different_services" gorm:"default:false"`
	SlotStepMinutes                   int  `json:"slot_step_minutes" gorm:"default:0"`     // 0 = service duration + buffer
	BookingGraceMinutes               int  `json:"booking_grace_minutes" gorm:"default:0"` // slots started within grace are still bookable
}

// Location resolves the configured IANA time zone. Day-of-week and window
// matching happen in this location; overlap comparisons stay in UTC.
func (b *Business) Location() (*time.Location, error) {
	if b.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(b.Timezone)
}

func (b *Business) Buffer() time.Duration {
	return time.Duration(b.BufferMinutes) * time.Minute
}

func (b *Business) CancellationWindow() time.Duration {
	return time.Duration(b.CancellationWindowHours) * time.Hour
}

func (b *Business) BookingGrace() time.Duration {
	return time.Duration(b.BookingGraceMinutes) * time.Minute
}
