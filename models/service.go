package models

import (
	"time"

	"gorm.io/gorm"
)

type ServiceType string

const (
	ServiceIndividual ServiceType = "individual" // one customer per booking
	ServiceClass      ServiceType = "class"      // shared capacity per start time
)

type Service struct {
	gorm.Model
	BusinessID      uint        `json:"business_id" gorm:"index"`
	Business        Business    `json:"-" gorm:"foreignKey:BusinessID"`
	Name            string      `json:"name"`
	Description     string      `json:"description"`
	DurationMinutes int         `json:"duration_minutes"` // must be > 0
	Price           float64     `json:"price"`
	ServiceType     ServiceType `json:"service_type" gorm:"default:individual"`
	Capacity        int         `json:"capacity" gorm:"default:1"` // seats per slot, class services only
	IsActive        bool        `json:"is_active" gorm:"default:true"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ServiceType == "" {
		s.ServiceType = ServiceIndividual
	}
	if s.Capacity < 1 {
		s.Capacity = 1
	}
	return nil
}

func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

// EffectiveCapacity normalizes the stored value: individual services always
// take one customer per slot regardless of what capacity says.
func (s *Service) EffectiveCapacity() int {
	if s.ServiceType != ServiceClass || s.Capacity < 1 {
		return 1
	}
	return s.Capacity
}
