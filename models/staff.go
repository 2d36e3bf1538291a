package models

import (
	"gorm.io/gorm"
)

type Staff struct {
	gorm.Model
	BusinessID uint     `json:"business_id" gorm:"index"`
	Business   Business `json:"-" gorm:"foreignKey:BusinessID"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Title      string   `json:"title"` // e.g. "Senior Stylist"
	IsActive   bool     `json:"is_active" gorm:"default:true"`

	AvailabilityWindows []AvailabilityWindow `json:"availability_windows,omitempty" gorm:"foreignKey:StaffID"`
	Appointments        []Appointment        `json:"appointments,omitempty" gorm:"foreignKey:StaffID"`
}
