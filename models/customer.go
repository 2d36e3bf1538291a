package models

import (
	"gorm.io/gorm"
)

// Customer records are created by the portal on first booking; identity is
// (business, email), so the same person booking at two businesses yields two
// independent customer rows.
type Customer struct {
	gorm.Model
	BusinessID uint   `json:"business_id" gorm:"uniqueIndex:idx_customers_business_email"`
	Name       string `json:"name"`
	Email      string `json:"email" gorm:"uniqueIndex:idx_customers_business_email"`
	Phone      string `json:"phone"`

	Appointments []Appointment `json:"appointments,omitempty" gorm:"foreignKey:CustomerID"`
}
