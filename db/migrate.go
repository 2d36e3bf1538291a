package db

import (
	"fmt"
	"log"

	"github.com/victtorciferri/business-management-system-sub005/models"
)

func Migrate() {
	// Initialize DB connection
	Init()

	// Run AutoMigrate only when explicitly called
	err := DB.AutoMigrate(
		&models.Business{},
		&models.Staff{},
		&models.Customer{},
		&models.Service{},
		&models.AvailabilityWindow{},
		&models.Appointment{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	if err := applyBookingConstraints(); err != nil {
		log.Fatal("Failed to apply booking constraints: ", err)
	}

	fmt.Println("✅ Migrations applied successfully!")
}

// applyBookingConstraints installs the database-side backstop against double
// bookings: an exclusion constraint that refuses two overlapping
// non-cancelled individual appointments for the same staff member no matter
// which code path inserts them. Class appointments are exempt; seats at the
// same class slot are meant to coexist and are capped by the validator.
func applyBookingConstraints() error {
	// btree_gist lets the staff_id equality ride in the same gist index
	if err := DB.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return err
	}

	if DB.Migrator().HasConstraint(&models.Appointment{}, "appointments_staff_no_overlap") {
		return nil
	}
	return DB.Exec(`
		ALTER TABLE appointments ADD CONSTRAINT appointments_staff_no_overlap
		EXCLUDE USING gist (
			staff_id WITH =,
			tstzrange(start_time, start_time + make_interval(mins => duration_minutes)) WITH &&
		) WHERE (status <> 'cancelled' AND service_type = 'individual' AND deleted_at IS NULL)
	`).Error
}
