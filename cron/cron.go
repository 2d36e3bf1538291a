package cron

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/victtorciferri/business-management-system-sub005/booking"
	"github.com/victtorciferri/business-management-system-sub005/db"
	"github.com/victtorciferri/business-management-system-sub005/models"
)

// StartCronJobs starts the scheduler for appointment reminders. Reminders
// go through the same notifier as the rest of the lifecycle events.
func StartCronJobs(notifier booking.Notifier) {
	fmt.Println("Starting cron job scheduler...")
	c := cron.New()
	// Run every minute to catch appointments entering the reminder window
	_, err := c.AddFunc("* * * * *", func() {
		sendAppointmentReminders(notifier)
	})
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for appointment reminders")
}

// sendAppointmentReminders finds appointments starting in roughly an hour
// that have not been reminded yet. The window is wider than the tick so an
// appointment is never missed; ReminderSentAt keeps it from firing twice.
func sendAppointmentReminders(notifier booking.Notifier) {
	now := time.Now().UTC()
	startWindow := now.Add(55 * time.Minute)
	endWindow := now.Add(65 * time.Minute)

	var appointments []models.Appointment
	err := db.DB.
		Where("status = ? AND reminder_sent_at IS NULL AND start_time BETWEEN ? AND ?",
			models.StatusScheduled, startWindow, endWindow).
		Find(&appointments).Error
	if err != nil {
		log.Printf("Error fetching appointments for reminders: %v", err)
		return
	}

	if len(appointments) > 0 {
		fmt.Printf("Found %d appointments for reminders\n", len(appointments))
	}

	ctx := context.Background()
	for i := range appointments {
		appointment := &appointments[i]
		if err := db.DB.Model(appointment).Update("reminder_sent_at", now).Error; err != nil {
			log.Printf("Failed to mark reminder for appointment %d: %v", appointment.ID, err)
			continue
		}
		notifier.AppointmentReminder(ctx, appointment)
		log.Printf("Queued reminder for appointment %d", appointment.ID)
	}
}
