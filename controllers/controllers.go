package controllers

import (
	"context"
	"log"

	"github.com/go-playground/validator/v10"

	"github.com/victtorciferri/business-management-system-sub005/booking"
	"github.com/victtorciferri/business-management-system-sub005/cache"
	"github.com/victtorciferri/business-management-system-sub005/db"
	"github.com/victtorciferri/business-management-system-sub005/models"
	"github.com/victtorciferri/business-management-system-sub005/utils"
)

// Engine and Slots are shared by the dashboard, portal, and webhook
// handlers. Set once from main before routes are mounted.
var (
	Engine *booking.Engine
	Slots  *cache.SlotCache
)

var validate = validator.New()

// Init wires the booking engine and slot cache into the handler packages.
func Init(engine *booking.Engine, slots *cache.SlotCache) {
	Engine = engine
	Slots = slots
}

// InvalidateSlotDay drops cached slot lists for the business-local day an
// appointment falls on. Called after any change that consumes or frees
// capacity. Best effort: a missed invalidation only leaves slots stale
// until the cache TTL expires.
func InvalidateSlotDay(ctx context.Context, appt *models.Appointment) {
	if Slots == nil || appt == nil {
		return
	}
	var business models.Business
	if err := db.DB.First(&business, appt.BusinessID).Error; err != nil {
		log.Printf("slot cache: load business %d: %v", appt.BusinessID, err)
		return
	}
	loc, err := business.Location()
	if err != nil {
		log.Printf("slot cache: business %d timezone: %v", appt.BusinessID, err)
		return
	}
	Slots.InvalidateDay(ctx, appt.BusinessID, appt.StaffID, utils.LocalDate(appt.StartTime, loc))
}
