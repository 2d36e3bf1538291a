package booking

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/victtorciferri/business-management-system-sub005/models"
)

const dateLayout = "2006-01-02"

// SlotQuery asks for the bookable start times of one staff/service pair on
// one calendar day. Date is interpreted in the business time zone.
type SlotQuery struct {
	BusinessID uint
	StaffID    uint
	ServiceID  uint
	Date       string // "2006-01-02"
}

// Slot is one bookable start time. Remaining reports the seats left for
// class services; it is zero for individual services.
type Slot struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Remaining int       `json:"remaining,omitempty"`
}

// GenerateSlots returns the ordered bookable start times for the query date.
// The result is advisory: no locks are taken, and a concurrent booking may
// claim a slot before the caller commits. TryBook re-checks everything, so
// clients must treat this list as a suggestion, not a reservation.
func (e *Engine) GenerateSlots(ctx context.Context, q SlotQuery) ([]Slot, error) {
	business, err := e.store.GetBusiness(ctx, q.BusinessID)
	if err != nil {
		return nil, err
	}
	service, err := e.store.GetService(ctx, q.BusinessID, q.ServiceID)
	if err != nil {
		return nil, err
	}
	if _, err := e.store.GetStaff(ctx, q.BusinessID, q.StaffID); err != nil {
		return nil, err
	}
	if service.DurationMinutes <= 0 {
		return nil, fmt.Errorf("service %d has non-positive duration", service.ID)
	}

	loc, err := business.Location()
	if err != nil {
		return nil, fmt.Errorf("business %d has invalid timezone %q: %w", business.ID, business.Timezone, err)
	}
	day, err := time.ParseInLocation(dateLayout, q.Date, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", q.Date, err)
	}

	windows, err := e.store.ListOpenWindows(ctx, q.StaffID, models.DayOfWeek(day.Weekday()))
	if err != nil {
		return nil, err
	}
	slots := []Slot{}
	if len(windows) == 0 {
		return slots, nil
	}

	// One snapshot of the surrounding appointments; every candidate is
	// checked against it. The envelope is padded so appointments spilling
	// into the day from either side are included.
	duration := service.Duration()
	buffer := business.Buffer()
	dayEnd := day.AddDate(0, 0, 1)
	busy, err := e.store.ListActiveAppointments(ctx, q.StaffID, day.Add(-buffer), dayEnd.Add(duration+buffer))
	if err != nil {
		return nil, err
	}

	// Default step packs appointments back to back with the buffer between
	// them; SlotStepMinutes overrides with a fixed grid.
	step := duration + buffer
	if business.SlotStepMinutes > 0 {
		step = time.Duration(business.SlotStepMinutes) * time.Minute
	}
	cutoff := e.now().UTC().Add(-business.BookingGrace())

	for _, w := range windows {
		wStart, wEnd, err := w.Bounds(day.Year(), day.Month(), day.Day(), loc)
		if err != nil {
			return nil, fmt.Errorf("availability window %d: %w", w.ID, err)
		}
		for t := wStart; !t.Add(duration).After(wEnd); t = t.Add(step) {
			if t.Before(cutoff) {
				continue
			}
			remaining, err := checkSlot(business, service, t, busy)
			if err != nil {
				continue // taken or full, not an error when generating
			}
			slots = append(slots, Slot{
				StartTime: t.UTC(),
				EndTime:   t.Add(duration).UTC(),
				Remaining: remaining,
			})
		}
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].StartTime.Before(slots[j].StartTime) })
	return slots, nil
}
