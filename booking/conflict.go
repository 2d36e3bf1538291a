package booking

import (
	"fmt"
	"time"

	"github.com/victtorciferri/business-management-system-sub005/models"
)

// checkSlot decides whether one candidate start can be booked, given a
// snapshot of the staff member's non-cancelled appointments around it. Both
// the slot generator and the booking validator run through here so the two
// can never disagree. Returns the remaining class seats (zero for individual
// services) or ErrSlotConflict / ErrCapacityExceeded.
//
// Rules, in order:
//   - joining an existing class session (same service, same start) is never
//     a pairwise conflict; the capacity count decides;
//   - two individual appointments for the same staff member may not overlap,
//     with each occupying [start, end+buffer);
//   - unless the business allows different services in the same slot, any
//     other overlapping appointment blocks the candidate as well.
func checkSlot(business *models.Business, service *models.Service, start time.Time, existing []models.Appointment) (int, error) {
	duration := service.Duration()
	buffer := business.Buffer()
	joined := 0

	for i := range existing {
		appt := &existing[i]
		if appt.Status == models.StatusCancelled {
			continue
		}
		if service.ServiceType == models.ServiceClass &&
			appt.ServiceID == service.ID &&
			appt.StartTime.Equal(start) {
			joined++
			continue
		}

		bothIndividual := service.ServiceType == models.ServiceIndividual &&
			appt.ServiceType == models.ServiceIndividual
		if !bothIndividual && business.AllowSameSlotForDifferentServices {
			continue
		}
		if overlapsWithBuffer(start, duration, appt, buffer) {
			return 0, fmt.Errorf("appointment at %s is in the way: %w",
				appt.StartTime.UTC().Format(time.RFC3339), ErrSlotConflict)
		}
	}

	if service.ServiceType == models.ServiceClass {
		capacity := service.EffectiveCapacity()
		if joined >= capacity {
			return 0, fmt.Errorf("class is full (%d of %d booked): %w", joined, capacity, ErrCapacityExceeded)
		}
		return capacity - joined, nil
	}
	return 0, nil
}

// overlapsWithBuffer compares two half-open intervals, each extended by the
// buffer past its end, so consecutive bookings keep at least the buffer gap.
func overlapsWithBuffer(start time.Time, duration time.Duration, appt *models.Appointment, buffer time.Duration) bool {
	candEnd := start.Add(duration + buffer)
	apptEnd := appt.EndTime().Add(buffer)
	return start.Before(apptEnd) && appt.StartTime.Before(candEnd)
}
