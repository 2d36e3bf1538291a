package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/victtorciferri/business-management-system-sub005/models"
)

func TestGenerateSlotsPacksDurationAndBuffer(t *testing.T) {
	store := newFixtureStore()
	engine := NewEngine(store, WithClock(fixedClock(testNow)))

	slots, err := engine.GenerateSlots(context.Background(), SlotQuery{
		BusinessID: 1, StaffID: 1, ServiceID: 1, Date: "2026-01-05",
	})
	if err != nil {
		t.Fatalf("generate slots: %v", err)
	}

	// 60 minute service + 10 minute buffer in a 09:00-12:00 window packs to
	// 09:00 and 10:10; 11:20 would run past the window end.
	want := []time.Time{
		testMonday.Add(9 * time.Hour),
		testMonday.Add(10*time.Hour + 10*time.Minute),
	}
	if len(slots) != len(want) {
		t.Fatalf("expected %d slots, got %d: %+v", len(want), len(slots), slots)
	}
	for i := range want {
		if !slots[i].StartTime.Equal(want[i]) {
			t.Fatalf("slot %d: expected %s, got %s", i, want[i], slots[i].StartTime)
		}
		if !slots[i].EndTime.Equal(want[i].Add(60 * time.Minute)) {
			t.Fatalf("slot %d: expected end %s, got %s", i, want[i].Add(60*time.Minute), slots[i].EndTime)
		}
	}
}

func TestGenerateSlotsHonorsBusinessTimezone(t *testing.T) {
	store := newFixtureStore()
	store.addBusiness(&models.Business{
		Model:         gorm.Model{ID: 1},
		Name:          "Salon Rivera",
		Slug:          "salon-rivera",
		Timezone:      "America/New_York",
		BufferMinutes: 10,
	})
	engine := NewEngine(store, WithClock(fixedClock(testNow)))

	slots, err := engine.GenerateSlots(context.Background(), SlotQuery{
		BusinessID: 1, StaffID: 1, ServiceID: 1, Date: "2026-01-05",
	})
	if err != nil {
		t.Fatalf("generate slots: %v", err)
	}
	if len(slots) == 0 {
		t.Fatal("expected slots for the New York Monday window")
	}

	// 09:00 in January New York (EST, UTC-5) is 14:00 UTC.
	wantFirst := time.Date(2026, 1, 5, 14, 0, 0, 0, time.UTC)
	if !slots[0].StartTime.Equal(wantFirst) {
		t.Fatalf("expected first slot %s, got %s", wantFirst, slots[0].StartTime)
	}
}

func TestGenerateSlotsSkipsBookedAndReappearsOnCancel(t *testing.T) {
	store := newFixtureStore()
	engine := NewEngine(store, WithClock(fixedClock(testNow)))
	ctx := context.Background()

	appt, err := engine.TryBook(ctx, BookingRequest{
		BusinessID: 1, StaffID: 1, ServiceID: 1, CustomerID: 7,
		StartTime: testMonday.Add(9 * time.Hour),
	})
	if err != nil {
		t.Fatalf("book 09:00: %v", err)
	}

	slots, err := engine.GenerateSlots(ctx, SlotQuery{
		BusinessID: 1, StaffID: 1, ServiceID: 1, Date: "2026-01-05",
	})
	if err != nil {
		t.Fatalf("generate slots: %v", err)
	}
	if len(slots) != 1 || !slots[0].StartTime.Equal(testMonday.Add(10*time.Hour+10*time.Minute)) {
		t.Fatalf("expected only the 10:10 slot to remain, got %+v", slots)
	}

	if _, err := engine.Cancel(ctx, 1, appt.ID, Actor{Role: ActorStaff}); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	slots, err = engine.GenerateSlots(ctx, SlotQuery{
		BusinessID: 1, StaffID: 1, ServiceID: 1, Date: "2026-01-05",
	})
	if err != nil {
		t.Fatalf("generate slots after cancel: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("expected the cancelled slot to reappear, got %+v", slots)
	}
	if !slots[0].StartTime.Equal(testMonday.Add(9 * time.Hour)) {
		t.Fatalf("expected 09:00 back, got %s", slots[0].StartTime)
	}
}

func TestGenerateSlotsGraceCutoff(t *testing.T) {
	store := newFixtureStore()
	store.addBusiness(&models.Business{
		Model:               gorm.Model{ID: 1},
		Slug:                "salon-rivera",
		Timezone:            "UTC",
		BufferMinutes:       10,
		BookingGraceMinutes: 15,
	})
	// Mid-morning on the Monday itself: 09:00 is more than the 15 minute
	// grace in the past, 10:10 is still ahead.
	engine := NewEngine(store, WithClock(fixedClock(testMonday.Add(9*time.Hour+30*time.Minute))))

	slots, err := engine.GenerateSlots(context.Background(), SlotQuery{
		BusinessID: 1, StaffID: 1, ServiceID: 1, Date: "2026-01-05",
	})
	if err != nil {
		t.Fatalf("generate slots: %v", err)
	}
	if len(slots) != 1 || !slots[0].StartTime.Equal(testMonday.Add(10*time.Hour+10*time.Minute)) {
		t.Fatalf("expected only the 10:10 slot, got %+v", slots)
	}
}

func TestGenerateSlotsFixedStepOverride(t *testing.T) {
	store := newFixtureStore()
	store.addBusiness(&models.Business{
		Model:           gorm.Model{ID: 1},
		Slug:            "salon-rivera",
		Timezone:        "UTC",
		BufferMinutes:   10,
		SlotStepMinutes: 30,
	})
	engine := NewEngine(store, WithClock(fixedClock(testNow)))

	slots, err := engine.GenerateSlots(context.Background(), SlotQuery{
		BusinessID: 1, StaffID: 1, ServiceID: 1, Date: "2026-01-05",
	})
	if err != nil {
		t.Fatalf("generate slots: %v", err)
	}

	// A 30 minute grid offers 09:00 through 11:00 for a 60 minute service.
	if len(slots) != 5 {
		t.Fatalf("expected 5 slots on a 30 minute grid, got %d: %+v", len(slots), slots)
	}
	last := slots[len(slots)-1].StartTime
	if !last.Equal(testMonday.Add(11 * time.Hour)) {
		t.Fatalf("expected last slot 11:00, got %s", last)
	}
}

func TestGenerateSlotsClassRemainingSeats(t *testing.T) {
	store := newFixtureStore()
	engine := NewEngine(store, WithClock(fixedClock(testNow)))
	ctx := context.Background()

	if _, err := engine.TryBook(ctx, BookingRequest{
		BusinessID: 1, StaffID: 1, ServiceID: 2, CustomerID: 7,
		StartTime: testMonday.Add(9 * time.Hour),
	}); err != nil {
		t.Fatalf("book class seat: %v", err)
	}

	slots, err := engine.GenerateSlots(ctx, SlotQuery{
		BusinessID: 1, StaffID: 1, ServiceID: 2, Date: "2026-01-05",
	})
	if err != nil {
		t.Fatalf("generate slots: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("expected 2 class slots, got %+v", slots)
	}
	if slots[0].Remaining != 2 {
		t.Fatalf("expected 2 seats left at 09:00, got %d", slots[0].Remaining)
	}
	if slots[1].Remaining != 3 {
		t.Fatalf("expected 3 seats left at 10:10, got %d", slots[1].Remaining)
	}
}

func TestGenerateSlotsEmptyWhenNoWindows(t *testing.T) {
	store := newFixtureStore()
	engine := NewEngine(store, WithClock(fixedClock(testNow)))

	// 2026-01-06 is a Tuesday; the fixture staff only works Mondays.
	slots, err := engine.GenerateSlots(context.Background(), SlotQuery{
		BusinessID: 1, StaffID: 1, ServiceID: 1, Date: "2026-01-06",
	})
	if err != nil {
		t.Fatalf("generate slots: %v", err)
	}
	if slots == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots on Tuesday, got %+v", slots)
	}
}

func TestGenerateSlotsUnknownIDs(t *testing.T) {
	store := newFixtureStore()
	engine := NewEngine(store, WithClock(fixedClock(testNow)))
	ctx := context.Background()

	cases := []SlotQuery{
		{BusinessID: 99, StaffID: 1, ServiceID: 1, Date: "2026-01-05"},
		{BusinessID: 1, StaffID: 99, ServiceID: 1, Date: "2026-01-05"},
		{BusinessID: 1, StaffID: 1, ServiceID: 99, Date: "2026-01-05"},
	}
	for _, q := range cases {
		if _, err := engine.GenerateSlots(ctx, q); !errors.Is(err, ErrNotFound) {
			t.Fatalf("query %+v: expected ErrNotFound, got %v", q, err)
		}
	}

	// A service from another tenant reads as absent too.
	store.addBusiness(&models.Business{Model: gorm.Model{ID: 2}, Slug: "other", Timezone: "UTC"})
	store.addService(&models.Service{
		Model: gorm.Model{ID: 3}, BusinessID: 2, DurationMinutes: 30,
		ServiceType: models.ServiceIndividual, Capacity: 1,
	})
	if _, err := engine.GenerateSlots(ctx, SlotQuery{
		BusinessID: 1, StaffID: 1, ServiceID: 3, Date: "2026-01-05",
	}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-tenant service: expected ErrNotFound, got %v", err)
	}
}
