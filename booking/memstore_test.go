package booking

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/victtorciferri/business-management-system-sub005/models"
)

// memStore implements Store for tests. Atomic runs the whole transaction
// under one mutex, which stands in for the per-staff advisory lock and row
// locks of the Postgres store: every engine transaction is fully serialized,
// exactly the guarantee the real locking provides per staff member. Every
// engine write happens as the final step of its transaction, so the fake
// gets away without rollback.
type memStore struct {
	mu sync.Mutex
	tx memTx
}

type memTx struct {
	businesses   map[uint]*models.Business
	services     map[uint]*models.Service
	staff        map[uint]*models.Staff
	windows      []models.AvailabilityWindow
	appointments map[uint]*models.Appointment
	nextID       uint
}

var (
	_ Store = (*memStore)(nil)
	_ Store = (*memTx)(nil)
)

func newMemStore() *memStore {
	return &memStore{tx: memTx{
		businesses:   make(map[uint]*models.Business),
		services:     make(map[uint]*models.Service),
		staff:        make(map[uint]*models.Staff),
		appointments: make(map[uint]*models.Appointment),
	}}
}

func (m *memStore) GetBusiness(ctx context.Context, businessID uint) (*models.Business, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tx.GetBusiness(ctx, businessID)
}

func (m *memStore) GetService(ctx context.Context, businessID, serviceID uint) (*models.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tx.GetService(ctx, businessID, serviceID)
}

func (m *memStore) GetStaff(ctx context.Context, businessID, staffID uint) (*models.Staff, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tx.GetStaff(ctx, businessID, staffID)
}

func (m *memStore) ListOpenWindows(ctx context.Context, staffID uint, day models.DayOfWeek) ([]models.AvailabilityWindow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tx.ListOpenWindows(ctx, staffID, day)
}

func (m *memStore) ListActiveAppointments(ctx context.Context, staffID uint, from, to time.Time) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tx.ListActiveAppointments(ctx, staffID, from, to)
}

func (m *memStore) GetAppointment(ctx context.Context, businessID, appointmentID uint) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tx.GetAppointment(ctx, businessID, appointmentID)
}

func (m *memStore) GetAppointmentForUpdate(ctx context.Context, businessID, appointmentID uint) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tx.GetAppointmentForUpdate(ctx, businessID, appointmentID)
}

func (m *memStore) CreateAppointment(ctx context.Context, appt *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tx.CreateAppointment(ctx, appt)
}

func (m *memStore) SaveAppointment(ctx context.Context, appt *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tx.SaveAppointment(ctx, appt)
}

func (m *memStore) LockStaff(ctx context.Context, staffID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tx.LockStaff(ctx, staffID)
}

func (m *memStore) Atomic(_ context.Context, fn func(tx Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(&m.tx)
}

// Seeding and assertion helpers. IDs are taken from the models so tests can
// reference them literally.

func (m *memStore) addBusiness(b *models.Business) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *b
	m.tx.businesses[b.ID] = &cp
}

func (m *memStore) addStaff(s *models.Staff) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.tx.staff[s.ID] = &cp
}

func (m *memStore) addService(s *models.Service) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.tx.services[s.ID] = &cp
}

func (m *memStore) addWindow(w models.AvailabilityWindow) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tx.windows = append(m.tx.windows, w)
}

func (m *memStore) addAppointment(a *models.Appointment) uint {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tx.nextID++
	a.ID = m.tx.nextID
	cp := *a
	m.tx.appointments[a.ID] = &cp
	return a.ID
}

func (m *memStore) appointment(id uint) models.Appointment {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.tx.appointments[id]
}

func (m *memStore) countByStatus(staffID uint, status models.AppointmentStatus) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, a := range m.tx.appointments {
		if a.StaffID == staffID && a.Status == status {
			n++
		}
	}
	return n
}

// memTx is the view handed to Atomic callbacks; the outer mutex is already
// held, so nothing here locks. Lookups return copies so callers can mutate
// freely before Save writes back.

func (t *memTx) GetBusiness(_ context.Context, businessID uint) (*models.Business, error) {
	b, ok := t.businesses[businessID]
	if !ok {
		return nil, fmt.Errorf("business %d: %w", businessID, ErrNotFound)
	}
	cp := *b
	return &cp, nil
}

func (t *memTx) GetService(_ context.Context, businessID, serviceID uint) (*models.Service, error) {
	s, ok := t.services[serviceID]
	if !ok || s.BusinessID != businessID {
		return nil, fmt.Errorf("service %d: %w", serviceID, ErrNotFound)
	}
	cp := *s
	return &cp, nil
}

func (t *memTx) GetStaff(_ context.Context, businessID, staffID uint) (*models.Staff, error) {
	s, ok := t.staff[staffID]
	if !ok || s.BusinessID != businessID {
		return nil, fmt.Errorf("staff %d: %w", staffID, ErrNotFound)
	}
	cp := *s
	return &cp, nil
}

func (t *memTx) ListOpenWindows(_ context.Context, staffID uint, day models.DayOfWeek) ([]models.AvailabilityWindow, error) {
	var out []models.AvailabilityWindow
	for _, w := range t.windows {
		if w.StaffID == staffID && w.DayOfWeek == day && w.IsAvailable {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out, nil
}

func (t *memTx) ListActiveAppointments(_ context.Context, staffID uint, from, to time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range t.appointments {
		if a.StaffID != staffID || a.Status == models.StatusCancelled {
			continue
		}
		if a.StartTime.Before(to) && a.EndTime().After(from) {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (t *memTx) GetAppointment(_ context.Context, businessID, appointmentID uint) (*models.Appointment, error) {
	a, ok := t.appointments[appointmentID]
	if !ok || a.BusinessID != businessID {
		return nil, fmt.Errorf("appointment %d: %w", appointmentID, ErrNotFound)
	}
	cp := *a
	return &cp, nil
}

func (t *memTx) GetAppointmentForUpdate(ctx context.Context, businessID, appointmentID uint) (*models.Appointment, error) {
	return t.GetAppointment(ctx, businessID, appointmentID)
}

func (t *memTx) CreateAppointment(_ context.Context, appt *models.Appointment) error {
	t.nextID++
	appt.ID = t.nextID
	cp := *appt
	t.appointments[appt.ID] = &cp
	return nil
}

func (t *memTx) SaveAppointment(_ context.Context, appt *models.Appointment) error {
	if _, ok := t.appointments[appt.ID]; !ok {
		return fmt.Errorf("appointment %d: %w", appt.ID, ErrNotFound)
	}
	cp := *appt
	t.appointments[appt.ID] = &cp
	return nil
}

func (t *memTx) LockStaff(context.Context, uint) error {
	return nil // Atomic already holds the store-wide lock
}

func (t *memTx) Atomic(_ context.Context, fn func(tx Store) error) error {
	return fn(t) // already inside a transaction
}

// recordingNotifier counts events so tests can assert delivery exactly once
// and only after success.
type recordingNotifier struct {
	mu        sync.Mutex
	booked    int
	cancelled int
	paid      int
	reminded  int
}

func (n *recordingNotifier) AppointmentBooked(context.Context, *models.Appointment) {
	n.mu.Lock()
	n.booked++
	n.mu.Unlock()
}

func (n *recordingNotifier) AppointmentCancelled(context.Context, *models.Appointment) {
	n.mu.Lock()
	n.cancelled++
	n.mu.Unlock()
}

func (n *recordingNotifier) PaymentReceived(context.Context, *models.Appointment) {
	n.mu.Lock()
	n.paid++
	n.mu.Unlock()
}

func (n *recordingNotifier) AppointmentReminder(context.Context, *models.Appointment) {
	n.mu.Lock()
	n.reminded++
	n.mu.Unlock()
}

func (n *recordingNotifier) counts() (booked, cancelled, paid int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.booked, n.cancelled, n.paid
}

// Shared fixture: one business in UTC with a 10 minute buffer and a 24 hour
// cancellation window, one staff member working Monday 09:00-12:00, a 60
// minute individual service (1) and a 60 minute class for three (2).
// 2026-01-05 is a Monday; the pinned clock sits on the Friday before.

var (
	testNow    = time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	testMonday = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
)

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func newFixtureStore() *memStore {
	s := newMemStore()
	s.addBusiness(&models.Business{
		Model:                   gorm.Model{ID: 1},
		Name:                    "Salon Rivera",
		Slug:                    "salon-rivera",
		Timezone:                "UTC",
		BufferMinutes:           10,
		CancellationWindowHours: 24,
	})
	s.addStaff(&models.Staff{
		Model:      gorm.Model{ID: 1},
		BusinessID: 1,
		Name:       "Ana",
		IsActive:   true,
	})
	s.addService(&models.Service{
		Model:           gorm.Model{ID: 1},
		BusinessID:      1,
		Name:            "Haircut",
		DurationMinutes: 60,
		ServiceType:     models.ServiceIndividual,
		Capacity:        1,
		IsActive:        true,
	})
	s.addService(&models.Service{
		Model:           gorm.Model{ID: 2},
		BusinessID:      1,
		Name:            "Yoga class",
		DurationMinutes: 60,
		ServiceType:     models.ServiceClass,
		Capacity:        3,
		IsActive:        true,
	})
	s.addWindow(models.AvailabilityWindow{
		Model:       gorm.Model{ID: 1},
		BusinessID:  1,
		StaffID:     1,
		DayOfWeek:   models.Monday,
		StartTime:   "09:00",
		EndTime:     "12:00",
		IsAvailable: true,
	})
	return s
}
