package store

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/clinicware/doctors-portal-api/internal/models"
)

// Memory is an in-process Store with the same semantics as MongoStore,
// including the unique booking constraint. It backs tests and local runs
// without a database.
type Memory struct {
	mu       sync.RWMutex
	services []models.Service
	bookings []models.Booking
	users    map[string]models.User
	doctors  []models.Doctor
	payments []models.Payment
}

func NewMemory() *Memory {
	return &Memory{users: make(map[string]models.User)}
}

// SeedServices replaces the services collection. Test fixture only.
func (m *Memory) SeedServices(services []models.Service) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.services = services
}

func (m *Memory) ListServices(ctx context.Context) ([]models.Service, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Service, len(m.services))
	for i, s := range m.services {
		out[i] = s
		out[i].Slots = append([]string(nil), s.Slots...)
	}
	return out, nil
}

func (m *Memory) BookingsByDate(ctx context.Context, date string) ([]models.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Booking
	for _, b := range m.bookings {
		if b.AppointmentDate == date {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *Memory) BookingsByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Booking
	for _, b := range m.bookings {
		if b.Email == email {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *Memory) BookingByID(ctx context.Context, id string) (*models.Booking, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, b := range m.bookings {
		if b.ID == objID {
			out := b
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) FindBooking(ctx context.Context, email, treatment, date string) (*models.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.findBookingLocked(email, treatment, date)
}

func (m *Memory) findBookingLocked(email, treatment, date string) (*models.Booking, error) {
	for _, b := range m.bookings {
		if b.Email == email && b.Treatment == treatment && b.AppointmentDate == date {
			out := b
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) InsertBooking(ctx context.Context, b *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.findBookingLocked(b.Email, b.Treatment, b.AppointmentDate); err == nil {
		return ErrDuplicateBooking
	}
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	m.bookings = append(m.bookings, *b)
	return nil
}

func (m *Memory) MarkBookingPaid(ctx context.Context, id, transactionID string) (*models.Booking, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.bookings {
		if m.bookings[i].ID == objID {
			m.bookings[i].Paid = true
			m.bookings[i].TransactionID = transactionID
			out := m.bookings[i]
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) UpsertUser(ctx context.Context, u models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.users[u.Email]
	if !ok {
		stored = models.User{ID: primitive.NewObjectID(), Email: u.Email}
	}
	stored.Name = u.Name
	m.users[u.Email] = stored
	return &stored, nil
}

func (m *Memory) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[email]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (m *Memory) ListUsers(ctx context.Context) ([]models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *Memory) SetUserRole(ctx context.Context, email, role string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return ErrNotFound
	}
	u.Role = role
	m.users[email] = u
	return nil
}

func (m *Memory) InsertDoctor(ctx context.Context, d *models.Doctor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	m.doctors = append(m.doctors, *d)
	return nil
}

func (m *Memory) ListDoctors(ctx context.Context) ([]models.Doctor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Doctor(nil), m.doctors...), nil
}

func (m *Memory) DeleteDoctorByEmail(ctx context.Context, email string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []models.Doctor
	var deleted int64
	for _, d := range m.doctors {
		if d.Email == email {
			deleted++
			continue
		}
		kept = append(kept, d)
	}
	m.doctors = kept
	return deleted, nil
}

func (m *Memory) InsertPayment(ctx context.Context, p *models.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	m.payments = append(m.payments, *p)
	return nil
}

// Payments returns a snapshot of the payments collection. Test fixture only.
func (m *Memory) Payments() []models.Payment {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Payment(nil), m.payments...)
}

// Bookings returns a snapshot of the bookings collection. Test fixture only.
func (m *Memory) Bookings() []models.Booking {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Booking(nil), m.bookings...)
}

func (m *Memory) Ping(ctx context.Context) error  { return nil }
func (m *Memory) Close(ctx context.Context) error { return nil }
