package store

import (
	"context"
	"errors"

	"github.com/clinicware/doctors-portal-api/internal/models"
)

var (
	// ErrNotFound is returned when a lookup matches no document.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidID is returned when a caller-supplied id cannot be parsed.
	ErrInvalidID = errors.New("invalid document id")
	// ErrDuplicateBooking is returned when an insert violates the
	// (email, treatment, appointmentDate) uniqueness constraint.
	ErrDuplicateBooking = errors.New("duplicate booking")
)

// Store is the persistence capability handed to the engine and handlers.
// The Mongo implementation owns the client connection; Memory backs tests.
type Store interface {
	ListServices(ctx context.Context) ([]models.Service, error)

	BookingsByDate(ctx context.Context, date string) ([]models.Booking, error)
	BookingsByEmail(ctx context.Context, email string) ([]models.Booking, error)
	BookingByID(ctx context.Context, id string) (*models.Booking, error)
	FindBooking(ctx context.Context, email, treatment, date string) (*models.Booking, error)
	InsertBooking(ctx context.Context, b *models.Booking) error
	MarkBookingPaid(ctx context.Context, id, transactionID string) (*models.Booking, error)

	UpsertUser(ctx context.Context, u models.User) (*models.User, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	SetUserRole(ctx context.Context, email, role string) error

	InsertDoctor(ctx context.Context, d *models.Doctor) error
	ListDoctors(ctx context.Context) ([]models.Doctor, error)
	DeleteDoctorByEmail(ctx context.Context, email string) (int64, error)

	InsertPayment(ctx context.Context, p *models.Payment) error

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
