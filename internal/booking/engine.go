package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/clinicware/doctors-portal-api/internal/metrics"
	"github.com/clinicware/doctors-portal-api/internal/models"
	"github.com/clinicware/doctors-portal-api/internal/store"
)

// Engine implements the booking rules: slot availability per date, the
// one-booking-per-(email, treatment, date) guard, and payment recording.
type Engine struct {
	store   store.Store
	log     zerolog.Logger
	metrics *metrics.Metrics
}

func NewEngine(s store.Store, log zerolog.Logger, m *metrics.Metrics) *Engine {
	return &Engine{
		store:   s,
		log:     log.With().Str("component", "booking").Logger(),
		metrics: m,
	}
}

// CreateResult reports the outcome of a Create call. When Created is false
// the Booking field carries the pre-existing record that blocked the insert.
type CreateResult struct {
	Created bool
	Booking models.Booking
}

// Create inserts the booking unless one already exists for the same
// (email, treatment, appointmentDate). The payload is stored as given: no
// check that the treatment exists, the date is in the future, or the slot is
// actually offered. A duplicate-key error from the store means a concurrent
// request won the race; the winner's record is returned as the rejection.
func (e *Engine) Create(ctx context.Context, b models.Booking) (CreateResult, error) {
	existing, err := e.store.FindBooking(ctx, b.Email, b.Treatment, b.AppointmentDate)
	if err == nil {
		e.metrics.BookingsRejected.Inc()
		return CreateResult{Created: false, Booking: *existing}, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return CreateResult{}, fmt.Errorf("check existing booking: %w", err)
	}

	if err := e.store.InsertBooking(ctx, &b); err != nil {
		if errors.Is(err, store.ErrDuplicateBooking) {
			winner, findErr := e.store.FindBooking(ctx, b.Email, b.Treatment, b.AppointmentDate)
			if findErr != nil {
				return CreateResult{}, fmt.Errorf("load winning booking: %w", findErr)
			}
			e.metrics.BookingsRejected.Inc()
			return CreateResult{Created: false, Booking: *winner}, nil
		}
		return CreateResult{}, err
	}

	e.metrics.BookingsCreated.Inc()
	e.log.Info().
		Str("email", b.Email).
		Str("treatment", b.Treatment).
		Str("date", b.AppointmentDate).
		Str("slot", b.Slot).
		Msg("booking created")
	return CreateResult{Created: true, Booking: b}, nil
}

// Availability returns every service with the slots still free on date.
func (e *Engine) Availability(ctx context.Context, date string) ([]models.Service, error) {
	services, err := e.store.ListServices(ctx)
	if err != nil {
		return nil, err
	}
	booked, err := e.store.BookingsByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	return SubtractBooked(services, booked), nil
}

// RecordPayment appends a Payment document and marks the booking paid.
// The two writes are not transactional; if the second fails the payment
// stays on record and the mismatch is logged with both ids.
func (e *Engine) RecordPayment(ctx context.Context, bookingID, transactionID string, amount float64, email string) (*models.Booking, error) {
	payment := models.Payment{
		BookingID:     bookingID,
		Email:         email,
		TransactionID: transactionID,
		Amount:        amount,
	}
	if err := e.store.InsertPayment(ctx, &payment); err != nil {
		return nil, err
	}

	updated, err := e.store.MarkBookingPaid(ctx, bookingID, transactionID)
	if err != nil {
		e.log.Error().Err(err).
			Str("bookingId", bookingID).
			Str("paymentId", payment.ID.Hex()).
			Msg("payment recorded but booking not marked paid")
		return nil, err
	}

	e.metrics.PaymentsRecorded.Inc()
	e.log.Info().
		Str("bookingId", bookingID).
		Str("transactionId", transactionID).
		Msg("payment recorded")
	return updated, nil
}
