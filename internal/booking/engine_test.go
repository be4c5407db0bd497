package booking

import (
	"context"
	"os"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicware/doctors-portal-api/internal/metrics"
	"github.com/clinicware/doctors-portal-api/internal/models"
	"github.com/clinicware/doctors-portal-api/internal/store"
)

func newTestEngine(t *testing.T) (*Engine, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	logger := zerolog.New(os.Stdout).Level(zerolog.Disabled)
	m := metrics.New(prometheus.NewRegistry())
	return NewEngine(mem, logger, m), mem
}

func TestCreateThenDuplicateRejected(t *testing.T) {
	engine, mem := newTestEngine(t)
	ctx := context.Background()

	b := models.Booking{
		PatientName:     "Ana",
		Email:           "a@x.com",
		Treatment:       "Cleaning",
		AppointmentDate: "2024-01-01",
		Slot:            "9am",
	}

	first, err := engine.Create(ctx, b)
	require.NoError(t, err)
	assert.True(t, first.Created)
	assert.False(t, first.Booking.ID.IsZero())

	// Same (email, treatment, date), different slot: rejected with the
	// original record and the collection unchanged.
	b.Slot = "10am"
	second, err := engine.Create(ctx, b)
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.Booking.ID, second.Booking.ID)
	assert.Equal(t, "9am", second.Booking.Slot)
	assert.Len(t, mem.Bookings(), 1)
}

func TestCreateSameEmailDifferentDate(t *testing.T) {
	engine, mem := newTestEngine(t)
	ctx := context.Background()

	b := models.Booking{Email: "a@x.com", Treatment: "Cleaning", AppointmentDate: "2024-01-01", Slot: "9am"}
	_, err := engine.Create(ctx, b)
	require.NoError(t, err)

	b.AppointmentDate = "2024-01-02"
	result, err := engine.Create(ctx, b)
	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.Len(t, mem.Bookings(), 2)
}

func TestAvailability(t *testing.T) {
	engine, mem := newTestEngine(t)
	ctx := context.Background()

	mem.SeedServices([]models.Service{
		{Name: "Cleaning", Slots: []string{"9am", "10am"}},
	})
	_, err := engine.Create(ctx, models.Booking{
		Email: "a@x.com", Treatment: "Cleaning", AppointmentDate: "2024-01-01", Slot: "9am",
	})
	require.NoError(t, err)

	available, err := engine.Availability(ctx, "2024-01-01")
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, []string{"10am"}, available[0].Slots)

	// A different date sees the full slot list.
	available, err = engine.Availability(ctx, "2024-01-02")
	require.NoError(t, err)
	assert.Equal(t, []string{"9am", "10am"}, available[0].Slots)
}

func TestRecordPayment(t *testing.T) {
	engine, mem := newTestEngine(t)
	ctx := context.Background()

	created, err := engine.Create(ctx, models.Booking{
		Email: "a@x.com", Treatment: "Cleaning", AppointmentDate: "2024-01-01", Slot: "9am", Price: 50,
	})
	require.NoError(t, err)

	updated, err := engine.RecordPayment(ctx, created.Booking.ID.Hex(), "txn_123", 50, "a@x.com")
	require.NoError(t, err)
	assert.True(t, updated.Paid)
	assert.Equal(t, "txn_123", updated.TransactionID)

	payments := mem.Payments()
	require.Len(t, payments, 1)
	assert.Equal(t, created.Booking.ID.Hex(), payments[0].BookingID)
	assert.Equal(t, "txn_123", payments[0].TransactionID)
	assert.InDelta(t, 50, payments[0].Amount, 0.001)
}

func TestRecordPaymentUnknownBooking(t *testing.T) {
	engine, mem := newTestEngine(t)

	_, err := engine.RecordPayment(context.Background(), "64b000000000000000000000", "txn_1", 10, "a@x.com")
	require.ErrorIs(t, err, store.ErrNotFound)
	// The payment write happens first, so the document is on record even
	// though the booking update failed. Known inconsistency window.
	assert.Len(t, mem.Payments(), 1)
}
