package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clinicware/doctors-portal-api/internal/models"
)

func TestSubtractBooked(t *testing.T) {
	services := []models.Service{
		{Name: "Cleaning", Slots: []string{"9am", "10am"}},
		{Name: "Whitening", Slots: []string{"9am", "11am"}},
	}
	booked := []models.Booking{
		{Treatment: "Cleaning", AppointmentDate: "2024-01-01", Slot: "9am"},
	}

	result := SubtractBooked(services, booked)

	assert.Equal(t, []string{"10am"}, result[0].Slots)
	// Same slot value for a different treatment stays free.
	assert.Equal(t, []string{"9am", "11am"}, result[1].Slots)
}

func TestSubtractBookedNoBookings(t *testing.T) {
	services := []models.Service{
		{Name: "Cleaning", Slots: []string{"9am", "10am", "11am"}},
	}

	result := SubtractBooked(services, nil)

	assert.Equal(t, []string{"9am", "10am", "11am"}, result[0].Slots)
}

func TestSubtractBookedAllTaken(t *testing.T) {
	services := []models.Service{
		{Name: "Root Canal", Slots: []string{"9am", "10am"}},
	}
	booked := []models.Booking{
		{Treatment: "Root Canal", Slot: "9am"},
		{Treatment: "Root Canal", Slot: "10am"},
	}

	result := SubtractBooked(services, booked)

	assert.Empty(t, result[0].Slots)
}

func TestSubtractBookedUnknownSlotIgnored(t *testing.T) {
	services := []models.Service{
		{Name: "Cleaning", Slots: []string{"9am"}},
	}
	booked := []models.Booking{
		{Treatment: "Cleaning", Slot: "2pm"},
	}

	result := SubtractBooked(services, booked)

	assert.Equal(t, []string{"9am"}, result[0].Slots)
}
