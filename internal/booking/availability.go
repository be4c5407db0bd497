package booking

import "github.com/clinicware/doctors-portal-api/internal/models"

// SubtractBooked removes from each service's slot list every slot already
// claimed by a booking for the same treatment. The bookings are expected to
// be pre-filtered to a single date; the function itself is date-agnostic.
func SubtractBooked(services []models.Service, booked []models.Booking) []models.Service {
	for i := range services {
		taken := make(map[string]struct{})
		for _, b := range booked {
			if b.Treatment == services[i].Name {
				taken[b.Slot] = struct{}{}
			}
		}
		if len(taken) == 0 {
			continue
		}

		remaining := make([]string, 0, len(services[i].Slots))
		for _, slot := range services[i].Slots {
			if _, ok := taken[slot]; !ok {
				remaining = append(remaining, slot)
			}
		}
		services[i].Slots = remaining
	}
	return services
}
