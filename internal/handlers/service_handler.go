package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinicware/doctors-portal-api/internal/models"
)

// GetServices returns every treatment the clinic offers, slots unfiltered.
func (h *Handler) GetServices(c *gin.Context) {
	services, err := h.Store.ListServices(c.Request.Context())
	if err != nil {
		h.Log.Error().Err(err).Msg("list services")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch services"})
		return
	}
	if services == nil {
		services = make([]models.Service, 0)
	}
	c.JSON(http.StatusOK, services)
}

// GetAvailable returns every service with only the slots still free on the
// requested date.
func (h *Handler) GetAvailable(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}

	services, err := h.Engine.Availability(c.Request.Context(), date)
	if err != nil {
		h.Log.Error().Err(err).Str("date", date).Msg("compute availability")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute availability"})
		return
	}
	if services == nil {
		services = make([]models.Service, 0)
	}
	c.JSON(http.StatusOK, services)
}
