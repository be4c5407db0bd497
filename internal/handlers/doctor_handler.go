package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinicware/doctors-portal-api/internal/models"
)

func (h *Handler) CreateDoctor(c *gin.Context) {
	var doctor models.Doctor
	if err := c.ShouldBindJSON(&doctor); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Store.InsertDoctor(c.Request.Context(), &doctor); err != nil {
		h.Log.Error().Err(err).Msg("insert doctor")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to insert doctor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"acknowledged": true, "insertedId": doctor.ID})
}

func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.Store.ListDoctors(c.Request.Context())
	if err != nil {
		h.Log.Error().Err(err).Msg("list doctors")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch doctors"})
		return
	}
	if doctors == nil {
		doctors = make([]models.Doctor, 0)
	}
	c.JSON(http.StatusOK, doctors)
}

func (h *Handler) DeleteDoctor(c *gin.Context) {
	email := c.Param("email")

	deleted, err := h.Store.DeleteDoctorByEmail(c.Request.Context(), email)
	if err != nil {
		h.Log.Error().Err(err).Str("email", email).Msg("delete doctor")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete doctor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"acknowledged": true, "deletedCount": deleted})
}
