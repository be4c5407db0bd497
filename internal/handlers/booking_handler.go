package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinicware/doctors-portal-api/internal/middleware"
	"github.com/clinicware/doctors-portal-api/internal/models"
	"github.com/clinicware/doctors-portal-api/internal/store"
)

// CreateBooking inserts a booking unless one already exists for the same
// (email, treatment, appointmentDate). A rejection is still a 200: the
// envelope carries success=false and the record that blocked the insert.
func (h *Handler) CreateBooking(c *gin.Context) {
	var booking models.Booking
	if err := c.ShouldBindJSON(&booking); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.Engine.Create(c.Request.Context(), booking)
	if err != nil {
		h.Log.Error().Err(err).Msg("create booking")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create booking"})
		return
	}

	if !result.Created {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"booking": result.Booking,
			"message": fmt.Sprintf("You already have a booking on %s", booking.AppointmentDate),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "booking": result.Booking})
}

func (h *Handler) GetBookingByID(c *gin.Context) {
	booking, err := h.Store.BookingByID(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, store.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
	case err != nil:
		h.Log.Error().Err(err).Msg("fetch booking")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch booking"})
	default:
		c.JSON(http.StatusOK, booking)
	}
}

// GetMyAppointments lists the caller's bookings. The email query must match
// the token identity.
func (h *Handler) GetMyAppointments(c *gin.Context) {
	email := c.Query("email")
	decodedEmail := c.GetString(middleware.EmailKey)
	if email != decodedEmail {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden access"})
		return
	}

	bookings, err := h.Store.BookingsByEmail(c.Request.Context(), email)
	if err != nil {
		h.Log.Error().Err(err).Str("email", email).Msg("fetch bookings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch bookings"})
		return
	}
	if bookings == nil {
		bookings = make([]models.Booking, 0)
	}
	c.JSON(http.StatusOK, bookings)
}

// UpdateBookingPayment records a completed payment against the booking and
// returns the updated document.
func (h *Handler) UpdateBookingPayment(c *gin.Context) {
	var req struct {
		TransactionID string  `json:"transactionId" binding:"required"`
		Amount        float64 `json:"amount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := c.GetString(middleware.EmailKey)
	updated, err := h.Engine.RecordPayment(c.Request.Context(), c.Param("id"), req.TransactionID, req.Amount, email)
	switch {
	case errors.Is(err, store.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
	case err != nil:
		h.Log.Error().Err(err).Msg("record payment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record payment"})
	default:
		c.JSON(http.StatusOK, updated)
	}
}
