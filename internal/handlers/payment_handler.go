package handlers

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CreatePaymentIntent asks the payment processor for a client secret the
// frontend uses to confirm the card charge. Amount is dollars in, cents out.
func (h *Handler) CreatePaymentIntent(c *gin.Context) {
	var req struct {
		TreatmentPrice float64 `json:"treatmentPrice"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.TreatmentPrice <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "treatmentPrice must be positive"})
		return
	}

	amountCents := int64(math.Round(req.TreatmentPrice * 100))
	clientSecret, err := h.Intents.CreateIntent(c.Request.Context(), amountCents)
	if err != nil {
		h.Log.Error().Err(err).Int64("amountCents", amountCents).Msg("create payment intent")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create payment intent"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"clientSecret": clientSecret})
}
