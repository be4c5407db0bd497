package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment records a completed card charge against a booking. Documents are
// append-only; the booking itself carries the paid flag.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	BookingID     string             `bson:"bookingId" json:"bookingId"`
	Email         string             `bson:"email" json:"email"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	Amount        float64            `bson:"amount" json:"amount"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
