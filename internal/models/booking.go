package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Booking binds a patient to a treatment slot on a given date.
// Treatment references a Service by name and Email a User by email; neither
// reference is enforced by the store.
type Booking struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	PatientName     string             `bson:"patientName" json:"patientName"`
	Email           string             `bson:"email" json:"email"`
	Treatment       string             `bson:"treatment" json:"treatment"`
	AppointmentDate string             `bson:"appointmentDate" json:"appointmentDate"`
	Slot            string             `bson:"slot" json:"slot"`
	Phone           string             `bson:"phone" json:"phone"`
	Price           float64            `bson:"price" json:"price"`
	Paid            bool               `bson:"paid" json:"paid"`
	TransactionID   string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
}
