package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Service is a bookable treatment offered by the clinic. The collection is
// seeded out of band; this API only reads it.
type Service struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name  string             `bson:"name" json:"name"`
	Price float64            `bson:"price" json:"price"`
	Slots []string           `bson:"slots" json:"slots"`
}
