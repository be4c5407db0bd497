package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/clinicware/doctors-portal-api/internal/models"
)

func (s *MongoStore) bookings() *mongo.Collection {
	return s.db.Collection(bookingsCollection)
}

func (s *MongoStore) BookingsByDate(ctx context.Context, date string) ([]models.Booking, error) {
	return s.findBookings(ctx, bson.M{"appointmentDate": date})
}

func (s *MongoStore) BookingsByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	return s.findBookings(ctx, bson.M{"email": email})
}

func (s *MongoStore) findBookings(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	cursor, err := s.bookings().Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("decode bookings: %w", err)
	}
	return bookings, nil
}

func (s *MongoStore) BookingByID(ctx context.Context, id string) (*models.Booking, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var booking models.Booking
	err = s.bookings().FindOne(ctx, bson.M{"_id": objID}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find booking %s: %w", id, err)
	}
	return &booking, nil
}

// FindBooking looks up the dedup key (email, treatment, appointmentDate).
func (s *MongoStore) FindBooking(ctx context.Context, email, treatment, date string) (*models.Booking, error) {
	filter := bson.M{
		"email":           email,
		"treatment":       treatment,
		"appointmentDate": date,
	}

	var booking models.Booking
	err := s.bookings().FindOne(ctx, filter).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	return &booking, nil
}

func (s *MongoStore) InsertBooking(ctx context.Context, b *models.Booking) error {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	_, err := s.bookings().InsertOne(ctx, b)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateBooking
	}
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (s *MongoStore) MarkBookingPaid(ctx context.Context, id, transactionID string) (*models.Booking, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	update := bson.M{"$set": bson.M{"paid": true, "transactionId": transactionID}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var booking models.Booking
	err = s.bookings().FindOneAndUpdate(ctx, bson.M{"_id": objID}, update, opts).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mark booking %s paid: %w", id, err)
	}
	return &booking, nil
}
