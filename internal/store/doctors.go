package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/clinicware/doctors-portal-api/internal/models"
)

func (s *MongoStore) doctors() *mongo.Collection {
	return s.db.Collection(doctorsCollection)
}

func (s *MongoStore) InsertDoctor(ctx context.Context, d *models.Doctor) error {
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	if _, err := s.doctors().InsertOne(ctx, d); err != nil {
		return fmt.Errorf("insert doctor: %w", err)
	}
	return nil
}

func (s *MongoStore) ListDoctors(ctx context.Context) ([]models.Doctor, error) {
	cursor, err := s.doctors().Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find doctors: %w", err)
	}
	defer cursor.Close(ctx)

	var doctors []models.Doctor
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, fmt.Errorf("decode doctors: %w", err)
	}
	return doctors, nil
}

func (s *MongoStore) DeleteDoctorByEmail(ctx context.Context, email string) (int64, error) {
	result, err := s.doctors().DeleteOne(ctx, bson.M{"email": email})
	if err != nil {
		return 0, fmt.Errorf("delete doctor %s: %w", email, err)
	}
	return result.DeletedCount, nil
}
