package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/clinicware/doctors-portal-api/internal/models"
)

func (s *MongoStore) users() *mongo.Collection {
	return s.db.Collection(usersCollection)
}

// UpsertUser writes the user keyed by email and returns the stored document.
// The role field is left alone so an upsert cannot strip admin rights.
func (s *MongoStore) UpsertUser(ctx context.Context, u models.User) (*models.User, error) {
	filter := bson.M{"email": u.Email}
	update := bson.M{"$set": bson.M{"name": u.Name, "email": u.Email}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var stored models.User
	err := s.users().FindOneAndUpdate(ctx, filter, update, opts).Decode(&stored)
	if err != nil {
		return nil, fmt.Errorf("upsert user %s: %w", u.Email, err)
	}
	return &stored, nil
}

func (s *MongoStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.users().FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user %s: %w", email, err)
	}
	return &user, nil
}

func (s *MongoStore) ListUsers(ctx context.Context) ([]models.User, error) {
	cursor, err := s.users().Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

func (s *MongoStore) SetUserRole(ctx context.Context, email, role string) error {
	result, err := s.users().UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"role": role}},
	)
	if err != nil {
		return fmt.Errorf("set role for %s: %w", email, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
