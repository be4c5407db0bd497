package store

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	servicesCollection = "services"
	bookingsCollection = "bookings"
	usersCollection    = "users"
	doctorsCollection  = "doctors"
	paymentsCollection = "payments"
)

// MongoStore is the hosted document database behind the API. It owns the
// client: connect once at process start, Close at shutdown.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
	log    zerolog.Logger
}

func NewMongoStore(ctx context.Context, uri, database string, log zerolog.Logger) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return &MongoStore{
		client: client,
		db:     client.Database(database),
		log:    log.With().Str("component", "store").Logger(),
	}, nil
}

// EnsureIndexes creates the indexes the API relies on. The unique compound
// booking index closes the check-then-insert race: a concurrent duplicate
// that slips past the existence check fails here instead of double-inserting.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(bookingsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "email", Value: 1},
			{Key: "treatment", Value: 1},
			{Key: "appointmentDate", Value: 1},
		},
		Options: options.Index().SetUnique(true).SetName("uniq_email_treatment_date"),
	})
	if err != nil {
		return fmt.Errorf("create booking index: %w", err)
	}

	_, err = s.db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_email"),
	})
	if err != nil {
		return fmt.Errorf("create user index: %w", err)
	}

	s.log.Info().Msg("indexes ensured")
	return nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
