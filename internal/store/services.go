package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/clinicware/doctors-portal-api/internal/models"
)

func (s *MongoStore) ListServices(ctx context.Context) ([]models.Service, error) {
	cursor, err := s.db.Collection(servicesCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find services: %w", err)
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("decode services: %w", err)
	}
	return services, nil
}
