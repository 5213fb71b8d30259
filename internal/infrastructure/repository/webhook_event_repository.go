package repository

import (
	"context"
	"fmt"
	"time"

	"commerce-adapter-layer/internal/domain"
	"commerce-adapter-layer/internal/infrastructure/repository/entity"
	"commerce-adapter-layer/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoWebhookEventRepository implements WebhookEventRepository using MongoDB
type MongoWebhookEventRepository struct {
	collection *mongo.Collection
}

// NewMongoWebhookEventRepository creates a new MongoDB webhook event repository
func NewMongoWebhookEventRepository(db *mongo.Database) ports.WebhookEventRepository {
	return &MongoWebhookEventRepository{
		collection: db.Collection("webhook_events"),
	}
}

// Save persists a normalized webhook event
func (r *MongoWebhookEventRepository) Save(ctx context.Context, event *domain.CanonicalWebhookEvent) error {
	doc := entity.MongoWebhookEventDocFromDomain(event)
	doc.ID = primitive.NewObjectID()
	doc.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to save webhook event: %w", err)
	}

	return nil
}

// UpdateStatus records the processing outcome of a stored event
func (r *MongoWebhookEventRepository) UpdateStatus(ctx context.Context, eventID string, status domain.WebhookStatus, processingError string) error {
	filter := bson.M{"eventId": eventID}
	update := bson.M{"$set": bson.M{
		"status": string(status),
		"error":  processingError,
	}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update webhook event status: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("webhook event not found: %s", eventID)
	}

	return nil
}

// ListByStatus retrieves events in a given processing state, oldest first
func (r *MongoWebhookEventRepository) ListByStatus(ctx context.Context, status domain.WebhookStatus, limit int) ([]*domain.CanonicalWebhookEvent, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "receivedAt", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"status": string(status)}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list webhook events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []*domain.CanonicalWebhookEvent
	for cursor.Next(ctx) {
		var doc entity.MongoWebhookEventDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode webhook event: %w", err)
		}
		events = append(events, doc.ToDomain())
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return events, nil
}
