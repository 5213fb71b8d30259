package entity

import (
	"time"

	"commerce-adapter-layer/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MongoWebhookEventDoc represents a normalized webhook event in MongoDB
type MongoWebhookEventDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	EventID      string             `bson:"eventId"`
	Platform     string             `bson:"platform"`
	Topic        string             `bson:"topic"`
	ResourceID   string             `bson:"resourceId"`
	ResourceType string             `bson:"resourceType"`
	Shop         string             `bson:"shop"`
	Payload      []byte             `bson:"payload"`
	Status       string             `bson:"status"`
	Error        string             `bson:"error,omitempty"`
	ReceivedAt   time.Time          `bson:"receivedAt"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoWebhookEventDoc) ToDomain() *domain.CanonicalWebhookEvent {
	return &domain.CanonicalWebhookEvent{
		ID:           d.EventID,
		Platform:     domain.Platform(d.Platform),
		Topic:        d.Topic,
		ResourceID:   d.ResourceID,
		ResourceType: d.ResourceType,
		Shop:         d.Shop,
		Payload:      d.Payload,
		Status:       domain.WebhookStatus(d.Status),
		Error:        d.Error,
		ReceivedAt:   d.ReceivedAt,
	}
}

// MongoWebhookEventDocFromDomain converts a domain entity to a MongoDB document
func MongoWebhookEventDocFromDomain(event *domain.CanonicalWebhookEvent) *MongoWebhookEventDoc {
	return &MongoWebhookEventDoc{
		EventID:      event.ID,
		Platform:     string(event.Platform),
		Topic:        event.Topic,
		ResourceID:   event.ResourceID,
		ResourceType: event.ResourceType,
		Shop:         event.Shop,
		Payload:      event.Payload,
		Status:       string(event.Status),
		Error:        event.Error,
		ReceivedAt:   event.ReceivedAt,
	}
}
