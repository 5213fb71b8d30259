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

// MongoSessionRepository implements SessionRepository using MongoDB
type MongoSessionRepository struct {
	collection *mongo.Collection
}

// NewMongoSessionRepository creates a new MongoDB session repository. A TTL
// index on expiresAt lets MongoDB reap abandoned OAuth sessions.
func NewMongoSessionRepository(db *mongo.Database) ports.SessionRepository {
	collection := db.Collection("oauth_sessions")

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "expiresAt", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	}
	_, _ = collection.Indexes().CreateOne(context.Background(), indexModel)

	return &MongoSessionRepository{collection: collection}
}

// CreateSession stores a new OAuth session
func (r *MongoSessionRepository) CreateSession(ctx context.Context, session *domain.Session) error {
	doc := entity.MongoSessionDocFromDomain(session)
	doc.ID = primitive.NewObjectID()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

// GetSession retrieves a session by its CSRF state token. Expired sessions
// are treated as absent even if the TTL reaper has not run yet.
func (r *MongoSessionRepository) GetSession(ctx context.Context, state string) (*domain.Session, error) {
	var doc entity.MongoSessionDoc

	err := r.collection.FindOne(ctx, bson.M{"state": state}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if time.Now().After(doc.ExpiresAt) {
		return nil, nil
	}

	return doc.ToDomain(), nil
}

// DeleteSession removes a session by its CSRF state token
func (r *MongoSessionRepository) DeleteSession(ctx context.Context, state string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"state": state})
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}
