package repository

import (
	"context"
	"fmt"
	"time"

	"commerce-adapter-layer/internal/domain"
	"commerce-adapter-layer/internal/infrastructure/repository/entity"
	"commerce-adapter-layer/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoConnectionRepository implements ConnectionRepository using MongoDB
type MongoConnectionRepository struct {
	collection *mongo.Collection
}

// NewMongoConnectionRepository creates a new MongoDB connection repository
func NewMongoConnectionRepository(db *mongo.Database) ports.ConnectionRepository {
	return &MongoConnectionRepository{
		collection: db.Collection("connections"),
	}
}

// Save saves or updates a connection. One connection exists per
// (project, environment, platform).
func (r *MongoConnectionRepository) Save(ctx context.Context, conn *domain.Connection) error {
	doc := entity.MongoConnectionDocFromDomain(conn)
	doc.UpdatedAt = time.Now()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}

	opts := options.Update().SetUpsert(true)
	filter := bson.M{
		"projectId":   conn.ProjectID,
		"environment": conn.Environment,
		"platform":    string(conn.Platform),
	}
	update := bson.M{"$set": doc}

	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to save connection: %w", err)
	}

	return nil
}

// Get retrieves a connection by project, environment, and platform
func (r *MongoConnectionRepository) Get(ctx context.Context, projectID, environment string, platform domain.Platform) (*domain.Connection, error) {
	var doc entity.MongoConnectionDoc
	filter := bson.M{
		"projectId":   projectID,
		"environment": environment,
		"platform":    string(platform),
	}

	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get connection: %w", err)
	}

	return doc.ToDomain(), nil
}

// List retrieves all connections for a project and environment
func (r *MongoConnectionRepository) List(ctx context.Context, projectID, environment string) ([]*domain.Connection, error) {
	filter := bson.M{
		"projectId":   projectID,
		"environment": environment,
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}
	defer cursor.Close(ctx)

	var conns []*domain.Connection
	for cursor.Next(ctx) {
		var doc entity.MongoConnectionDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode connection: %w", err)
		}
		conns = append(conns, doc.ToDomain())
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return conns, nil
}

// Delete deletes a connection by its ID
func (r *MongoConnectionRepository) Delete(ctx context.Context, connectionID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"connectionId": connectionID})
	if err != nil {
		return fmt.Errorf("failed to delete connection: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("connection not found: %s", connectionID)
	}

	return nil
}
