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

// MongoCredentialsRepository implements CredentialsRepository using MongoDB.
// Secret fields arrive already encrypted from the application layer.
type MongoCredentialsRepository struct {
	collection *mongo.Collection
}

// NewMongoCredentialsRepository creates a new MongoDB credentials repository
func NewMongoCredentialsRepository(db *mongo.Database) ports.CredentialsRepository {
	return &MongoCredentialsRepository{
		collection: db.Collection("credentials"),
	}
}

// Save saves or updates credentials for a (project, environment, platform)
func (r *MongoCredentialsRepository) Save(ctx context.Context, creds *domain.Credentials) error {
	doc := entity.MongoCredentialsDocFromDomain(creds)
	doc.UpdatedAt = time.Now()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}

	opts := options.Update().SetUpsert(true)
	filter := bson.M{
		"projectId":   creds.ProjectID,
		"environment": creds.Environment,
		"platform":    string(creds.Platform),
	}
	update := bson.M{"$set": doc}

	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}

	return nil
}

// Get retrieves credentials by project, environment, and platform
func (r *MongoCredentialsRepository) Get(ctx context.Context, projectID, environment string, platform domain.Platform) (*domain.Credentials, error) {
	var doc entity.MongoCredentialsDoc
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
		return nil, fmt.Errorf("failed to get credentials: %w", err)
	}

	return doc.ToDomain(), nil
}

// Delete deletes credentials by project, environment, and platform
func (r *MongoCredentialsRepository) Delete(ctx context.Context, projectID, environment string, platform domain.Platform) error {
	filter := bson.M{
		"projectId":   projectID,
		"environment": environment,
		"platform":    string(platform),
	}

	_, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete credentials: %w", err)
	}

	return nil
}
