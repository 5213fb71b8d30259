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

// MongoComplianceRepository implements ComplianceRepository using MongoDB
type MongoComplianceRepository struct {
	collection *mongo.Collection
}

// NewMongoComplianceRepository creates a new MongoDB compliance repository
func NewMongoComplianceRepository(db *mongo.Database) ports.ComplianceRepository {
	return &MongoComplianceRepository{
		collection: db.Collection("compliance_records"),
	}
}

// Save persists an auditable compliance request record
func (r *MongoComplianceRepository) Save(ctx context.Context, record *domain.ComplianceRecord) error {
	doc := entity.MongoComplianceRecordDocFromDomain(record)
	doc.ID = primitive.NewObjectID()
	doc.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to save compliance record: %w", err)
	}

	return nil
}

// UpdateStatus records the processing outcome of a compliance record
func (r *MongoComplianceRepository) UpdateStatus(ctx context.Context, recordID string, status domain.WebhookStatus, processingError string) error {
	filter := bson.M{"recordId": recordID}
	update := bson.M{"$set": bson.M{
		"status": string(status),
		"error":  processingError,
	}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update compliance record status: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("compliance record not found: %s", recordID)
	}

	return nil
}

// ListByShop retrieves all compliance records for one shop, newest first
func (r *MongoComplianceRepository) ListByShop(ctx context.Context, platform domain.Platform, shop string) ([]*domain.ComplianceRecord, error) {
	filter := bson.M{
		"platform": string(platform),
		"shop":     shop,
	}
	opts := options.Find().SetSort(bson.D{{Key: "requestedAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list compliance records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []*domain.ComplianceRecord
	for cursor.Next(ctx) {
		var doc entity.MongoComplianceRecordDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode compliance record: %w", err)
		}
		records = append(records, doc.ToDomain())
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return records, nil
}
