package entity

import (
	"time"

	"commerce-adapter-layer/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MongoComplianceRecordDoc represents a compliance audit record in MongoDB
type MongoComplianceRecordDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	RecordID      string             `bson:"recordId"`
	Platform      string             `bson:"platform"`
	Topic         string             `bson:"topic"`
	Shop          string             `bson:"shop"`
	CustomerID    string             `bson:"customerId,omitempty"`
	CustomerEmail string             `bson:"customerEmail,omitempty"`
	RequestedAt   time.Time          `bson:"requestedAt"`
	Status        string             `bson:"status"`
	Error         string             `bson:"error,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoComplianceRecordDoc) ToDomain() *domain.ComplianceRecord {
	return &domain.ComplianceRecord{
		ID:            d.RecordID,
		Platform:      domain.Platform(d.Platform),
		Topic:         d.Topic,
		Shop:          d.Shop,
		CustomerID:    d.CustomerID,
		CustomerEmail: d.CustomerEmail,
		RequestedAt:   d.RequestedAt,
		Status:        domain.WebhookStatus(d.Status),
		Error:         d.Error,
	}
}

// MongoComplianceRecordDocFromDomain converts a domain entity to a MongoDB document
func MongoComplianceRecordDocFromDomain(record *domain.ComplianceRecord) *MongoComplianceRecordDoc {
	return &MongoComplianceRecordDoc{
		RecordID:      record.ID,
		Platform:      string(record.Platform),
		Topic:         record.Topic,
		Shop:          record.Shop,
		CustomerID:    record.CustomerID,
		CustomerEmail: record.CustomerEmail,
		RequestedAt:   record.RequestedAt,
		Status:        string(record.Status),
		Error:         record.Error,
	}
}
