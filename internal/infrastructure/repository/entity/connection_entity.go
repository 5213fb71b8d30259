package entity

import (
	"time"

	"commerce-adapter-layer/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MongoConnectionDoc represents a platform connection in MongoDB
type MongoConnectionDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	ConnectionID string             `bson:"connectionId"`
	ProjectID    string             `bson:"projectId"`
	Environment  string             `bson:"environment"`
	Platform     string             `bson:"platform"`
	ShopDomain   string             `bson:"shopDomain"`
	Status       string             `bson:"status"`
	LastError    string             `bson:"lastError,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoConnectionDoc) ToDomain() *domain.Connection {
	return &domain.Connection{
		ID:          d.ConnectionID,
		ProjectID:   d.ProjectID,
		Environment: d.Environment,
		Platform:    domain.Platform(d.Platform),
		ShopDomain:  d.ShopDomain,
		Status:      domain.ConnectionStatus(d.Status),
		LastError:   d.LastError,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// MongoConnectionDocFromDomain converts a domain entity to a MongoDB document
func MongoConnectionDocFromDomain(conn *domain.Connection) *MongoConnectionDoc {
	return &MongoConnectionDoc{
		ConnectionID: conn.ID,
		ProjectID:    conn.ProjectID,
		Environment:  conn.Environment,
		Platform:     string(conn.Platform),
		ShopDomain:   conn.ShopDomain,
		Status:       string(conn.Status),
		LastError:    conn.LastError,
		CreatedAt:    conn.CreatedAt,
		UpdatedAt:    conn.UpdatedAt,
	}
}
