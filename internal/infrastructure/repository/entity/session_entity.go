package entity

import (
	"time"

	"commerce-adapter-layer/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MongoSessionDoc represents an in-flight OAuth session in MongoDB
type MongoSessionDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	SessionID   string             `bson:"sessionId"`
	Platform    string             `bson:"platform"`
	Shop        string             `bson:"shop"`
	State       string             `bson:"state"`
	Scopes      []string           `bson:"scopes"`
	ProjectID   string             `bson:"projectId"`
	Environment string             `bson:"environment"`
	ReturnURL   string             `bson:"returnUrl,omitempty"`
	ExpiresAt   time.Time          `bson:"expiresAt"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoSessionDoc) ToDomain() *domain.Session {
	return &domain.Session{
		ID:          d.SessionID,
		Platform:    domain.Platform(d.Platform),
		Shop:        d.Shop,
		State:       d.State,
		Scopes:      d.Scopes,
		ProjectID:   d.ProjectID,
		Environment: d.Environment,
		ReturnURL:   d.ReturnURL,
		ExpiresAt:   d.ExpiresAt,
		CreatedAt:   d.CreatedAt,
	}
}

// MongoSessionDocFromDomain converts a domain entity to a MongoDB document
func MongoSessionDocFromDomain(session *domain.Session) *MongoSessionDoc {
	return &MongoSessionDoc{
		SessionID:   session.ID,
		Platform:    string(session.Platform),
		Shop:        session.Shop,
		State:       session.State,
		Scopes:      session.Scopes,
		ProjectID:   session.ProjectID,
		Environment: session.Environment,
		ReturnURL:   session.ReturnURL,
		ExpiresAt:   session.ExpiresAt,
		CreatedAt:   session.CreatedAt,
	}
}
