package entity

import (
	"time"

	"commerce-adapter-layer/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MongoCredentialsDoc represents encrypted platform credentials in MongoDB.
// Secret fields hold ciphertext; decryption happens in the application layer
// when an adapter is constructed.
type MongoCredentialsDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	CredentialsID string             `bson:"credentialsId"`
	ProjectID     string             `bson:"projectId"`
	Environment   string             `bson:"environment"`
	Platform      string             `bson:"platform"`
	ShopDomain    string             `bson:"shopDomain"`
	ClientID      string             `bson:"clientId"`
	ClientSecret  string             `bson:"clientSecret,omitempty"`
	AccessToken   string             `bson:"accessToken,omitempty"`
	RefreshToken  string             `bson:"refreshToken,omitempty"`
	WebhookSecret string             `bson:"webhookSecret,omitempty"`
	ExpiresAt     time.Time          `bson:"expiresAt,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
	Metadata      map[string]string  `bson:"metadata,omitempty"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoCredentialsDoc) ToDomain() *domain.Credentials {
	return &domain.Credentials{
		ID:            d.CredentialsID,
		ProjectID:     d.ProjectID,
		Environment:   d.Environment,
		Platform:      domain.Platform(d.Platform),
		ShopDomain:    d.ShopDomain,
		ClientID:      d.ClientID,
		ClientSecret:  d.ClientSecret,
		AccessToken:   d.AccessToken,
		RefreshToken:  d.RefreshToken,
		WebhookSecret: d.WebhookSecret,
		ExpiresAt:     d.ExpiresAt,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
		Metadata:      d.Metadata,
	}
}

// MongoCredentialsDocFromDomain converts a domain entity to a MongoDB document
func MongoCredentialsDocFromDomain(creds *domain.Credentials) *MongoCredentialsDoc {
	return &MongoCredentialsDoc{
		CredentialsID: creds.ID,
		ProjectID:     creds.ProjectID,
		Environment:   creds.Environment,
		Platform:      string(creds.Platform),
		ShopDomain:    creds.ShopDomain,
		ClientID:      creds.ClientID,
		ClientSecret:  creds.ClientSecret,
		AccessToken:   creds.AccessToken,
		RefreshToken:  creds.RefreshToken,
		WebhookSecret: creds.WebhookSecret,
		ExpiresAt:     creds.ExpiresAt,
		CreatedAt:     creds.CreatedAt,
		UpdatedAt:     creds.UpdatedAt,
		Metadata:      creds.Metadata,
	}
}
