package ports

import (
	"context"
	"time"

	"commerce-adapter-layer/internal/domain"
)

// WebhookEventRepository persists normalized webhook events.
type WebhookEventRepository interface {
	Save(ctx context.Context, event *domain.CanonicalWebhookEvent) error
	UpdateStatus(ctx context.Context, eventID string, status domain.WebhookStatus, processingError string) error
	ListByStatus(ctx context.Context, status domain.WebhookStatus, limit int) ([]*domain.CanonicalWebhookEvent, error)
}

// ComplianceRepository persists auditable compliance request records.
type ComplianceRepository interface {
	Save(ctx context.Context, record *domain.ComplianceRecord) error
	UpdateStatus(ctx context.Context, recordID string, status domain.WebhookStatus, processingError string) error
	ListByShop(ctx context.Context, platform domain.Platform, shop string) ([]*domain.ComplianceRecord, error)
}

// ConnectionRepository persists platform connections.
type ConnectionRepository interface {
	Save(ctx context.Context, conn *domain.Connection) error
	Get(ctx context.Context, projectID, environment string, platform domain.Platform) (*domain.Connection, error)
	List(ctx context.Context, projectID, environment string) ([]*domain.Connection, error)
	Delete(ctx context.Context, connectionID string) error
}

// CredentialsRepository persists encrypted platform credentials.
type CredentialsRepository interface {
	Save(ctx context.Context, creds *domain.Credentials) error
	Get(ctx context.Context, projectID, environment string, platform domain.Platform) (*domain.Credentials, error)
	Delete(ctx context.Context, projectID, environment string, platform domain.Platform) error
}

// SessionRepository persists short-lived OAuth sessions keyed by CSRF state.
type SessionRepository interface {
	CreateSession(ctx context.Context, session *domain.Session) error
	GetSession(ctx context.Context, state string) (*domain.Session, error)
	DeleteSession(ctx context.Context, state string) error
}

// DedupStore remembers recently seen webhook delivery keys so platform
// retries do not produce duplicate canonical events.
type DedupStore interface {
	// Seen marks the key and reports whether it was already present.
	Seen(ctx context.Context, key string, ttl time.Duration) (bool, error)
}
