package application

import (
	"context"
	"encoding/json"
	"time"

	"commerce-adapter-layer/internal/domain"
	"commerce-adapter-layer/internal/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ComplianceService maintains the audit trail for customer data requests and
// erasure notifications. Records are written before any processing happens:
// the regulatory response deadline applies whether or not downstream handling
// succeeds.
type ComplianceService struct {
	complianceRepo ports.ComplianceRepository
	logger         zerolog.Logger
}

// NewComplianceService creates a new compliance service
func NewComplianceService(complianceRepo ports.ComplianceRepository, logger zerolog.Logger) *ComplianceService {
	return &ComplianceService{
		complianceRepo: complianceRepo,
		logger:         logger,
	}
}

// compliancePayload covers the identity fields the compliance topics carry.
// Platforms nest the customer differently, so both shapes are tried.
type compliancePayload struct {
	ShopDomain string `json:"shop_domain"`
	Customer   struct {
		ID    json.Number `json:"id"`
		Email string      `json:"email"`
	} `json:"customer"`
	CustomerID    json.Number `json:"customer_id"`
	CustomerEmail string      `json:"customer_email"`
}

// Record persists an audit record for a verified compliance event. Malformed
// payloads still produce a record; identity fields just stay empty.
func (s *ComplianceService) Record(ctx context.Context, event *domain.CanonicalWebhookEvent) (*domain.ComplianceRecord, error) {
	var payload compliancePayload
	_ = json.Unmarshal(event.Payload, &payload)

	customerID := payload.Customer.ID.String()
	if customerID == "" {
		customerID = payload.CustomerID.String()
	}
	customerEmail := payload.Customer.Email
	if customerEmail == "" {
		customerEmail = payload.CustomerEmail
	}

	shop := event.Shop
	if shop == "" {
		shop = payload.ShopDomain
	}

	record := &domain.ComplianceRecord{
		ID:            uuid.NewString(),
		Platform:      event.Platform,
		Topic:         event.Topic,
		Shop:          shop,
		CustomerID:    customerID,
		CustomerEmail: customerEmail,
		RequestedAt:   time.Now(),
		Status:        domain.WebhookStatusPending,
	}

	if err := s.complianceRepo.Save(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("platform", string(event.Platform)).
		Str("topic", event.Topic).
		Str("shop", shop).
		Str("recordId", record.ID).
		Msg("Compliance request recorded")
	return record, nil
}

// MarkProcessed closes out a compliance record.
func (s *ComplianceService) MarkProcessed(ctx context.Context, recordID string) error {
	return s.complianceRepo.UpdateStatus(ctx, recordID, domain.WebhookStatusProcessed, "")
}

// MarkFailed records a processing failure on the audit record. The record
// itself remains; failures are visible, never silent.
func (s *ComplianceService) MarkFailed(ctx context.Context, recordID string, processingError string) error {
	return s.complianceRepo.UpdateStatus(ctx, recordID, domain.WebhookStatusFailed, processingError)
}

// ListByShop retrieves the audit trail for one shop.
func (s *ComplianceService) ListByShop(ctx context.Context, platform domain.Platform, shop string) ([]*domain.ComplianceRecord, error) {
	return s.complianceRepo.ListByShop(ctx, platform, shop)
}
