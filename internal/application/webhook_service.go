package application

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"commerce-adapter-layer/internal/domain"
	"commerce-adapter-layer/internal/infrastructure/pubsub"
	"commerce-adapter-layer/internal/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// dedupTTL is how long a delivery key is remembered. Platforms retry failed
// deliveries for at most a couple of days.
const dedupTTL = 48 * time.Hour

// WebhookService ingests verified webhook payloads: normalize, persist,
// dedup, record compliance obligations, fan out, dispatch. Signature
// verification happens in the HTTP layer before this service is reached.
type WebhookService struct {
	eventRepo  ports.WebhookEventRepository
	dedup      ports.DedupStore
	compliance *ComplianceService
	dispatcher *WebhookDispatcher
	pubsub     *pubsub.WebhookPubSub
	logger     zerolog.Logger
}

// NewWebhookService creates a new webhook ingestion service
func NewWebhookService(
	eventRepo ports.WebhookEventRepository,
	dedup ports.DedupStore,
	compliance *ComplianceService,
	dispatcher *WebhookDispatcher,
	ps *pubsub.WebhookPubSub,
	logger zerolog.Logger,
) *WebhookService {
	return &WebhookService{
		eventRepo:  eventRepo,
		dedup:      dedup,
		compliance: compliance,
		dispatcher: dispatcher,
		pubsub:     ps,
		logger:     logger,
	}
}

// Normalize builds a canonical event from a verified raw payload. A payload
// that is not valid JSON still yields an event; the resource id just stays
// empty and the parse failure is the caller's to log.
func (s *WebhookService) Normalize(platform domain.Platform, canonicalTopic, shop string, payload []byte) *domain.CanonicalWebhookEvent {
	event := &domain.CanonicalWebhookEvent{
		ID:           uuid.NewString(),
		Platform:     platform,
		Topic:        canonicalTopic,
		ResourceType: resourceType(canonicalTopic),
		Shop:         shop,
		Payload:      payload,
		Status:       domain.WebhookStatusPending,
		ReceivedAt:   time.Now(),
	}

	var body struct {
		ID         json.Number `json:"id"`
		ShopDomain string      `json:"shop_domain"`
		Domain     string      `json:"domain"`
	}
	if err := json.Unmarshal(payload, &body); err == nil {
		event.ResourceID = body.ID.String()
		if event.Shop == "" {
			event.Shop = body.ShopDomain
		}
		if event.Shop == "" {
			event.Shop = body.Domain
		}
	}

	return event
}

// Ingest persists and processes a verified canonical event.
//
// Duplicate deliveries (same platform, topic, resource, shop) are dropped
// after the dedup check. Compliance topics write their audit record before
// dispatch so the record exists regardless of processing outcome. Dispatch
// failures mark the stored event failed and are returned to the caller, who
// still acknowledges the delivery with 200.
func (s *WebhookService) Ingest(ctx context.Context, event *domain.CanonicalWebhookEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Status == "" {
		event.Status = domain.WebhookStatusPending
	}

	duplicate, err := s.dedup.Seen(ctx, dedupKey(event), dedupTTL)
	if err != nil {
		// A broken dedup store must not drop events; duplicates are the
		// lesser failure.
		s.logger.Warn().Err(err).Msg("Dedup store unavailable, processing without dedup")
	} else if duplicate {
		s.logger.Info().
			Str("platform", string(event.Platform)).
			Str("topic", event.Topic).
			Str("resourceId", event.ResourceID).
			Msg("Duplicate webhook delivery dropped")
		return nil
	}

	if err := s.eventRepo.Save(ctx, event); err != nil {
		return fmt.Errorf("failed to save webhook event: %w", err)
	}

	var record *domain.ComplianceRecord
	if domain.IsComplianceTopic(event.Topic) {
		record, err = s.compliance.Record(ctx, event)
		if err != nil {
			// The stored event is the fallback audit trail.
			s.logger.Error().Err(err).Str("topic", event.Topic).Msg("Failed to write compliance record")
		}
	}

	s.pubsub.Publish(event)

	if err := s.dispatcher.Dispatch(ctx, event); err != nil {
		if uerr := s.eventRepo.UpdateStatus(ctx, event.ID, domain.WebhookStatusFailed, err.Error()); uerr != nil {
			s.logger.Error().Err(uerr).Str("eventId", event.ID).Msg("Failed to mark webhook event failed")
		}
		if record != nil {
			if cerr := s.compliance.MarkFailed(ctx, record.ID, err.Error()); cerr != nil {
				s.logger.Error().Err(cerr).Str("recordId", record.ID).Msg("Failed to mark compliance record failed")
			}
		}
		event.Status = domain.WebhookStatusFailed
		event.Error = err.Error()
		return err
	}

	if err := s.eventRepo.UpdateStatus(ctx, event.ID, domain.WebhookStatusProcessed, ""); err != nil {
		s.logger.Error().Err(err).Str("eventId", event.ID).Msg("Failed to mark webhook event processed")
	}
	if record != nil {
		if err := s.compliance.MarkProcessed(ctx, record.ID); err != nil {
			s.logger.Error().Err(err).Str("recordId", record.ID).Msg("Failed to mark compliance record processed")
		}
	}
	event.Status = domain.WebhookStatusProcessed
	return nil
}

// PendingEvents lists stored events that have not completed processing.
func (s *WebhookService) PendingEvents(ctx context.Context, limit int) ([]*domain.CanonicalWebhookEvent, error) {
	return s.eventRepo.ListByStatus(ctx, domain.WebhookStatusPending, limit)
}

func dedupKey(event *domain.CanonicalWebhookEvent) string {
	return strings.Join([]string{string(event.Platform), event.Topic, event.Shop, event.ResourceID}, ":")
}

func resourceType(canonicalTopic string) string {
	switch {
	case strings.HasPrefix(canonicalTopic, "orders/"):
		return "order"
	case strings.HasPrefix(canonicalTopic, "products/"):
		return "product"
	case strings.HasPrefix(canonicalTopic, "inventory/"):
		return "inventory"
	case strings.HasPrefix(canonicalTopic, "customers/"):
		return "customer"
	case strings.HasPrefix(canonicalTopic, "shop/"), strings.HasPrefix(canonicalTopic, "app/"):
		return "shop"
	default:
		return "unknown"
	}
}
