package api

import (
	"encoding/json"
	"io"
	"net/http"

	"commerce-adapter-layer/internal/application"
	"commerce-adapter-layer/internal/domain"
	"commerce-adapter-layer/internal/infrastructure/webhook"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// WebhookHandler receives platform webhook deliveries on
// POST /webhooks/{platform}/{projectId}/{environment}.
//
// The raw body is verified against the platform's signature header before any
// parsing. After verification the delivery is always acknowledged with 200 so
// the platform stops retrying; processing failures are recorded on the stored
// event instead.
type WebhookHandler struct {
	adapters application.AdapterProvider
	webhooks *application.WebhookService
	logger   zerolog.Logger
}

// NewWebhookHandler creates a new webhook HTTP handler
func NewWebhookHandler(adapters application.AdapterProvider, webhooks *application.WebhookService, logger zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{
		adapters: adapters,
		webhooks: webhooks,
		logger:   logger,
	}
}

// Handle processes one webhook delivery.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	platform, err := domain.ParsePlatform(chi.URLParam(r, "platform"))
	if err != nil {
		writeError(w, r, http.StatusNotFound, err.Error())
		return
	}

	projectID := chi.URLParam(r, "projectId")
	if projectID == "" {
		writeError(w, r, http.StatusBadRequest, "projectId is required")
		return
	}
	environment := chi.URLParam(r, "environment")
	if environment == "" {
		environment = domain.DefaultEnvironment
	}

	ctx = domain.WithProjectID(ctx, projectID)
	ctx = domain.WithEnvironment(ctx, environment)

	adapter, err := h.adapters.AdapterFor(ctx, projectID, environment, platform)
	if err != nil {
		h.logger.Warn().Err(err).Str("projectId", projectID).Str("platform", string(platform)).
			Msg("Webhook received for unconfigured platform")
		writeError(w, r, http.StatusNotFound, string(platform)+" not configured for this project")
		return
	}

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "failed to read request body")
		return
	}
	defer r.Body.Close()

	signature := r.Header.Get(webhook.SignatureHeader(platform))
	if err := adapter.VerifyWebhookSignature(payload, signature); err != nil {
		h.logger.Warn().Err(err).Str("projectId", projectID).Str("platform", string(platform)).
			Msg("Webhook signature verification failed")
		writeError(w, r, http.StatusUnauthorized, "invalid signature")
		return
	}

	// The delivery is authentic from here on: every outcome acknowledges
	// with 200 so the platform does not redeliver what we already stored.
	topic := platformTopic(platform, r, payload)
	if topic == "" {
		h.logger.Error().Str("platform", string(platform)).Msg("Webhook delivery carries no topic")
		writeJSON(w, http.StatusOK, map[string]string{
			"message":    "ignored",
			"request_id": middleware.GetReqID(ctx),
		})
		return
	}

	shop := r.Header.Get("X-Shopify-Shop-Domain")
	event := h.webhooks.Normalize(platform, adapter.CanonicalTopic(topic), shop, payload)

	if err := h.webhooks.Ingest(ctx, event); err != nil {
		h.logger.Error().Err(err).
			Str("platform", string(platform)).
			Str("topic", event.Topic).
			Str("eventId", event.ID).
			Msg("Webhook processing failed")
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message":    "received",
		"request_id": middleware.GetReqID(ctx),
	})
}

// platformTopic extracts the platform's own topic name from wherever that
// platform puts it: a header for Shopify and WooCommerce, a payload field for
// the rest.
func platformTopic(platform domain.Platform, r *http.Request, payload []byte) string {
	switch platform {
	case domain.PlatformShopify:
		return r.Header.Get("X-Shopify-Topic")
	case domain.PlatformWooCommerce:
		return r.Header.Get("X-WC-Webhook-Topic")
	case domain.PlatformBigCommerce:
		var body struct {
			Scope string `json:"scope"`
		}
		_ = json.Unmarshal(payload, &body)
		return body.Scope
	case domain.PlatformAmazon:
		var body struct {
			NotificationType string `json:"notificationType"`
		}
		_ = json.Unmarshal(payload, &body)
		return body.NotificationType
	case domain.PlatformEBay:
		var body struct {
			Metadata struct {
				Topic string `json:"topic"`
			} `json:"metadata"`
		}
		_ = json.Unmarshal(payload, &body)
		return body.Metadata.Topic
	default:
		return ""
	}
}
