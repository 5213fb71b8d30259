package webhook_handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"commerce-adapter-layer/internal/domain"

	"github.com/rs/zerolog"
)

// ProductHandler handles product catalog webhook events
type ProductHandler struct {
	logger zerolog.Logger
}

// NewProductHandler creates a new product webhook handler
func NewProductHandler(logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{logger: logger}
}

// CanHandle returns true if this handler can process the given topic
func (h *ProductHandler) CanHandle(topic string) bool {
	return topic == domain.TopicProductCreated ||
		topic == domain.TopicProductUpdated ||
		topic == domain.TopicProductDeleted
}

// Handle processes a product webhook event
func (h *ProductHandler) Handle(ctx context.Context, event *domain.CanonicalWebhookEvent) error {
	var productData struct {
		ID     json.Number `json:"id"`
		Title  string      `json:"title"`
		Status string      `json:"status"`
	}
	if err := json.Unmarshal(event.Payload, &productData); err != nil {
		return fmt.Errorf("failed to parse product webhook payload: %w", err)
	}

	h.logger.Info().
		Str("platform", string(event.Platform)).
		Str("topic", event.Topic).
		Str("shop", event.Shop).
		Str("productId", productData.ID.String()).
		Str("title", productData.Title).
		Str("status", productData.Status).
		Msg("Processing product webhook event")

	if event.Topic == domain.TopicProductDeleted {
		h.logger.Info().Str("shop", event.Shop).Str("productId", productData.ID.String()).Msg("Product deleted")
	}

	return nil
}
