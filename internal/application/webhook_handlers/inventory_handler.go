package webhook_handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"commerce-adapter-layer/internal/domain"

	"github.com/rs/zerolog"
)

// InventoryHandler handles stock level webhook events
type InventoryHandler struct {
	logger zerolog.Logger
}

// NewInventoryHandler creates a new inventory webhook handler
func NewInventoryHandler(logger zerolog.Logger) *InventoryHandler {
	return &InventoryHandler{logger: logger}
}

// CanHandle returns true if this handler can process the given topic
func (h *InventoryHandler) CanHandle(topic string) bool {
	return topic == domain.TopicInventoryUpdated
}

// Handle processes an inventory webhook event
func (h *InventoryHandler) Handle(ctx context.Context, event *domain.CanonicalWebhookEvent) error {
	var inventoryData struct {
		InventoryItemID json.Number `json:"inventory_item_id"`
		SKU             string      `json:"sku"`
		Available       json.Number `json:"available"`
	}
	if err := json.Unmarshal(event.Payload, &inventoryData); err != nil {
		return fmt.Errorf("failed to parse inventory webhook payload: %w", err)
	}

	h.logger.Info().
		Str("platform", string(event.Platform)).
		Str("shop", event.Shop).
		Str("inventoryItemId", inventoryData.InventoryItemID.String()).
		Str("sku", inventoryData.SKU).
		Str("available", inventoryData.Available.String()).
		Msg("Processing inventory webhook event")

	return nil
}
