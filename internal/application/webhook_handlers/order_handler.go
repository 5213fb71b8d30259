package webhook_handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"commerce-adapter-layer/internal/domain"

	"github.com/rs/zerolog"
)

// OrderHandler handles order-related webhook events
type OrderHandler struct {
	logger zerolog.Logger
}

// NewOrderHandler creates a new order webhook handler
func NewOrderHandler(logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{logger: logger}
}

// CanHandle returns true if this handler can process the given topic
func (h *OrderHandler) CanHandle(topic string) bool {
	return topic == domain.TopicOrderCreated ||
		topic == domain.TopicOrderUpdated ||
		topic == domain.TopicOrderCancelled
}

// Handle processes an order webhook event
func (h *OrderHandler) Handle(ctx context.Context, event *domain.CanonicalWebhookEvent) error {
	var orderData struct {
		ID                json.Number `json:"id"`
		OrderNumber       json.Number `json:"order_number"`
		Email             string      `json:"email"`
		TotalPrice        string      `json:"total_price"`
		FinancialStatus   string      `json:"financial_status"`
		FulfillmentStatus string      `json:"fulfillment_status"`
	}
	if err := json.Unmarshal(event.Payload, &orderData); err != nil {
		return fmt.Errorf("failed to parse order webhook payload: %w", err)
	}

	h.logger.Info().
		Str("platform", string(event.Platform)).
		Str("topic", event.Topic).
		Str("shop", event.Shop).
		Str("orderId", orderData.ID.String()).
		Str("email", orderData.Email).
		Str("totalPrice", orderData.TotalPrice).
		Str("financialStatus", orderData.FinancialStatus).
		Str("fulfillmentStatus", orderData.FulfillmentStatus).
		Msg("Processing order webhook event")

	switch event.Topic {
	case domain.TopicOrderCreated:
		h.logger.Info().Str("shop", event.Shop).Str("orderId", orderData.ID.String()).Msg("New order created")
	case domain.TopicOrderCancelled:
		h.logger.Info().Str("shop", event.Shop).Str("orderId", orderData.ID.String()).Msg("Order cancelled")
	}

	return nil
}
