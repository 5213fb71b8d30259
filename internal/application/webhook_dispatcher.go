package application

import (
	"context"
	"fmt"

	"commerce-adapter-layer/internal/domain"

	"github.com/rs/zerolog"
)

// WebhookHandler processes normalized webhook events for a topic family.
type WebhookHandler interface {
	// CanHandle returns true if this handler processes the given canonical topic
	CanHandle(topic string) bool
	// Handle processes a normalized webhook event
	Handle(ctx context.Context, event *domain.CanonicalWebhookEvent) error
}

// WebhookDispatcher routes normalized events to every registered handler
// that claims the topic.
type WebhookDispatcher struct {
	handlers []WebhookHandler
	logger   zerolog.Logger
}

// NewWebhookDispatcher creates a new webhook dispatcher
func NewWebhookDispatcher(logger zerolog.Logger) *WebhookDispatcher {
	return &WebhookDispatcher{logger: logger}
}

// RegisterHandler adds a handler to the dispatch chain
func (d *WebhookDispatcher) RegisterHandler(handler WebhookHandler) {
	d.handlers = append(d.handlers, handler)
}

// Dispatch routes an event to all matching handlers. Every matching handler
// runs even if an earlier one fails; the first error is returned.
func (d *WebhookDispatcher) Dispatch(ctx context.Context, event *domain.CanonicalWebhookEvent) error {
	var firstErr error
	handled := 0

	for _, handler := range d.handlers {
		if !handler.CanHandle(event.Topic) {
			continue
		}
		handled++

		if err := handler.Handle(ctx, event); err != nil {
			d.logger.Error().
				Err(err).
				Str("platform", string(event.Platform)).
				Str("topic", event.Topic).
				Msg("Webhook handler failed")
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	if handled == 0 {
		d.logger.Debug().
			Str("platform", string(event.Platform)).
			Str("topic", event.Topic).
			Msg("No handler registered for topic")
		return nil
	}
	if firstErr != nil {
		return fmt.Errorf("webhook dispatch for %s: %w", event.Topic, firstErr)
	}
	return nil
}
