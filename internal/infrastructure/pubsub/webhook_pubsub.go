package pubsub

import (
	"context"
	"fmt"
	"sync"

	"commerce-adapter-layer/internal/domain"

	"github.com/rs/zerolog"
)

// EventChannel is one subscriber's view of the normalized event stream.
type EventChannel struct {
	ID     string
	Filter *EventFilter
	Events chan *domain.CanonicalWebhookEvent
	Done   chan struct{}
	ctx    context.Context
	cancel context.CancelFunc
}

// EventFilter narrows a subscription. Zero values match everything.
type EventFilter struct {
	Platform domain.Platform
	Topics   []string
	Shop     string
}

// WebhookPubSub fans normalized webhook events out to in-process
// subscribers. Delivery is best-effort: a subscriber with a full buffer
// misses the event rather than blocking ingestion.
type WebhookPubSub struct {
	mu       sync.RWMutex
	channels map[string]*EventChannel
	logger   zerolog.Logger
	nextID   int64
	idMu     sync.Mutex
}

// NewWebhookPubSub creates a new webhook pub/sub system
func NewWebhookPubSub(logger zerolog.Logger) *WebhookPubSub {
	return &WebhookPubSub{
		channels: make(map[string]*EventChannel),
		logger:   logger,
	}
}

// Subscribe creates a new subscription channel. It is torn down when ctx is
// cancelled or Unsubscribe is called.
func (ps *WebhookPubSub) Subscribe(ctx context.Context, filter *EventFilter) *EventChannel {
	ps.idMu.Lock()
	ps.nextID++
	id := fmt.Sprintf("channel-%d", ps.nextID)
	ps.idMu.Unlock()

	subCtx, cancel := context.WithCancel(ctx)

	channel := &EventChannel{
		ID:     id,
		Filter: filter,
		Events: make(chan *domain.CanonicalWebhookEvent, 10),
		Done:   make(chan struct{}),
		ctx:    subCtx,
		cancel: cancel,
	}

	ps.mu.Lock()
	ps.channels[id] = channel
	ps.mu.Unlock()

	ps.logger.Info().
		Str("channelId", id).
		Interface("filter", filter).
		Msg("Webhook subscription created")

	go func() {
		<-subCtx.Done()
		ps.Unsubscribe(id)
	}()

	return channel
}

// Unsubscribe removes a subscription channel
func (ps *WebhookPubSub) Unsubscribe(channelID string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	channel, exists := ps.channels[channelID]
	if !exists {
		return
	}

	close(channel.Events)
	close(channel.Done)
	channel.cancel()
	delete(ps.channels, channelID)

	ps.logger.Info().
		Str("channelId", channelID).
		Msg("Webhook subscription removed")
}

// Publish broadcasts a normalized event to all matching subscribers
func (ps *WebhookPubSub) Publish(event *domain.CanonicalWebhookEvent) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	publishedCount := 0
	for _, channel := range ps.channels {
		if !matchesFilter(event, channel.Filter) {
			continue
		}
		select {
		case channel.Events <- event:
			publishedCount++
		case <-channel.ctx.Done():
		default:
			ps.logger.Warn().
				Str("channelId", channel.ID).
				Msg("Channel buffer full, dropping event")
		}
	}

	if publishedCount > 0 {
		ps.logger.Debug().
			Str("platform", string(event.Platform)).
			Str("topic", event.Topic).
			Str("shop", event.Shop).
			Int("subscribers", publishedCount).
			Msg("Published webhook event to subscribers")
	}
}

// SubscriberCount reports the number of active subscriptions
func (ps *WebhookPubSub) SubscriberCount() int {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return len(ps.channels)
}

func matchesFilter(event *domain.CanonicalWebhookEvent, filter *EventFilter) bool {
	if filter == nil {
		return true
	}

	if filter.Platform != "" && event.Platform != filter.Platform {
		return false
	}

	if len(filter.Topics) > 0 {
		topicMatch := false
		for _, topic := range filter.Topics {
			if event.Topic == topic {
				topicMatch = true
				break
			}
		}
		if !topicMatch {
			return false
		}
	}

	if filter.Shop != "" && event.Shop != filter.Shop {
		return false
	}

	return true
}
