package pubsub

import (
	"context"
	"testing"
	"time"

	"commerce-adapter-layer/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesMatchingSubscribers(t *testing.T) {
	ps := NewWebhookPubSub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	orders := ps.Subscribe(ctx, &EventFilter{Topics: []string{domain.TopicOrderCreated}})
	amazonOnly := ps.Subscribe(ctx, &EventFilter{Platform: domain.PlatformAmazon})
	everything := ps.Subscribe(ctx, nil)

	event := &domain.CanonicalWebhookEvent{
		Platform: domain.PlatformShopify,
		Topic:    domain.TopicOrderCreated,
		Shop:     "myshop.myshopify.com",
	}
	ps.Publish(event)

	select {
	case got := <-orders.Events:
		assert.Equal(t, domain.TopicOrderCreated, got.Topic)
	case <-time.After(time.Second):
		t.Fatal("order subscriber did not receive event")
	}

	select {
	case got := <-everything.Events:
		assert.Equal(t, "myshop.myshopify.com", got.Shop)
	case <-time.After(time.Second):
		t.Fatal("unfiltered subscriber did not receive event")
	}

	select {
	case <-amazonOnly.Events:
		t.Fatal("platform filter should have excluded the event")
	default:
	}
}

func TestPublishDoesNotBlockOnFullBuffer(t *testing.T) {
	ps := NewWebhookPubSub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := ps.Subscribe(ctx, nil)
	for i := 0; i < 20; i++ {
		ps.Publish(&domain.CanonicalWebhookEvent{Topic: domain.TopicProductUpdated})
	}

	// Buffer holds 10; the rest were dropped rather than blocking.
	assert.Len(t, ch.Events, 10)
}

func TestUnsubscribeOnContextCancel(t *testing.T) {
	ps := NewWebhookPubSub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())

	ch := ps.Subscribe(ctx, nil)
	require.Equal(t, 1, ps.SubscriberCount())

	cancel()
	select {
	case <-ch.Done:
	case <-time.After(time.Second):
		t.Fatal("subscription was not torn down")
	}
	assert.Equal(t, 0, ps.SubscriberCount())
}
