package application

import (
	"context"
	"testing"

	"commerce-adapter-layer/internal/domain"
	"commerce-adapter-layer/internal/ports"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncProductsReturnsCanonicalRecords(t *testing.T) {
	adapter := &fakeAdapter{
		platform: domain.PlatformShopify,
		caps:     ports.CapabilitySet{ports.CapabilityProducts},
		products: []domain.CanonicalProduct{
			{Platform: domain.PlatformShopify, PlatformID: "1", Title: "Pink iPod"},
		},
	}
	svc := NewSyncService(&fakeProvider{adapter: adapter}, zerolog.Nop())

	products, err := svc.SyncProducts(context.Background(), "proj-1", "master", domain.PlatformShopify)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Pink iPod", products[0].Title)
}

func TestSyncCustomersChecksCapabilityBeforeCalling(t *testing.T) {
	// Amazon declares no customer capability; the adapter is never invoked.
	adapter := &fakeAdapter{
		platform: domain.PlatformAmazon,
		caps:     ports.CapabilitySet{ports.CapabilityProducts, ports.CapabilityOrders},
	}
	svc := NewSyncService(&fakeProvider{adapter: adapter}, zerolog.Nop())

	_, err := svc.SyncCustomers(context.Background(), "proj-1", "master", domain.PlatformAmazon)
	require.Error(t, err)
	assert.True(t, domain.IsUnsupported(err))
}

func TestRegisterWebhooksSkipsTopicsWithoutPlatformEquivalent(t *testing.T) {
	adapter := &fakeAdapter{
		platform: domain.PlatformEBay,
		caps:     ports.CapabilitySet{ports.CapabilityWebhooks},
		webhooks: map[string]string{
			domain.TopicInventoryUpdated: "sub-1",
		},
	}
	svc := NewSyncService(&fakeProvider{adapter: adapter}, zerolog.Nop())

	registered, err := svc.RegisterWebhooks(context.Background(), "proj-1", "master", domain.PlatformEBay,
		"https://app.example.com/webhooks/ebay", []string{domain.TopicOrderCreated, domain.TopicInventoryUpdated})
	require.NoError(t, err)

	// orders/create has no eBay notification topic and is skipped, not fatal.
	assert.Equal(t, map[string]string{domain.TopicInventoryUpdated: "sub-1"}, registered)
}

func TestSyncFailsWhenAdapterCannotBeBuilt(t *testing.T) {
	svc := NewSyncService(&fakeProvider{err: assert.AnError}, zerolog.Nop())

	_, err := svc.SyncOrders(context.Background(), "proj-1", "master", domain.PlatformWooCommerce)
	assert.ErrorIs(t, err, assert.AnError)
}
