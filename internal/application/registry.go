package application

import (
	"fmt"
	"strconv"
	"time"

	"commerce-adapter-layer/internal/domain"
	"commerce-adapter-layer/internal/infrastructure/adapters/amazon"
	"commerce-adapter-layer/internal/infrastructure/adapters/bigcommerce"
	"commerce-adapter-layer/internal/infrastructure/adapters/ebay"
	"commerce-adapter-layer/internal/infrastructure/adapters/shopify"
	"commerce-adapter-layer/internal/infrastructure/adapters/woocommerce"
	"commerce-adapter-layer/internal/infrastructure/httpclient"
	"commerce-adapter-layer/internal/ports"

	"github.com/rs/zerolog"
)

// AdapterFactory builds an adapter from decrypted credentials.
type AdapterFactory func(creds *domain.Credentials) (ports.Adapter, error)

// Registry constructs platform adapters from stored credentials. Credentials
// arrive with secret fields already decrypted by the credentials service.
type Registry struct {
	logger    zerolog.Logger
	factories map[domain.Platform]AdapterFactory
}

// Published platform rate limits, expressed as minimum inter-request delay.
var minIntervals = map[domain.Platform]time.Duration{
	domain.PlatformAmazon:      time.Second,
	domain.PlatformBigCommerce: 250 * time.Millisecond,
	domain.PlatformWooCommerce: 500 * time.Millisecond,
	domain.PlatformEBay:        500 * time.Millisecond,
	domain.PlatformShopify:     500 * time.Millisecond,
}

// NewRegistry creates a registry with factories for every known platform.
func NewRegistry(logger zerolog.Logger) *Registry {
	r := &Registry{
		logger:    logger,
		factories: make(map[domain.Platform]AdapterFactory),
	}

	r.Register(domain.PlatformAmazon, func(creds *domain.Credentials) (ports.Adapter, error) {
		cfg := amazon.Config{
			Region:        creds.Metadata["region"],
			MarketplaceID: creds.Metadata["marketplace_id"],
			SellerID:      creds.Metadata["seller_id"],
			ClientID:      creds.ClientID,
			ClientSecret:  creds.ClientSecret,
			RefreshToken:  creds.RefreshToken,
			WebhookSecret: creds.WebhookSecret,
		}
		return amazon.New(cfg, r.newClient(domain.PlatformAmazon), logger), nil
	})

	r.Register(domain.PlatformBigCommerce, func(creds *domain.Credentials) (ports.Adapter, error) {
		cfg := bigcommerce.Config{
			StoreHash:     creds.ShopDomain,
			ClientID:      creds.ClientID,
			ClientSecret:  creds.ClientSecret,
			AccessToken:   creds.AccessToken,
			RedirectURI:   creds.Metadata["redirect_uri"],
			WebhookSecret: creds.WebhookSecret,
		}
		return bigcommerce.New(cfg, r.newClient(domain.PlatformBigCommerce), logger), nil
	})

	r.Register(domain.PlatformWooCommerce, func(creds *domain.Credentials) (ports.Adapter, error) {
		cfg := woocommerce.Config{
			StoreURL:       creds.ShopDomain,
			ConsumerKey:    creds.ClientID,
			ConsumerSecret: creds.ClientSecret,
			Currency:       creds.Metadata["currency"],
			CallbackURL:    creds.Metadata["callback_url"],
			WebhookSecret:  creds.WebhookSecret,
		}
		return woocommerce.New(cfg, r.newClient(domain.PlatformWooCommerce), logger), nil
	})

	r.Register(domain.PlatformEBay, func(creds *domain.Credentials) (ports.Adapter, error) {
		cfg := ebay.Config{
			ClientID:      creds.ClientID,
			ClientSecret:  creds.ClientSecret,
			RefreshToken:  creds.RefreshToken,
			RuName:        creds.Metadata["ru_name"],
			WebhookSecret: creds.WebhookSecret,
		}
		return ebay.New(cfg, r.newClient(domain.PlatformEBay), logger), nil
	})

	r.Register(domain.PlatformShopify, func(creds *domain.Credentials) (ports.Adapter, error) {
		locationID, _ := strconv.ParseUint(creds.Metadata["location_id"], 10, 64)
		cfg := shopify.Config{
			ShopDomain:  creds.ShopDomain,
			APIKey:      creds.ClientID,
			APISecret:   creds.ClientSecret,
			AccessToken: creds.AccessToken,
			RedirectURI: creds.Metadata["redirect_uri"],
			LocationID:  locationID,
		}
		return shopify.New(cfg, logger), nil
	})

	return r
}

// Register installs or replaces the factory for a platform.
func (r *Registry) Register(platform domain.Platform, factory AdapterFactory) {
	r.factories[platform] = factory
}

// Build constructs an adapter for the credentials' platform.
func (r *Registry) Build(creds *domain.Credentials) (ports.Adapter, error) {
	factory, ok := r.factories[creds.Platform]
	if !ok {
		return nil, fmt.Errorf("no adapter registered for platform %q", creds.Platform)
	}
	return factory(creds)
}

// Platforms lists every platform an adapter can be built for.
func (r *Registry) Platforms() []domain.Platform {
	platforms := make([]domain.Platform, 0, len(r.factories))
	for _, p := range domain.KnownPlatforms {
		if _, ok := r.factories[p]; ok {
			platforms = append(platforms, p)
		}
	}
	return platforms
}

func (r *Registry) newClient(platform domain.Platform) *httpclient.Client {
	return httpclient.New(platform, httpclient.Options{
		MinInterval: minIntervals[platform],
		Logger:      r.logger,
	})
}
