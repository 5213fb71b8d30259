package application

import (
	"context"

	"commerce-adapter-layer/internal/domain"
	"commerce-adapter-layer/internal/ports"

	"github.com/rs/zerolog"
)

// SyncService orchestrates adapter operations per connection. Every entry
// point consults the adapter's declared capabilities before invoking, so a
// platform without customer data fails with UnsupportedOperationError before
// any network call is made.
type SyncService struct {
	adapters AdapterProvider
	logger   zerolog.Logger
}

// NewSyncService creates a new sync service
func NewSyncService(adapters AdapterProvider, logger zerolog.Logger) *SyncService {
	return &SyncService{
		adapters: adapters,
		logger:   logger,
	}
}

func (s *SyncService) adapter(ctx context.Context, projectID, environment string, platform domain.Platform, capability ports.Capability) (ports.Adapter, error) {
	adapter, err := s.adapters.AdapterFor(ctx, projectID, environment, platform)
	if err != nil {
		return nil, err
	}
	if !adapter.Capabilities().Has(capability) {
		return nil, &domain.UnsupportedOperationError{Platform: platform, Operation: string(capability)}
	}
	return adapter, nil
}

// SyncProducts pulls the full product catalog in canonical form.
func (s *SyncService) SyncProducts(ctx context.Context, projectID, environment string, platform domain.Platform) ([]domain.CanonicalProduct, error) {
	adapter, err := s.adapter(ctx, projectID, environment, platform, ports.CapabilityProducts)
	if err != nil {
		return nil, err
	}

	products, err := adapter.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("projectId", projectID).
		Str("platform", string(platform)).
		Int("count", len(products)).
		Msg("Synced products")
	return products, nil
}

// SyncOrders pulls orders in canonical form.
func (s *SyncService) SyncOrders(ctx context.Context, projectID, environment string, platform domain.Platform) ([]domain.CanonicalOrder, error) {
	adapter, err := s.adapter(ctx, projectID, environment, platform, ports.CapabilityOrders)
	if err != nil {
		return nil, err
	}

	orders, err := adapter.ListOrders(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("projectId", projectID).
		Str("platform", string(platform)).
		Int("count", len(orders)).
		Msg("Synced orders")
	return orders, nil
}

// SyncCustomers pulls customers in canonical form. Platforms without a
// customer API (Amazon, eBay) fail the capability check.
func (s *SyncService) SyncCustomers(ctx context.Context, projectID, environment string, platform domain.Platform) ([]domain.CanonicalCustomer, error) {
	adapter, err := s.adapter(ctx, projectID, environment, platform, ports.CapabilityCustomers)
	if err != nil {
		return nil, err
	}

	customers, err := adapter.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("projectId", projectID).
		Str("platform", string(platform)).
		Int("count", len(customers)).
		Msg("Synced customers")
	return customers, nil
}

// SyncInventory pulls per-variant inventory in canonical form.
func (s *SyncService) SyncInventory(ctx context.Context, projectID, environment string, platform domain.Platform) ([]domain.CanonicalInventory, error) {
	adapter, err := s.adapter(ctx, projectID, environment, platform, ports.CapabilityInventory)
	if err != nil {
		return nil, err
	}

	inventory, err := adapter.ListInventory(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("projectId", projectID).
		Str("platform", string(platform)).
		Int("count", len(inventory)).
		Msg("Synced inventory")
	return inventory, nil
}

// PushProduct creates or updates a product on the platform, keyed by the
// presence of a platform id.
func (s *SyncService) PushProduct(ctx context.Context, projectID, environment string, platform domain.Platform, product *domain.CanonicalProduct) (*domain.CanonicalProduct, error) {
	adapter, err := s.adapter(ctx, projectID, environment, platform, ports.CapabilityProducts)
	if err != nil {
		return nil, err
	}

	if product.PlatformID == "" {
		return adapter.CreateProduct(ctx, product)
	}
	return adapter.UpdateProduct(ctx, product)
}

// PushInventoryQuantity sets the absolute stock level for a SKU.
func (s *SyncService) PushInventoryQuantity(ctx context.Context, projectID, environment string, platform domain.Platform, sku string, quantity int) error {
	adapter, err := s.adapter(ctx, projectID, environment, platform, ports.CapabilityInventory)
	if err != nil {
		return err
	}
	return adapter.UpdateInventoryQuantity(ctx, sku, quantity)
}

// FulfillOrder marks an order fulfilled on the platform with optional
// tracking details.
func (s *SyncService) FulfillOrder(ctx context.Context, projectID, environment string, platform domain.Platform, orderID, trackingNumber, trackingCompany string) error {
	adapter, err := s.adapter(ctx, projectID, environment, platform, ports.CapabilityOrders)
	if err != nil {
		return err
	}
	return adapter.FulfillOrder(ctx, orderID, trackingNumber, trackingCompany)
}

// RegisterWebhooks subscribes the address to every topic the platform can
// deliver from the requested set, returning platform webhook ids by topic.
// Topics the platform has no equivalent for are skipped, not errors.
func (s *SyncService) RegisterWebhooks(ctx context.Context, projectID, environment string, platform domain.Platform, address string, topics []string) (map[string]string, error) {
	adapter, err := s.adapter(ctx, projectID, environment, platform, ports.CapabilityWebhooks)
	if err != nil {
		return nil, err
	}

	registered := make(map[string]string, len(topics))
	for _, topic := range topics {
		id, err := adapter.RegisterWebhook(ctx, topic, address)
		if domain.IsUnsupported(err) {
			s.logger.Debug().
				Str("platform", string(platform)).
				Str("topic", topic).
				Msg("Platform has no equivalent webhook topic, skipping")
			continue
		}
		if err != nil {
			return registered, err
		}
		registered[topic] = id
	}
	return registered, nil
}
