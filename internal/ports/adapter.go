package ports

import (
	"context"

	"commerce-adapter-layer/internal/domain"
)

// Capability names one group of operations a platform adapter supports.
type Capability string

const (
	CapabilityProducts  Capability = "products"
	CapabilityOrders    Capability = "orders"
	CapabilityInventory Capability = "inventory"
	CapabilityCustomers Capability = "customers"
	CapabilityWebhooks  Capability = "webhooks"
)

// CapabilitySet is the declared set of operation groups an adapter instance
// supports. Callers check membership before invoking instead of catching a
// "not implemented" error after the fact.
type CapabilitySet []Capability

// Has reports whether the capability is declared.
func (s CapabilitySet) Has(c Capability) bool {
	for _, have := range s {
		if have == c {
			return true
		}
	}
	return false
}

// Adapter translates one platform's native API into the canonical model.
//
// Every method that reaches the network takes a context and carries an
// explicit deadline through the shared HTTP client. Operations outside the
// adapter's declared capability set return *domain.UnsupportedOperationError,
// never silently-empty results. Mutating operations are idempotent at the
// platform-id level so they are safe to retry after an ambiguous timeout.
//
// Raw payload mapping is done by exported, pure mapping functions in each
// adapter package; transforming the same raw input always yields the same
// canonical output.
type Adapter interface {
	Platform() domain.Platform
	Capabilities() CapabilitySet

	// Connection and auth
	TestConnection(ctx context.Context) error
	AuthURL(state string) (string, error)
	ExchangeCode(ctx context.Context, code string) (*domain.OAuthToken, error)

	// Products
	ListProducts(ctx context.Context) ([]domain.CanonicalProduct, error)
	GetProduct(ctx context.Context, platformID string) (*domain.CanonicalProduct, error)
	CreateProduct(ctx context.Context, product *domain.CanonicalProduct) (*domain.CanonicalProduct, error)
	UpdateProduct(ctx context.Context, product *domain.CanonicalProduct) (*domain.CanonicalProduct, error)
	DeleteProduct(ctx context.Context, platformID string) error

	// Inventory
	ListInventory(ctx context.Context) ([]domain.CanonicalInventory, error)
	UpdateInventoryQuantity(ctx context.Context, sku string, quantity int) error

	// Orders
	ListOrders(ctx context.Context) ([]domain.CanonicalOrder, error)
	GetOrder(ctx context.Context, platformID string) (*domain.CanonicalOrder, error)
	UpdateOrderStatus(ctx context.Context, platformID string, status domain.FulfillmentStatus) error
	FulfillOrder(ctx context.Context, platformID string, trackingNumber, trackingCompany string) error

	// Customers. Platforms without direct customer data access omit
	// CapabilityCustomers and return UnsupportedOperationError here.
	ListCustomers(ctx context.Context) ([]domain.CanonicalCustomer, error)

	// Webhooks
	RegisterWebhook(ctx context.Context, canonicalTopic, address string) (string, error)
	UnregisterWebhook(ctx context.Context, webhookID string) error
	VerifyWebhookSignature(payload []byte, signature string) error

	// Topic translation between the canonical vocabulary and the
	// platform's own. PlatformTopic errors on topics the platform cannot
	// deliver; CanonicalTopic passes unknown platform topics through
	// unchanged so they remain loggable.
	PlatformTopic(canonicalTopic string) (string, error)
	CanonicalTopic(platformTopic string) string
}
