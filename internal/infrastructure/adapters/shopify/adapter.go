package shopify

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"commerce-adapter-layer/internal/domain"
	"commerce-adapter-layer/internal/infrastructure/webhook"
	"commerce-adapter-layer/internal/ports"

	goshopify "github.com/bold-commerce/go-shopify/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Config holds Shopify app and shop credentials.
type Config struct {
	ShopDomain  string // myshop.myshopify.com
	APIKey      string
	APISecret   string
	AccessToken string
	RedirectURI string
	Scopes      []string
	LocationID  uint64 // inventory location for stock writes
}

// Adapter implements the platform contract on top of the go-shopify client.
type Adapter struct {
	cfg      Config
	app      goshopify.App
	verifier *webhook.Verifier
	logger   zerolog.Logger
}

// New creates a Shopify adapter for one shop.
func New(cfg Config, logger zerolog.Logger) *Adapter {
	if len(cfg.Scopes) == 0 {
		cfg.Scopes = []string{"read_products", "write_products", "read_orders", "write_orders", "read_customers", "read_inventory", "write_inventory"}
	}
	return &Adapter{
		cfg: cfg,
		app: goshopify.App{
			ApiKey:    cfg.APIKey,
			ApiSecret: cfg.APISecret,
		},
		// Shopify signs webhooks with the app's shared secret.
		verifier: webhook.NewVerifier(domain.PlatformShopify, cfg.APISecret),
		logger:   logger,
	}
}

func (a *Adapter) Platform() domain.Platform { return domain.PlatformShopify }

func (a *Adapter) Capabilities() ports.CapabilitySet {
	return ports.CapabilitySet{
		ports.CapabilityProducts,
		ports.CapabilityOrders,
		ports.CapabilityInventory,
		ports.CapabilityCustomers,
		ports.CapabilityWebhooks,
	}
}

func (a *Adapter) client() (*goshopify.Client, error) {
	client, err := goshopify.NewClient(a.app, a.cfg.ShopDomain, a.cfg.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

func (a *Adapter) TestConnection(ctx context.Context) error {
	client, err := a.client()
	if err != nil {
		return err
	}
	if _, err := client.Shop.Get(ctx, nil); err != nil {
		return fmt.Errorf("failed to get shop: %w", err)
	}
	return nil
}

// AuthURL builds the authorization URL by hand: the library's helper does
// not expose redirect_uri, and Shopify wants scopes comma-separated.
func (a *Adapter) AuthURL(state string) (string, error) {
	return fmt.Sprintf(
		"https://%s/admin/oauth/authorize?client_id=%s&scope=%s&redirect_uri=%s&state=%s",
		a.cfg.ShopDomain,
		a.cfg.APIKey,
		url.QueryEscape(strings.Join(a.cfg.Scopes, ",")),
		url.QueryEscape(a.cfg.RedirectURI),
		url.QueryEscape(state),
	), nil
}

func (a *Adapter) ExchangeCode(ctx context.Context, code string) (*domain.OAuthToken, error) {
	token, err := a.app.GetAccessToken(ctx, a.cfg.ShopDomain, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange token: %w", err)
	}
	// Shopify access tokens do not expire unless revoked.
	return &domain.OAuthToken{AccessToken: token}, nil
}

func (a *Adapter) ListProducts(ctx context.Context) ([]domain.CanonicalProduct, error) {
	client, err := a.client()
	if err != nil {
		return nil, err
	}
	raws, err := client.Product.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	products := make([]domain.CanonicalProduct, 0, len(raws))
	for _, raw := range raws {
		products = append(products, mapProduct(raw, a.cfg.ShopDomain))
	}
	return products, nil
}

func parseID(platformID string) (uint64, error) {
	id, err := strconv.ParseUint(platformID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid shopify id %q: %w", platformID, err)
	}
	return id, nil
}

func (a *Adapter) GetProduct(ctx context.Context, platformID string) (*domain.CanonicalProduct, error) {
	id, err := parseID(platformID)
	if err != nil {
		return nil, err
	}
	client, err := a.client()
	if err != nil {
		return nil, err
	}
	raw, err := client.Product.Get(ctx, id, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	product := mapProduct(*raw, a.cfg.ShopDomain)
	return &product, nil
}

func (a *Adapter) CreateProduct(ctx context.Context, product *domain.CanonicalProduct) (*domain.CanonicalProduct, error) {
	client, err := a.client()
	if err != nil {
		return nil, err
	}
	created, err := client.Product.Create(ctx, toShopifyProduct(product))
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	mapped := mapProduct(*created, a.cfg.ShopDomain)
	return &mapped, nil
}

func (a *Adapter) UpdateProduct(ctx context.Context, product *domain.CanonicalProduct) (*domain.CanonicalProduct, error) {
	id, err := parseID(product.PlatformID)
	if err != nil {
		return nil, err
	}
	client, err := a.client()
	if err != nil {
		return nil, err
	}
	body := toShopifyProduct(product)
	body.Id = id
	updated, err := client.Product.Update(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	mapped := mapProduct(*updated, a.cfg.ShopDomain)
	return &mapped, nil
}

func toShopifyProduct(product *domain.CanonicalProduct) goshopify.Product {
	price := decimal.NewFromFloat(product.Price)
	out := goshopify.Product{
		Title:    product.Title,
		BodyHTML: product.Description,
		Vendor:   product.Vendor,
		Status:   goshopify.ProductStatus(product.Status),
		Variants: []goshopify.Variant{{
			Sku:   product.SKU,
			Price: &price,
		}},
	}
	if product.CompareAtPrice > 0 {
		compareAt := decimal.NewFromFloat(product.CompareAtPrice)
		out.Variants[0].CompareAtPrice = &compareAt
	}
	return out
}

func (a *Adapter) DeleteProduct(ctx context.Context, platformID string) error {
	id, err := parseID(platformID)
	if err != nil {
		return err
	}
	client, err := a.client()
	if err != nil {
		return err
	}
	if err := client.Product.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

func (a *Adapter) ListInventory(ctx context.Context) ([]domain.CanonicalInventory, error) {
	client, err := a.client()
	if err != nil {
		return nil, err
	}
	raws, err := client.Product.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	var levels []domain.CanonicalInventory
	for _, raw := range raws {
		for _, v := range raw.Variants {
			levels = append(levels, domain.CanonicalInventory{
				Platform: domain.PlatformShopify,
				SKU:      v.Sku,
				Quantity: v.InventoryQuantity,
			})
		}
	}
	return levels, nil
}

// UpdateInventoryQuantity resolves the SKU to its inventory item and writes
// the level at the configured location.
func (a *Adapter) UpdateInventoryQuantity(ctx context.Context, sku string, quantity int) error {
	client, err := a.client()
	if err != nil {
		return err
	}
	raws, err := client.Product.List(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to list products: %w", err)
	}
	for _, raw := range raws {
		for _, v := range raw.Variants {
			if v.Sku != sku {
				continue
			}
			level := goshopify.InventoryLevel{
				InventoryItemId: v.InventoryItemId,
				LocationId:      a.cfg.LocationID,
				Available:       quantity,
			}
			if _, err := client.InventoryLevel.Set(ctx, level); err != nil {
				return fmt.Errorf("failed to set inventory level for sku %s: %w", sku, err)
			}
			return nil
		}
	}
	return fmt.Errorf("no variant found for sku %s", sku)
}

func (a *Adapter) ListOrders(ctx context.Context) ([]domain.CanonicalOrder, error) {
	client, err := a.client()
	if err != nil {
		return nil, err
	}
	raws, err := client.Order.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	orders := make([]domain.CanonicalOrder, 0, len(raws))
	for _, raw := range raws {
		orders = append(orders, mapOrder(raw))
	}
	return orders, nil
}

func (a *Adapter) GetOrder(ctx context.Context, platformID string) (*domain.CanonicalOrder, error) {
	id, err := parseID(platformID)
	if err != nil {
		return nil, err
	}
	client, err := a.client()
	if err != nil {
		return nil, err
	}
	raw, err := client.Order.Get(ctx, id, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	order := mapOrder(*raw)
	return &order, nil
}

// UpdateOrderStatus supports cancellation (a first-class API call) and
// fulfillment (via FulfillOrder). Other transitions are derived state on
// Shopify's side and cannot be written directly.
func (a *Adapter) UpdateOrderStatus(ctx context.Context, platformID string, status domain.FulfillmentStatus) error {
	switch status {
	case domain.FulfillmentStatusCancelled:
		id, err := parseID(platformID)
		if err != nil {
			return err
		}
		client, err := a.client()
		if err != nil {
			return err
		}
		if _, err := client.Order.Cancel(ctx, id, nil); err != nil {
			return fmt.Errorf("failed to cancel order: %w", err)
		}
		return nil
	case domain.FulfillmentStatusFulfilled:
		return a.FulfillOrder(ctx, platformID, "", "")
	default:
		return &domain.UnsupportedOperationError{
			Platform:  domain.PlatformShopify,
			Operation: fmt.Sprintf("setting order status %q", status),
		}
	}
}

func (a *Adapter) FulfillOrder(ctx context.Context, platformID string, trackingNumber, trackingCompany string) error {
	id, err := parseID(platformID)
	if err != nil {
		return err
	}
	client, err := a.client()
	if err != nil {
		return err
	}
	fulfillment := goshopify.Fulfillment{
		OrderId:         id,
		TrackingNumber:  trackingNumber,
		TrackingCompany: trackingCompany,
	}
	if _, err := client.Fulfillment.Create(ctx, fulfillment); err != nil {
		return fmt.Errorf("failed to create fulfillment: %w", err)
	}
	return nil
}

func (a *Adapter) ListCustomers(ctx context.Context) ([]domain.CanonicalCustomer, error) {
	client, err := a.client()
	if err != nil {
		return nil, err
	}
	raws, err := client.Customer.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	customers := make([]domain.CanonicalCustomer, 0, len(raws))
	for _, raw := range raws {
		customers = append(customers, mapCustomer(raw))
	}
	return customers, nil
}

func (a *Adapter) RegisterWebhook(ctx context.Context, canonicalTopic, address string) (string, error) {
	topic, err := a.PlatformTopic(canonicalTopic)
	if err != nil {
		return "", err
	}
	client, err := a.client()
	if err != nil {
		return "", err
	}
	created, err := client.Webhook.Create(ctx, goshopify.Webhook{
		Topic:   topic,
		Address: address,
		Format:  "json",
	})
	if err != nil {
		return "", fmt.Errorf("failed to create webhook: %w", err)
	}
	return formatID(created.Id), nil
}

func (a *Adapter) UnregisterWebhook(ctx context.Context, webhookID string) error {
	id, err := parseID(webhookID)
	if err != nil {
		return err
	}
	client, err := a.client()
	if err != nil {
		return err
	}
	if err := client.Webhook.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete webhook: %w", err)
	}
	return nil
}

func (a *Adapter) VerifyWebhookSignature(payload []byte, signature string) error {
	return a.verifier.Verify(payload, signature)
}

func (a *Adapter) PlatformTopic(canonicalTopic string) (string, error) {
	if t, ok := topicTable[canonicalTopic]; ok {
		return t, nil
	}
	return "", &domain.UnsupportedOperationError{
		Platform:  domain.PlatformShopify,
		Operation: fmt.Sprintf("webhook topic %q", canonicalTopic),
	}
}

func (a *Adapter) CanonicalTopic(platformTopic string) string {
	if t, ok := canonicalTopicTable[platformTopic]; ok {
		return t
	}
	return platformTopic
}
