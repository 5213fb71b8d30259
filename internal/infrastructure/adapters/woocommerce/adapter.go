package woocommerce

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"commerce-adapter-layer/internal/domain"
	"commerce-adapter-layer/internal/infrastructure/httpclient"
	"commerce-adapter-layer/internal/infrastructure/webhook"
	"commerce-adapter-layer/internal/ports"

	"github.com/rs/zerolog"
)

const pageSize = 50

// Config holds WooCommerce store credentials. The consumer key/secret pair
// comes from the wc-auth flow or is generated manually in the store admin.
type Config struct {
	StoreURL       string // https://store.example.com, no trailing slash
	ConsumerKey    string
	ConsumerSecret string
	Currency       string // store currency, WooCommerce omits it from payloads
	CallbackURL    string // receives the generated keys from wc-auth
	WebhookSecret  string
}

// Adapter implements the platform contract for the WooCommerce REST API.
type Adapter struct {
	cfg      Config
	baseURL  string
	verifier *webhook.Verifier
	client   *httpclient.Client
	logger   zerolog.Logger
}

// New creates a WooCommerce adapter for one store.
func New(cfg Config, client *httpclient.Client, logger zerolog.Logger) *Adapter {
	return &Adapter{
		cfg:      cfg,
		baseURL:  strings.TrimRight(cfg.StoreURL, "/") + "/wp-json/wc/v3",
		verifier: webhook.NewVerifier(domain.PlatformWooCommerce, cfg.WebhookSecret),
		client:   client,
		logger:   logger,
	}
}

func (a *Adapter) Platform() domain.Platform { return domain.PlatformWooCommerce }

func (a *Adapter) Capabilities() ports.CapabilitySet {
	return ports.CapabilitySet{
		ports.CapabilityProducts,
		ports.CapabilityOrders,
		ports.CapabilityInventory,
		ports.CapabilityCustomers,
		ports.CapabilityWebhooks,
	}
}

func (a *Adapter) headers() http.Header {
	h := http.Header{}
	basic := base64.StdEncoding.EncodeToString([]byte(a.cfg.ConsumerKey + ":" + a.cfg.ConsumerSecret))
	h.Set("Authorization", "Basic "+basic)
	return h
}

func (a *Adapter) TestConnection(ctx context.Context) error {
	u := a.baseURL + "/system_status"
	_, err := a.client.DoJSON(ctx, http.MethodGet, u, a.headers(), nil, nil)
	return err
}

// AuthURL points at the wc-auth grant screen. The store pushes the generated
// key pair to CallbackURL; there is no code exchange.
func (a *Adapter) AuthURL(state string) (string, error) {
	q := url.Values{}
	q.Set("app_name", "Commerce Adapter Layer")
	q.Set("scope", "read_write")
	q.Set("user_id", state)
	q.Set("return_url", a.cfg.CallbackURL)
	q.Set("callback_url", a.cfg.CallbackURL)
	return strings.TrimRight(a.cfg.StoreURL, "/") + "/wc-auth/v1/authorize?" + q.Encode(), nil
}

// ExchangeCode is a declared gap: wc-auth delivers credentials by POSTing
// them to the callback URL instead of handing out an authorization code.
func (a *Adapter) ExchangeCode(ctx context.Context, code string) (*domain.OAuthToken, error) {
	return nil, &domain.UnsupportedOperationError{
		Platform:  domain.PlatformWooCommerce,
		Operation: "authorization code exchange",
	}
}

// walkPages walks a collection endpoint page by page, stopping at the page
// count announced in X-WP-TotalPages.
func walkPages(path string, visit func(page int) (http.Header, error)) error {
	for page := 1; ; page++ {
		headers, err := visit(page)
		if err != nil {
			return fmt.Errorf("failed to list %s page %d: %w", path, page, err)
		}
		totalPages, _ := strconv.Atoi(headers.Get("X-WP-TotalPages"))
		if page >= totalPages {
			return nil
		}
	}
}

func (a *Adapter) ListProducts(ctx context.Context) ([]domain.CanonicalProduct, error) {
	var products []domain.CanonicalProduct
	err := walkPages("products", func(page int) (http.Header, error) {
		u := fmt.Sprintf("%s/products?per_page=%d&page=%d", a.baseURL, pageSize, page)
		var raws []rawProduct
		headers, err := a.client.DoJSON(ctx, http.MethodGet, u, a.headers(), nil, &raws)
		if err != nil {
			return nil, err
		}
		for _, raw := range raws {
			variations, err := a.fetchVariations(ctx, raw)
			if err != nil {
				return nil, err
			}
			products = append(products, mapProduct(raw, variations, a.cfg.Currency))
		}
		return headers, nil
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (a *Adapter) fetchVariations(ctx context.Context, raw rawProduct) ([]rawVariation, error) {
	if raw.Type != "variable" {
		return nil, nil
	}
	u := fmt.Sprintf("%s/products/%d/variations?per_page=100", a.baseURL, raw.ID)
	var variations []rawVariation
	if _, err := a.client.DoJSON(ctx, http.MethodGet, u, a.headers(), nil, &variations); err != nil {
		return nil, fmt.Errorf("failed to fetch variations for product %d: %w", raw.ID, err)
	}
	return variations, nil
}

func (a *Adapter) GetProduct(ctx context.Context, platformID string) (*domain.CanonicalProduct, error) {
	u := fmt.Sprintf("%s/products/%s", a.baseURL, url.PathEscape(platformID))
	var raw rawProduct
	if _, err := a.client.DoJSON(ctx, http.MethodGet, u, a.headers(), nil, &raw); err != nil {
		return nil, fmt.Errorf("failed to get product %s: %w", platformID, err)
	}
	variations, err := a.fetchVariations(ctx, raw)
	if err != nil {
		return nil, err
	}
	product := mapProduct(raw, variations, a.cfg.Currency)
	return &product, nil
}

func (a *Adapter) CreateProduct(ctx context.Context, product *domain.CanonicalProduct) (*domain.CanonicalProduct, error) {
	u := a.baseURL + "/products"
	var raw rawProduct
	if _, err := a.client.DoJSON(ctx, http.MethodPost, u, a.headers(), productBody(product), &raw); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	created := mapProduct(raw, nil, a.cfg.Currency)
	return &created, nil
}

func (a *Adapter) UpdateProduct(ctx context.Context, product *domain.CanonicalProduct) (*domain.CanonicalProduct, error) {
	u := fmt.Sprintf("%s/products/%s", a.baseURL, url.PathEscape(product.PlatformID))
	var raw rawProduct
	if _, err := a.client.DoJSON(ctx, http.MethodPut, u, a.headers(), productBody(product), &raw); err != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", product.PlatformID, err)
	}
	updated := mapProduct(raw, nil, a.cfg.Currency)
	return &updated, nil
}

func productBody(product *domain.CanonicalProduct) map[string]interface{} {
	status := "draft"
	if product.Status == domain.ProductStatusActive {
		status = "publish"
	}
	body := map[string]interface{}{
		"name":          product.Title,
		"sku":           product.SKU,
		"regular_price": strconv.FormatFloat(product.Price, 'f', 2, 64),
		"status":        status,
	}
	if product.Description != "" {
		body["description"] = product.Description
	}
	if product.InventoryQty > 0 {
		body["manage_stock"] = true
		body["stock_quantity"] = product.InventoryQty
	}
	return body
}

// DeleteProduct forces a hard delete rather than a trash move so the id is
// actually gone.
func (a *Adapter) DeleteProduct(ctx context.Context, platformID string) error {
	u := fmt.Sprintf("%s/products/%s?force=true", a.baseURL, url.PathEscape(platformID))
	if _, err := a.client.DoJSON(ctx, http.MethodDelete, u, a.headers(), nil, nil); err != nil {
		return fmt.Errorf("failed to delete product %s: %w", platformID, err)
	}
	return nil
}

func (a *Adapter) ListInventory(ctx context.Context) ([]domain.CanonicalInventory, error) {
	products, err := a.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	var levels []domain.CanonicalInventory
	for _, p := range products {
		if len(p.Variants) == 0 {
			levels = append(levels, domain.CanonicalInventory{
				Platform: domain.PlatformWooCommerce,
				SKU:      p.SKU,
				Quantity: p.InventoryQty,
			})
			continue
		}
		for _, v := range p.Variants {
			levels = append(levels, domain.CanonicalInventory{
				Platform: domain.PlatformWooCommerce,
				SKU:      v.SKU,
				Quantity: v.InventoryQty,
			})
		}
	}
	return levels, nil
}

func (a *Adapter) UpdateInventoryQuantity(ctx context.Context, sku string, quantity int) error {
	u := fmt.Sprintf("%s/products?sku=%s", a.baseURL, url.QueryEscape(sku))
	var raws []rawProduct
	if _, err := a.client.DoJSON(ctx, http.MethodGet, u, a.headers(), nil, &raws); err != nil {
		return fmt.Errorf("failed to resolve sku %s: %w", sku, err)
	}
	if len(raws) == 0 {
		return fmt.Errorf("no product found for sku %s", sku)
	}

	u = fmt.Sprintf("%s/products/%d", a.baseURL, raws[0].ID)
	body := map[string]interface{}{"manage_stock": true, "stock_quantity": quantity}
	if _, err := a.client.DoJSON(ctx, http.MethodPut, u, a.headers(), body, nil); err != nil {
		return fmt.Errorf("failed to update inventory for sku %s: %w", sku, err)
	}
	return nil
}

func (a *Adapter) ListOrders(ctx context.Context) ([]domain.CanonicalOrder, error) {
	var orders []domain.CanonicalOrder
	err := walkPages("orders", func(page int) (http.Header, error) {
		u := fmt.Sprintf("%s/orders?per_page=%d&page=%d", a.baseURL, pageSize, page)
		var raws []rawOrder
		headers, err := a.client.DoJSON(ctx, http.MethodGet, u, a.headers(), nil, &raws)
		if err != nil {
			return nil, err
		}
		for _, raw := range raws {
			orders = append(orders, mapOrder(raw))
		}
		return headers, nil
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (a *Adapter) GetOrder(ctx context.Context, platformID string) (*domain.CanonicalOrder, error) {
	u := fmt.Sprintf("%s/orders/%s", a.baseURL, url.PathEscape(platformID))
	var raw rawOrder
	if _, err := a.client.DoJSON(ctx, http.MethodGet, u, a.headers(), nil, &raw); err != nil {
		return nil, fmt.Errorf("failed to get order %s: %w", platformID, err)
	}
	order := mapOrder(raw)
	return &order, nil
}

func (a *Adapter) UpdateOrderStatus(ctx context.Context, platformID string, status domain.FulfillmentStatus) error {
	wcStatus, ok := orderStatusTable[status]
	if !ok {
		return &domain.UnsupportedOperationError{
			Platform:  domain.PlatformWooCommerce,
			Operation: fmt.Sprintf("setting order status %q", status),
		}
	}
	u := fmt.Sprintf("%s/orders/%s", a.baseURL, url.PathEscape(platformID))
	body := map[string]interface{}{"status": wcStatus}
	if _, err := a.client.DoJSON(ctx, http.MethodPut, u, a.headers(), body, nil); err != nil {
		return fmt.Errorf("failed to update order %s status: %w", platformID, err)
	}
	return nil
}

// FulfillOrder marks the order completed and records tracking details in
// order meta, the convention shared by the common shipment tracking plugins.
func (a *Adapter) FulfillOrder(ctx context.Context, platformID string, trackingNumber, trackingCompany string) error {
	u := fmt.Sprintf("%s/orders/%s", a.baseURL, url.PathEscape(platformID))
	body := map[string]interface{}{
		"status": "completed",
		"meta_data": []map[string]interface{}{
			{"key": "_tracking_number", "value": trackingNumber},
			{"key": "_tracking_provider", "value": trackingCompany},
		},
	}
	if _, err := a.client.DoJSON(ctx, http.MethodPut, u, a.headers(), body, nil); err != nil {
		return fmt.Errorf("failed to fulfill order %s: %w", platformID, err)
	}
	return nil
}

func (a *Adapter) ListCustomers(ctx context.Context) ([]domain.CanonicalCustomer, error) {
	var customers []domain.CanonicalCustomer
	err := walkPages("customers", func(page int) (http.Header, error) {
		u := fmt.Sprintf("%s/customers?per_page=%d&page=%d", a.baseURL, pageSize, page)
		var raws []rawCustomer
		headers, err := a.client.DoJSON(ctx, http.MethodGet, u, a.headers(), nil, &raws)
		if err != nil {
			return nil, err
		}
		for _, raw := range raws {
			customers = append(customers, mapCustomer(raw))
		}
		return headers, nil
	})
	if err != nil {
		return nil, err
	}
	return customers, nil
}

func (a *Adapter) RegisterWebhook(ctx context.Context, canonicalTopic, address string) (string, error) {
	topic, err := a.PlatformTopic(canonicalTopic)
	if err != nil {
		return "", err
	}
	u := a.baseURL + "/webhooks"
	body := map[string]interface{}{
		"name":         "Commerce Adapter Layer: " + topic,
		"topic":        topic,
		"delivery_url": address,
		"secret":       a.cfg.WebhookSecret,
	}
	var raw rawWebhook
	if _, err := a.client.DoJSON(ctx, http.MethodPost, u, a.headers(), body, &raw); err != nil {
		return "", fmt.Errorf("failed to create webhook for %s: %w", topic, err)
	}
	return strconv.Itoa(raw.ID), nil
}

func (a *Adapter) UnregisterWebhook(ctx context.Context, webhookID string) error {
	u := fmt.Sprintf("%s/webhooks/%s?force=true", a.baseURL, url.PathEscape(webhookID))
	if _, err := a.client.DoJSON(ctx, http.MethodDelete, u, a.headers(), nil, nil); err != nil {
		return fmt.Errorf("failed to delete webhook %s: %w", webhookID, err)
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
		Platform:  domain.PlatformWooCommerce,
		Operation: fmt.Sprintf("webhook topic %q", canonicalTopic),
	}
}

func (a *Adapter) CanonicalTopic(platformTopic string) string {
	if t, ok := canonicalTopicTable[platformTopic]; ok {
		return t
	}
	return platformTopic
}
