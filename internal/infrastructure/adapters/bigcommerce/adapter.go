package bigcommerce

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"commerce-adapter-layer/internal/domain"
	"commerce-adapter-layer/internal/infrastructure/httpclient"
	"commerce-adapter-layer/internal/infrastructure/webhook"
	"commerce-adapter-layer/internal/ports"

	"github.com/rs/zerolog"
)

const (
	defaultAPIHost = "https://api.bigcommerce.com"
	loginHost      = "https://login.bigcommerce.com"

	pageSize = 50
)

// Config holds BigCommerce store credentials. The access token comes from
// the single-click app install flow and does not expire.
type Config struct {
	StoreHash     string
	ClientID      string
	ClientSecret  string
	AccessToken   string
	RedirectURI   string
	WebhookSecret string
}

// Adapter implements the platform contract for the BigCommerce v2/v3 REST
// APIs. Catalog, customers, and hooks ride v3; orders remain v2 only.
type Adapter struct {
	cfg      Config
	apiURL   string
	loginURL string
	client   *httpclient.Client
	verifier *webhook.Verifier
	logger   zerolog.Logger
}

// New creates a BigCommerce adapter for one store.
func New(cfg Config, client *httpclient.Client, logger zerolog.Logger) *Adapter {
	return &Adapter{
		cfg:      cfg,
		apiURL:   fmt.Sprintf("%s/stores/%s", defaultAPIHost, cfg.StoreHash),
		loginURL: loginHost,
		client:   client,
		verifier: webhook.NewVerifier(domain.PlatformBigCommerce, cfg.WebhookSecret),
		logger:   logger,
	}
}

func (a *Adapter) Platform() domain.Platform { return domain.PlatformBigCommerce }

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
	h.Set("X-Auth-Token", a.cfg.AccessToken)
	return h
}

func (a *Adapter) TestConnection(ctx context.Context) error {
	u := a.apiURL + "/v2/store"
	_, err := a.client.DoJSON(ctx, http.MethodGet, u, a.headers(), nil, nil)
	return err
}

// AuthURL points at the single-click install grant screen.
func (a *Adapter) AuthURL(state string) (string, error) {
	q := url.Values{}
	q.Set("client_id", a.cfg.ClientID)
	q.Set("redirect_uri", a.cfg.RedirectURI)
	q.Set("response_type", "code")
	q.Set("scope", "store_v2_products store_v2_orders store_v2_customers store_v2_hooks")
	q.Set("state", state)
	return a.loginURL + "/oauth2/authorize?" + q.Encode(), nil
}

func (a *Adapter) ExchangeCode(ctx context.Context, code string) (*domain.OAuthToken, error) {
	form := url.Values{}
	form.Set("client_id", a.cfg.ClientID)
	form.Set("client_secret", a.cfg.ClientSecret)
	form.Set("code", code)
	form.Set("grant_type", "authorization_code")
	form.Set("redirect_uri", a.cfg.RedirectURI)
	form.Set("context", "stores/"+a.cfg.StoreHash)

	var token tokenResponse
	if err := a.client.DoForm(ctx, a.loginURL+"/oauth2/token", nil, form.Encode(), &token); err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}
	// BigCommerce tokens are permanent: no refresh token, no expiry.
	return &domain.OAuthToken{AccessToken: token.AccessToken}, nil
}

// ListProducts walks v3 catalog pages until meta.pagination.total_pages is
// reached.
func (a *Adapter) ListProducts(ctx context.Context) ([]domain.CanonicalProduct, error) {
	var products []domain.CanonicalProduct
	for page := 1; ; page++ {
		q := url.Values{}
		q.Set("include", "variants,images")
		q.Set("limit", strconv.Itoa(pageSize))
		q.Set("page", strconv.Itoa(page))
		u := a.apiURL + "/v3/catalog/products?" + q.Encode()

		var resp productsResponse
		if _, err := a.client.DoJSON(ctx, http.MethodGet, u, a.headers(), nil, &resp); err != nil {
			return nil, fmt.Errorf("failed to list products page %d: %w", page, err)
		}
		for _, raw := range resp.Data {
			products = append(products, mapProduct(raw, a.cfg.StoreHash))
		}
		if page >= resp.Meta.Pagination.TotalPages {
			break
		}
	}
	return products, nil
}

func (a *Adapter) GetProduct(ctx context.Context, platformID string) (*domain.CanonicalProduct, error) {
	u := fmt.Sprintf("%s/v3/catalog/products/%s?include=variants,images", a.apiURL, url.PathEscape(platformID))
	var resp productResponse
	if _, err := a.client.DoJSON(ctx, http.MethodGet, u, a.headers(), nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to get product %s: %w", platformID, err)
	}
	product := mapProduct(resp.Data, a.cfg.StoreHash)
	return &product, nil
}

func (a *Adapter) CreateProduct(ctx context.Context, product *domain.CanonicalProduct) (*domain.CanonicalProduct, error) {
	u := a.apiURL + "/v3/catalog/products"
	var resp productResponse
	if _, err := a.client.DoJSON(ctx, http.MethodPost, u, a.headers(), productBody(product), &resp); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	created := mapProduct(resp.Data, a.cfg.StoreHash)
	return &created, nil
}

func (a *Adapter) UpdateProduct(ctx context.Context, product *domain.CanonicalProduct) (*domain.CanonicalProduct, error) {
	u := fmt.Sprintf("%s/v3/catalog/products/%s", a.apiURL, url.PathEscape(product.PlatformID))
	var resp productResponse
	if _, err := a.client.DoJSON(ctx, http.MethodPut, u, a.headers(), productBody(product), &resp); err != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", product.PlatformID, err)
	}
	updated := mapProduct(resp.Data, a.cfg.StoreHash)
	return &updated, nil
}

func productBody(product *domain.CanonicalProduct) map[string]interface{} {
	body := map[string]interface{}{
		"name":       product.Title,
		"type":       "physical",
		"sku":        product.SKU,
		"price":      product.Price,
		"weight":     0,
		"is_visible": product.Status == domain.ProductStatusActive,
	}
	if product.Description != "" {
		body["description"] = product.Description
	}
	if product.Cost > 0 {
		body["cost_price"] = product.Cost
	}
	if product.CompareAtPrice > 0 {
		body["retail_price"] = product.CompareAtPrice
	}
	return body
}

func (a *Adapter) DeleteProduct(ctx context.Context, platformID string) error {
	u := fmt.Sprintf("%s/v3/catalog/products/%s", a.apiURL, url.PathEscape(platformID))
	if _, err := a.client.DoJSON(ctx, http.MethodDelete, u, a.headers(), nil, nil); err != nil {
		return fmt.Errorf("failed to delete product %s: %w", platformID, err)
	}
	return nil
}

// ListInventory reads stock levels off the variant catalog. BigCommerce has
// no separate inventory API at this granularity.
func (a *Adapter) ListInventory(ctx context.Context) ([]domain.CanonicalInventory, error) {
	products, err := a.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	var levels []domain.CanonicalInventory
	for _, p := range products {
		if len(p.Variants) == 0 {
			levels = append(levels, domain.CanonicalInventory{
				Platform: domain.PlatformBigCommerce,
				SKU:      p.SKU,
				Quantity: p.InventoryQty,
			})
			continue
		}
		for _, v := range p.Variants {
			levels = append(levels, domain.CanonicalInventory{
				Platform: domain.PlatformBigCommerce,
				SKU:      v.SKU,
				Quantity: v.InventoryQty,
			})
		}
	}
	return levels, nil
}

// UpdateInventoryQuantity resolves the SKU to its variant, then writes the
// new level on that variant.
func (a *Adapter) UpdateInventoryQuantity(ctx context.Context, sku string, quantity int) error {
	q := url.Values{}
	q.Set("sku", sku)
	u := a.apiURL + "/v3/catalog/variants?" + q.Encode()

	var resp variantsResponse
	if _, err := a.client.DoJSON(ctx, http.MethodGet, u, a.headers(), nil, &resp); err != nil {
		return fmt.Errorf("failed to resolve sku %s: %w", sku, err)
	}
	if len(resp.Data) == 0 {
		return fmt.Errorf("no variant found for sku %s", sku)
	}
	v := resp.Data[0]

	u = fmt.Sprintf("%s/v3/catalog/products/%d/variants/%d", a.apiURL, v.ProductID, v.ID)
	body := map[string]interface{}{"inventory_level": quantity}
	if _, err := a.client.DoJSON(ctx, http.MethodPut, u, a.headers(), body, nil); err != nil {
		return fmt.Errorf("failed to update inventory for sku %s: %w", sku, err)
	}
	return nil
}

// ListOrders pages the v2 orders API. v2 has no pagination metadata; paging
// stops at the first short page.
func (a *Adapter) ListOrders(ctx context.Context) ([]domain.CanonicalOrder, error) {
	var orders []domain.CanonicalOrder
	for page := 1; ; page++ {
		q := url.Values{}
		q.Set("limit", strconv.Itoa(pageSize))
		q.Set("page", strconv.Itoa(page))
		u := a.apiURL + "/v2/orders?" + q.Encode()

		var raws []rawOrder
		if _, err := a.client.DoJSON(ctx, http.MethodGet, u, a.headers(), nil, &raws); err != nil {
			return nil, fmt.Errorf("failed to list orders page %d: %w", page, err)
		}
		for _, raw := range raws {
			items, err := a.fetchOrderProducts(ctx, raw.ID)
			if err != nil {
				return nil, err
			}
			orders = append(orders, mapOrder(raw, items))
		}
		if len(raws) < pageSize {
			break
		}
	}
	return orders, nil
}

func (a *Adapter) fetchOrderProducts(ctx context.Context, orderID int) ([]rawOrderProduct, error) {
	u := fmt.Sprintf("%s/v2/orders/%d/products", a.apiURL, orderID)
	var items []rawOrderProduct
	if _, err := a.client.DoJSON(ctx, http.MethodGet, u, a.headers(), nil, &items); err != nil {
		return nil, fmt.Errorf("failed to fetch products for order %d: %w", orderID, err)
	}
	return items, nil
}

func (a *Adapter) GetOrder(ctx context.Context, platformID string) (*domain.CanonicalOrder, error) {
	id, err := strconv.Atoi(platformID)
	if err != nil {
		return nil, fmt.Errorf("invalid order id %q: %w", platformID, err)
	}
	u := fmt.Sprintf("%s/v2/orders/%d", a.apiURL, id)
	var raw rawOrder
	if _, err := a.client.DoJSON(ctx, http.MethodGet, u, a.headers(), nil, &raw); err != nil {
		return nil, fmt.Errorf("failed to get order %s: %w", platformID, err)
	}
	items, err := a.fetchOrderProducts(ctx, id)
	if err != nil {
		return nil, err
	}
	order := mapOrder(raw, items)
	return &order, nil
}

func (a *Adapter) UpdateOrderStatus(ctx context.Context, platformID string, status domain.FulfillmentStatus) error {
	statusID, ok := statusIDTable[status]
	if !ok {
		return &domain.UnsupportedOperationError{
			Platform:  domain.PlatformBigCommerce,
			Operation: fmt.Sprintf("setting order status %q", status),
		}
	}
	u := fmt.Sprintf("%s/v2/orders/%s", a.apiURL, url.PathEscape(platformID))
	body := map[string]interface{}{"status_id": statusID}
	if _, err := a.client.DoJSON(ctx, http.MethodPut, u, a.headers(), body, nil); err != nil {
		return fmt.Errorf("failed to update order %s status: %w", platformID, err)
	}
	return nil
}

// FulfillOrder creates a shipment covering the whole order. BigCommerce
// requires the shipping address id, so that is resolved first.
func (a *Adapter) FulfillOrder(ctx context.Context, platformID string, trackingNumber, trackingCompany string) error {
	u := fmt.Sprintf("%s/v2/orders/%s/shippingaddresses", a.apiURL, url.PathEscape(platformID))
	var addresses []rawShippingAddress
	if _, err := a.client.DoJSON(ctx, http.MethodGet, u, a.headers(), nil, &addresses); err != nil {
		return fmt.Errorf("failed to fetch shipping addresses for order %s: %w", platformID, err)
	}
	if len(addresses) == 0 {
		return fmt.Errorf("order %s has no shipping address to ship against", platformID)
	}

	u = fmt.Sprintf("%s/v2/orders/%s/shipments", a.apiURL, url.PathEscape(platformID))
	body := map[string]interface{}{
		"order_address_id": addresses[0].ID,
		"tracking_number":  trackingNumber,
		"shipping_method":  trackingCompany,
	}
	if _, err := a.client.DoJSON(ctx, http.MethodPost, u, a.headers(), body, nil); err != nil {
		return fmt.Errorf("failed to create shipment for order %s: %w", platformID, err)
	}
	return nil
}

func (a *Adapter) ListCustomers(ctx context.Context) ([]domain.CanonicalCustomer, error) {
	var customers []domain.CanonicalCustomer
	for page := 1; ; page++ {
		q := url.Values{}
		q.Set("limit", strconv.Itoa(pageSize))
		q.Set("page", strconv.Itoa(page))
		u := a.apiURL + "/v3/customers?" + q.Encode()

		var resp customersResponse
		if _, err := a.client.DoJSON(ctx, http.MethodGet, u, a.headers(), nil, &resp); err != nil {
			return nil, fmt.Errorf("failed to list customers page %d: %w", page, err)
		}
		for _, raw := range resp.Data {
			customers = append(customers, mapCustomer(raw))
		}
		if page >= resp.Meta.Pagination.TotalPages {
			break
		}
	}
	return customers, nil
}

func (a *Adapter) RegisterWebhook(ctx context.Context, canonicalTopic, address string) (string, error) {
	scope, err := a.PlatformTopic(canonicalTopic)
	if err != nil {
		return "", err
	}
	u := a.apiURL + "/v3/hooks"
	body := map[string]interface{}{
		"scope":       scope,
		"destination": address,
		"is_active":   true,
	}
	var resp hookResponse
	if _, err := a.client.DoJSON(ctx, http.MethodPost, u, a.headers(), body, &resp); err != nil {
		return "", fmt.Errorf("failed to create hook for %s: %w", scope, err)
	}
	return strconv.Itoa(resp.Data.ID), nil
}

func (a *Adapter) UnregisterWebhook(ctx context.Context, webhookID string) error {
	u := fmt.Sprintf("%s/v3/hooks/%s", a.apiURL, url.PathEscape(webhookID))
	if _, err := a.client.DoJSON(ctx, http.MethodDelete, u, a.headers(), nil, nil); err != nil {
		return fmt.Errorf("failed to delete hook %s: %w", webhookID, err)
	}
	return nil
}

func (a *Adapter) VerifyWebhookSignature(payload []byte, signature string) error {
	return a.verifier.Verify(payload, signature)
}

func (a *Adapter) PlatformTopic(canonicalTopic string) (string, error) {
	if scope, ok := scopeTable[canonicalTopic]; ok {
		return scope, nil
	}
	return "", &domain.UnsupportedOperationError{
		Platform:  domain.PlatformBigCommerce,
		Operation: fmt.Sprintf("webhook topic %q", canonicalTopic),
	}
}

func (a *Adapter) CanonicalTopic(platformTopic string) string {
	if t, ok := canonicalTopicTable[platformTopic]; ok {
		return t
	}
	return platformTopic
}
