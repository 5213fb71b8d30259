package amazon

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"sync"
	"time"

	"commerce-adapter-layer/internal/domain"
	"commerce-adapter-layer/internal/infrastructure/adapters/auth"
	"commerce-adapter-layer/internal/infrastructure/httpclient"
	"commerce-adapter-layer/internal/infrastructure/webhook"
	"commerce-adapter-layer/internal/ports"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	lwaTokenURL = "https://api.amazon.com/auth/o2/token"

	listingsAPIVersion = "2021-08-01"

	// orderDetailWorkers bounds the per-order line-item enrichment pool.
	// Full fan-out would trip Amazon's rate limits; fully serial fetching
	// is needlessly slow.
	orderDetailWorkers = 4
)

// regional SP-API endpoints
var endpoints = map[string]string{
	"na": "https://sellingpartnerapi-na.amazon.com",
	"eu": "https://sellingpartnerapi-eu.amazon.com",
	"fe": "https://sellingpartnerapi-fe.amazon.com",
}

// Config holds Amazon Selling Partner credentials. LWA client id/secret and
// the refresh token are pre-provisioned when the seller authorizes the app.
type Config struct {
	Region        string // na, eu, fe
	MarketplaceID string
	SellerID      string
	ClientID      string
	ClientSecret  string
	RefreshToken  string
	WebhookSecret string
}

// Adapter implements the platform contract for Amazon SP-API.
type Adapter struct {
	cfg      Config
	baseURL  string
	tokenURL string
	client   *httpclient.Client
	tokens   *auth.TokenSource
	verifier *webhook.Verifier
	logger   zerolog.Logger
}

// New creates an Amazon adapter. Unknown regions resolve to na.
func New(cfg Config, client *httpclient.Client, logger zerolog.Logger) *Adapter {
	base, ok := endpoints[cfg.Region]
	if !ok {
		base = endpoints["na"]
	}
	a := &Adapter{
		cfg:      cfg,
		baseURL:  base,
		tokenURL: lwaTokenURL,
		client:   client,
		verifier: webhook.NewVerifier(domain.PlatformAmazon, cfg.WebhookSecret),
		logger:   logger,
	}
	a.tokens = auth.NewTokenSource(a.refreshAccessToken)
	return a
}

func (a *Adapter) Platform() domain.Platform { return domain.PlatformAmazon }

// Capabilities omits customers: the SP-API exposes no direct customer
// records, only per-order buyer snapshots.
func (a *Adapter) Capabilities() ports.CapabilitySet {
	return ports.CapabilitySet{
		ports.CapabilityProducts,
		ports.CapabilityOrders,
		ports.CapabilityInventory,
		ports.CapabilityWebhooks,
	}
}

// refreshAccessToken performs the LWA refresh-token grant. Serialization is
// handled by the TokenSource.
func (a *Adapter) refreshAccessToken(ctx context.Context) (string, int, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", a.cfg.RefreshToken)
	form.Set("client_id", a.cfg.ClientID)
	form.Set("client_secret", a.cfg.ClientSecret)

	var token lwaTokenResponse
	if err := a.client.DoForm(ctx, a.tokenURL, nil, form.Encode(), &token); err != nil {
		return "", 0, fmt.Errorf("LWA token refresh failed: %w", err)
	}
	if token.AccessToken == "" {
		return "", 0, &domain.AuthenticationError{Platform: domain.PlatformAmazon, Reason: "empty access token from LWA"}
	}
	return token.AccessToken, token.ExpiresIn, nil
}

func (a *Adapter) headers(ctx context.Context) (http.Header, error) {
	token, err := a.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}
	h := http.Header{}
	h.Set("x-amz-access-token", token)
	return h, nil
}

// TestConnection issues the cheapest authenticated call.
func (a *Adapter) TestConnection(ctx context.Context) error {
	h, err := a.headers(ctx)
	if err != nil {
		return err
	}
	u := fmt.Sprintf("%s/sellers/v1/marketplaceParticipations", a.baseURL)
	_, err = a.client.DoJSON(ctx, http.MethodGet, u, h, nil, nil)
	return err
}

// AuthURL is the Seller Central consent page. Amazon app authorization is
// initiated from Seller Central rather than a classic OAuth redirect, but
// the URL shape is the same.
func (a *Adapter) AuthURL(state string) (string, error) {
	q := url.Values{}
	q.Set("application_id", a.cfg.ClientID)
	q.Set("state", state)
	return "https://sellercentral.amazon.com/apps/authorize/consent?" + q.Encode(), nil
}

// ExchangeCode exchanges the authorization code from the consent flow for
// LWA tokens.
func (a *Adapter) ExchangeCode(ctx context.Context, code string) (*domain.OAuthToken, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("client_id", a.cfg.ClientID)
	form.Set("client_secret", a.cfg.ClientSecret)

	var token struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    int    `json:"expires_in"`
	}
	if err := a.client.DoForm(ctx, a.tokenURL, nil, form.Encode(), &token); err != nil {
		return nil, fmt.Errorf("LWA code exchange failed: %w", err)
	}
	return &domain.OAuthToken{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresIn:    token.ExpiresIn,
	}, nil
}

// ListProducts walks the listings pages in token order until the API stops
// returning a nextToken. Page tokens are opaque and non-reorderable, so
// pages are never fetched concurrently.
func (a *Adapter) ListProducts(ctx context.Context) ([]domain.CanonicalProduct, error) {
	h, err := a.headers(ctx)
	if err != nil {
		return nil, err
	}

	var products []domain.CanonicalProduct
	pageToken := ""
	for {
		q := url.Values{}
		q.Set("marketplaceIds", a.cfg.MarketplaceID)
		q.Set("pageSize", "20")
		q.Set("includedData", "summaries,offers,issues")
		if pageToken != "" {
			q.Set("pageToken", pageToken)
		}
		u := fmt.Sprintf("%s/listings/%s/items/%s?%s", a.baseURL, listingsAPIVersion, a.cfg.SellerID, q.Encode())

		var page listingsResponse
		if _, err := a.client.DoJSON(ctx, http.MethodGet, u, h, nil, &page); err != nil {
			return nil, fmt.Errorf("failed to list products: %w", err)
		}
		for _, item := range page.Items {
			products = append(products, mapListing(item, a.cfg.MarketplaceID))
		}
		if page.Pagination.NextToken == "" {
			break
		}
		pageToken = page.Pagination.NextToken
	}
	return products, nil
}

func (a *Adapter) GetProduct(ctx context.Context, platformID string) (*domain.CanonicalProduct, error) {
	h, err := a.headers(ctx)
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("marketplaceIds", a.cfg.MarketplaceID)
	q.Set("includedData", "summaries,offers,issues")
	u := fmt.Sprintf("%s/listings/%s/items/%s/%s?%s",
		a.baseURL, listingsAPIVersion, a.cfg.SellerID, url.PathEscape(platformID), q.Encode())

	var raw rawListing
	if _, err := a.client.DoJSON(ctx, http.MethodGet, u, h, nil, &raw); err != nil {
		return nil, fmt.Errorf("failed to get product %s: %w", platformID, err)
	}
	product := mapListing(raw, a.cfg.MarketplaceID)
	return &product, nil
}

// CreateProduct and UpdateProduct both issue a full listings PUT keyed by
// SKU, which Amazon treats as an upsert; retries after a timeout are
// therefore safe.
func (a *Adapter) CreateProduct(ctx context.Context, product *domain.CanonicalProduct) (*domain.CanonicalProduct, error) {
	return a.putListing(ctx, product)
}

func (a *Adapter) UpdateProduct(ctx context.Context, product *domain.CanonicalProduct) (*domain.CanonicalProduct, error) {
	return a.putListing(ctx, product)
}

func (a *Adapter) putListing(ctx context.Context, product *domain.CanonicalProduct) (*domain.CanonicalProduct, error) {
	if product.SKU == "" {
		return nil, fmt.Errorf("amazon listings require a SKU")
	}
	h, err := a.headers(ctx)
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("marketplaceIds", a.cfg.MarketplaceID)
	u := fmt.Sprintf("%s/listings/%s/items/%s/%s?%s",
		a.baseURL, listingsAPIVersion, a.cfg.SellerID, url.PathEscape(product.SKU), q.Encode())

	body := map[string]interface{}{
		"productType": "PRODUCT",
		"attributes": map[string]interface{}{
			"item_name": []map[string]interface{}{{"value": product.Title}},
			"purchasable_offer": []map[string]interface{}{{
				"our_price": []map[string]interface{}{{
					"schedule": []map[string]interface{}{{"value_with_tax": product.Price}},
				}},
			}},
		},
	}
	if _, err := a.client.DoJSON(ctx, http.MethodPut, u, h, body, nil); err != nil {
		return nil, fmt.Errorf("failed to put listing %s: %w", product.SKU, err)
	}

	out := *product
	out.Platform = domain.PlatformAmazon
	out.PlatformID = product.SKU
	return &out, nil
}

func (a *Adapter) DeleteProduct(ctx context.Context, platformID string) error {
	h, err := a.headers(ctx)
	if err != nil {
		return err
	}
	q := url.Values{}
	q.Set("marketplaceIds", a.cfg.MarketplaceID)
	u := fmt.Sprintf("%s/listings/%s/items/%s/%s?%s",
		a.baseURL, listingsAPIVersion, a.cfg.SellerID, url.PathEscape(platformID), q.Encode())
	if _, err := a.client.DoJSON(ctx, http.MethodDelete, u, h, nil, nil); err != nil {
		return fmt.Errorf("failed to delete listing %s: %w", platformID, err)
	}
	return nil
}

// ListInventory pages FBA inventory summaries in nextToken order.
func (a *Adapter) ListInventory(ctx context.Context) ([]domain.CanonicalInventory, error) {
	h, err := a.headers(ctx)
	if err != nil {
		return nil, err
	}

	var levels []domain.CanonicalInventory
	nextToken := ""
	for {
		q := url.Values{}
		q.Set("granularityType", "Marketplace")
		q.Set("granularityId", a.cfg.MarketplaceID)
		q.Set("marketplaceIds", a.cfg.MarketplaceID)
		q.Set("details", "true")
		if nextToken != "" {
			q.Set("nextToken", nextToken)
		}
		u := fmt.Sprintf("%s/fba/inventory/v1/summaries?%s", a.baseURL, q.Encode())

		var page inventorySummariesResponse
		if _, err := a.client.DoJSON(ctx, http.MethodGet, u, h, nil, &page); err != nil {
			return nil, fmt.Errorf("failed to list inventory: %w", err)
		}
		for _, s := range page.Payload.InventorySummaries {
			levels = append(levels, mapInventorySummary(s))
		}
		if page.Pagination.NextToken == "" {
			break
		}
		nextToken = page.Pagination.NextToken
	}
	return levels, nil
}

// UpdateInventoryQuantity patches the fulfillment availability on the
// listing for merchant-fulfilled SKUs.
func (a *Adapter) UpdateInventoryQuantity(ctx context.Context, sku string, quantity int) error {
	h, err := a.headers(ctx)
	if err != nil {
		return err
	}
	q := url.Values{}
	q.Set("marketplaceIds", a.cfg.MarketplaceID)
	u := fmt.Sprintf("%s/listings/%s/items/%s/%s?%s",
		a.baseURL, listingsAPIVersion, a.cfg.SellerID, url.PathEscape(sku), q.Encode())

	body := map[string]interface{}{
		"productType": "PRODUCT",
		"patches": []map[string]interface{}{{
			"op":   "replace",
			"path": "/attributes/fulfillment_availability",
			"value": []map[string]interface{}{{
				"fulfillment_channel_code": "DEFAULT",
				"quantity":                 quantity,
			}},
		}},
	}
	if _, err := a.client.DoJSON(ctx, http.MethodPatch, u, h, body, nil); err != nil {
		return fmt.Errorf("failed to update inventory for %s: %w", sku, err)
	}
	return nil
}

// ListOrders pages the Orders API in NextToken order, then enriches each
// order with its line items through a bounded worker pool. Results are
// re-sorted into the original page order before returning.
func (a *Adapter) ListOrders(ctx context.Context) ([]domain.CanonicalOrder, error) {
	h, err := a.headers(ctx)
	if err != nil {
		return nil, err
	}

	var raws []rawOrder
	nextToken := ""
	for {
		q := url.Values{}
		q.Set("MarketplaceIds", a.cfg.MarketplaceID)
		q.Set("CreatedAfter", time.Now().AddDate(0, -1, 0).UTC().Format(time.RFC3339))
		if nextToken != "" {
			q.Set("NextToken", nextToken)
		}
		u := fmt.Sprintf("%s/orders/v0/orders?%s", a.baseURL, q.Encode())

		var page ordersResponse
		if _, err := a.client.DoJSON(ctx, http.MethodGet, u, h, nil, &page); err != nil {
			return nil, fmt.Errorf("failed to list orders: %w", err)
		}
		raws = append(raws, page.Payload.Orders...)
		if page.Payload.NextToken == "" {
			break
		}
		nextToken = page.Payload.NextToken
	}

	positions := make(map[string]int, len(raws))
	for i, r := range raws {
		positions[r.AmazonOrderID] = i
	}

	var mu sync.Mutex
	orders := make([]domain.CanonicalOrder, 0, len(raws))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(orderDetailWorkers)
	for _, raw := range raws {
		raw := raw
		g.Go(func() error {
			items, err := a.fetchOrderItems(gctx, h, raw.AmazonOrderID)
			if err != nil {
				return err
			}
			order := mapOrder(raw, items)
			mu.Lock()
			orders = append(orders, order)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(orders, func(i, j int) bool {
		return positions[orders[i].PlatformID] < positions[orders[j].PlatformID]
	})
	return orders, nil
}

func (a *Adapter) fetchOrderItems(ctx context.Context, h http.Header, orderID string) ([]rawOrderItem, error) {
	var items []rawOrderItem
	nextToken := ""
	for {
		u := fmt.Sprintf("%s/orders/v0/orders/%s/orderItems", a.baseURL, url.PathEscape(orderID))
		if nextToken != "" {
			u += "?NextToken=" + url.QueryEscape(nextToken)
		}
		var page orderItemsResponse
		if _, err := a.client.DoJSON(ctx, http.MethodGet, u, h, nil, &page); err != nil {
			return nil, fmt.Errorf("failed to fetch items for order %s: %w", orderID, err)
		}
		items = append(items, page.Payload.OrderItems...)
		if page.Payload.NextToken == "" {
			break
		}
		nextToken = page.Payload.NextToken
	}
	return items, nil
}

func (a *Adapter) GetOrder(ctx context.Context, platformID string) (*domain.CanonicalOrder, error) {
	h, err := a.headers(ctx)
	if err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/orders/v0/orders/%s", a.baseURL, url.PathEscape(platformID))
	var resp orderResponse
	if _, err := a.client.DoJSON(ctx, http.MethodGet, u, h, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to get order %s: %w", platformID, err)
	}
	items, err := a.fetchOrderItems(ctx, h, platformID)
	if err != nil {
		return nil, err
	}
	order := mapOrder(resp.Payload, items)
	return &order, nil
}

// UpdateOrderStatus: Amazon only accepts status changes through shipment
// confirmation, so anything other than fulfilled is a declared gap.
func (a *Adapter) UpdateOrderStatus(ctx context.Context, platformID string, status domain.FulfillmentStatus) error {
	if status != domain.FulfillmentStatusFulfilled {
		return &domain.UnsupportedOperationError{
			Platform:  domain.PlatformAmazon,
			Operation: fmt.Sprintf("setting order status %q", status),
		}
	}
	return a.FulfillOrder(ctx, platformID, "", "")
}

// FulfillOrder confirms shipment. Confirming an already-confirmed shipment
// is a no-op on Amazon's side, keeping the call retry-safe.
func (a *Adapter) FulfillOrder(ctx context.Context, platformID string, trackingNumber, trackingCompany string) error {
	h, err := a.headers(ctx)
	if err != nil {
		return err
	}
	u := fmt.Sprintf("%s/orders/v0/orders/%s/shipmentConfirmation", a.baseURL, url.PathEscape(platformID))
	body := map[string]interface{}{
		"marketplaceId": a.cfg.MarketplaceID,
		"packageDetail": map[string]interface{}{
			"packageReferenceId": "1",
			"carrierCode":        trackingCompany,
			"trackingNumber":     trackingNumber,
			"shipDate":           time.Now().UTC().Format(time.RFC3339),
		},
	}
	if _, err := a.client.DoJSON(ctx, http.MethodPost, u, h, body, nil); err != nil {
		return fmt.Errorf("failed to confirm shipment for order %s: %w", platformID, err)
	}
	return nil
}

// ListCustomers is a declared capability gap: Amazon exposes no customer
// records to sellers.
func (a *Adapter) ListCustomers(ctx context.Context) ([]domain.CanonicalCustomer, error) {
	return nil, &domain.UnsupportedOperationError{Platform: domain.PlatformAmazon, Operation: "listing customers"}
}

// RegisterWebhook creates an SP-API notification subscription for the
// translated notification type.
func (a *Adapter) RegisterWebhook(ctx context.Context, canonicalTopic, address string) (string, error) {
	notificationType, err := a.PlatformTopic(canonicalTopic)
	if err != nil {
		return "", err
	}
	h, err := a.headers(ctx)
	if err != nil {
		return "", err
	}
	u := fmt.Sprintf("%s/notifications/v1/subscriptions/%s", a.baseURL, notificationType)
	body := map[string]interface{}{
		"payloadVersion": "1.0",
		"destinationId":  address,
	}
	var resp subscriptionResponse
	if _, err := a.client.DoJSON(ctx, http.MethodPost, u, h, body, &resp); err != nil {
		return "", fmt.Errorf("failed to create subscription for %s: %w", notificationType, err)
	}
	return resp.Payload.SubscriptionID, nil
}

func (a *Adapter) UnregisterWebhook(ctx context.Context, webhookID string) error {
	h, err := a.headers(ctx)
	if err != nil {
		return err
	}
	u := fmt.Sprintf("%s/notifications/v1/subscriptions/ORDER_CHANGE/%s", a.baseURL, url.PathEscape(webhookID))
	if _, err := a.client.DoJSON(ctx, http.MethodDelete, u, h, nil, nil); err != nil {
		return fmt.Errorf("failed to delete subscription %s: %w", webhookID, err)
	}
	return nil
}

func (a *Adapter) VerifyWebhookSignature(payload []byte, signature string) error {
	return a.verifier.Verify(payload, signature)
}

func (a *Adapter) PlatformTopic(canonicalTopic string) (string, error) {
	if t, ok := notificationTypeTable[canonicalTopic]; ok {
		return t, nil
	}
	return "", &domain.UnsupportedOperationError{
		Platform:  domain.PlatformAmazon,
		Operation: fmt.Sprintf("webhook topic %q", canonicalTopic),
	}
}

func (a *Adapter) CanonicalTopic(platformTopic string) string {
	if t, ok := canonicalTopicTable[platformTopic]; ok {
		return t
	}
	return platformTopic
}
