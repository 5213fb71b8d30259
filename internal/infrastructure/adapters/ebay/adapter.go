package ebay

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"

	"commerce-adapter-layer/internal/domain"
	"commerce-adapter-layer/internal/infrastructure/adapters/auth"
	"commerce-adapter-layer/internal/infrastructure/httpclient"
	"commerce-adapter-layer/internal/infrastructure/webhook"
	"commerce-adapter-layer/internal/ports"

	"github.com/rs/zerolog"
)

const (
	defaultAPIHost  = "https://api.ebay.com"
	defaultAuthHost = "https://auth.ebay.com"

	pageSize = 50

	oauthScopes = "https://api.ebay.com/oauth/api_scope/sell.inventory https://api.ebay.com/oauth/api_scope/sell.fulfillment"
)

// Config holds eBay application and seller credentials. RuName is eBay's
// registered redirect id, used in place of a raw redirect URL.
type Config struct {
	ClientID      string
	ClientSecret  string
	RefreshToken  string
	RuName        string
	WebhookSecret string
}

// Adapter implements the platform contract for the eBay Sell APIs.
type Adapter struct {
	cfg      Config
	apiURL   string
	authURL  string
	client   *httpclient.Client
	tokens   *auth.TokenSource
	verifier *webhook.Verifier
	logger   zerolog.Logger
}

// New creates an eBay adapter for one seller account.
func New(cfg Config, client *httpclient.Client, logger zerolog.Logger) *Adapter {
	a := &Adapter{
		cfg:      cfg,
		apiURL:   defaultAPIHost,
		authURL:  defaultAuthHost,
		client:   client,
		verifier: webhook.NewVerifier(domain.PlatformEBay, cfg.WebhookSecret),
		logger:   logger,
	}
	a.tokens = auth.NewTokenSource(a.refreshAccessToken)
	return a
}

func (a *Adapter) Platform() domain.Platform { return domain.PlatformEBay }

// Capabilities omits customers: eBay buyers belong to the marketplace, not
// the seller.
func (a *Adapter) Capabilities() ports.CapabilitySet {
	return ports.CapabilitySet{
		ports.CapabilityProducts,
		ports.CapabilityOrders,
		ports.CapabilityInventory,
		ports.CapabilityWebhooks,
	}
}

func (a *Adapter) basicAuthHeader() http.Header {
	h := http.Header{}
	creds := base64.StdEncoding.EncodeToString([]byte(a.cfg.ClientID + ":" + a.cfg.ClientSecret))
	h.Set("Authorization", "Basic "+creds)
	return h
}

func (a *Adapter) refreshAccessToken(ctx context.Context) (string, int, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", a.cfg.RefreshToken)
	form.Set("scope", oauthScopes)

	var token tokenResponse
	if err := a.client.DoForm(ctx, a.apiURL+"/identity/v1/oauth2/token", a.basicAuthHeader(), form.Encode(), &token); err != nil {
		return "", 0, fmt.Errorf("token refresh failed: %w", err)
	}
	if token.AccessToken == "" {
		return "", 0, &domain.AuthenticationError{Platform: domain.PlatformEBay, Reason: "empty access token"}
	}
	return token.AccessToken, token.ExpiresIn, nil
}

func (a *Adapter) headers(ctx context.Context) (http.Header, error) {
	token, err := a.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}
	h := http.Header{}
	h.Set("Authorization", "Bearer "+token)
	return h, nil
}

func (a *Adapter) TestConnection(ctx context.Context) error {
	h, err := a.headers(ctx)
	if err != nil {
		return err
	}
	u := a.apiURL + "/sell/fulfillment/v1/order?limit=1"
	_, err = a.client.DoJSON(ctx, http.MethodGet, u, h, nil, nil)
	return err
}

func (a *Adapter) AuthURL(state string) (string, error) {
	q := url.Values{}
	q.Set("client_id", a.cfg.ClientID)
	q.Set("redirect_uri", a.cfg.RuName)
	q.Set("response_type", "code")
	q.Set("scope", oauthScopes)
	q.Set("state", state)
	return a.authURL + "/oauth2/authorize?" + q.Encode(), nil
}

func (a *Adapter) ExchangeCode(ctx context.Context, code string) (*domain.OAuthToken, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", a.cfg.RuName)

	var token tokenResponse
	if err := a.client.DoForm(ctx, a.apiURL+"/identity/v1/oauth2/token", a.basicAuthHeader(), form.Encode(), &token); err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}
	return &domain.OAuthToken{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresIn:    token.ExpiresIn,
	}, nil
}

// ListProducts pages the inventory item collection in offset order.
func (a *Adapter) ListProducts(ctx context.Context) ([]domain.CanonicalProduct, error) {
	h, err := a.headers(ctx)
	if err != nil {
		return nil, err
	}

	var products []domain.CanonicalProduct
	for offset := 0; ; offset += pageSize {
		u := fmt.Sprintf("%s/sell/inventory/v1/inventory_item?limit=%d&offset=%d", a.apiURL, pageSize, offset)
		var page inventoryItemsResponse
		if _, err := a.client.DoJSON(ctx, http.MethodGet, u, h, nil, &page); err != nil {
			return nil, fmt.Errorf("failed to list inventory items at offset %d: %w", offset, err)
		}
		for _, item := range page.InventoryItems {
			products = append(products, mapInventoryItem(item))
		}
		if page.Next == "" || len(page.InventoryItems) == 0 {
			break
		}
	}
	return products, nil
}

func (a *Adapter) GetProduct(ctx context.Context, platformID string) (*domain.CanonicalProduct, error) {
	h, err := a.headers(ctx)
	if err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/sell/inventory/v1/inventory_item/%s", a.apiURL, url.PathEscape(platformID))
	var raw rawInventoryItem
	if _, err := a.client.DoJSON(ctx, http.MethodGet, u, h, nil, &raw); err != nil {
		return nil, fmt.Errorf("failed to get inventory item %s: %w", platformID, err)
	}
	product := mapInventoryItem(raw)
	return &product, nil
}

// CreateProduct and UpdateProduct both PUT the inventory item keyed by SKU;
// eBay treats the call as an upsert.
func (a *Adapter) CreateProduct(ctx context.Context, product *domain.CanonicalProduct) (*domain.CanonicalProduct, error) {
	return a.putInventoryItem(ctx, product)
}

func (a *Adapter) UpdateProduct(ctx context.Context, product *domain.CanonicalProduct) (*domain.CanonicalProduct, error) {
	return a.putInventoryItem(ctx, product)
}

func (a *Adapter) putInventoryItem(ctx context.Context, product *domain.CanonicalProduct) (*domain.CanonicalProduct, error) {
	if product.SKU == "" {
		return nil, fmt.Errorf("ebay inventory items require a SKU")
	}
	h, err := a.headers(ctx)
	if err != nil {
		return nil, err
	}
	h.Set("Content-Language", "en-US")

	u := fmt.Sprintf("%s/sell/inventory/v1/inventory_item/%s", a.apiURL, url.PathEscape(product.SKU))
	body := map[string]interface{}{
		"product": map[string]interface{}{
			"title":       product.Title,
			"description": product.Description,
			"imageUrls":   product.Images,
		},
		"condition": "NEW",
		"availability": map[string]interface{}{
			"shipToLocationAvailability": map[string]interface{}{
				"quantity": product.InventoryQty,
			},
		},
	}
	if _, err := a.client.DoJSON(ctx, http.MethodPut, u, h, body, nil); err != nil {
		return nil, fmt.Errorf("failed to put inventory item %s: %w", product.SKU, err)
	}

	out := *product
	out.Platform = domain.PlatformEBay
	out.PlatformID = product.SKU
	return &out, nil
}

func (a *Adapter) DeleteProduct(ctx context.Context, platformID string) error {
	h, err := a.headers(ctx)
	if err != nil {
		return err
	}
	u := fmt.Sprintf("%s/sell/inventory/v1/inventory_item/%s", a.apiURL, url.PathEscape(platformID))
	if _, err := a.client.DoJSON(ctx, http.MethodDelete, u, h, nil, nil); err != nil {
		return fmt.Errorf("failed to delete inventory item %s: %w", platformID, err)
	}
	return nil
}

func (a *Adapter) ListInventory(ctx context.Context) ([]domain.CanonicalInventory, error) {
	products, err := a.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	levels := make([]domain.CanonicalInventory, 0, len(products))
	for _, p := range products {
		levels = append(levels, domain.CanonicalInventory{
			Platform: domain.PlatformEBay,
			SKU:      p.SKU,
			Quantity: p.InventoryQty,
		})
	}
	return levels, nil
}

func (a *Adapter) UpdateInventoryQuantity(ctx context.Context, sku string, quantity int) error {
	product, err := a.GetProduct(ctx, sku)
	if err != nil {
		return err
	}
	product.InventoryQty = quantity
	_, err = a.putInventoryItem(ctx, product)
	return err
}

// ListOrders pages the fulfillment API in offset order. The `next` link
// signals whether another page exists.
func (a *Adapter) ListOrders(ctx context.Context) ([]domain.CanonicalOrder, error) {
	h, err := a.headers(ctx)
	if err != nil {
		return nil, err
	}

	var orders []domain.CanonicalOrder
	for offset := 0; ; offset += pageSize {
		u := fmt.Sprintf("%s/sell/fulfillment/v1/order?limit=%d&offset=%d", a.apiURL, pageSize, offset)
		var page ordersResponse
		if _, err := a.client.DoJSON(ctx, http.MethodGet, u, h, nil, &page); err != nil {
			return nil, fmt.Errorf("failed to list orders at offset %d: %w", offset, err)
		}
		for _, raw := range page.Orders {
			orders = append(orders, mapOrder(raw))
		}
		if page.Next == "" || len(page.Orders) == 0 {
			break
		}
	}
	return orders, nil
}

func (a *Adapter) GetOrder(ctx context.Context, platformID string) (*domain.CanonicalOrder, error) {
	h, err := a.headers(ctx)
	if err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/sell/fulfillment/v1/order/%s", a.apiURL, url.PathEscape(platformID))
	var raw rawOrder
	if _, err := a.client.DoJSON(ctx, http.MethodGet, u, h, nil, &raw); err != nil {
		return nil, fmt.Errorf("failed to get order %s: %w", platformID, err)
	}
	order := mapOrder(raw)
	return &order, nil
}

// UpdateOrderStatus: the fulfillment API only moves orders forward by
// creating shipping fulfillments.
func (a *Adapter) UpdateOrderStatus(ctx context.Context, platformID string, status domain.FulfillmentStatus) error {
	if status != domain.FulfillmentStatusFulfilled {
		return &domain.UnsupportedOperationError{
			Platform:  domain.PlatformEBay,
			Operation: fmt.Sprintf("setting order status %q", status),
		}
	}
	return a.FulfillOrder(ctx, platformID, "", "")
}

// FulfillOrder creates a shipping fulfillment covering every line item on
// the order.
func (a *Adapter) FulfillOrder(ctx context.Context, platformID string, trackingNumber, trackingCompany string) error {
	order, err := a.GetOrder(ctx, platformID)
	if err != nil {
		return err
	}
	h, err := a.headers(ctx)
	if err != nil {
		return err
	}

	lineItems := make([]map[string]interface{}, 0, len(order.LineItems))
	for _, li := range order.LineItems {
		lineItems = append(lineItems, map[string]interface{}{
			"lineItemId": li.VariantID,
			"quantity":   li.Quantity,
		})
	}
	body := map[string]interface{}{"lineItems": lineItems}
	if trackingNumber != "" {
		body["trackingNumber"] = trackingNumber
		body["shippingCarrierCode"] = trackingCompany
	}

	u := fmt.Sprintf("%s/sell/fulfillment/v1/order/%s/shipping_fulfillment", a.apiURL, url.PathEscape(platformID))
	if _, err := a.client.DoJSON(ctx, http.MethodPost, u, h, body, nil); err != nil {
		return fmt.Errorf("failed to create shipping fulfillment for order %s: %w", platformID, err)
	}
	return nil
}

// ListCustomers is a declared capability gap: buyers are eBay's customers,
// not the seller's.
func (a *Adapter) ListCustomers(ctx context.Context) ([]domain.CanonicalCustomer, error) {
	return nil, &domain.UnsupportedOperationError{Platform: domain.PlatformEBay, Operation: "listing customers"}
}

func (a *Adapter) RegisterWebhook(ctx context.Context, canonicalTopic, address string) (string, error) {
	topicID, err := a.PlatformTopic(canonicalTopic)
	if err != nil {
		return "", err
	}
	h, err := a.headers(ctx)
	if err != nil {
		return "", err
	}
	u := a.apiURL + "/commerce/notification/v1/subscription"
	body := map[string]interface{}{
		"topicId":       topicID,
		"status":        "ENABLED",
		"payload":       map[string]interface{}{"format": "JSON", "schemaVersion": "1.0"},
		"destinationId": address,
	}
	var resp subscriptionResponse
	if _, err := a.client.DoJSON(ctx, http.MethodPost, u, h, body, &resp); err != nil {
		return "", fmt.Errorf("failed to create subscription for %s: %w", topicID, err)
	}
	return resp.SubscriptionID, nil
}

func (a *Adapter) UnregisterWebhook(ctx context.Context, webhookID string) error {
	h, err := a.headers(ctx)
	if err != nil {
		return err
	}
	u := fmt.Sprintf("%s/commerce/notification/v1/subscription/%s", a.apiURL, url.PathEscape(webhookID))
	if _, err := a.client.DoJSON(ctx, http.MethodDelete, u, h, nil, nil); err != nil {
		return fmt.Errorf("failed to delete subscription %s: %w", webhookID, err)
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
		Platform:  domain.PlatformEBay,
		Operation: fmt.Sprintf("webhook topic %q", canonicalTopic),
	}
}

func (a *Adapter) CanonicalTopic(platformTopic string) string {
	if t, ok := canonicalTopicTable[platformTopic]; ok {
		return t
	}
	return platformTopic
}
