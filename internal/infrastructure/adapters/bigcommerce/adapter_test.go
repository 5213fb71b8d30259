package bigcommerce

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"commerce-adapter-layer/internal/domain"
	"commerce-adapter-layer/internal/infrastructure/httpclient"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T, handler http.Handler) *Adapter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := httpclient.New(domain.PlatformBigCommerce, httpclient.Options{
		MinInterval: time.Millisecond,
		Logger:      zerolog.Nop(),
		Transport:   srv.Client(),
	})
	a := New(Config{
		StoreHash:     "abc123",
		ClientID:      "client-id",
		ClientSecret:  "client-secret",
		AccessToken:   "store-token",
		RedirectURI:   "https://app.example.com/callback",
		WebhookSecret: "hook-secret",
	}, client, zerolog.Nop())
	a.apiURL = srv.URL + "/stores/abc123"
	a.loginURL = srv.URL
	return a
}

func writeJSON(t *testing.T, w http.ResponseWriter, v interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestListProductsFollowsTotalPages(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/stores/abc123/v3/catalog/products", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "store-token", r.Header.Get("X-Auth-Token"))
		page := r.URL.Query().Get("page")
		data := []map[string]interface{}{{"id": 1, "name": "Mug", "is_visible": true}}
		if page == "2" {
			data = []map[string]interface{}{{"id": 2, "name": "Plate", "is_visible": true}}
		}
		writeJSON(t, w, map[string]interface{}{
			"data": data,
			"meta": map[string]interface{}{"pagination": map[string]interface{}{"total_pages": 2}},
		})
	})

	a := newTestAdapter(t, mux)
	products, err := a.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "1", products[0].PlatformID)
	assert.Equal(t, "2", products[1].PlatformID)
}

func TestListOrdersEnrichesLineItems(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/stores/abc123/v2/orders", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") != "1" {
			writeJSON(t, w, []interface{}{})
			return
		}
		writeJSON(t, w, []map[string]interface{}{{
			"id":            118,
			"status_id":     10,
			"total_inc_tax": "53.50",
			"currency_code": "USD",
		}})
	})
	mux.HandleFunc("/stores/abc123/v2/orders/118/products", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []map[string]interface{}{{
			"id": 1, "product_id": 77, "sku": "MUG-01", "name": "Coffee Mug",
			"quantity": 3, "price_ex_tax": "15.00", "total_inc_tax": "48.50",
		}})
	})

	a := newTestAdapter(t, mux)
	orders, err := a.ListOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	// Completed maps to fulfilled, same as shipped.
	assert.Equal(t, domain.FulfillmentStatusFulfilled, orders[0].FulfillmentStatus)
	require.Len(t, orders[0].LineItems, 1)
	assert.Equal(t, "MUG-01", orders[0].LineItems[0].SKU)
}

func TestUpdateInventoryResolvesSKUToVariant(t *testing.T) {
	var gotLevel float64 = -1
	mux := http.NewServeMux()
	mux.HandleFunc("/stores/abc123/v3/catalog/variants", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "MUG-01-BLUE", r.URL.Query().Get("sku"))
		writeJSON(t, w, map[string]interface{}{
			"data": []map[string]interface{}{{"id": 7, "product_id": 77, "sku": "MUG-01-BLUE"}},
		})
	})
	mux.HandleFunc("/stores/abc123/v3/catalog/products/77/variants/7", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		var body map[string]float64
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotLevel = body["inventory_level"]
		writeJSON(t, w, map[string]interface{}{})
	})

	a := newTestAdapter(t, mux)
	require.NoError(t, a.UpdateInventoryQuantity(context.Background(), "MUG-01-BLUE", 12))
	assert.Equal(t, 12.0, gotLevel)
}

func TestUpdateInventoryUnknownSKU(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/stores/abc123/v3/catalog/variants", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]interface{}{"data": []interface{}{}})
	})
	a := newTestAdapter(t, mux)
	err := a.UpdateInventoryQuantity(context.Background(), "GHOST-SKU", 5)
	assert.ErrorContains(t, err, "GHOST-SKU")
}

func TestUpdateOrderStatusWritesStatusID(t *testing.T) {
	var gotStatus float64 = -1
	mux := http.NewServeMux()
	mux.HandleFunc("/stores/abc123/v2/orders/118", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		var body map[string]float64
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotStatus = body["status_id"]
		writeJSON(t, w, map[string]interface{}{})
	})

	a := newTestAdapter(t, mux)
	require.NoError(t, a.UpdateOrderStatus(context.Background(), "118", domain.FulfillmentStatusFulfilled))
	assert.Equal(t, 2.0, gotStatus)
}

func TestFulfillOrderCreatesShipment(t *testing.T) {
	var shipment map[string]interface{}
	mux := http.NewServeMux()
	mux.HandleFunc("/stores/abc123/v2/orders/118/shippingaddresses", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []map[string]interface{}{{"id": 42}})
	})
	mux.HandleFunc("/stores/abc123/v2/orders/118/shipments", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&shipment))
		writeJSON(t, w, map[string]interface{}{})
	})

	a := newTestAdapter(t, mux)
	require.NoError(t, a.FulfillOrder(context.Background(), "118", "1Z999", "UPS"))
	assert.Equal(t, 42.0, shipment["order_address_id"])
	assert.Equal(t, "1Z999", shipment["tracking_number"])
}

func TestRegisterWebhookTranslatesTopic(t *testing.T) {
	var hook map[string]interface{}
	mux := http.NewServeMux()
	mux.HandleFunc("/stores/abc123/v3/hooks", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&hook))
		writeJSON(t, w, map[string]interface{}{"data": map[string]interface{}{"id": 9001}})
	})

	a := newTestAdapter(t, mux)
	id, err := a.RegisterWebhook(context.Background(), domain.TopicOrderCreated, "https://app.example.com/webhooks/bigcommerce")
	require.NoError(t, err)
	assert.Equal(t, "9001", id)
	assert.Equal(t, "store/order/created", hook["scope"])

	_, err = a.RegisterWebhook(context.Background(), domain.TopicShopRedact, "https://app.example.com/webhooks/bigcommerce")
	assert.True(t, domain.IsUnsupported(err))
}

func TestExchangeCodeReturnsPermanentToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "stores/abc123", r.Form.Get("context"))
		writeJSON(t, w, map[string]interface{}{"access_token": "permanent-token"})
	})

	a := newTestAdapter(t, mux)
	token, err := a.ExchangeCode(context.Background(), "code-123")
	require.NoError(t, err)
	assert.Equal(t, "permanent-token", token.AccessToken)
	assert.Empty(t, token.RefreshToken)
}
