package ebay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
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

	client := httpclient.New(domain.PlatformEBay, httpclient.Options{
		MinInterval: time.Millisecond,
		Logger:      zerolog.Nop(),
		Transport:   srv.Client(),
	})
	a := New(Config{
		ClientID:      "app-id",
		ClientSecret:  "app-secret",
		RefreshToken:  "refresh-token",
		RuName:        "Example-App-RuName",
		WebhookSecret: "hook-secret",
	}, client, zerolog.Nop())
	a.apiURL = srv.URL
	a.authURL = srv.URL
	return a
}

func writeJSON(t *testing.T, w http.ResponseWriter, v interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func tokenHandler(t *testing.T, calls *int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(calls, 1)
		// The refresh grant authenticates with the app's basic credentials.
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "app-id", user)
		assert.Equal(t, "app-secret", pass)
		writeJSON(t, w, map[string]interface{}{"access_token": "atk", "expires_in": 7200})
	}
}

func TestListOrdersPagesByOffset(t *testing.T) {
	var tokenCalls int64
	mux := http.NewServeMux()
	mux.HandleFunc("/identity/v1/oauth2/token", tokenHandler(t, &tokenCalls))
	mux.HandleFunc("/sell/fulfillment/v1/order", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer atk", r.Header.Get("Authorization"))
		if r.URL.Query().Get("offset") == "0" {
			writeJSON(t, w, map[string]interface{}{
				"orders": []map[string]interface{}{{
					"orderId":                "order-1",
					"orderFulfillmentStatus": "NOT_STARTED",
					"orderPaymentStatus":     "PAID",
				}},
				"next": "/sell/fulfillment/v1/order?offset=50",
			})
			return
		}
		writeJSON(t, w, map[string]interface{}{
			"orders": []map[string]interface{}{{
				"orderId":                "order-2",
				"orderFulfillmentStatus": "FULFILLED",
				"orderPaymentStatus":     "PAID",
			}},
		})
	})

	a := newTestAdapter(t, mux)
	orders, err := a.ListOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "order-1", orders[0].PlatformID)
	assert.Equal(t, "order-2", orders[1].PlatformID)
	assert.Equal(t, int64(1), atomic.LoadInt64(&tokenCalls))
}

func TestFulfillOrderCoversAllLineItems(t *testing.T) {
	var tokenCalls int64
	var fulfillment map[string]interface{}
	mux := http.NewServeMux()
	mux.HandleFunc("/identity/v1/oauth2/token", tokenHandler(t, &tokenCalls))
	mux.HandleFunc("/sell/fulfillment/v1/order/order-1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]interface{}{
			"orderId": "order-1",
			"lineItems": []map[string]interface{}{
				{"lineItemId": "li-1", "quantity": 2},
				{"lineItemId": "li-2", "quantity": 1},
			},
		})
	})
	mux.HandleFunc("/sell/fulfillment/v1/order/order-1/shipping_fulfillment", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&fulfillment))
		w.WriteHeader(http.StatusCreated)
	})

	a := newTestAdapter(t, mux)
	require.NoError(t, a.FulfillOrder(context.Background(), "order-1", "RM-123", "ROYAL_MAIL"))

	items, ok := fulfillment["lineItems"].([]interface{})
	require.True(t, ok)
	assert.Len(t, items, 2)
	assert.Equal(t, "RM-123", fulfillment["trackingNumber"])
	assert.Equal(t, "ROYAL_MAIL", fulfillment["shippingCarrierCode"])
}

func TestUpdateInventoryQuantityRoundTripsItem(t *testing.T) {
	var tokenCalls int64
	var putBody map[string]interface{}
	mux := http.NewServeMux()
	mux.HandleFunc("/identity/v1/oauth2/token", tokenHandler(t, &tokenCalls))
	mux.HandleFunc("/sell/inventory/v1/inventory_item/CAM-LENS-50", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(t, w, map[string]interface{}{
				"sku":     "CAM-LENS-50",
				"product": map[string]interface{}{"title": "50mm Lens"},
			})
		case http.MethodPut:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&putBody))
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Fatalf("unexpected method %s", r.Method)
		}
	})

	a := newTestAdapter(t, mux)
	require.NoError(t, a.UpdateInventoryQuantity(context.Background(), "CAM-LENS-50", 3))

	avail := putBody["availability"].(map[string]interface{})
	shipTo := avail["shipToLocationAvailability"].(map[string]interface{})
	assert.Equal(t, 3.0, shipTo["quantity"])
}

func TestListCustomersIsUnsupported(t *testing.T) {
	a := newTestAdapter(t, http.NewServeMux())
	_, err := a.ListCustomers(context.Background())
	assert.True(t, domain.IsUnsupported(err))
}

func TestOrderTopicsHaveNoNotificationEquivalent(t *testing.T) {
	a := newTestAdapter(t, http.NewServeMux())

	_, err := a.PlatformTopic(domain.TopicOrderCreated)
	assert.True(t, domain.IsUnsupported(err))

	topic, err := a.PlatformTopic(domain.TopicCustomerRedact)
	require.NoError(t, err)
	assert.Equal(t, "MARKETPLACE_ACCOUNT_DELETION", topic)
	assert.Equal(t, domain.TopicCustomerRedact, a.CanonicalTopic("MARKETPLACE_ACCOUNT_DELETION"))
}

func TestAuthURLCarriesRuName(t *testing.T) {
	a := newTestAdapter(t, http.NewServeMux())
	u, err := a.AuthURL("state-9")
	require.NoError(t, err)
	assert.Contains(t, u, "redirect_uri=Example-App-RuName")
	assert.Contains(t, u, "state=state-9")
}

func TestExchangeCodeReturnsRefreshToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/identity/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.Form.Get("grant_type"))
		writeJSON(t, w, map[string]interface{}{
			"access_token":  "atk",
			"refresh_token": "rtk",
			"expires_in":    7200,
		})
	})

	a := newTestAdapter(t, mux)
	token, err := a.ExchangeCode(context.Background(), "code-1")
	require.NoError(t, err)
	assert.Equal(t, "rtk", token.RefreshToken)
}
