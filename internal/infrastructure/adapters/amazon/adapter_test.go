package amazon

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
	"commerce-adapter-layer/internal/infrastructure/webhook"
	"commerce-adapter-layer/internal/ports"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T, handler http.Handler) (*Adapter, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := httpclient.New(domain.PlatformAmazon, httpclient.Options{
		MinInterval: time.Millisecond,
		Logger:      zerolog.Nop(),
		Transport:   srv.Client(),
	})
	a := New(Config{
		Region:        "na",
		MarketplaceID: "ATVPDKIKX0DER",
		SellerID:      "A1SELLER",
		ClientID:      "client-id",
		ClientSecret:  "client-secret",
		RefreshToken:  "refresh-token",
		WebhookSecret: "hook-secret",
	}, client, zerolog.Nop())
	a.baseURL = srv.URL
	a.tokenURL = srv.URL + "/auth/o2/token"
	return a, srv
}

func writeJSON(t *testing.T, w http.ResponseWriter, v interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestListOrdersPaginatesAndEnriches(t *testing.T) {
	var tokenCalls int64
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/o2/token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&tokenCalls, 1)
		writeJSON(t, w, map[string]interface{}{"access_token": "atk", "expires_in": 3600})
	})
	mux.HandleFunc("/orders/v0/orders", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "atk", r.Header.Get("x-amz-access-token"))
		if r.URL.Query().Get("NextToken") == "" {
			writeJSON(t, w, map[string]interface{}{"payload": map[string]interface{}{
				"Orders": []map[string]interface{}{{
					"AmazonOrderId": "order-1",
					"OrderStatus":   "PartiallyShipped",
					"OrderTotal":    map[string]string{"CurrencyCode": "USD", "Amount": "19.99"},
				}},
				"NextToken": "page-2",
			}})
			return
		}
		writeJSON(t, w, map[string]interface{}{"payload": map[string]interface{}{
			"Orders": []map[string]interface{}{{
				"AmazonOrderId": "order-2",
				"OrderStatus":   "Shipped",
				"OrderTotal":    map[string]string{"CurrencyCode": "USD", "Amount": "5.00"},
			}},
		}})
	})
	mux.HandleFunc("/orders/v0/orders/order-1/orderItems", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]interface{}{"payload": map[string]interface{}{
			"OrderItems": []map[string]interface{}{{
				"ASIN":            "B07XAMPLE1",
				"SellerSKU":       "WIDGET-RED",
				"OrderItemId":     "item-1",
				"QuantityOrdered": 1,
				"ItemPrice":       map[string]string{"CurrencyCode": "USD", "Amount": "19.99"},
			}},
		}})
	})
	mux.HandleFunc("/orders/v0/orders/order-2/orderItems", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]interface{}{"payload": map[string]interface{}{}})
	})

	a, _ := newTestAdapter(t, mux)
	orders, err := a.ListOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)

	// Page order is preserved after concurrent enrichment.
	assert.Equal(t, "order-1", orders[0].PlatformID)
	assert.Equal(t, "order-2", orders[1].PlatformID)
	assert.Equal(t, domain.FulfillmentStatusPartial, orders[0].FulfillmentStatus)
	assert.Equal(t, domain.FulfillmentStatusFulfilled, orders[1].FulfillmentStatus)
	require.Len(t, orders[0].LineItems, 1)
	assert.Equal(t, "WIDGET-RED", orders[0].LineItems[0].SKU)

	// All calls share one token refresh through the token source.
	assert.Equal(t, int64(1), atomic.LoadInt64(&tokenCalls))
}

func TestListProductsFollowsPageTokens(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/o2/token", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]interface{}{"access_token": "atk", "expires_in": 3600})
	})
	mux.HandleFunc("/listings/2021-08-01/items/A1SELLER", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("pageToken") == "" {
			writeJSON(t, w, map[string]interface{}{
				"items":      []map[string]interface{}{{"sku": "SKU-1"}},
				"pagination": map[string]string{"nextToken": "tok"},
			})
			return
		}
		writeJSON(t, w, map[string]interface{}{
			"items": []map[string]interface{}{{"sku": "SKU-2"}},
		})
	})

	a, _ := newTestAdapter(t, mux)
	products, err := a.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "SKU-1", products[0].SKU)
	assert.Equal(t, "SKU-2", products[1].SKU)
}

func TestListCustomersIsUnsupported(t *testing.T) {
	a, _ := newTestAdapter(t, http.NewServeMux())
	_, err := a.ListCustomers(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsUnsupported(err))
	assert.NotContains(t, a.Capabilities(), ports.CapabilityCustomers)
}

func TestCreateProductRequiresSKU(t *testing.T) {
	a, _ := newTestAdapter(t, http.NewServeMux())
	_, err := a.CreateProduct(context.Background(), &domain.CanonicalProduct{Title: "No SKU"})
	assert.Error(t, err)
}

func TestUpdateOrderStatusOnlySupportsFulfilled(t *testing.T) {
	a, _ := newTestAdapter(t, http.NewServeMux())
	err := a.UpdateOrderStatus(context.Background(), "order-1", domain.FulfillmentStatusCancelled)
	assert.True(t, domain.IsUnsupported(err))
}

func TestPlatformTopicTranslation(t *testing.T) {
	a, _ := newTestAdapter(t, http.NewServeMux())

	topic, err := a.PlatformTopic(domain.TopicOrderCreated)
	require.NoError(t, err)
	assert.Equal(t, "ORDER_CHANGE", topic)

	_, err = a.PlatformTopic(domain.TopicShopRedact)
	assert.True(t, domain.IsUnsupported(err))

	assert.Equal(t, domain.TopicOrderUpdated, a.CanonicalTopic("ORDER_CHANGE"))
}

func TestVerifyWebhookSignature(t *testing.T) {
	a, _ := newTestAdapter(t, http.NewServeMux())
	payload := []byte(`{"notificationType":"ORDER_CHANGE"}`)

	sig := webhook.Sign(payload, "hook-secret")
	assert.NoError(t, a.VerifyWebhookSignature(payload, sig))
	assert.Error(t, a.VerifyWebhookSignature(payload, webhook.Sign(payload, "wrong")))
}

func TestRefreshFailureSurfacesAuthenticationError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/o2/token", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	a, _ := newTestAdapter(t, mux)

	_, err := a.ListOrders(context.Background())
	require.Error(t, err)
	var authErr *domain.AuthenticationError
	assert.ErrorAs(t, err, &authErr)
}
