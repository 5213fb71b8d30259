package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"commerce-adapter-layer/internal/application"
	"commerce-adapter-layer/internal/domain"
	"commerce-adapter-layer/internal/infrastructure/pubsub"
	"commerce-adapter-layer/internal/infrastructure/webhook"
	"commerce-adapter-layer/internal/ports"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWebhookSecret = "hush"

type stubAdapter struct {
	ports.Adapter
	platform domain.Platform
	verifier *webhook.Verifier
}

func (a *stubAdapter) Platform() domain.Platform { return a.platform }

func (a *stubAdapter) VerifyWebhookSignature(payload []byte, signature string) error {
	return a.verifier.Verify(payload, signature)
}

func (a *stubAdapter) CanonicalTopic(platformTopic string) string { return platformTopic }

type stubProvider struct {
	adapter ports.Adapter
	err     error
}

func (p *stubProvider) AdapterFor(ctx context.Context, projectID, environment string, platform domain.Platform) (ports.Adapter, error) {
	return p.adapter, p.err
}

type memEventRepo struct {
	mu       sync.Mutex
	saved    []*domain.CanonicalWebhookEvent
	statuses map[string]domain.WebhookStatus
}

func newMemEventRepo() *memEventRepo {
	return &memEventRepo{statuses: make(map[string]domain.WebhookStatus)}
}

func (r *memEventRepo) Save(ctx context.Context, event *domain.CanonicalWebhookEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	saved := *event
	r.saved = append(r.saved, &saved)
	r.statuses[event.ID] = event.Status
	return nil
}

func (r *memEventRepo) UpdateStatus(ctx context.Context, eventID string, status domain.WebhookStatus, processingError string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses[eventID] = status
	return nil
}

func (r *memEventRepo) ListByStatus(ctx context.Context, status domain.WebhookStatus, limit int) ([]*domain.CanonicalWebhookEvent, error) {
	return nil, nil
}

type memComplianceRepo struct {
	mu    sync.Mutex
	saved []*domain.ComplianceRecord
}

func (r *memComplianceRepo) Save(ctx context.Context, record *domain.ComplianceRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	saved := *record
	r.saved = append(r.saved, &saved)
	return nil
}

func (r *memComplianceRepo) UpdateStatus(ctx context.Context, recordID string, status domain.WebhookStatus, processingError string) error {
	return nil
}

func (r *memComplianceRepo) ListByShop(ctx context.Context, platform domain.Platform, shop string) ([]*domain.ComplianceRecord, error) {
	return nil, nil
}

type memDedup struct {
	mu   sync.Mutex
	seen map[string]bool
}

func (d *memDedup) Seen(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.seen == nil {
		d.seen = make(map[string]bool)
	}
	if d.seen[key] {
		return true, nil
	}
	d.seen[key] = true
	return false, nil
}

type failingHandler struct{}

func (failingHandler) CanHandle(topic string) bool { return topic == domain.TopicOrderCreated }

func (failingHandler) Handle(ctx context.Context, event *domain.CanonicalWebhookEvent) error {
	return assert.AnError
}

func newWebhookTestServer(t *testing.T, eventRepo *memEventRepo, handlers ...application.WebhookHandler) *httptest.Server {
	t.Helper()
	logger := zerolog.Nop()

	dispatcher := application.NewWebhookDispatcher(logger)
	for _, h := range handlers {
		dispatcher.RegisterHandler(h)
	}
	webhooks := application.NewWebhookService(
		eventRepo,
		&memDedup{},
		application.NewComplianceService(&memComplianceRepo{}, logger),
		dispatcher,
		pubsub.NewWebhookPubSub(logger),
		logger,
	)

	adapter := &stubAdapter{
		platform: domain.PlatformShopify,
		verifier: webhook.NewVerifier(domain.PlatformShopify, testWebhookSecret),
	}
	handler := NewWebhookHandler(&stubProvider{adapter: adapter}, webhooks, logger)

	r := chi.NewRouter()
	r.Post("/webhooks/{platform}/{projectId}/{environment}", handler.Handle)
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

func signedRequest(t *testing.T, url string, payload []byte, topic string) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("X-Shopify-Topic", topic)
	req.Header.Set("X-Shopify-Shop-Domain", "myshop.myshopify.com")
	req.Header.Set("X-Shopify-Hmac-SHA256",
		webhook.NewVerifier(domain.PlatformShopify, testWebhookSecret).Sign(payload))
	return req
}

func TestWebhookDeliveryIsVerifiedAndStored(t *testing.T) {
	eventRepo := newMemEventRepo()
	server := newWebhookTestServer(t, eventRepo)

	payload := []byte(`{"id":450789469}`)
	req := signedRequest(t, server.URL+"/webhooks/shopify/proj-1/master", payload, "orders/create")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, eventRepo.saved, 1)
	assert.Equal(t, domain.TopicOrderCreated, eventRepo.saved[0].Topic)
	assert.Equal(t, "450789469", eventRepo.saved[0].ResourceID)
	assert.Equal(t, "myshop.myshopify.com", eventRepo.saved[0].Shop)
}

func TestWebhookRejectsInvalidSignature(t *testing.T) {
	eventRepo := newMemEventRepo()
	server := newWebhookTestServer(t, eventRepo)

	payload := []byte(`{"id":1}`)
	req, err := http.NewRequest(http.MethodPost, server.URL+"/webhooks/shopify/proj-1/master", bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("X-Shopify-Topic", "orders/create")
	req.Header.Set("X-Shopify-Hmac-SHA256", "bm90IGEgcmVhbCBzaWduYXR1cmU=")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, eventRepo.saved)
}

func TestWebhookRejectsMissingSignature(t *testing.T) {
	server := newWebhookTestServer(t, newMemEventRepo())

	req, err := http.NewRequest(http.MethodPost, server.URL+"/webhooks/shopify/proj-1/master", bytes.NewReader([]byte(`{}`)))
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWebhookRejectsNonPost(t *testing.T) {
	server := newWebhookTestServer(t, newMemEventRepo())

	resp, err := http.Get(server.URL + "/webhooks/shopify/proj-1/master")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestWebhookRejectsUnknownPlatform(t *testing.T) {
	server := newWebhookTestServer(t, newMemEventRepo())

	resp, err := http.Post(server.URL+"/webhooks/etsy/proj-1/master", "application/json", bytes.NewReader([]byte(`{}`)))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestWebhookAcknowledgesVerifiedDeliveryDespiteHandlerFailure(t *testing.T) {
	eventRepo := newMemEventRepo()
	server := newWebhookTestServer(t, eventRepo, failingHandler{})

	payload := []byte(`{"id":1}`)
	req := signedRequest(t, server.URL+"/webhooks/shopify/proj-1/master", payload, "orders/create")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	// The platform must not redeliver; the failure lives on the stored event.
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, eventRepo.saved, 1)
	assert.Equal(t, domain.WebhookStatusFailed, eventRepo.statuses[eventRepo.saved[0].ID])
}

func TestWebhookAcknowledgesMalformedButVerifiedPayload(t *testing.T) {
	eventRepo := newMemEventRepo()
	server := newWebhookTestServer(t, eventRepo)

	payload := []byte(`{not json`)
	req := signedRequest(t, server.URL+"/webhooks/shopify/proj-1/master", payload, "orders/create")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, eventRepo.saved, 1)
	assert.Empty(t, eventRepo.saved[0].ResourceID)
}
