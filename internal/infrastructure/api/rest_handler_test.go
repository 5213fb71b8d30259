package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"commerce-adapter-layer/internal/application"
	"commerce-adapter-layer/internal/domain"
	"commerce-adapter-layer/internal/infrastructure/encryption"
	securitymiddleware "commerce-adapter-layer/internal/infrastructure/middleware"
	"commerce-adapter-layer/internal/ports"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncStubAdapter struct {
	ports.Adapter
	platform domain.Platform
	caps     ports.CapabilitySet
	products []domain.CanonicalProduct
}

func (a *syncStubAdapter) Platform() domain.Platform { return a.platform }

func (a *syncStubAdapter) Capabilities() ports.CapabilitySet { return a.caps }

func (a *syncStubAdapter) TestConnection(context.Context) error { return nil }

func (a *syncStubAdapter) ListProducts(context.Context) ([]domain.CanonicalProduct, error) {
	return a.products, nil
}

type memConnRepo struct {
	mu    sync.Mutex
	conns map[string]*domain.Connection
}

func (r *memConnRepo) Save(ctx context.Context, conn *domain.Connection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.conns == nil {
		r.conns = make(map[string]*domain.Connection)
	}
	saved := *conn
	r.conns[conn.ProjectID+"/"+conn.Environment+"/"+string(conn.Platform)] = &saved
	return nil
}

func (r *memConnRepo) Get(ctx context.Context, projectID, environment string, platform domain.Platform) (*domain.Connection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	conn, ok := r.conns[projectID+"/"+environment+"/"+string(platform)]
	if !ok {
		return nil, nil
	}
	copied := *conn
	return &copied, nil
}

func (r *memConnRepo) List(ctx context.Context, projectID, environment string) ([]*domain.Connection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var conns []*domain.Connection
	for _, conn := range r.conns {
		if conn.ProjectID == projectID && conn.Environment == environment {
			conns = append(conns, conn)
		}
	}
	return conns, nil
}

func (r *memConnRepo) Delete(ctx context.Context, connectionID string) error { return nil }

type memCredsRepo struct {
	mu    sync.Mutex
	creds map[string]*domain.Credentials
}

func (r *memCredsRepo) Save(ctx context.Context, creds *domain.Credentials) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.creds == nil {
		r.creds = make(map[string]*domain.Credentials)
	}
	saved := *creds
	r.creds[creds.ProjectID+"/"+creds.Environment+"/"+string(creds.Platform)] = &saved
	return nil
}

func (r *memCredsRepo) Get(ctx context.Context, projectID, environment string, platform domain.Platform) (*domain.Credentials, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	creds, ok := r.creds[projectID+"/"+environment+"/"+string(platform)]
	if !ok {
		return nil, nil
	}
	copied := *creds
	return &copied, nil
}

func (r *memCredsRepo) Delete(ctx context.Context, projectID, environment string, platform domain.Platform) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.creds, projectID+"/"+environment+"/"+string(platform))
	return nil
}

func newRESTTestServer(t *testing.T, adapter ports.Adapter, credsRepo *memCredsRepo) *httptest.Server {
	t.Helper()
	logger := zerolog.Nop()

	encSvc, err := encryption.NewService(strings.Repeat("k", 32))
	require.NoError(t, err)

	provider := &stubProvider{adapter: adapter}
	credentials := application.NewCredentialsService(credsRepo, encSvc, application.NewRegistry(logger), logger)
	handler := NewRESTHandler(
		application.NewSyncService(provider, logger),
		application.NewConnectionService(&memConnRepo{}, provider, logger),
		credentials,
		application.NewComplianceService(&memComplianceRepo{}, logger),
		logger,
	)

	r := chi.NewRouter()
	r.Use(securitymiddleware.TenantMiddleware())
	r.Mount("/api/v1", handler.Routes())
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

func tenantGet(t *testing.T, url string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	req.Header.Set("X-Project-ID", "proj-1")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestListProductsReturnsCanonicalJSON(t *testing.T) {
	adapter := &syncStubAdapter{
		platform: domain.PlatformShopify,
		caps:     ports.CapabilitySet{ports.CapabilityProducts},
		products: []domain.CanonicalProduct{
			{Platform: domain.PlatformShopify, PlatformID: "1", Title: "Pink iPod"},
		},
	}
	server := newRESTTestServer(t, adapter, &memCredsRepo{})

	resp := tenantGet(t, server.URL+"/api/v1/shopify/products")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var products []domain.CanonicalProduct
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&products))
	require.Len(t, products, 1)
	assert.Equal(t, "Pink iPod", products[0].Title)
}

func TestListCustomersWithoutCapabilityIsNotImplemented(t *testing.T) {
	adapter := &syncStubAdapter{
		platform: domain.PlatformAmazon,
		caps:     ports.CapabilitySet{ports.CapabilityProducts, ports.CapabilityOrders},
	}
	server := newRESTTestServer(t, adapter, &memCredsRepo{})

	resp := tenantGet(t, server.URL+"/api/v1/amazon/customers")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)
}

func TestRESTRequiresTenantHeader(t *testing.T) {
	server := newRESTTestServer(t, &syncStubAdapter{}, &memCredsRepo{})

	resp, err := http.Get(server.URL + "/api/v1/connections")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRESTRejectsUnknownPlatform(t *testing.T) {
	server := newRESTTestServer(t, &syncStubAdapter{}, &memCredsRepo{})

	resp := tenantGet(t, server.URL+"/api/v1/etsy/products")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSaveCredentialsEncryptsSecretsAtRest(t *testing.T) {
	credsRepo := &memCredsRepo{}
	server := newRESTTestServer(t, &syncStubAdapter{platform: domain.PlatformWooCommerce}, credsRepo)

	body := `{"shop_domain":"https://store.example.com","client_id":"ck_live","client_secret":"cs_live"}`
	req, err := http.NewRequest(http.MethodPut, server.URL+"/api/v1/credentials/woocommerce", strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("X-Project-ID", "proj-1")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	stored, err := credsRepo.Get(context.Background(), "proj-1", domain.DefaultEnvironment, domain.PlatformWooCommerce)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "ck_live", stored.ClientID)
	assert.NotEqual(t, "cs_live", stored.ClientSecret)
}
