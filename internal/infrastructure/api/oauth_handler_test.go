package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"commerce-adapter-layer/internal/application"
	"commerce-adapter-layer/internal/domain"
	"commerce-adapter-layer/internal/infrastructure/encryption"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
}

func (r *memSessionRepo) CreateSession(ctx context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sessions == nil {
		r.sessions = make(map[string]*domain.Session)
	}
	saved := *session
	r.sessions[session.State] = &saved
	return nil
}

func (r *memSessionRepo) GetSession(ctx context.Context, state string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[state]
	if !ok || time.Now().After(session.ExpiresAt) {
		return nil, nil
	}
	copied := *session
	return &copied, nil
}

func (r *memSessionRepo) DeleteSession(ctx context.Context, state string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, state)
	return nil
}

func newOAuthTestServer(t *testing.T, sessions *memSessionRepo) *httptest.Server {
	t.Helper()
	logger := zerolog.Nop()

	encSvc, err := encryption.NewService(strings.Repeat("k", 32))
	require.NoError(t, err)

	credentials := application.NewCredentialsService(&memCredsRepo{}, encSvc, application.NewRegistry(logger), logger)
	require.NoError(t, credentials.Save(context.Background(), &domain.Credentials{
		ProjectID:    "proj-1",
		Platform:     domain.PlatformShopify,
		ShopDomain:   "myshop.myshopify.com",
		ClientID:     "api-key",
		ClientSecret: "api-secret",
		Metadata:     map[string]string{"redirect_uri": "https://app.example.com/auth/shopify/callback"},
	}))

	handler := NewOAuthHandler(
		sessions,
		credentials,
		application.NewConnectionService(&memConnRepo{}, &stubProvider{adapter: &syncStubAdapter{platform: domain.PlatformShopify}}, logger),
		logger,
	)

	r := chi.NewRouter()
	r.Get("/auth/{platform}", handler.Init)
	r.Get("/auth/{platform}/callback", handler.Callback)
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

// noRedirectClient surfaces the 302 instead of following it off-host.
var noRedirectClient = &http.Client{
	CheckRedirect: func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	},
}

func TestOAuthInitRedirectsToConsentScreen(t *testing.T) {
	sessions := &memSessionRepo{}
	server := newOAuthTestServer(t, sessions)

	resp, err := noRedirectClient.Get(server.URL + "/auth/shopify?shop=myshop.myshopify.com&project_id=proj-1")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusFound, resp.StatusCode)
	location := resp.Header.Get("Location")
	assert.Contains(t, location, "https://myshop.myshopify.com/admin/oauth/authorize")
	assert.Contains(t, location, "client_id=api-key")

	// One session exists, keyed by the state embedded in the redirect.
	require.Len(t, sessions.sessions, 1)
	for state, session := range sessions.sessions {
		assert.Contains(t, location, "state="+state)
		assert.Equal(t, "proj-1", session.ProjectID)
		assert.Equal(t, domain.PlatformShopify, session.Platform)
	}
}

func TestOAuthInitRequiresShop(t *testing.T) {
	server := newOAuthTestServer(t, &memSessionRepo{})

	resp, err := noRedirectClient.Get(server.URL + "/auth/shopify?project_id=proj-1")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestOAuthInitRejectsUnconfiguredPlatform(t *testing.T) {
	server := newOAuthTestServer(t, &memSessionRepo{})

	resp, err := noRedirectClient.Get(server.URL + "/auth/ebay?shop=store&project_id=proj-1")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOAuthCallbackRejectsUnknownState(t *testing.T) {
	server := newOAuthTestServer(t, &memSessionRepo{})

	resp, err := noRedirectClient.Get(server.URL + "/auth/shopify/callback?code=abc&state=forged")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestOAuthCallbackRejectsExpiredSession(t *testing.T) {
	sessions := &memSessionRepo{}
	require.NoError(t, sessions.CreateSession(context.Background(), &domain.Session{
		Platform:  domain.PlatformShopify,
		State:     "stale",
		ExpiresAt: time.Now().Add(-time.Minute),
	}))
	server := newOAuthTestServer(t, sessions)

	resp, err := noRedirectClient.Get(server.URL + "/auth/shopify/callback?code=abc&state=stale")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
