package api

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"net/url"
	"time"

	"commerce-adapter-layer/internal/application"
	"commerce-adapter-layer/internal/domain"
	"commerce-adapter-layer/internal/ports"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const sessionTTL = 10 * time.Minute

// OAuthHandler drives the authorization-code flow for platforms that use it.
// Init stores a short-lived session keyed by a random CSRF state and
// redirects to the platform's consent screen; Callback verifies the state,
// exchanges the code, stores the tokens, and establishes the connection.
type OAuthHandler struct {
	sessions    ports.SessionRepository
	credentials *application.CredentialsService
	connections *application.ConnectionService
	logger      zerolog.Logger
}

// NewOAuthHandler creates a new OAuth HTTP handler
func NewOAuthHandler(
	sessions ports.SessionRepository,
	credentials *application.CredentialsService,
	connections *application.ConnectionService,
	logger zerolog.Logger,
) *OAuthHandler {
	return &OAuthHandler{
		sessions:    sessions,
		credentials: credentials,
		connections: connections,
		logger:      logger,
	}
}

// Init handles GET /auth/{platform}?shop=...&project_id=...&return_url=...
func (h *OAuthHandler) Init(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	platform, err := domain.ParsePlatform(chi.URLParam(r, "platform"))
	if err != nil {
		writeError(w, r, http.StatusNotFound, err.Error())
		return
	}

	projectID := domain.GetProjectIDFromContext(ctx)
	if projectID == "" {
		projectID = r.URL.Query().Get("project_id")
	}
	if projectID == "" {
		writeError(w, r, http.StatusBadRequest, "project_id is required")
		return
	}
	environment := domain.GetEnvironmentFromContext(ctx)
	if environment == "" {
		environment = domain.DefaultEnvironment
	}

	shop := r.URL.Query().Get("shop")
	if shop == "" {
		writeError(w, r, http.StatusBadRequest, "shop parameter is required")
		return
	}

	adapter, err := h.credentials.AdapterFor(ctx, projectID, environment, platform)
	if err != nil {
		h.logger.Warn().Err(err).Str("projectId", projectID).Str("platform", string(platform)).
			Msg("OAuth init for unconfigured platform")
		writeError(w, r, http.StatusNotFound, string(platform)+" not configured for this project")
		return
	}

	stateBytes := make([]byte, 16)
	if _, err := rand.Read(stateBytes); err != nil {
		writeError(w, r, http.StatusInternalServerError, "failed to generate state")
		return
	}
	state := hex.EncodeToString(stateBytes)

	authURL, err := adapter.AuthURL(state)
	if err != nil {
		writeError(w, r, statusForError(err), err.Error())
		return
	}

	session := &domain.Session{
		Platform:    platform,
		Shop:        shop,
		State:       state,
		ProjectID:   projectID,
		Environment: environment,
		ReturnURL:   r.URL.Query().Get("return_url"),
		ExpiresAt:   time.Now().Add(sessionTTL),
	}
	if err := h.sessions.CreateSession(ctx, session); err != nil {
		h.logger.Error().Err(err).Msg("Failed to create OAuth session")
		writeError(w, r, http.StatusInternalServerError, "failed to create session")
		return
	}

	http.Redirect(w, r, authURL, http.StatusFound)
}

// Callback handles GET /auth/{platform}/callback?code=...&state=...
func (h *OAuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	platform, err := domain.ParsePlatform(chi.URLParam(r, "platform"))
	if err != nil {
		writeError(w, r, http.StatusNotFound, err.Error())
		return
	}

	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")
	if code == "" || state == "" {
		writeError(w, r, http.StatusBadRequest, "code and state parameters are required")
		return
	}

	session, err := h.sessions.GetSession(ctx, state)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "failed to load session")
		return
	}
	if session == nil || session.Platform != platform {
		writeError(w, r, http.StatusUnauthorized, "invalid or expired state")
		return
	}
	defer h.sessions.DeleteSession(ctx, state)

	ctx = domain.WithProjectID(ctx, session.ProjectID)
	ctx = domain.WithEnvironment(ctx, session.Environment)

	adapter, err := h.credentials.AdapterFor(ctx, session.ProjectID, session.Environment, platform)
	if err != nil {
		writeError(w, r, http.StatusNotFound, string(platform)+" not configured for this project")
		return
	}

	token, err := adapter.ExchangeCode(ctx, code)
	if err != nil {
		h.logger.Error().Err(err).Str("platform", string(platform)).Msg("Code exchange failed")
		writeError(w, r, statusForError(err), "failed to complete authorization")
		return
	}

	creds, err := h.credentials.Get(ctx, session.ProjectID, session.Environment, platform)
	if err != nil || creds == nil {
		writeError(w, r, http.StatusInternalServerError, "failed to load credentials")
		return
	}
	creds.AccessToken = token.AccessToken
	if token.RefreshToken != "" {
		creds.RefreshToken = token.RefreshToken
	}
	if token.ExpiresIn > 0 {
		creds.ExpiresAt = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	}
	if creds.ShopDomain == "" {
		creds.ShopDomain = session.Shop
	}
	creds.UpdatedAt = time.Now()
	if err := h.credentials.Save(ctx, creds); err != nil {
		h.logger.Error().Err(err).Msg("Failed to store exchanged tokens")
		writeError(w, r, http.StatusInternalServerError, "failed to store credentials")
		return
	}

	conn, err := h.connections.Connect(ctx, session.ProjectID, session.Environment, platform, session.Shop)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to establish connection after OAuth")
		writeError(w, r, http.StatusInternalServerError, "failed to establish connection")
		return
	}

	if session.ReturnURL == "" {
		writeJSON(w, http.StatusOK, conn)
		return
	}

	redirectURL := session.ReturnURL +
		"?platform=" + url.QueryEscape(string(platform)) +
		"&shop=" + url.QueryEscape(session.Shop) +
		"&status=" + url.QueryEscape(string(conn.Status))
	http.Redirect(w, r, redirectURL, http.StatusFound)
}
