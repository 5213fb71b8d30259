package api

import (
	"encoding/json"
	"net/http"

	"commerce-adapter-layer/internal/application"
	"commerce-adapter-layer/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// RESTHandler exposes the canonical sync and lifecycle operations under
// /api/v1. Tenant identity comes from the request context, set by the tenant
// middleware.
type RESTHandler struct {
	sync        *application.SyncService
	connections *application.ConnectionService
	credentials *application.CredentialsService
	compliance  *application.ComplianceService
	logger      zerolog.Logger
}

// NewRESTHandler creates a new REST API handler
func NewRESTHandler(
	sync *application.SyncService,
	connections *application.ConnectionService,
	credentials *application.CredentialsService,
	compliance *application.ComplianceService,
	logger zerolog.Logger,
) *RESTHandler {
	return &RESTHandler{
		sync:        sync,
		connections: connections,
		credentials: credentials,
		compliance:  compliance,
		logger:      logger,
	}
}

// Routes mounts every REST endpoint on a fresh router.
func (h *RESTHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/connections", h.listConnections)
	r.Post("/connections/{platform}", h.connect)
	r.Post("/connections/{platform}/test", h.testConnection)
	r.Delete("/connections/{platform}", h.disconnect)

	r.Put("/credentials/{platform}", h.saveCredentials)
	r.Delete("/credentials/{platform}", h.deleteCredentials)

	r.Get("/{platform}/products", h.listProducts)
	r.Post("/{platform}/products", h.pushProduct)
	r.Get("/{platform}/orders", h.listOrders)
	r.Post("/{platform}/orders/{orderId}/fulfill", h.fulfillOrder)
	r.Get("/{platform}/customers", h.listCustomers)
	r.Get("/{platform}/inventory", h.listInventory)
	r.Put("/{platform}/inventory/{sku}", h.setInventoryQuantity)
	r.Post("/{platform}/webhooks", h.registerWebhooks)
	r.Get("/{platform}/compliance", h.listCompliance)

	return r
}

func (h *RESTHandler) platform(w http.ResponseWriter, r *http.Request) (domain.Platform, bool) {
	platform, err := domain.ParsePlatform(chi.URLParam(r, "platform"))
	if err != nil {
		writeError(w, r, http.StatusNotFound, err.Error())
		return "", false
	}
	return platform, true
}

func tenant(r *http.Request) (projectID, environment string) {
	return domain.GetProjectIDFromContext(r.Context()), domain.GetEnvironmentFromContext(r.Context())
}

func (h *RESTHandler) listConnections(w http.ResponseWriter, r *http.Request) {
	projectID, environment := tenant(r)
	conns, err := h.connections.List(r.Context(), projectID, environment)
	if err != nil {
		writeError(w, r, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, conns)
}

func (h *RESTHandler) connect(w http.ResponseWriter, r *http.Request) {
	platform, ok := h.platform(w, r)
	if !ok {
		return
	}
	var body struct {
		ShopDomain string `json:"shop_domain"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	projectID, environment := tenant(r)
	conn, err := h.connections.Connect(r.Context(), projectID, environment, platform, body.ShopDomain)
	if err != nil {
		writeError(w, r, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, conn)
}

func (h *RESTHandler) testConnection(w http.ResponseWriter, r *http.Request) {
	platform, ok := h.platform(w, r)
	if !ok {
		return
	}
	projectID, environment := tenant(r)
	conn, err := h.connections.Test(r.Context(), projectID, environment, platform)
	if err != nil {
		writeError(w, r, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, conn)
}

func (h *RESTHandler) disconnect(w http.ResponseWriter, r *http.Request) {
	platform, ok := h.platform(w, r)
	if !ok {
		return
	}
	projectID, environment := tenant(r)
	if err := h.connections.Disconnect(r.Context(), projectID, environment, platform); err != nil {
		writeError(w, r, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(domain.ConnectionDisconnected)})
}

// credentialsRequest carries plaintext secrets inbound. Secrets never appear
// in responses.
type credentialsRequest struct {
	ShopDomain    string            `json:"shop_domain"`
	ClientID      string            `json:"client_id"`
	ClientSecret  string            `json:"client_secret"`
	AccessToken   string            `json:"access_token"`
	RefreshToken  string            `json:"refresh_token"`
	WebhookSecret string            `json:"webhook_secret"`
	Metadata      map[string]string `json:"metadata"`
}

func (h *RESTHandler) saveCredentials(w http.ResponseWriter, r *http.Request) {
	platform, ok := h.platform(w, r)
	if !ok {
		return
	}
	var body credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	projectID, environment := tenant(r)
	creds := &domain.Credentials{
		ProjectID:     projectID,
		Environment:   environment,
		Platform:      platform,
		ShopDomain:    body.ShopDomain,
		ClientID:      body.ClientID,
		ClientSecret:  body.ClientSecret,
		AccessToken:   body.AccessToken,
		RefreshToken:  body.RefreshToken,
		WebhookSecret: body.WebhookSecret,
		Metadata:      body.Metadata,
	}
	if err := h.credentials.Save(r.Context(), creds); err != nil {
		writeError(w, r, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

func (h *RESTHandler) deleteCredentials(w http.ResponseWriter, r *http.Request) {
	platform, ok := h.platform(w, r)
	if !ok {
		return
	}
	projectID, environment := tenant(r)
	if err := h.credentials.Delete(r.Context(), projectID, environment, platform); err != nil {
		writeError(w, r, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *RESTHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	platform, ok := h.platform(w, r)
	if !ok {
		return
	}
	projectID, environment := tenant(r)
	products, err := h.sync.SyncProducts(r.Context(), projectID, environment, platform)
	if err != nil {
		writeError(w, r, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *RESTHandler) pushProduct(w http.ResponseWriter, r *http.Request) {
	platform, ok := h.platform(w, r)
	if !ok {
		return
	}
	var product domain.CanonicalProduct
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	projectID, environment := tenant(r)
	pushed, err := h.sync.PushProduct(r.Context(), projectID, environment, platform, &product)
	if err != nil {
		writeError(w, r, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, pushed)
}

func (h *RESTHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	platform, ok := h.platform(w, r)
	if !ok {
		return
	}
	projectID, environment := tenant(r)
	orders, err := h.sync.SyncOrders(r.Context(), projectID, environment, platform)
	if err != nil {
		writeError(w, r, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *RESTHandler) fulfillOrder(w http.ResponseWriter, r *http.Request) {
	platform, ok := h.platform(w, r)
	if !ok {
		return
	}
	var body struct {
		TrackingNumber  string `json:"tracking_number"`
		TrackingCompany string `json:"tracking_company"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	projectID, environment := tenant(r)
	orderID := chi.URLParam(r, "orderId")
	if err := h.sync.FulfillOrder(r.Context(), projectID, environment, platform, orderID, body.TrackingNumber, body.TrackingCompany); err != nil {
		writeError(w, r, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "fulfilled"})
}

func (h *RESTHandler) listCustomers(w http.ResponseWriter, r *http.Request) {
	platform, ok := h.platform(w, r)
	if !ok {
		return
	}
	projectID, environment := tenant(r)
	customers, err := h.sync.SyncCustomers(r.Context(), projectID, environment, platform)
	if err != nil {
		writeError(w, r, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, customers)
}

func (h *RESTHandler) listInventory(w http.ResponseWriter, r *http.Request) {
	platform, ok := h.platform(w, r)
	if !ok {
		return
	}
	projectID, environment := tenant(r)
	inventory, err := h.sync.SyncInventory(r.Context(), projectID, environment, platform)
	if err != nil {
		writeError(w, r, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, inventory)
}

func (h *RESTHandler) setInventoryQuantity(w http.ResponseWriter, r *http.Request) {
	platform, ok := h.platform(w, r)
	if !ok {
		return
	}
	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	projectID, environment := tenant(r)
	sku := chi.URLParam(r, "sku")
	if err := h.sync.PushInventoryQuantity(r.Context(), projectID, environment, platform, sku, body.Quantity); err != nil {
		writeError(w, r, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *RESTHandler) registerWebhooks(w http.ResponseWriter, r *http.Request) {
	platform, ok := h.platform(w, r)
	if !ok {
		return
	}
	var body struct {
		Address string   `json:"address"`
		Topics  []string `json:"topics"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Address == "" {
		writeError(w, r, http.StatusBadRequest, "address is required")
		return
	}

	projectID, environment := tenant(r)
	registered, err := h.sync.RegisterWebhooks(r.Context(), projectID, environment, platform, body.Address, body.Topics)
	if err != nil {
		writeError(w, r, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, registered)
}

func (h *RESTHandler) listCompliance(w http.ResponseWriter, r *http.Request) {
	platform, ok := h.platform(w, r)
	if !ok {
		return
	}
	shop := r.URL.Query().Get("shop")
	if shop == "" {
		writeError(w, r, http.StatusBadRequest, "shop parameter is required")
		return
	}

	records, err := h.compliance.ListByShop(r.Context(), platform, shop)
	if err != nil {
		writeError(w, r, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, records)
}
