package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"commerce-adapter-layer/internal/domain"
	"commerce-adapter-layer/internal/ports"
)

type fakeEventRepo struct {
	mu       sync.Mutex
	saved    []*domain.CanonicalWebhookEvent
	statuses map[string]domain.WebhookStatus
	errors   map[string]string
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		statuses: make(map[string]domain.WebhookStatus),
		errors:   make(map[string]string),
	}
}

func (r *fakeEventRepo) Save(ctx context.Context, event *domain.CanonicalWebhookEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	saved := *event
	r.saved = append(r.saved, &saved)
	r.statuses[event.ID] = event.Status
	return nil
}

func (r *fakeEventRepo) UpdateStatus(ctx context.Context, eventID string, status domain.WebhookStatus, processingError string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses[eventID] = status
	r.errors[eventID] = processingError
	return nil
}

func (r *fakeEventRepo) ListByStatus(ctx context.Context, status domain.WebhookStatus, limit int) ([]*domain.CanonicalWebhookEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var events []*domain.CanonicalWebhookEvent
	for _, e := range r.saved {
		if r.statuses[e.ID] == status && len(events) < limit {
			events = append(events, e)
		}
	}
	return events, nil
}

type fakeComplianceRepo struct {
	mu       sync.Mutex
	saved    []*domain.ComplianceRecord
	statuses map[string]domain.WebhookStatus
}

func newFakeComplianceRepo() *fakeComplianceRepo {
	return &fakeComplianceRepo{statuses: make(map[string]domain.WebhookStatus)}
}

func (r *fakeComplianceRepo) Save(ctx context.Context, record *domain.ComplianceRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	saved := *record
	r.saved = append(r.saved, &saved)
	r.statuses[record.ID] = record.Status
	return nil
}

func (r *fakeComplianceRepo) UpdateStatus(ctx context.Context, recordID string, status domain.WebhookStatus, processingError string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses[recordID] = status
	return nil
}

func (r *fakeComplianceRepo) ListByShop(ctx context.Context, platform domain.Platform, shop string) ([]*domain.ComplianceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var records []*domain.ComplianceRecord
	for _, rec := range r.saved {
		if rec.Platform == platform && rec.Shop == shop {
			records = append(records, rec)
		}
	}
	return records, nil
}

type fakeDedup struct {
	mu     sync.Mutex
	seen   map[string]bool
	broken bool
}

func newFakeDedup() *fakeDedup {
	return &fakeDedup{seen: make(map[string]bool)}
}

func (d *fakeDedup) Seen(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.broken {
		return false, fmt.Errorf("dedup store unavailable")
	}
	if d.seen[key] {
		return true, nil
	}
	d.seen[key] = true
	return false, nil
}

type fakeConnRepo struct {
	mu    sync.Mutex
	conns map[string]*domain.Connection
}

func newFakeConnRepo() *fakeConnRepo {
	return &fakeConnRepo{conns: make(map[string]*domain.Connection)}
}

func connKey(projectID, environment string, platform domain.Platform) string {
	return projectID + "/" + environment + "/" + string(platform)
}

func (r *fakeConnRepo) Save(ctx context.Context, conn *domain.Connection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	saved := *conn
	r.conns[connKey(conn.ProjectID, conn.Environment, conn.Platform)] = &saved
	return nil
}

func (r *fakeConnRepo) Get(ctx context.Context, projectID, environment string, platform domain.Platform) (*domain.Connection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	conn, ok := r.conns[connKey(projectID, environment, platform)]
	if !ok {
		return nil, nil
	}
	copied := *conn
	return &copied, nil
}

func (r *fakeConnRepo) List(ctx context.Context, projectID, environment string) ([]*domain.Connection, error) {
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

func (r *fakeConnRepo) Delete(ctx context.Context, connectionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, conn := range r.conns {
		if conn.ID == connectionID {
			delete(r.conns, key)
			return nil
		}
	}
	return fmt.Errorf("connection not found: %s", connectionID)
}

type fakeCredsRepo struct {
	mu    sync.Mutex
	creds map[string]*domain.Credentials
}

func newFakeCredsRepo() *fakeCredsRepo {
	return &fakeCredsRepo{creds: make(map[string]*domain.Credentials)}
}

func (r *fakeCredsRepo) Save(ctx context.Context, creds *domain.Credentials) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	saved := *creds
	r.creds[connKey(creds.ProjectID, creds.Environment, creds.Platform)] = &saved
	return nil
}

func (r *fakeCredsRepo) Get(ctx context.Context, projectID, environment string, platform domain.Platform) (*domain.Credentials, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	creds, ok := r.creds[connKey(projectID, environment, platform)]
	if !ok {
		return nil, nil
	}
	copied := *creds
	return &copied, nil
}

func (r *fakeCredsRepo) Delete(ctx context.Context, projectID, environment string, platform domain.Platform) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.creds, connKey(projectID, environment, platform))
	return nil
}

// fakeAdapter embeds the interface so only the methods a test exercises need
// real implementations.
type fakeAdapter struct {
	ports.Adapter
	platform  domain.Platform
	caps      ports.CapabilitySet
	testErr   error
	products  []domain.CanonicalProduct
	orders    []domain.CanonicalOrder
	customers []domain.CanonicalCustomer
	inventory []domain.CanonicalInventory
	webhooks  map[string]string // canonical topic -> webhook id, missing topic is unsupported
}

func (f *fakeAdapter) Platform() domain.Platform { return f.platform }

func (f *fakeAdapter) Capabilities() ports.CapabilitySet { return f.caps }

func (f *fakeAdapter) TestConnection(context.Context) error { return f.testErr }

func (f *fakeAdapter) ListProducts(context.Context) ([]domain.CanonicalProduct, error) {
	return f.products, nil
}

func (f *fakeAdapter) ListOrders(context.Context) ([]domain.CanonicalOrder, error) {
	return f.orders, nil
}

func (f *fakeAdapter) ListCustomers(context.Context) ([]domain.CanonicalCustomer, error) {
	return f.customers, nil
}

func (f *fakeAdapter) ListInventory(context.Context) ([]domain.CanonicalInventory, error) {
	return f.inventory, nil
}

func (f *fakeAdapter) RegisterWebhook(ctx context.Context, canonicalTopic, address string) (string, error) {
	id, ok := f.webhooks[canonicalTopic]
	if !ok {
		return "", &domain.UnsupportedOperationError{Platform: f.platform, Operation: "webhook topic " + canonicalTopic}
	}
	return id, nil
}

type fakeProvider struct {
	adapter ports.Adapter
	err     error
}

func (p *fakeProvider) AdapterFor(ctx context.Context, projectID, environment string, platform domain.Platform) (ports.Adapter, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.adapter, nil
}
