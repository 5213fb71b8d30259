package domain

import "time"

// WebhookStatus tracks processing of a stored webhook event.
type WebhookStatus string

const (
	WebhookStatusPending   WebhookStatus = "pending"
	WebhookStatusProcessed WebhookStatus = "processed"
	WebhookStatusFailed    WebhookStatus = "failed"
)

// Canonical webhook topics. Adapters translate these to and from each
// platform's own vocabulary.
const (
	TopicOrderCreated        = "orders/create"
	TopicOrderUpdated        = "orders/update"
	TopicOrderCancelled      = "orders/cancel"
	TopicProductCreated      = "products/create"
	TopicProductUpdated      = "products/update"
	TopicProductDeleted      = "products/delete"
	TopicInventoryUpdated    = "inventory/update"
	TopicCustomerDataRequest = "customers/data_request"
	TopicCustomerRedact      = "customers/redact"
	TopicShopRedact          = "shop/redact"
	TopicAppUninstalled      = "app/uninstalled"
)

// IsComplianceTopic reports whether a canonical topic carries a regulatory
// obligation requiring an audit record regardless of processing outcome.
func IsComplianceTopic(topic string) bool {
	switch topic {
	case TopicCustomerDataRequest, TopicCustomerRedact, TopicShopRedact:
		return true
	}
	return false
}

// CanonicalWebhookEvent is the normalized form of an inbound platform
// notification, created only after signature verification.
type CanonicalWebhookEvent struct {
	ID           string        `json:"id"`
	Platform     Platform      `json:"platform"`
	Topic        string        `json:"topic"`
	ResourceID   string        `json:"resource_id"`
	ResourceType string        `json:"resource_type"`
	Shop         string        `json:"shop"`
	Payload      []byte        `json:"payload"`
	Status       WebhookStatus `json:"status"`
	Error        string        `json:"error,omitempty"`
	ReceivedAt   time.Time     `json:"received_at"`
}

// ComplianceRecord is the auditable trace of a customer data request or
// erasure. Regulatory response deadlines apply regardless of internal
// errors, so the record is persisted independent of processing success.
type ComplianceRecord struct {
	ID            string        `json:"id"`
	Platform      Platform      `json:"platform"`
	Topic         string        `json:"topic"`
	Shop          string        `json:"shop"`
	CustomerID    string        `json:"customer_id"`
	CustomerEmail string        `json:"customer_email"`
	RequestedAt   time.Time     `json:"requested_at"`
	Status        WebhookStatus `json:"status"`
	Error         string        `json:"error,omitempty"`
}
