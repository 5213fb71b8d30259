package shopify

import "commerce-adapter-layer/internal/domain"

// Shopify's order statuses are close to the canonical vocabulary but not
// identical: fulfillment_status is null for untouched orders and has a
// restocked terminal state, and the payment axis has authorized and
// partially_paid intermediates.
var fulfillmentStatusTable = map[string]domain.FulfillmentStatus{
	"":          domain.FulfillmentStatusUnfulfilled,
	"fulfilled": domain.FulfillmentStatusFulfilled,
	"partial":   domain.FulfillmentStatusPartial,
	"restocked": domain.FulfillmentStatusCancelled,
}

var financialStatusTable = map[string]domain.FinancialStatus{
	"pending":            domain.FinancialStatusPending,
	"authorized":         domain.FinancialStatusPending,
	"partially_paid":     domain.FinancialStatusPending,
	"paid":               domain.FinancialStatusPaid,
	"partially_refunded": domain.FinancialStatusRefunded,
	"refunded":           domain.FinancialStatusRefunded,
	"voided":             domain.FinancialStatusVoided,
}

func mapFulfillmentStatus(status string) domain.FulfillmentStatus {
	if s, ok := fulfillmentStatusTable[status]; ok {
		return s
	}
	return domain.FulfillmentStatusUnfulfilled
}

func mapFinancialStatus(status string) domain.FinancialStatus {
	if s, ok := financialStatusTable[status]; ok {
		return s
	}
	return domain.FinancialStatusPending
}

// The canonical topic vocabulary is Shopify-shaped, so most entries map to
// themselves. The tables still exist so unsupported topics fail loudly
// instead of being passed through untranslated.
var topicTable = map[string]string{
	domain.TopicOrderCreated:        "orders/create",
	domain.TopicOrderUpdated:        "orders/updated",
	domain.TopicOrderCancelled:      "orders/cancelled",
	domain.TopicProductCreated:      "products/create",
	domain.TopicProductUpdated:      "products/update",
	domain.TopicProductDeleted:      "products/delete",
	domain.TopicInventoryUpdated:    "inventory_levels/update",
	domain.TopicCustomerDataRequest: "customers/data_request",
	domain.TopicCustomerRedact:      "customers/redact",
	domain.TopicShopRedact:          "shop/redact",
	domain.TopicAppUninstalled:      "app/uninstalled",
}

var canonicalTopicTable = map[string]string{
	"orders/create":           domain.TopicOrderCreated,
	"orders/updated":          domain.TopicOrderUpdated,
	"orders/cancelled":        domain.TopicOrderCancelled,
	"products/create":         domain.TopicProductCreated,
	"products/update":         domain.TopicProductUpdated,
	"products/delete":         domain.TopicProductDeleted,
	"inventory_levels/update": domain.TopicInventoryUpdated,
	"customers/data_request":  domain.TopicCustomerDataRequest,
	"customers/redact":        domain.TopicCustomerRedact,
	"shop/redact":             domain.TopicShopRedact,
	"app/uninstalled":         domain.TopicAppUninstalled,
}
