package woocommerce

import "commerce-adapter-layer/internal/domain"

// WooCommerce has a single order status string; both canonical axes are
// derived from it. Unknown statuses (including ones added by store plugins)
// fall back to the conservative default per axis.
var fulfillmentStatusTable = map[string]domain.FulfillmentStatus{
	"pending":    domain.FulfillmentStatusUnfulfilled,
	"processing": domain.FulfillmentStatusUnfulfilled,
	"on-hold":    domain.FulfillmentStatusUnfulfilled,
	"completed":  domain.FulfillmentStatusFulfilled,
	"cancelled":  domain.FulfillmentStatusCancelled,
	"refunded":   domain.FulfillmentStatusUnfulfilled,
	"failed":     domain.FulfillmentStatusCancelled,
	"trash":      domain.FulfillmentStatusCancelled,
}

var financialStatusTable = map[string]domain.FinancialStatus{
	"pending":    domain.FinancialStatusPending,
	"processing": domain.FinancialStatusPaid,
	"on-hold":    domain.FinancialStatusPending,
	"completed":  domain.FinancialStatusPaid,
	"cancelled":  domain.FinancialStatusVoided,
	"refunded":   domain.FinancialStatusRefunded,
	"failed":     domain.FinancialStatusVoided,
	"trash":      domain.FinancialStatusVoided,
}

// orderStatusTable reverses the fulfillment mapping for outbound writes.
var orderStatusTable = map[domain.FulfillmentStatus]string{
	domain.FulfillmentStatusUnfulfilled: "processing",
	domain.FulfillmentStatusFulfilled:   "completed",
	domain.FulfillmentStatusCancelled:   "cancelled",
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

// productStatusTable maps WordPress post statuses to the canonical product
// lifecycle.
var productStatusTable = map[string]domain.ProductStatus{
	"publish": domain.ProductStatusActive,
	"draft":   domain.ProductStatusDraft,
	"pending": domain.ProductStatusDraft,
	"private": domain.ProductStatusArchived,
}

func mapProductStatus(status string) domain.ProductStatus {
	if s, ok := productStatusTable[status]; ok {
		return s
	}
	return domain.ProductStatusDraft
}

var topicTable = map[string]string{
	domain.TopicOrderCreated:   "order.created",
	domain.TopicOrderUpdated:   "order.updated",
	domain.TopicOrderCancelled: "order.deleted",
	domain.TopicProductCreated: "product.created",
	domain.TopicProductUpdated: "product.updated",
	domain.TopicProductDeleted: "product.deleted",
	domain.TopicCustomerRedact: "customer.deleted",
}

var canonicalTopicTable = map[string]string{
	"order.created":    domain.TopicOrderCreated,
	"order.updated":    domain.TopicOrderUpdated,
	"order.deleted":    domain.TopicOrderCancelled,
	"product.created":  domain.TopicProductCreated,
	"product.updated":  domain.TopicProductUpdated,
	"product.deleted":  domain.TopicProductDeleted,
	"customer.deleted": domain.TopicCustomerRedact,
}
