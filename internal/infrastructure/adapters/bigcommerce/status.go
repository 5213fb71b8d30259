package bigcommerce

import "commerce-adapter-layer/internal/domain"

// BigCommerce folds payment and shipping into a single numeric status_id.
// The two canonical axes are derived from it independently; ids absent from
// a table fall back to the conservative default for that axis.
//
//	1  Pending            7  Awaiting Payment     13 Disputed
//	2  Shipped            8  Awaiting Pickup      14 Partially Refunded
//	3  Partially Shipped  9  Awaiting Shipment
//	4  Refunded           10 Completed
//	5  Cancelled          11 Awaiting Fulfillment
//	6  Declined           12 Manual Verification
var fulfillmentStatusTable = map[int]domain.FulfillmentStatus{
	2:  domain.FulfillmentStatusFulfilled,
	3:  domain.FulfillmentStatusPartial,
	5:  domain.FulfillmentStatusCancelled,
	6:  domain.FulfillmentStatusCancelled,
	10: domain.FulfillmentStatusFulfilled,
}

var financialStatusTable = map[int]domain.FinancialStatus{
	2:  domain.FinancialStatusPaid,
	3:  domain.FinancialStatusPaid,
	4:  domain.FinancialStatusRefunded,
	5:  domain.FinancialStatusVoided,
	6:  domain.FinancialStatusVoided,
	8:  domain.FinancialStatusPaid,
	9:  domain.FinancialStatusPaid,
	10: domain.FinancialStatusPaid,
	11: domain.FinancialStatusPaid,
	14: domain.FinancialStatusRefunded,
}

// statusIDTable reverses the fulfillment mapping for outbound status writes.
var statusIDTable = map[domain.FulfillmentStatus]int{
	domain.FulfillmentStatusUnfulfilled: 11,
	domain.FulfillmentStatusPartial:     3,
	domain.FulfillmentStatusFulfilled:   2,
	domain.FulfillmentStatusCancelled:   5,
}

func mapFulfillmentStatus(statusID int) domain.FulfillmentStatus {
	if s, ok := fulfillmentStatusTable[statusID]; ok {
		return s
	}
	return domain.FulfillmentStatusUnfulfilled
}

func mapFinancialStatus(statusID int) domain.FinancialStatus {
	if s, ok := financialStatusTable[statusID]; ok {
		return s
	}
	return domain.FinancialStatusPending
}

// scopeTable translates canonical webhook topics into BigCommerce hook
// scopes.
var scopeTable = map[string]string{
	domain.TopicOrderCreated:     "store/order/created",
	domain.TopicOrderUpdated:     "store/order/updated",
	domain.TopicOrderCancelled:   "store/order/archived",
	domain.TopicProductCreated:   "store/product/created",
	domain.TopicProductUpdated:   "store/product/updated",
	domain.TopicProductDeleted:   "store/product/deleted",
	domain.TopicInventoryUpdated: "store/sku/inventory/updated",
	domain.TopicAppUninstalled:   "store/app/uninstalled",
}

var canonicalTopicTable = map[string]string{
	"store/order/created":         domain.TopicOrderCreated,
	"store/order/updated":         domain.TopicOrderUpdated,
	"store/order/archived":        domain.TopicOrderCancelled,
	"store/product/created":       domain.TopicProductCreated,
	"store/product/updated":       domain.TopicProductUpdated,
	"store/product/deleted":       domain.TopicProductDeleted,
	"store/sku/inventory/updated": domain.TopicInventoryUpdated,
	"store/app/uninstalled":       domain.TopicAppUninstalled,
}
