package amazon

import "commerce-adapter-layer/internal/domain"

// fulfillmentStatusTable maps Amazon OrderStatus codes to the canonical
// fulfillment vocabulary. Codes absent from the table fall back to
// unfulfilled, the most conservative canonical value.
var fulfillmentStatusTable = map[string]domain.FulfillmentStatus{
	"Pending":             domain.FulfillmentStatusUnfulfilled,
	"PendingAvailability": domain.FulfillmentStatusUnfulfilled,
	"Unshipped":           domain.FulfillmentStatusUnfulfilled,
	"PartiallyShipped":    domain.FulfillmentStatusPartial,
	"Shipped":             domain.FulfillmentStatusFulfilled,
	"InvoiceUnconfirmed":  domain.FulfillmentStatusFulfilled,
	"Canceled":            domain.FulfillmentStatusCancelled,
	"Unfulfillable":       domain.FulfillmentStatusCancelled,
}

// financialStatusTable derives the canonical payment state from OrderStatus;
// Amazon exposes no separate financial axis on the Orders API. Unknown codes
// fall back to pending.
var financialStatusTable = map[string]domain.FinancialStatus{
	"Pending":             domain.FinancialStatusPending,
	"PendingAvailability": domain.FinancialStatusPending,
	"Unshipped":           domain.FinancialStatusPaid,
	"PartiallyShipped":    domain.FinancialStatusPaid,
	"Shipped":             domain.FinancialStatusPaid,
	"InvoiceUnconfirmed":  domain.FinancialStatusPaid,
	"Canceled":            domain.FinancialStatusVoided,
	"Unfulfillable":       domain.FinancialStatusVoided,
}

func mapFulfillmentStatus(code string) domain.FulfillmentStatus {
	if s, ok := fulfillmentStatusTable[code]; ok {
		return s
	}
	return domain.FulfillmentStatusUnfulfilled
}

func mapFinancialStatus(code string) domain.FinancialStatus {
	if s, ok := financialStatusTable[code]; ok {
		return s
	}
	return domain.FinancialStatusPending
}

// notificationTypeTable translates canonical webhook topics into SP-API
// notification types.
var notificationTypeTable = map[string]string{
	domain.TopicOrderCreated:     "ORDER_CHANGE",
	domain.TopicOrderUpdated:     "ORDER_CHANGE",
	domain.TopicProductUpdated:   "LISTINGS_ITEM_STATUS_CHANGE",
	domain.TopicInventoryUpdated: "FBA_INVENTORY_AVAILABILITY_CHANGES",
}

var canonicalTopicTable = map[string]string{
	"ORDER_CHANGE":                       domain.TopicOrderUpdated,
	"LISTINGS_ITEM_STATUS_CHANGE":        domain.TopicProductUpdated,
	"FBA_INVENTORY_AVAILABILITY_CHANGES": domain.TopicInventoryUpdated,
}
