package ebay

import "commerce-adapter-layer/internal/domain"

// eBay reports payment and fulfillment on separate fields, so each table
// covers exactly one canonical axis. Unknown values fall back to the
// conservative default.
var fulfillmentStatusTable = map[string]domain.FulfillmentStatus{
	"NOT_STARTED": domain.FulfillmentStatusUnfulfilled,
	"IN_PROGRESS": domain.FulfillmentStatusPartial,
	"FULFILLED":   domain.FulfillmentStatusFulfilled,
}

var financialStatusTable = map[string]domain.FinancialStatus{
	"PENDING":            domain.FinancialStatusPending,
	"PAID":               domain.FinancialStatusPaid,
	"FAILED":             domain.FinancialStatusVoided,
	"FULLY_REFUNDED":     domain.FinancialStatusRefunded,
	"PARTIALLY_REFUNDED": domain.FinancialStatusRefunded,
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

// topicTable maps canonical webhook topics onto Notification API topic ids.
// Order events have no notification topic; polling covers them.
var topicTable = map[string]string{
	domain.TopicProductUpdated:   "ITEM_PRICE_REVISION",
	domain.TopicInventoryUpdated: "ITEM_AVAILABILITY",
	domain.TopicCustomerRedact:   "MARKETPLACE_ACCOUNT_DELETION",
}

var canonicalTopicTable = map[string]string{
	"ITEM_PRICE_REVISION":          domain.TopicProductUpdated,
	"ITEM_AVAILABILITY":            domain.TopicInventoryUpdated,
	"MARKETPLACE_ACCOUNT_DELETION": domain.TopicCustomerRedact,
}
