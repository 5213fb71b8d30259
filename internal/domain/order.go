package domain

import (
	"math"
	"time"
)

// FinancialStatus is the canonical payment state of an order.
type FinancialStatus string

const (
	FinancialStatusPending  FinancialStatus = "pending"
	FinancialStatusPaid     FinancialStatus = "paid"
	FinancialStatusRefunded FinancialStatus = "refunded"
	FinancialStatusVoided   FinancialStatus = "voided"
)

// FulfillmentStatus is the canonical shipping state of an order.
type FulfillmentStatus string

const (
	FulfillmentStatusUnfulfilled FulfillmentStatus = "unfulfilled"
	FulfillmentStatusPartial     FulfillmentStatus = "partial"
	FulfillmentStatusFulfilled   FulfillmentStatus = "fulfilled"
	FulfillmentStatusCancelled   FulfillmentStatus = "cancelled"
)

// CanonicalOrder is the platform-neutral order record. Customer fields are a
// point-in-time snapshot, not a live reference; the order keeps them even if
// the customer record later changes.
type CanonicalOrder struct {
	Platform          Platform            `json:"platform"`
	PlatformID        string              `json:"platform_id"`
	OrderNumber       string              `json:"order_number"`
	CustomerEmail     string              `json:"customer_email"`
	CustomerName      string              `json:"customer_name"`
	LineItems         []CanonicalLineItem `json:"line_items"`
	TotalPrice        float64             `json:"total_price"`
	SubtotalPrice     float64             `json:"subtotal_price"`
	TotalTax          float64             `json:"total_tax"`
	TotalShipping     float64             `json:"total_shipping"`
	TotalDiscounts    float64             `json:"total_discounts"`
	Currency          string              `json:"currency"`
	FinancialStatus   FinancialStatus     `json:"financial_status"`
	FulfillmentStatus FulfillmentStatus   `json:"fulfillment_status"`
	ShippingAddress   *CanonicalAddress   `json:"shipping_address"`
	BillingAddress    *CanonicalAddress   `json:"billing_address"`
	TrackingNumber    string              `json:"tracking_number"`
	TrackingCompany   string              `json:"tracking_company"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

// CanonicalLineItem references a product/variant by platform-scoped id. The
// reference is weak: the product may have been deleted or re-synced, so it is
// lookup-only, never ownership.
type CanonicalLineItem struct {
	ProductID string  `json:"product_id"`
	VariantID string  `json:"variant_id"`
	SKU       string  `json:"sku"`
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	TotalTax  float64 `json:"total_tax"`
	Total     float64 `json:"total_price"`
	Discount  float64 `json:"discount"`
}

// ExpectedTotal is price*quantity minus item-level discounts.
func (li *CanonicalLineItem) ExpectedTotal() float64 {
	return li.Price*float64(li.Quantity) - li.Discount
}

// ReconcilesTotals checks total ≈ subtotal + tax + shipping - discounts.
// Platforms round per line, so the tolerance scales with the line count:
// one cent per line item, floored at one cent. This is a diagnostic
// predicate for the storage layer, never a mapping-time rejection.
func (o *CanonicalOrder) ReconcilesTotals() bool {
	tolerance := 0.01 * float64(len(o.LineItems))
	if tolerance < 0.01 {
		tolerance = 0.01
	}
	expected := o.SubtotalPrice + o.TotalTax + o.TotalShipping - o.TotalDiscounts
	return math.Abs(o.TotalPrice-expected) <= tolerance
}
