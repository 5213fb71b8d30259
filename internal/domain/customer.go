package domain

import "time"

// CustomerSegment buckets customers by lifetime spend.
type CustomerSegment string

const (
	SegmentVIP       CustomerSegment = "VIP"
	SegmentHighValue CustomerSegment = "High Value"
	SegmentRegular   CustomerSegment = "Regular"
	SegmentNew       CustomerSegment = "New"
)

// SegmentThresholds holds the spend cut-offs for customer segmentation.
// The defaults are product policy and can be overridden per deployment.
type SegmentThresholds struct {
	VIP       float64
	HighValue float64
	Regular   float64
}

// DefaultSegmentThresholds returns the standard segmentation policy.
func DefaultSegmentThresholds() SegmentThresholds {
	return SegmentThresholds{VIP: 1000, HighValue: 500, Regular: 100}
}

// CanonicalCustomer is the platform-neutral customer record. Aggregate stats
// may be platform-reported or locally computed.
type CanonicalCustomer struct {
	Platform         Platform           `json:"platform"`
	PlatformID       string             `json:"platform_id"`
	Email            string             `json:"email"`
	FirstName        string             `json:"first_name"`
	LastName         string             `json:"last_name"`
	Phone            string             `json:"phone"`
	OrdersCount      int                `json:"orders_count"`
	TotalSpent       float64            `json:"total_spent"`
	DefaultAddress   *CanonicalAddress  `json:"default_address"`
	Addresses        []CanonicalAddress `json:"addresses"`
	AcceptsMarketing bool               `json:"accepts_marketing"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// AverageOrderValue derives spend per order, zero-guarded.
func (c *CanonicalCustomer) AverageOrderValue() float64 {
	if c.OrdersCount <= 0 {
		return 0
	}
	return c.TotalSpent / float64(c.OrdersCount)
}

// LifetimeValue is the customer's total spend. Kept as a method so the
// definition can evolve (e.g. net of refunds) without changing callers.
func (c *CanonicalCustomer) LifetimeValue() float64 {
	return c.TotalSpent
}

// Segment classifies the customer against the given thresholds.
func (c *CanonicalCustomer) Segment(t SegmentThresholds) CustomerSegment {
	switch {
	case c.TotalSpent >= t.VIP:
		return SegmentVIP
	case c.TotalSpent >= t.HighValue:
		return SegmentHighValue
	case c.TotalSpent >= t.Regular:
		return SegmentRegular
	default:
		return SegmentNew
	}
}
