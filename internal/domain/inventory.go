package domain

import "time"

// CanonicalInventory is a per-SKU, per-location inventory snapshot.
type CanonicalInventory struct {
	Platform    Platform  `json:"platform"`
	SKU         string    `json:"sku"`
	LocationID  string    `json:"location_id"`
	Quantity    int       `json:"quantity"`
	ReservedQty int       `json:"reserved_quantity"`
	IncomingQty int       `json:"incoming_quantity"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SellableQuantity is max(0, quantity - reserved). Upstream data quality is
// not trusted: the result is never negative even when reserved exceeds
// on-hand.
func (i *CanonicalInventory) SellableQuantity() int {
	s := i.Quantity - i.ReservedQty
	if s < 0 {
		return 0
	}
	return s
}

// NeedsReorder reports whether sellable stock has dropped to or below the
// reorder point.
func (i *CanonicalInventory) NeedsReorder(reorderPoint int) bool {
	return i.SellableQuantity() <= reorderPoint
}
