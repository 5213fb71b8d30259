package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSellableQuantityNeverNegative(t *testing.T) {
	inv := CanonicalInventory{Quantity: 5, ReservedQty: 8}
	assert.Equal(t, 0, inv.SellableQuantity())

	inv = CanonicalInventory{Quantity: 10, ReservedQty: 3}
	assert.Equal(t, 7, inv.SellableQuantity())
}

func TestNeedsReorder(t *testing.T) {
	// quantity 8, reserved 3 -> sellable 5, at or below reorder point 10.
	inv := CanonicalInventory{Quantity: 8, ReservedQty: 3}
	assert.True(t, inv.NeedsReorder(10))
	assert.False(t, inv.NeedsReorder(4))
}
