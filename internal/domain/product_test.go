package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfitMargin(t *testing.T) {
	tests := []struct {
		name  string
		price float64
		cost  float64
		want  float64
	}{
		{"half margin", 100, 50, 50},
		{"zero price guards divide by zero", 0, 50, 0},
		{"negative price guards", -10, 5, 0},
		{"zero cost", 80, 0, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := CanonicalProduct{Price: tt.price, Cost: tt.cost}
			assert.InDelta(t, tt.want, p.ProfitMargin(), 0.0001)
		})
	}
}

func TestTotalInventoryPrefersVariants(t *testing.T) {
	p := CanonicalProduct{
		InventoryQty: 99,
		Variants: []CanonicalVariant{
			{SKU: "A-S", InventoryQty: 3},
			{SKU: "A-M", InventoryQty: 4},
		},
	}
	assert.Equal(t, 7, p.TotalInventory())

	single := CanonicalProduct{InventoryQty: 12}
	assert.Equal(t, 12, single.TotalInventory())
}

func TestStockPredicates(t *testing.T) {
	p := CanonicalProduct{InventoryQty: 5}
	assert.True(t, p.IsLowStock(DefaultLowStockThreshold))
	assert.False(t, p.IsOutOfStock())

	p.InventoryQty = 0
	assert.False(t, p.IsLowStock(DefaultLowStockThreshold))
	assert.True(t, p.IsOutOfStock())

	p.InventoryQty = 50
	assert.False(t, p.IsLowStock(DefaultLowStockThreshold))
}
