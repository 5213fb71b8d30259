package domain

import "time"

// ProductStatus is the canonical product lifecycle status.
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusDraft    ProductStatus = "draft"
	ProductStatusArchived ProductStatus = "archived"
)

// DefaultLowStockThreshold is the stock level at or below which a product is
// considered low. Deployments override it per call; this is policy, not data.
const DefaultLowStockThreshold = 10

// CanonicalProduct is the platform-neutral product record. Identity is the
// (Platform, PlatformID) pair, unique within a platform's catalog. Every
// adapter call that maps a raw payload creates a fresh instance; mapping is a
// pure function of the raw input.
type CanonicalProduct struct {
	Platform       Platform           `json:"platform"`
	PlatformID     string             `json:"platform_id"`
	SKU            string             `json:"sku"`
	Title          string             `json:"title"`
	Description    string             `json:"description"`
	Vendor         string             `json:"vendor"`
	Price          float64            `json:"price"`
	CompareAtPrice float64            `json:"compare_at_price"`
	Cost           float64            `json:"cost"`
	Currency       string             `json:"currency"`
	InventoryQty   int                `json:"inventory_quantity"`
	Variants       []CanonicalVariant `json:"variants"`
	Images         []string           `json:"images"`
	Status         ProductStatus      `json:"status"`
	SEOTitle       string             `json:"seo_title"`
	SEODescription string             `json:"seo_description"`
	Metadata       map[string]string  `json:"metadata"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	PlatformURL    string             `json:"platform_url"`
}

// CanonicalVariant belongs to exactly one CanonicalProduct.
type CanonicalVariant struct {
	PlatformID   string            `json:"platform_id"`
	SKU          string            `json:"sku"`
	Title        string            `json:"title"`
	Price        float64           `json:"price"`
	InventoryQty int               `json:"inventory_quantity"`
	Options      map[string]string `json:"options"`
}

// ProfitMargin returns ((price - cost) / price) * 100, or 0 when price is
// zero or unset.
func (p *CanonicalProduct) ProfitMargin() float64 {
	if p.Price <= 0 {
		return 0
	}
	return (p.Price - p.Cost) / p.Price * 100
}

// TotalInventory sums variant-level inventory when variants exist, falling
// back to the product-level snapshot for single-variant platforms.
func (p *CanonicalProduct) TotalInventory() int {
	if len(p.Variants) == 0 {
		return p.InventoryQty
	}
	total := 0
	for _, v := range p.Variants {
		total += v.InventoryQty
	}
	return total
}

// IsLowStock reports whether total inventory is at or below threshold but
// not yet zero.
func (p *CanonicalProduct) IsLowStock(threshold int) bool {
	total := p.TotalInventory()
	return total > 0 && total <= threshold
}

// IsOutOfStock reports whether no sellable inventory remains.
func (p *CanonicalProduct) IsOutOfStock() bool {
	return p.TotalInventory() <= 0
}
