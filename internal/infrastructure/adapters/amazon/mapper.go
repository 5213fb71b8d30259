package amazon

import (
	"time"

	"commerce-adapter-layer/internal/domain"
)

// Mapping functions are pure: the same raw payload always produces the same
// canonical record. Malformed numeric fields map to zero, never an error.

func mapOrder(raw rawOrder, items []rawOrderItem) domain.CanonicalOrder {
	order := domain.CanonicalOrder{
		Platform:          domain.PlatformAmazon,
		PlatformID:        raw.AmazonOrderID,
		OrderNumber:       raw.AmazonOrderID,
		CustomerEmail:     raw.BuyerEmail,
		CustomerName:      raw.BuyerName,
		TotalPrice:        domain.ParseMoneyString(raw.OrderTotal.Amount),
		Currency:          raw.OrderTotal.CurrencyCode,
		FinancialStatus:   mapFinancialStatus(raw.OrderStatus),
		FulfillmentStatus: mapFulfillmentStatus(raw.OrderStatus),
		CreatedAt:         parseTime(raw.PurchaseDate),
		UpdatedAt:         parseTime(raw.LastUpdateDate),
		LineItems:         make([]domain.CanonicalLineItem, 0, len(items)),
	}

	if raw.ShippingAddress != nil {
		order.ShippingAddress = mapAddress(*raw.ShippingAddress)
	}

	var subtotal, tax, discounts float64
	for _, item := range items {
		li := mapOrderItem(item)
		subtotal += li.Price * float64(li.Quantity)
		tax += li.TotalTax
		discounts += li.Discount
		order.LineItems = append(order.LineItems, li)
	}
	order.SubtotalPrice = subtotal
	order.TotalTax = tax
	order.TotalDiscounts = discounts
	return order
}

// mapOrderItem keeps ASIN and SellerSKU distinct: the ASIN is Amazon's
// catalog identity (product reference), the SellerSKU is the merchant's.
// ItemPrice is the line total, so the unit price is derived from quantity.
// Amazon omits ItemTax on some marketplaces; the zero default stands in.
func mapOrderItem(item rawOrderItem) domain.CanonicalLineItem {
	qty := item.QuantityOrdered
	if qty < 1 {
		qty = 1
	}
	lineTotal := domain.ParseMoneyString(item.ItemPrice.Amount)
	return domain.CanonicalLineItem{
		ProductID: item.ASIN,
		VariantID: item.OrderItemID,
		SKU:       item.SellerSKU,
		Title:     item.Title,
		Quantity:  qty,
		Price:     lineTotal / float64(qty),
		TotalTax:  domain.ParseMoneyString(item.ItemTax.Amount),
		Discount:  domain.ParseMoneyString(item.PromotionDiscount.Amount),
		Total:     lineTotal - domain.ParseMoneyString(item.PromotionDiscount.Amount),
	}
}

func mapAddress(raw rawAddress) *domain.CanonicalAddress {
	first, last := splitName(raw.Name)
	return &domain.CanonicalAddress{
		FirstName:   first,
		LastName:    last,
		Address1:    raw.AddressLine1,
		Address2:    raw.AddressLine2,
		City:        raw.City,
		Province:    raw.StateOrRegion,
		CountryCode: raw.CountryCode,
		Zip:         raw.PostalCode,
		Phone:       raw.Phone,
	}
}

func mapListing(raw rawListing, marketplaceID string) domain.CanonicalProduct {
	p := domain.CanonicalProduct{
		Platform:   domain.PlatformAmazon,
		PlatformID: raw.SKU,
		SKU:        raw.SKU,
		Status:     domain.ProductStatusDraft,
		Metadata:   map[string]string{"marketplace_id": marketplaceID},
	}

	if len(raw.Summaries) > 0 {
		s := raw.Summaries[0]
		p.Title = s.ItemName
		p.Metadata["asin"] = s.ASIN
		p.CreatedAt = parseTime(s.CreatedDate)
		p.UpdatedAt = parseTime(s.LastUpdatedDate)
		if s.MainImage.Link != "" {
			p.Images = []string{s.MainImage.Link}
		}
		for _, st := range s.Status {
			if st == "BUYABLE" || st == "DISCOVERABLE" {
				p.Status = domain.ProductStatusActive
			}
		}
		if p.Title != "" && s.ASIN != "" {
			p.PlatformURL = "https://www.amazon.com/dp/" + s.ASIN
		}
	}
	for _, offer := range raw.Offers {
		if offer.OfferType == "B2C" || p.Price == 0 {
			p.Price = domain.ParseMoneyString(offer.Price.Amount)
			p.Currency = offer.Price.CurrencyCode
		}
	}
	return p
}

func mapInventorySummary(raw rawInventorySummary) domain.CanonicalInventory {
	return domain.CanonicalInventory{
		Platform:    domain.PlatformAmazon,
		SKU:         raw.SellerSKU,
		Quantity:    raw.TotalQuantity,
		ReservedQty: raw.InventoryDetails.ReservedQuantity.TotalReservedQuantity,
		IncomingQty: raw.InventoryDetails.InboundWorkingQuantity,
	}
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func splitName(full string) (string, string) {
	for i := len(full) - 1; i >= 0; i-- {
		if full[i] == ' ' {
			return full[:i], full[i+1:]
		}
	}
	return full, ""
}
