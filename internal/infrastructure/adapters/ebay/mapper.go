package ebay

import (
	"time"

	"commerce-adapter-layer/internal/domain"
)

func parseTime(s string) time.Time {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}

func mapOrder(raw rawOrder) domain.CanonicalOrder {
	order := domain.CanonicalOrder{
		Platform:          domain.PlatformEBay,
		PlatformID:        raw.OrderID,
		OrderNumber:       raw.OrderID,
		CustomerEmail:     raw.Buyer.BuyerRegistrationAddress.Email,
		CustomerName:      raw.Buyer.BuyerRegistrationAddress.FullName,
		SubtotalPrice:     domain.ParseMoneyString(raw.PricingSummary.PriceSubtotal.Value),
		TotalShipping:     domain.ParseMoneyString(raw.PricingSummary.DeliveryCost.Value),
		TotalTax:          domain.ParseMoneyString(raw.PricingSummary.Tax.Value),
		TotalDiscounts:    domain.ParseMoneyString(raw.PricingSummary.PriceDiscount.Value),
		TotalPrice:        domain.ParseMoneyString(raw.PricingSummary.Total.Value),
		Currency:          raw.PricingSummary.Total.Currency,
		FinancialStatus:   mapFinancialStatus(raw.OrderPaymentStatus),
		FulfillmentStatus: mapFulfillmentStatus(raw.OrderFulfillmentStatus),
		CreatedAt:         parseTime(raw.CreationDate),
		UpdatedAt:         parseTime(raw.LastModifiedDate),
		LineItems:         make([]domain.CanonicalLineItem, 0, len(raw.LineItems)),
	}
	// Fall back to the buyer username when the registration address carries
	// no display name.
	if order.CustomerName == "" {
		order.CustomerName = raw.Buyer.Username
	}
	for _, li := range raw.LineItems {
		order.LineItems = append(order.LineItems, mapLineItem(li))
	}
	if len(raw.FulfillmentStartInstructions) > 0 {
		order.ShippingAddress = mapShipTo(raw.FulfillmentStartInstructions[0].ShippingStep.ShipTo)
	}
	return order
}

func mapLineItem(raw rawLineItem) domain.CanonicalLineItem {
	qty := raw.Quantity
	if qty < 1 {
		qty = 1
	}
	return domain.CanonicalLineItem{
		ProductID: raw.LegacyItemID,
		VariantID: raw.LineItemID,
		SKU:       raw.SKU,
		Title:     raw.Title,
		Quantity:  qty,
		Price:     domain.ParseMoneyString(raw.LineItemCost.Value),
		TotalTax:  domain.ParseMoneyString(raw.Tax.Value),
		Total:     domain.ParseMoneyString(raw.Total.Value),
	}
}

func mapShipTo(raw rawShipTo) *domain.CanonicalAddress {
	first, last := splitName(raw.FullName)
	return &domain.CanonicalAddress{
		FirstName:   first,
		LastName:    last,
		Address1:    raw.ContactAddress.AddressLine1,
		Address2:    raw.ContactAddress.AddressLine2,
		City:        raw.ContactAddress.City,
		Province:    raw.ContactAddress.StateOrProvince,
		Zip:         raw.ContactAddress.PostalCode,
		CountryCode: raw.ContactAddress.CountryCode,
		Phone:       raw.PrimaryPhone.PhoneNumber,
	}
}

// mapInventoryItem builds the product view of an inventory item. Pricing
// lives on offers, a separate aggregate, so Price stays zero here.
func mapInventoryItem(raw rawInventoryItem) domain.CanonicalProduct {
	p := domain.CanonicalProduct{
		Platform:     domain.PlatformEBay,
		PlatformID:   raw.SKU,
		SKU:          raw.SKU,
		Title:        raw.Product.Title,
		Description:  raw.Product.Description,
		Images:       raw.Product.ImageURLs,
		InventoryQty: raw.Availability.ShipToLocationAvailability.Quantity,
		Status:       domain.ProductStatusActive,
	}
	if raw.Condition != "" {
		p.Metadata = map[string]string{"condition": raw.Condition}
	}
	return p
}

func splitName(full string) (string, string) {
	for i := len(full) - 1; i >= 0; i-- {
		if full[i] == ' ' {
			return full[:i], full[i+1:]
		}
	}
	return full, ""
}
