package woocommerce

import (
	"strconv"
	"time"

	"commerce-adapter-layer/internal/domain"
)

// The *_gmt fields carry no zone suffix, e.g. "2026-02-10T18:42:33".
const wcTimeLayout = "2006-01-02T15:04:05"

func parseTime(s string) time.Time {
	if t, err := time.Parse(wcTimeLayout, s); err == nil {
		return t.UTC()
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}

func mapProduct(raw rawProduct, variations []rawVariation, currency string) domain.CanonicalProduct {
	p := domain.CanonicalProduct{
		Platform:       domain.PlatformWooCommerce,
		PlatformID:     strconv.Itoa(raw.ID),
		SKU:            raw.SKU,
		Title:          raw.Name,
		Description:    raw.Description,
		Price:          domain.ParseMoneyString(raw.Price),
		CompareAtPrice: domain.ParseMoneyString(raw.RegularPrice),
		Currency:       currency,
		Status:         mapProductStatus(raw.Status),
		PlatformURL:    raw.Permalink,
		SEODescription: raw.ShortDescription,
		CreatedAt:      parseTime(raw.DateCreatedGMT),
		UpdatedAt:      parseTime(raw.DateModifiedGMT),
	}
	if raw.StockQuantity != nil {
		p.InventoryQty = *raw.StockQuantity
	}
	for _, img := range raw.Images {
		p.Images = append(p.Images, img.Src)
	}
	for _, v := range variations {
		p.Variants = append(p.Variants, mapVariation(v))
	}
	return p
}

func mapVariation(raw rawVariation) domain.CanonicalVariant {
	v := domain.CanonicalVariant{
		PlatformID: strconv.Itoa(raw.ID),
		SKU:        raw.SKU,
		Price:      domain.ParseMoneyString(raw.Price),
	}
	if raw.StockQuantity != nil {
		v.InventoryQty = *raw.StockQuantity
	}
	if len(raw.Attributes) > 0 {
		v.Options = make(map[string]string, len(raw.Attributes))
		for _, attr := range raw.Attributes {
			v.Options[attr.Name] = attr.Option
		}
	}
	return v
}

func mapOrder(raw rawOrder) domain.CanonicalOrder {
	order := domain.CanonicalOrder{
		Platform:          domain.PlatformWooCommerce,
		PlatformID:        strconv.Itoa(raw.ID),
		OrderNumber:       raw.Number,
		CustomerEmail:     raw.Billing.Email,
		CustomerName:      joinName(raw.Billing.FirstName, raw.Billing.LastName),
		TotalPrice:        domain.ParseMoneyString(raw.Total),
		TotalTax:          domain.ParseMoneyString(raw.TotalTax),
		TotalShipping:     domain.ParseMoneyString(raw.ShippingTotal),
		TotalDiscounts:    domain.ParseMoneyString(raw.DiscountTotal),
		Currency:          raw.Currency,
		FinancialStatus:   mapFinancialStatus(raw.Status),
		FulfillmentStatus: mapFulfillmentStatus(raw.Status),
		BillingAddress:    mapAddress(raw.Billing),
		ShippingAddress:   mapAddress(raw.Shipping),
		CreatedAt:         parseTime(raw.DateCreatedGMT),
		UpdatedAt:         parseTime(raw.DateModifiedGMT),
		LineItems:         make([]domain.CanonicalLineItem, 0, len(raw.LineItems)),
	}
	var subtotal float64
	for _, li := range raw.LineItems {
		item := mapLineItem(li)
		subtotal += domain.ParseMoneyString(li.Subtotal)
		order.LineItems = append(order.LineItems, item)
	}
	// The order payload has no subtotal field; it is the sum of the
	// pre-discount line subtotals.
	order.SubtotalPrice = subtotal
	return order
}

func mapLineItem(raw rawLineItem) domain.CanonicalLineItem {
	qty := raw.Quantity
	if qty < 1 {
		qty = 1
	}
	subtotal := domain.ParseMoneyString(raw.Subtotal)
	total := domain.ParseMoneyString(raw.Total)
	item := domain.CanonicalLineItem{
		ProductID: strconv.Itoa(raw.ProductID),
		SKU:       raw.SKU,
		Title:     raw.Name,
		Quantity:  qty,
		Price:     raw.Price,
		TotalTax:  domain.ParseMoneyString(raw.TotalTax),
		Total:     total,
		Discount:  subtotal - total,
	}
	if raw.VariationID != 0 {
		item.VariantID = strconv.Itoa(raw.VariationID)
	}
	if item.Price == 0 {
		item.Price = subtotal / float64(qty)
	}
	if item.Discount < 0 {
		item.Discount = 0
	}
	return item
}

func mapAddress(raw rawAddress) *domain.CanonicalAddress {
	if raw == (rawAddress{}) {
		return nil
	}
	return &domain.CanonicalAddress{
		FirstName:   raw.FirstName,
		LastName:    raw.LastName,
		Company:     raw.Company,
		Address1:    raw.Address1,
		Address2:    raw.Address2,
		City:        raw.City,
		Province:    raw.State,
		Zip:         raw.Postcode,
		CountryCode: raw.Country,
		Phone:       raw.Phone,
	}
}

func mapCustomer(raw rawCustomer) domain.CanonicalCustomer {
	c := domain.CanonicalCustomer{
		Platform:   domain.PlatformWooCommerce,
		PlatformID: strconv.Itoa(raw.ID),
		Email:      raw.Email,
		FirstName:  raw.FirstName,
		LastName:   raw.LastName,
		Phone:      raw.Billing.Phone,
		CreatedAt:  parseTime(raw.DateCreatedGMT),
		UpdatedAt:  parseTime(raw.DateModifiedGMT),
	}
	if addr := mapAddress(raw.Billing); addr != nil {
		c.DefaultAddress = addr
		c.Addresses = append(c.Addresses, *addr)
	}
	if addr := mapAddress(raw.Shipping); addr != nil {
		c.Addresses = append(c.Addresses, *addr)
	}
	return c
}

func joinName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}
