package bigcommerce

import (
	"fmt"
	"strconv"
	"time"

	"commerce-adapter-layer/internal/domain"
)

// v3 endpoints use ISO 8601 timestamps, v2 uses RFC 1123. Both appear in the
// same canonical record when an order references catalog data, so the parser
// accepts either and degrades to the zero time.
var timeLayouts = []string{time.RFC3339, time.RFC1123Z, time.RFC1123}

func parseTime(s string) time.Time {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func mapProduct(raw rawProduct, storeHash string) domain.CanonicalProduct {
	p := domain.CanonicalProduct{
		Platform:       domain.PlatformBigCommerce,
		PlatformID:     strconv.Itoa(raw.ID),
		SKU:            raw.SKU,
		Title:          raw.Name,
		Description:    raw.Description,
		Price:          raw.Price,
		CompareAtPrice: raw.RetailPrice,
		Cost:           raw.CostPrice,
		InventoryQty:   raw.InventoryLevel,
		SEOTitle:       raw.PageTitle,
		SEODescription: raw.MetaDescription,
		Status:         domain.ProductStatusDraft,
		Metadata:       map[string]string{"store_hash": storeHash},
		CreatedAt:      parseTime(raw.DateCreated),
		UpdatedAt:      parseTime(raw.DateModified),
	}
	if raw.IsVisible {
		p.Status = domain.ProductStatusActive
	}
	if raw.Availability == "disabled" {
		p.Status = domain.ProductStatusArchived
	}
	if raw.CustomURL.URL != "" {
		p.PlatformURL = raw.CustomURL.URL
	}
	for _, img := range raw.Images {
		p.Images = append(p.Images, img.URLStandard)
	}
	for _, v := range raw.Variants {
		p.Variants = append(p.Variants, mapVariant(v))
	}
	return p
}

func mapVariant(raw rawVariant) domain.CanonicalVariant {
	v := domain.CanonicalVariant{
		PlatformID:   strconv.Itoa(raw.ID),
		SKU:          raw.SKU,
		Price:        raw.Price,
		InventoryQty: raw.InventoryLevel,
	}
	if len(raw.OptionValues) > 0 {
		v.Options = make(map[string]string, len(raw.OptionValues))
		for _, ov := range raw.OptionValues {
			v.Options[ov.OptionDisplayName] = ov.Label
		}
	}
	return v
}

func mapOrder(raw rawOrder, products []rawOrderProduct) domain.CanonicalOrder {
	order := domain.CanonicalOrder{
		Platform:          domain.PlatformBigCommerce,
		PlatformID:        strconv.Itoa(raw.ID),
		OrderNumber:       fmt.Sprintf("#%d", raw.ID),
		CustomerEmail:     raw.BillingAddress.Email,
		CustomerName:      joinName(raw.BillingAddress.FirstName, raw.BillingAddress.LastName),
		SubtotalPrice:     domain.ParseMoneyString(raw.SubtotalExTax),
		TotalPrice:        domain.ParseMoneyString(raw.TotalIncTax),
		TotalTax:          domain.ParseMoneyString(raw.TotalTax),
		TotalShipping:     domain.ParseMoneyString(raw.ShippingCost),
		TotalDiscounts:    domain.ParseMoneyString(raw.DiscountAmount) + domain.ParseMoneyString(raw.CouponDiscount),
		Currency:          raw.CurrencyCode,
		FinancialStatus:   mapFinancialStatus(raw.StatusID),
		FulfillmentStatus: mapFulfillmentStatus(raw.StatusID),
		BillingAddress:    mapAddress(raw.BillingAddress),
		CreatedAt:         parseTime(raw.DateCreated),
		UpdatedAt:         parseTime(raw.DateModified),
		LineItems:         make([]domain.CanonicalLineItem, 0, len(products)),
	}
	for _, p := range products {
		order.LineItems = append(order.LineItems, mapOrderProduct(p))
	}
	return order
}

func mapOrderProduct(raw rawOrderProduct) domain.CanonicalLineItem {
	qty := raw.Quantity
	if qty < 1 {
		qty = 1
	}
	var discount float64
	for _, d := range raw.AppliedDiscounts {
		discount += domain.ParseMoneyString(d.Amount)
	}
	return domain.CanonicalLineItem{
		ProductID: strconv.Itoa(raw.ProductID),
		VariantID: strconv.Itoa(raw.VariantID),
		SKU:       raw.SKU,
		Title:     raw.Name,
		Quantity:  qty,
		Price:     domain.ParseMoneyString(raw.PriceExTax),
		TotalTax:  domain.ParseMoneyString(raw.TotalTax),
		Total:     domain.ParseMoneyString(raw.TotalIncTax),
		Discount:  discount,
	}
}

func mapAddress(raw rawAddress) *domain.CanonicalAddress {
	return &domain.CanonicalAddress{
		FirstName:   raw.FirstName,
		LastName:    raw.LastName,
		Company:     raw.Company,
		Address1:    raw.Street1,
		Address2:    raw.Street2,
		City:        raw.City,
		Province:    raw.State,
		Zip:         raw.Zip,
		CountryCode: raw.CountryISO2,
		Phone:       raw.Phone,
	}
}

func mapCustomer(raw rawCustomer) domain.CanonicalCustomer {
	return domain.CanonicalCustomer{
		Platform:         domain.PlatformBigCommerce,
		PlatformID:       strconv.Itoa(raw.ID),
		Email:            raw.Email,
		FirstName:        raw.FirstName,
		LastName:         raw.LastName,
		Phone:            raw.Phone,
		AcceptsMarketing: raw.AcceptsMarketing,
		CreatedAt:        parseTime(raw.DateCreated),
		UpdatedAt:        parseTime(raw.DateModified),
	}
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
