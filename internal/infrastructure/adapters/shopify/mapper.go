package shopify

import (
	"strconv"
	"time"

	"commerce-adapter-layer/internal/domain"

	goshopify "github.com/bold-commerce/go-shopify/v4"
	"github.com/shopspring/decimal"
)

// decimalToFloat converts go-shopify's decimal prices to the canonical
// float representation, treating nil as zero.
func decimalToFloat(d *decimal.Decimal) float64 {
	if d == nil {
		return 0
	}
	return d.InexactFloat64()
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func formatID(id uint64) string {
	return strconv.FormatUint(id, 10)
}

func mapProduct(raw goshopify.Product, shopDomain string) domain.CanonicalProduct {
	p := domain.CanonicalProduct{
		Platform:    domain.PlatformShopify,
		PlatformID:  formatID(raw.Id),
		Title:       raw.Title,
		Description: raw.BodyHTML,
		Vendor:      raw.Vendor,
		Status:      mapProductStatus(string(raw.Status)),
		Metadata:    map[string]string{"shop": shopDomain},
		CreatedAt:   timeOrZero(raw.CreatedAt),
		UpdatedAt:   timeOrZero(raw.UpdatedAt),
	}
	if raw.Handle != "" {
		p.PlatformURL = "https://" + shopDomain + "/products/" + raw.Handle
	}
	for _, img := range raw.Images {
		p.Images = append(p.Images, img.Src)
	}

	optionNames := make([]string, 0, len(raw.Options))
	for _, opt := range raw.Options {
		optionNames = append(optionNames, opt.Name)
	}
	for _, v := range raw.Variants {
		p.Variants = append(p.Variants, mapVariant(v, optionNames))
	}

	// Shopify products always carry at least one variant; the first one is
	// the product's face price and SKU.
	if len(raw.Variants) > 0 {
		first := raw.Variants[0]
		p.SKU = first.Sku
		p.Price = decimalToFloat(first.Price)
		p.CompareAtPrice = decimalToFloat(first.CompareAtPrice)
	}
	return p
}

func mapProductStatus(status string) domain.ProductStatus {
	switch status {
	case "active":
		return domain.ProductStatusActive
	case "archived":
		return domain.ProductStatusArchived
	default:
		return domain.ProductStatusDraft
	}
}

func mapVariant(raw goshopify.Variant, optionNames []string) domain.CanonicalVariant {
	v := domain.CanonicalVariant{
		PlatformID:   formatID(raw.Id),
		SKU:          raw.Sku,
		Title:        raw.Title,
		Price:        decimalToFloat(raw.Price),
		InventoryQty: raw.InventoryQuantity,
	}
	values := []string{raw.Option1, raw.Option2, raw.Option3}
	for i, name := range optionNames {
		if i >= len(values) || values[i] == "" {
			break
		}
		if v.Options == nil {
			v.Options = make(map[string]string)
		}
		v.Options[name] = values[i]
	}
	return v
}

func mapOrder(raw goshopify.Order) domain.CanonicalOrder {
	order := domain.CanonicalOrder{
		Platform:          domain.PlatformShopify,
		PlatformID:        formatID(raw.Id),
		OrderNumber:       raw.Name,
		CustomerEmail:     raw.Email,
		TotalPrice:        decimalToFloat(raw.TotalPrice),
		SubtotalPrice:     decimalToFloat(raw.SubtotalPrice),
		TotalTax:          decimalToFloat(raw.TotalTax),
		TotalDiscounts:    decimalToFloat(raw.TotalDiscounts),
		Currency:          raw.Currency,
		FinancialStatus:   mapFinancialStatus(string(raw.FinancialStatus)),
		FulfillmentStatus: mapFulfillmentStatus(string(raw.FulfillmentStatus)),
		BillingAddress:    mapAddress(raw.BillingAddress),
		ShippingAddress:   mapAddress(raw.ShippingAddress),
		CreatedAt:         timeOrZero(raw.CreatedAt),
		UpdatedAt:         timeOrZero(raw.UpdatedAt),
		LineItems:         make([]domain.CanonicalLineItem, 0, len(raw.LineItems)),
	}
	if raw.Customer != nil {
		order.CustomerName = joinName(raw.Customer.FirstName, raw.Customer.LastName)
	}
	for _, sl := range raw.ShippingLines {
		order.TotalShipping += decimalToFloat(sl.Price)
	}
	for _, li := range raw.LineItems {
		order.LineItems = append(order.LineItems, mapLineItem(li))
	}
	return order
}

func mapLineItem(raw goshopify.LineItem) domain.CanonicalLineItem {
	price := decimalToFloat(raw.Price)
	discount := decimalToFloat(raw.TotalDiscount)
	item := domain.CanonicalLineItem{
		ProductID: formatID(raw.ProductId),
		VariantID: formatID(raw.VariantId),
		SKU:       raw.SKU,
		Title:     raw.Title,
		Quantity:  raw.Quantity,
		Price:     price,
		Discount:  discount,
		Total:     price*float64(raw.Quantity) - discount,
	}
	for _, tl := range raw.TaxLines {
		item.TotalTax += decimalToFloat(tl.Price)
	}
	return item
}

func mapAddress(raw *goshopify.Address) *domain.CanonicalAddress {
	if raw == nil {
		return nil
	}
	return &domain.CanonicalAddress{
		FirstName:   raw.FirstName,
		LastName:    raw.LastName,
		Company:     raw.Company,
		Address1:    raw.Address1,
		Address2:    raw.Address2,
		City:        raw.City,
		Province:    raw.Province,
		CountryCode: raw.CountryCode,
		Zip:         raw.Zip,
		Phone:       raw.Phone,
	}
}

func mapCustomer(raw goshopify.Customer) domain.CanonicalCustomer {
	c := domain.CanonicalCustomer{
		Platform:    domain.PlatformShopify,
		PlatformID:  formatID(raw.Id),
		Email:       raw.Email,
		FirstName:   raw.FirstName,
		LastName:    raw.LastName,
		Phone:       raw.Phone,
		OrdersCount: raw.OrdersCount,
		TotalSpent:  decimalToFloat(raw.TotalSpent),
		CreatedAt:   timeOrZero(raw.CreatedAt),
		UpdatedAt:   timeOrZero(raw.UpdatedAt),
	}
	if raw.DefaultAddress != nil {
		c.DefaultAddress = mapCustomerAddress(*raw.DefaultAddress)
	}
	for _, addr := range raw.Addresses {
		if addr == nil {
			continue
		}
		if mapped := mapCustomerAddress(*addr); mapped != nil {
			c.Addresses = append(c.Addresses, *mapped)
		}
	}
	return c
}

func mapCustomerAddress(raw goshopify.CustomerAddress) *domain.CanonicalAddress {
	return &domain.CanonicalAddress{
		FirstName:   raw.FirstName,
		LastName:    raw.LastName,
		Company:     raw.Company,
		Address1:    raw.Address1,
		Address2:    raw.Address2,
		City:        raw.City,
		Province:    raw.Province,
		CountryCode: raw.CountryCode,
		Zip:         raw.Zip,
		Phone:       raw.Phone,
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
