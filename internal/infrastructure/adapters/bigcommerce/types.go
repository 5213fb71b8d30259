package bigcommerce

// Raw payloads for the BigCommerce REST APIs. Catalog and webhook endpoints
// are v3 (data/meta envelope, ISO 8601 dates); orders are v2 (bare arrays,
// RFC 1123 dates).

type productsResponse struct {
	Data []rawProduct `json:"data"`
	Meta struct {
		Pagination struct {
			Total       int `json:"total"`
			TotalPages  int `json:"total_pages"`
			CurrentPage int `json:"current_page"`
		} `json:"pagination"`
	} `json:"meta"`
}

type productResponse struct {
	Data rawProduct `json:"data"`
}

type rawProduct struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	SKU             string  `json:"sku"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	CostPrice       float64 `json:"cost_price"`
	RetailPrice     float64 `json:"retail_price"`
	InventoryLevel  int     `json:"inventory_level"`
	IsVisible       bool    `json:"is_visible"`
	Availability    string  `json:"availability"`
	PageTitle       string  `json:"page_title"`
	MetaDescription string  `json:"meta_description"`
	DateCreated     string  `json:"date_created"`
	DateModified    string  `json:"date_modified"`
	CustomURL       struct {
		URL string `json:"url"`
	} `json:"custom_url"`
	Variants []rawVariant `json:"variants"`
	Images   []rawImage   `json:"images"`
}

type rawVariant struct {
	ID             int     `json:"id"`
	ProductID      int     `json:"product_id"`
	SKU            string  `json:"sku"`
	Price          float64 `json:"price"`
	InventoryLevel int     `json:"inventory_level"`
	OptionValues   []struct {
		OptionDisplayName string `json:"option_display_name"`
		Label             string `json:"label"`
	} `json:"option_values"`
}

type rawImage struct {
	URLStandard string `json:"url_standard"`
	IsThumbnail bool   `json:"is_thumbnail"`
}

type variantsResponse struct {
	Data []rawVariant `json:"data"`
}

type rawOrder struct {
	ID             int        `json:"id"`
	StatusID       int        `json:"status_id"`
	Status         string     `json:"status"`
	CustomerID     int        `json:"customer_id"`
	DateCreated    string     `json:"date_created"`
	DateModified   string     `json:"date_modified"`
	SubtotalExTax  string     `json:"subtotal_ex_tax"`
	TotalIncTax    string     `json:"total_inc_tax"`
	TotalTax       string     `json:"total_tax"`
	ShippingCost   string     `json:"shipping_cost_inc_tax"`
	DiscountAmount string     `json:"discount_amount"`
	CouponDiscount string     `json:"coupon_discount"`
	CurrencyCode   string     `json:"currency_code"`
	BillingAddress rawAddress `json:"billing_address"`
}

type rawAddress struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Company     string `json:"company"`
	Street1     string `json:"street_1"`
	Street2     string `json:"street_2"`
	City        string `json:"city"`
	State       string `json:"state"`
	Zip         string `json:"zip"`
	CountryISO2 string `json:"country_iso2"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
}

type rawShippingAddress struct {
	ID int `json:"id"`
	rawAddress
}

type rawOrderProduct struct {
	ID               int    `json:"id"`
	ProductID        int    `json:"product_id"`
	VariantID        int    `json:"variant_id"`
	SKU              string `json:"sku"`
	Name             string `json:"name"`
	Quantity         int    `json:"quantity"`
	PriceExTax       string `json:"price_ex_tax"`
	TotalExTax       string `json:"total_ex_tax"`
	TotalIncTax      string `json:"total_inc_tax"`
	TotalTax         string `json:"total_tax"`
	AppliedDiscounts []struct {
		Amount string `json:"amount"`
	} `json:"applied_discounts"`
}

type customersResponse struct {
	Data []rawCustomer `json:"data"`
	Meta struct {
		Pagination struct {
			TotalPages int `json:"total_pages"`
		} `json:"pagination"`
	} `json:"meta"`
}

type rawCustomer struct {
	ID               int    `json:"id"`
	Email            string `json:"email"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Phone            string `json:"phone"`
	AcceptsMarketing bool   `json:"accepts_product_review_abandoned_cart_emails"`
	DateCreated      string `json:"date_created"`
	DateModified     string `json:"date_modified"`
}

type hookResponse struct {
	Data struct {
		ID    int    `json:"id"`
		Scope string `json:"scope"`
	} `json:"data"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	Scope       string `json:"scope"`
}
