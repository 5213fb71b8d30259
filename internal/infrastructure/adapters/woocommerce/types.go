package woocommerce

// Raw payloads for the WooCommerce REST API (wp-json/wc/v3). Monetary fields
// arrive as strings; stock_quantity is null for unmanaged products.

type rawProduct struct {
	ID               int            `json:"id"`
	Name             string         `json:"name"`
	SKU              string         `json:"sku"`
	Type             string         `json:"type"`
	Status           string         `json:"status"`
	Description      string         `json:"description"`
	ShortDescription string         `json:"short_description"`
	Permalink        string         `json:"permalink"`
	Price            string         `json:"price"`
	RegularPrice     string         `json:"regular_price"`
	SalePrice        string         `json:"sale_price"`
	ManageStock      bool           `json:"manage_stock"`
	StockQuantity    *int           `json:"stock_quantity"`
	DateCreatedGMT   string         `json:"date_created_gmt"`
	DateModifiedGMT  string         `json:"date_modified_gmt"`
	Images           []rawImage     `json:"images"`
	Attributes       []rawAttribute `json:"attributes"`
}

type rawImage struct {
	Src string `json:"src"`
}

type rawAttribute struct {
	Name    string   `json:"name"`
	Options []string `json:"options"`
}

type rawVariation struct {
	ID            int    `json:"id"`
	SKU           string `json:"sku"`
	Price         string `json:"price"`
	StockQuantity *int   `json:"stock_quantity"`
	Attributes    []struct {
		Name   string `json:"name"`
		Option string `json:"option"`
	} `json:"attributes"`
}

type rawOrder struct {
	ID              int           `json:"id"`
	Number          string        `json:"number"`
	Status          string        `json:"status"`
	Currency        string        `json:"currency"`
	Total           string        `json:"total"`
	TotalTax        string        `json:"total_tax"`
	ShippingTotal   string        `json:"shipping_total"`
	DiscountTotal   string        `json:"discount_total"`
	DateCreatedGMT  string        `json:"date_created_gmt"`
	DateModifiedGMT string        `json:"date_modified_gmt"`
	Billing         rawAddress    `json:"billing"`
	Shipping        rawAddress    `json:"shipping"`
	LineItems       []rawLineItem `json:"line_items"`
}

type rawAddress struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company"`
	Address1  string `json:"address_1"`
	Address2  string `json:"address_2"`
	City      string `json:"city"`
	State     string `json:"state"`
	Postcode  string `json:"postcode"`
	Country   string `json:"country"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type rawLineItem struct {
	ID          int     `json:"id"`
	ProductID   int     `json:"product_id"`
	VariationID int     `json:"variation_id"`
	SKU         string  `json:"sku"`
	Name        string  `json:"name"`
	Quantity    int     `json:"quantity"`
	Subtotal    string  `json:"subtotal"`
	Total       string  `json:"total"`
	TotalTax    string  `json:"total_tax"`
	Price       float64 `json:"price"`
}

type rawCustomer struct {
	ID               int        `json:"id"`
	Email            string     `json:"email"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	DateCreatedGMT   string     `json:"date_created_gmt"`
	DateModifiedGMT  string     `json:"date_modified_gmt"`
	Billing          rawAddress `json:"billing"`
	Shipping         rawAddress `json:"shipping"`
	IsPayingCustomer bool       `json:"is_paying_customer"`
}

type rawWebhook struct {
	ID     int    `json:"id"`
	Topic  string `json:"topic"`
	Status string `json:"status"`
}
