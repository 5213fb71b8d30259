package ebay

// Raw payloads for the eBay Sell APIs (fulfillment and inventory).

type rawAmount struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

type ordersResponse struct {
	Orders []rawOrder `json:"orders"`
	Total  int        `json:"total"`
	Next   string     `json:"next"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
}

type rawOrder struct {
	OrderID                      string        `json:"orderId"`
	CreationDate                 string        `json:"creationDate"`
	LastModifiedDate             string        `json:"lastModifiedDate"`
	OrderFulfillmentStatus       string        `json:"orderFulfillmentStatus"`
	OrderPaymentStatus           string        `json:"orderPaymentStatus"`
	PricingSummary               rawPricing    `json:"pricingSummary"`
	Buyer                        rawBuyer      `json:"buyer"`
	LineItems                    []rawLineItem `json:"lineItems"`
	FulfillmentStartInstructions []struct {
		ShippingStep struct {
			ShipTo rawShipTo `json:"shipTo"`
		} `json:"shippingStep"`
	} `json:"fulfillmentStartInstructions"`
}

type rawPricing struct {
	PriceSubtotal rawAmount `json:"priceSubtotal"`
	PriceDiscount rawAmount `json:"priceDiscount"`
	DeliveryCost  rawAmount `json:"deliveryCost"`
	Tax           rawAmount `json:"tax"`
	Total         rawAmount `json:"total"`
}

type rawBuyer struct {
	Username                 string `json:"username"`
	BuyerRegistrationAddress struct {
		FullName     string `json:"fullName"`
		Email        string `json:"email"`
		PrimaryPhone struct {
			PhoneNumber string `json:"phoneNumber"`
		} `json:"primaryPhone"`
	} `json:"buyerRegistrationAddress"`
}

type rawShipTo struct {
	FullName       string `json:"fullName"`
	ContactAddress struct {
		AddressLine1    string `json:"addressLine1"`
		AddressLine2    string `json:"addressLine2"`
		City            string `json:"city"`
		StateOrProvince string `json:"stateOrProvince"`
		PostalCode      string `json:"postalCode"`
		CountryCode     string `json:"countryCode"`
	} `json:"contactAddress"`
	PrimaryPhone struct {
		PhoneNumber string `json:"phoneNumber"`
	} `json:"primaryPhone"`
}

type rawLineItem struct {
	LineItemID   string    `json:"lineItemId"`
	LegacyItemID string    `json:"legacyItemId"`
	SKU          string    `json:"sku"`
	Title        string    `json:"title"`
	Quantity     int       `json:"quantity"`
	LineItemCost rawAmount `json:"lineItemCost"`
	Total        rawAmount `json:"total"`
	Tax          rawAmount `json:"tax"`
}

type inventoryItemsResponse struct {
	InventoryItems []rawInventoryItem `json:"inventoryItems"`
	Total          int                `json:"total"`
	Next           string             `json:"next"`
}

type rawInventoryItem struct {
	SKU     string `json:"sku"`
	Product struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		ImageURLs   []string `json:"imageUrls"`
	} `json:"product"`
	Condition    string `json:"condition"`
	Availability struct {
		ShipToLocationAvailability struct {
			Quantity int `json:"quantity"`
		} `json:"shipToLocationAvailability"`
	} `json:"availability"`
}

type subscriptionResponse struct {
	SubscriptionID string `json:"subscriptionId"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
}
