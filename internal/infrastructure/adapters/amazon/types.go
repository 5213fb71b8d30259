package amazon

// Typed raw payloads for the Selling Partner API. Required fields are
// validated before mapping instead of trusting optional chaining to mask
// missing data.

type lwaTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type ordersResponse struct {
	Payload struct {
		Orders    []rawOrder `json:"Orders"`
		NextToken string     `json:"NextToken"`
	} `json:"payload"`
}

type orderResponse struct {
	Payload rawOrder `json:"payload"`
}

type rawOrder struct {
	AmazonOrderID          string      `json:"AmazonOrderId"`
	PurchaseDate           string      `json:"PurchaseDate"`
	LastUpdateDate         string      `json:"LastUpdateDate"`
	OrderStatus            string      `json:"OrderStatus"`
	OrderTotal             rawMoney    `json:"OrderTotal"`
	BuyerEmail             string      `json:"BuyerEmail"`
	BuyerName              string      `json:"BuyerName"`
	ShippingAddress        *rawAddress `json:"ShippingAddress"`
	NumberOfItemsShipped   int         `json:"NumberOfItemsShipped"`
	NumberOfItemsUnshipped int         `json:"NumberOfItemsUnshipped"`
}

type rawMoney struct {
	CurrencyCode string `json:"CurrencyCode"`
	Amount       string `json:"Amount"`
}

type rawAddress struct {
	Name          string `json:"Name"`
	AddressLine1  string `json:"AddressLine1"`
	AddressLine2  string `json:"AddressLine2"`
	City          string `json:"City"`
	StateOrRegion string `json:"StateOrRegion"`
	PostalCode    string `json:"PostalCode"`
	CountryCode   string `json:"CountryCode"`
	Phone         string `json:"Phone"`
}

type orderItemsResponse struct {
	Payload struct {
		OrderItems []rawOrderItem `json:"OrderItems"`
		NextToken  string         `json:"NextToken"`
	} `json:"payload"`
}

type rawOrderItem struct {
	ASIN              string   `json:"ASIN"`
	SellerSKU         string   `json:"SellerSKU"`
	OrderItemID       string   `json:"OrderItemId"`
	Title             string   `json:"Title"`
	QuantityOrdered   int      `json:"QuantityOrdered"`
	ItemPrice         rawMoney `json:"ItemPrice"`
	ItemTax           rawMoney `json:"ItemTax"`
	PromotionDiscount rawMoney `json:"PromotionDiscount"`
}

type listingsResponse struct {
	Items      []rawListing `json:"items"`
	Pagination struct {
		NextToken string `json:"nextToken"`
	} `json:"pagination"`
}

type rawListing struct {
	SKU       string              `json:"sku"`
	Summaries []rawListingSummary `json:"summaries"`
	Offers    []rawListingOffer   `json:"offers"`
	Issues    []struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"issues"`
}

type rawListingSummary struct {
	ASIN            string   `json:"asin"`
	ItemName        string   `json:"itemName"`
	Status          []string `json:"status"`
	CreatedDate     string   `json:"createdDate"`
	LastUpdatedDate string   `json:"lastUpdatedDate"`
	MainImage       struct {
		Link string `json:"link"`
	} `json:"mainImage"`
}

type rawListingOffer struct {
	OfferType string   `json:"offerType"`
	Price     rawMoney `json:"price"`
}

type inventorySummariesResponse struct {
	Payload struct {
		InventorySummaries []rawInventorySummary `json:"inventorySummaries"`
	} `json:"payload"`
	Pagination struct {
		NextToken string `json:"nextToken"`
	} `json:"pagination"`
}

type rawInventorySummary struct {
	ASIN             string `json:"asin"`
	SellerSKU        string `json:"sellerSku"`
	TotalQuantity    int    `json:"totalQuantity"`
	InventoryDetails struct {
		FulfillableQuantity int `json:"fulfillableQuantity"`
		ReservedQuantity    struct {
			TotalReservedQuantity int `json:"totalReservedQuantity"`
		} `json:"reservedQuantity"`
		InboundWorkingQuantity int `json:"inboundWorkingQuantity"`
	} `json:"inventoryDetails"`
}

type subscriptionResponse struct {
	Payload struct {
		SubscriptionID string `json:"subscriptionId"`
	} `json:"payload"`
}
