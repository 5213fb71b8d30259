package domain

import "time"

// Credentials holds a connection's platform API credentials. Secret fields
// are stored encrypted; the encryption service decrypts them only when an
// adapter is constructed.
type Credentials struct {
	ID            string    `json:"id"`
	ProjectID     string    `json:"project_id"`
	Environment   string    `json:"environment"`
	Platform      Platform  `json:"platform"`
	ShopDomain    string    `json:"shop_domain"`
	ClientID      string    `json:"client_id"`
	ClientSecret  string    `json:"-"` // encrypted at rest
	AccessToken   string    `json:"-"` // encrypted at rest
	RefreshToken  string    `json:"-"` // encrypted at rest
	WebhookSecret string    `json:"-"` // encrypted at rest
	ExpiresAt     time.Time `json:"expires_at"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Metadata carries non-secret platform-specific settings: Amazon
	// region/marketplace/seller ids, eBay RuName, Shopify location id.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// OAuthToken is the result of an authorization-code exchange.
type OAuthToken struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int    `json:"expires_in"`
}
