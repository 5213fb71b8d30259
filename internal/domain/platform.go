package domain

import "fmt"

// Platform identifies a connected e-commerce platform.
type Platform string

const (
	PlatformAmazon      Platform = "amazon"
	PlatformBigCommerce Platform = "bigcommerce"
	PlatformWooCommerce Platform = "woocommerce"
	PlatformEBay        Platform = "ebay"
	PlatformShopify     Platform = "shopify"
)

// KnownPlatforms lists every platform an adapter exists for.
var KnownPlatforms = []Platform{
	PlatformAmazon,
	PlatformBigCommerce,
	PlatformWooCommerce,
	PlatformEBay,
	PlatformShopify,
}

// ParsePlatform validates a platform identifier from an external source
// (URL segment, stored document) and returns the typed value.
func ParsePlatform(s string) (Platform, error) {
	for _, p := range KnownPlatforms {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown platform %q", s)
}

func (p Platform) String() string { return string(p) }
