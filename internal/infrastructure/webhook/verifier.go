package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"

	"commerce-adapter-layer/internal/domain"
)

// SignatureHeader returns the header each platform uses to carry the HMAC
// signature of the raw request body.
func SignatureHeader(platform domain.Platform) string {
	switch platform {
	case domain.PlatformWooCommerce:
		return "X-WC-Webhook-Signature"
	case domain.PlatformShopify:
		return "X-Shopify-Hmac-SHA256"
	case domain.PlatformBigCommerce:
		return "X-BC-Webhook-Signature"
	case domain.PlatformAmazon:
		return "X-Amz-Notification-Signature"
	case domain.PlatformEBay:
		return "X-EBAY-Signature"
	default:
		return "X-Webhook-Signature"
	}
}

// Verifier authenticates inbound webhooks for one platform using a shared
// secret.
type Verifier struct {
	platform domain.Platform
	secret   []byte
}

// NewVerifier creates a verifier bound to a per-platform shared secret.
func NewVerifier(platform domain.Platform, secret string) *Verifier {
	return &Verifier{platform: platform, secret: []byte(secret)}
}

// Verify checks a base64-encoded HMAC-SHA256 signature over the raw,
// unparsed request body. The comparison is constant-time. A missing
// signature fails without computing anything.
func (v *Verifier) Verify(rawBody []byte, signature string) error {
	if signature == "" {
		return &domain.SignatureVerificationError{Platform: v.platform, Reason: "missing signature header"}
	}
	if len(v.secret) == 0 {
		return &domain.SignatureVerificationError{Platform: v.platform, Reason: "webhook secret not configured"}
	}

	mac := hmac.New(sha256.New, v.secret)
	mac.Write(rawBody)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return &domain.SignatureVerificationError{Platform: v.platform, Reason: "signature mismatch"}
	}
	return nil
}

// Sign computes the signature a platform would send for the given body.
// Used by tests and by outbound webhook registration checks.
func (v *Verifier) Sign(rawBody []byte) string {
	return Sign(rawBody, string(v.secret))
}

// Sign computes the base64 HMAC-SHA256 signature a platform sharing the
// given secret would send for the body.
func Sign(rawBody []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(rawBody)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
