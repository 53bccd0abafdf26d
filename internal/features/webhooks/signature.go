package webhooks

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"github.com/git-webzoom/assistente-x-hub/internal/config"
)

// ComputeSignature produces the hex digest carried in X-Webhook-Signature.
//
// The sha256-concat scheme is hash(secret + payload), kept for bit-exact
// compatibility with consumers of the original gateway. It is not an HMAC:
// plain concatenation is exposed to length-extension-style forgeries, so
// hmac-sha256 is the scheme new deployments should configure.
func ComputeSignature(scheme, secret string, payload []byte) string {
	switch scheme {
	case config.WebhookSignatureSchemeHmacSha256:
		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write(payload)
		return hex.EncodeToString(mac.Sum(nil))
	default:
		hasher := sha256.New()
		hasher.Write([]byte(secret))
		hasher.Write(payload)
		return hex.EncodeToString(hasher.Sum(nil))
	}
}
