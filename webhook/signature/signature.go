package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// HeaderName is the request header carrying the payload signature.
const HeaderName = "x-webhook-signature"

// Sign computes the hex-encoded HMAC-SHA256 of payload under secret.
// The payload must be the exact raw bytes that will travel on the wire;
// re-serializing defeats verification.
func Sign(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks a hex signature against the payload using constant-time
// comparison. Hex case is ignored. A length mismatch returns false
// immediately; that leaks only the signature length, never its content.
// Verify never fails with an error: any malformed input is simply invalid.
func Verify(secret string, payload []byte, signatureHex string) bool {
	expected := Sign(secret, payload)
	provided := strings.ToLower(signatureHex)
	if len(provided) != len(expected) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(provided)) == 1
}
