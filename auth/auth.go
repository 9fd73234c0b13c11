/* Package auth issues and validates the signed, time-bounded tokens used by
 * the API. Tokens are HS256 JWTs carrying a userId, an optional role and
 * iat/exp Unix timestamps.
 */
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultExpiresIn is the default token lifetime: 24 hours.
const DefaultExpiresIn = 86400 * time.Second

// ErrInvalidToken is the single error returned for every validation
// failure: bad signature, expired, malformed, missing userId. Callers must
// not be able to tell the reasons apart.
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenPayload is the claim set carried by an issued token.
type TokenPayload struct {
	UserID    string `json:"userId"`
	Role      string `json:"role,omitempty"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// Issue creates a signed token for userID with exp = iat + expiresIn.
// A non-positive expiresIn is honored as-is and yields a token that is
// already expired, which is useful for exercising expiry paths.
func Issue(userID, role, secret string, expiresIn time.Duration) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("issuing token: userId is required")
	}

	now := time.Now().Unix()
	claims := jwt.MapClaims{
		"userId": userID,
		"iat":    now,
		"exp":    now + int64(expiresIn/time.Second),
	}
	if role != "" {
		claims["role"] = role
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return token, nil
}

// Validate verifies the signature and expiry of a token and returns its
// payload. Every failure mode collapses to ErrInvalidToken.
func Validate(token, secret string) (TokenPayload, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return TokenPayload{}, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return TokenPayload{}, ErrInvalidToken
	}

	userID, ok := claims["userId"].(string)
	if !ok || userID == "" {
		return TokenPayload{}, ErrInvalidToken
	}

	payload := TokenPayload{UserID: userID}
	if role, ok := claims["role"].(string); ok {
		payload.Role = role
	}
	if iat, ok := claims["iat"].(float64); ok {
		payload.IssuedAt = int64(iat)
	}
	if exp, ok := claims["exp"].(float64); ok {
		payload.ExpiresAt = int64(exp)
	}
	return payload, nil
}
