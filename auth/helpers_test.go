package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signedTokenWithoutUserID(t *testing.T) string {
	t.Helper()

	now := time.Now().Unix()
	claims := jwt.MapClaims{
		"sub": "someone",
		"iat": now,
		"exp": now + 3600,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}
