package signature

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSign(t *testing.T) {
	t.Run("produces lowercase hex of fixed length", func(t *testing.T) {
		sig := Sign("secret", []byte(`{"test":"data"}`))
		assert.Len(t, sig, 64) // SHA-256 is 32 bytes
		assert.Equal(t, strings.ToLower(sig), sig)
		_, err := hex.DecodeString(sig)
		require.NoError(t, err)
	})

	t.Run("deterministic for the same inputs", func(t *testing.T) {
		payload := []byte("hello")
		assert.Equal(t, Sign("s1", payload), Sign("s1", payload))
	})

	t.Run("changes with secret and payload", func(t *testing.T) {
		payload := []byte("hello")
		assert.NotEqual(t, Sign("s1", payload), Sign("s2", payload))
		assert.NotEqual(t, Sign("s1", payload), Sign("s1", []byte("hello!")))
	})
}

func TestVerify(t *testing.T) {
	secret := "webhook-secret"
	payload := []byte(`{"event":"user.created","id":7}`)

	t.Run("success - roundtrip", func(t *testing.T) {
		sig := Sign(secret, payload)
		assert.True(t, Verify(secret, payload, sig))
	})

	t.Run("success - uppercase hex accepted", func(t *testing.T) {
		sig := strings.ToUpper(Sign(secret, payload))
		assert.True(t, Verify(secret, payload, sig))
	})

	t.Run("fails on payload mutation", func(t *testing.T) {
		sig := Sign(secret, payload)
		mutated := append([]byte{}, payload...)
		mutated[0] ^= 0x01
		assert.False(t, Verify(secret, mutated, sig))
	})

	t.Run("fails on secret mutation", func(t *testing.T) {
		sig := Sign(secret, payload)
		assert.False(t, Verify(secret+"x", payload, sig))
	})

	t.Run("fails on signature mutation", func(t *testing.T) {
		sig := []byte(Sign(secret, payload))
		if sig[0] == 'a' {
			sig[0] = 'b'
		} else {
			sig[0] = 'a'
		}
		assert.False(t, Verify(secret, payload, string(sig)))
	})

	t.Run("fails on length mismatch", func(t *testing.T) {
		sig := Sign(secret, payload)
		assert.False(t, Verify(secret, payload, sig[:len(sig)-1]))
		assert.False(t, Verify(secret, payload, sig+"00"))
		assert.False(t, Verify(secret, payload, ""))
	})

	t.Run("never panics on garbage input", func(t *testing.T) {
		assert.False(t, Verify(secret, payload, "not-hex-at-all-but-sixty-four-characters-long-zzzzzzzzzzzzzzzzzz"))
	})
}
