package credential_test

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fanvault/accesskit/pkg/credential"
)

func testSigner(t *testing.T) *credential.Signer {
	t.Helper()
	signer, err := credential.NewSigner([]byte("test-signing-key-that-is-long-enough"))
	require.NoError(t, err)
	return signer
}

func TestDecode(t *testing.T) {
	t.Parallel()
	signer := testSigner(t)

	t.Run("round-trips issued claims", func(t *testing.T) {
		token, err := signer.Issue("user-123", time.Hour)
		require.NoError(t, err)

		claims, err := credential.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, "user-123", claims.Subject)
		assert.Greater(t, claims.ExpiresAt, claims.IssuedAt)
	})

	t.Run("does not verify signature", func(t *testing.T) {
		token, err := signer.Issue("user-123", time.Hour)
		require.NoError(t, err)

		// Truncate the signature segment; decoding must still succeed.
		tampered := token[:len(token)-4] + "xxxx"
		claims, err := credential.Decode(tampered)
		require.NoError(t, err)
		assert.Equal(t, "user-123", claims.Subject)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, token := range []string{
			"",
			"not-a-token",
			"one.two",
			"a.b.c.d",
			"!!!.###.$$$",
			base64.RawURLEncoding.EncodeToString([]byte("{}")) + ".not base64.sig",
		} {
			_, err := credential.Decode(token)
			assert.ErrorIs(t, err, credential.ErrMalformed, "token %q", token)
		}
	})

	t.Run("rejects non-json payload", func(t *testing.T) {
		payload := base64.RawURLEncoding.EncodeToString([]byte("not json"))
		_, err := credential.Decode("eyJhbGciOiJIUzI1NiJ9." + payload + ".sig")
		assert.ErrorIs(t, err, credential.ErrMalformed)
	})
}

func TestIsValid(t *testing.T) {
	t.Parallel()
	signer := testSigner(t)

	t.Run("valid for unexpired token", func(t *testing.T) {
		token, err := signer.Issue("user-123", time.Hour)
		require.NoError(t, err)
		assert.True(t, credential.IsValid(token))
	})

	t.Run("invalid for expired token", func(t *testing.T) {
		token, err := signer.IssueClaims(credential.Claims{
			Subject:   "user-123",
			IssuedAt:  time.Now().Add(-2 * time.Hour).Unix(),
			ExpiresAt: time.Now().Add(-time.Hour).Unix(),
		})
		require.NoError(t, err)
		assert.False(t, credential.IsValid(token))
	})

	t.Run("invalid for missing expiry claim", func(t *testing.T) {
		token, err := signer.IssueClaims(credential.Claims{Subject: "user-123"})
		require.NoError(t, err)
		assert.False(t, credential.IsValid(token))
	})

	t.Run("invalid for empty and malformed tokens", func(t *testing.T) {
		assert.False(t, credential.IsValid(""))
		assert.False(t, credential.IsValid("garbage"))
	})
}

func TestSigner_Verify(t *testing.T) {
	t.Parallel()
	signer := testSigner(t)

	t.Run("accepts own tokens", func(t *testing.T) {
		token, err := signer.Issue("user-123", time.Hour)
		require.NoError(t, err)

		claims, err := signer.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "user-123", claims.Subject)
	})

	t.Run("rejects tampered signature", func(t *testing.T) {
		token, err := signer.Issue("user-123", time.Hour)
		require.NoError(t, err)

		_, err = signer.Verify(token[:len(token)-4] + "xxxx")
		assert.ErrorIs(t, err, credential.ErrInvalidSignature)
	})

	t.Run("rejects token from another key", func(t *testing.T) {
		other, err := credential.NewSigner([]byte("another-signing-key-entirely-here"))
		require.NoError(t, err)

		token, err := other.Issue("user-123", time.Hour)
		require.NoError(t, err)

		_, err = signer.Verify(token)
		assert.ErrorIs(t, err, credential.ErrInvalidSignature)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		token, err := signer.IssueClaims(credential.Claims{
			Subject:   "user-123",
			IssuedAt:  time.Now().Add(-2 * time.Hour).Unix(),
			ExpiresAt: time.Now().Add(-time.Hour).Unix(),
		})
		require.NoError(t, err)

		_, err = signer.Verify(token)
		assert.ErrorIs(t, err, credential.ErrExpired)
	})

	t.Run("rejects missing subject on issue", func(t *testing.T) {
		_, err := signer.Issue("", time.Hour)
		assert.ErrorIs(t, err, credential.ErrMissingSubject)
	})
}

func TestNewSigner(t *testing.T) {
	t.Parallel()

	_, err := credential.NewSigner(nil)
	assert.ErrorIs(t, err, credential.ErrMissingSigningKey)
}
