package credential

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Token header constants required by RFC 7519.
const (
	headerType      = "JWT"
	headerAlgorithm = "HS256"
)

type header struct {
	Type      string `json:"typ"`
	Algorithm string `json:"alg"`
}

// Signer mints and verifies access credentials using HMAC-SHA256.
// The signing key is kept in memory only and should be at least 32 bytes.
type Signer struct {
	signingKey []byte
}

// NewSigner creates a Signer with the provided signing key.
func NewSigner(signingKey []byte) (*Signer, error) {
	if len(signingKey) == 0 {
		return nil, ErrMissingSigningKey
	}
	return &Signer{signingKey: signingKey}, nil
}

// Issue mints a credential for the given subject that expires after ttl.
func (s *Signer) Issue(subject string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", ErrMissingSubject
	}

	now := time.Now()
	return s.IssueClaims(Claims{
		Subject:   subject,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(ttl).Unix(),
	})
}

// IssueClaims mints a credential carrying the exact claims given. Used by
// tests to craft expired or otherwise unusual credentials.
func (s *Signer) IssueClaims(claims Claims) (string, error) {
	headerJSON, err := json.Marshal(header{Type: headerType, Algorithm: headerAlgorithm})
	if err != nil {
		return "", fmt.Errorf("marshal header: %w", err)
	}

	claimsJSON, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("marshal claims: %w", err)
	}

	payload := base64URLEncode(headerJSON) + "." + base64URLEncode(claimsJSON)
	return payload + "." + s.sign(payload), nil
}

// Verify checks the signature and expiry of a token and returns its claims.
// Unlike Decode, a bad signature or unexpected algorithm is an error here.
func (s *Signer) Verify(token string) (Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return Claims{}, ErrMalformed
	}

	payload := parts[0] + "." + parts[1]
	expected := s.sign(payload)
	// Constant-time comparison prevents timing attacks on the signature.
	if subtle.ConstantTimeCompare([]byte(parts[2]), []byte(expected)) != 1 {
		return Claims{}, ErrInvalidSignature
	}

	headerJSON, err := base64URLDecode(parts[0])
	if err != nil {
		return Claims{}, ErrMalformed
	}

	var hdr header
	if err := json.Unmarshal(headerJSON, &hdr); err != nil {
		return Claims{}, ErrMalformed
	}
	// Reject anything but HS256 to prevent algorithm confusion attacks.
	if hdr.Algorithm != headerAlgorithm {
		return Claims{}, ErrUnexpectedAlgorithm
	}

	claims, err := Decode(token)
	if err != nil {
		return Claims{}, err
	}
	if err := claims.Valid(); err != nil {
		return Claims{}, err
	}

	return claims, nil
}

// sign creates the base64url-encoded HMAC-SHA256 signature for a payload.
func (s *Signer) sign(payload string) string {
	h := hmac.New(sha256.New, s.signingKey)
	h.Write([]byte(payload))
	return base64URLEncode(h.Sum(nil))
}
