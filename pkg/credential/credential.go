package credential

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Claims carries the registered claims of an access credential.
// The backend issues the subject id under the "userId" key.
type Claims struct {
	Subject   string `json:"userId"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// Valid checks the expiry claim against the wall clock. A zero ExpiresAt is
// treated as expired: credentials without an expiry are never trusted.
func (c Claims) Valid() error {
	if c.ExpiresAt <= 0 || time.Now().Unix() >= c.ExpiresAt {
		return ErrExpired
	}
	return nil
}

// ExpiresIn returns the remaining lifetime of the credential, negative if
// the credential is already expired.
func (c Claims) ExpiresIn() time.Duration {
	return time.Until(time.Unix(c.ExpiresAt, 0))
}

// Decode extracts the claims of a token without verifying its signature.
// It accepts any structurally valid JWT (three dot-separated base64url
// segments) and returns ErrMalformed for everything else. Decode never
// checks expiry; combine with Claims.Valid or use IsValid.
func Decode(token string) (Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return Claims{}, ErrMalformed
	}

	payload, err := base64URLDecode(parts[1])
	if err != nil {
		return Claims{}, errors.Join(ErrMalformed, err)
	}

	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return Claims{}, errors.Join(ErrMalformed, err)
	}

	return claims, nil
}

// IsValid reports whether the token is decodable and not yet expired.
// A malformed token is indistinguishable from an expired one for callers:
// both mean the credential cannot be used.
func IsValid(token string) bool {
	if token == "" {
		return false
	}
	claims, err := Decode(token)
	if err != nil {
		return false
	}
	return claims.Valid() == nil
}

// base64URLEncode encodes data using base64url without padding, as required
// by RFC 7515 for JWT segments.
func base64URLEncode(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

// base64URLDecode decodes a base64url segment, tolerating both padded and
// unpadded input since some issuers keep the padding.
func base64URLDecode(s string) ([]byte, error) {
	if b, err := base64.RawURLEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.URLEncoding.DecodeString(s)
}
