package credential

import "errors"

var (
	// ErrMalformed indicates the credential is not a structurally valid token.
	ErrMalformed = errors.New("credential: malformed token")

	// ErrExpired indicates the credential's expiry claim is in the past.
	ErrExpired = errors.New("credential: token is expired")

	// ErrInvalidSignature indicates the signature does not match (Signer.Verify only).
	ErrInvalidSignature = errors.New("credential: invalid signature")

	// ErrUnexpectedAlgorithm indicates the token header names an algorithm
	// other than HS256 (Signer.Verify only).
	ErrUnexpectedAlgorithm = errors.New("credential: unexpected signing algorithm")

	// ErrMissingSigningKey indicates a Signer was constructed without a key.
	ErrMissingSigningKey = errors.New("credential: missing signing key")

	// ErrMissingSubject indicates an issue request without a subject id.
	ErrMissingSubject = errors.New("credential: missing subject")
)
