package authapi

import "errors"

var (
	// ErrInvalidCredentials covers unknown emails and wrong passwords alike;
	// callers must not be able to tell which.
	ErrInvalidCredentials = errors.New("authapi: invalid credentials")

	// ErrInvalidRefresh indicates the presented refresh credential is
	// unknown, expired, rotated or revoked. Always a renewal failure.
	ErrInvalidRefresh = errors.New("authapi: invalid refresh credential")

	// ErrUnauthorized indicates a missing or unverifiable bearer credential.
	ErrUnauthorized = errors.New("authapi: unauthorized")

	// ErrEmailExists rejects an OAuth sign-in whose email is already
	// registered through another method, preventing account takeover.
	ErrEmailExists = errors.New("authapi: email already registered with a different method")

	// ErrUnverifiedEmail rejects OAuth accounts whose email Google has not
	// verified.
	ErrUnverifiedEmail = errors.New("authapi: google account email is not verified")

	// ErrInvalidState indicates an unknown or expired OAuth state parameter.
	ErrInvalidState = errors.New("authapi: invalid or expired oauth state")

	// ErrInvalidCode indicates the OAuth code exchange failed.
	ErrInvalidCode = errors.New("authapi: invalid authorization code")
)
