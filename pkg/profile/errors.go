package profile

import "errors"

var (
	// ErrMalformedSnapshot indicates the serialized snapshot could not be parsed.
	ErrMalformedSnapshot = errors.New("profile: malformed snapshot")

	// ErrMissingUser indicates a nil user was passed where one is required.
	ErrMissingUser = errors.New("profile: missing user")
)
