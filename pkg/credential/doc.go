// Package credential handles the platform's short-lived access credentials:
// HS256-signed JWTs carrying the subject id, issue time and expiry.
//
// The package has two distinct roles that must not be conflated:
//
//   - Decode / IsValid implement the consumer-side codec. They read the
//     claims of a credential WITHOUT verifying its signature — signature
//     verification is the issuer's job and happens server-side. Consumers
//     only need the expiry and subject to decide whether a credential is
//     still usable, and a forged credential buys nothing because every API
//     call is verified by the backend anyway.
//
//   - Signer implements the issuer side (used by the reference auth backend
//     and by tests): it mints and cryptographically verifies credentials.
//
// Decode never panics across the package boundary; malformed input is
// reported as ErrMalformed. Expiry comparison uses the caller's wall clock
// with no leeway: a credential is invalid from its expiry instant onward.
//
// # Usage
//
//	claims, err := credential.Decode(token)
//	if err != nil {
//	    // malformed credential, treat as absent
//	}
//	if credential.IsValid(token) {
//	    // attach as bearer credential
//	}
package credential
