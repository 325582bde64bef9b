// Package cookie provides a small manager for reading and writing the
// platform's HTTP cookies with consistent defaults.
//
// Values are stored as plain strings: the access and refresh credentials are
// already signed tokens, and the profile snapshot must stay readable by both
// enforcement contexts (the pre-render edge check and the client runtime),
// so no additional cookie-level encoding is applied.
//
// A Manager carries default attributes (path, SameSite, Secure, HttpOnly)
// that individual writes can override through options:
//
//	mgr := cookie.New(cookie.WithSecure(true))
//	mgr.Set(w, "accessToken", token, cookie.WithTTL(7*24*time.Hour))
//	val, err := mgr.Get(r, "accessToken")
//	mgr.Delete(w, "accessToken")
//
// Deleting a missing cookie is a no-op and writing the same value twice has
// no additional effect, which the session layer relies on.
package cookie
