package cookie

import "errors"

// ErrCookieNotFound indicates the named cookie is absent from the request.
var ErrCookieNotFound = errors.New("cookie: not found")
