package session

import (
	"net/http"
	"net/url"
	"time"

	"github.com/fanvault/accesskit/pkg/cookie"
)

// HTTPStorage binds Storage to a single request/response pair: reads come
// from the request's cookie jar, writes become Set-Cookie headers on the
// response. It gives server-rendered flows the same persistence surface the
// client runtime has. The binding is per-request; do not reuse it across
// requests.
type HTTPStorage struct {
	cookies *cookie.Manager
	w       http.ResponseWriter
	r       *http.Request

	// written shadows the request jar so a value set earlier in the same
	// request is readable before the response leaves.
	written map[string]string
	deleted map[string]bool
}

// NewHTTPStorage creates a per-request storage over the given cookie manager.
func NewHTTPStorage(cookies *cookie.Manager, w http.ResponseWriter, r *http.Request) *HTTPStorage {
	return &HTTPStorage{
		cookies: cookies,
		w:       w,
		r:       r,
		written: make(map[string]string),
		deleted: make(map[string]bool),
	}
}

// Get returns the named value from this request's jar, honoring writes and
// deletes performed earlier in the same request.
func (s *HTTPStorage) Get(name string) (string, bool) {
	if s.deleted[name] {
		return "", false
	}
	if v, ok := s.written[name]; ok {
		return v, true
	}

	v, err := s.cookies.Get(s.r, name)
	if err != nil {
		return "", false
	}
	// Values are stored URL-escaped; see Set.
	if unescaped, err := url.QueryUnescape(v); err == nil {
		v = unescaped
	}
	return v, true
}

// Set writes the value as a cookie on the response. The value is
// URL-escaped on the wire because the profile snapshot is JSON, whose
// quotes and commas are not valid cookie octets — the same convention a
// browser runtime uses for these cookies.
func (s *HTTPStorage) Set(name, value string, ttl time.Duration) bool {
	if s.w == nil {
		return false
	}
	s.cookies.Set(s.w, name, url.QueryEscape(value), cookie.WithTTL(ttl))
	s.written[name] = value
	delete(s.deleted, name)
	return true
}

// Delete expires the cookie on the response.
func (s *HTTPStorage) Delete(name string) {
	if s.w == nil {
		return
	}
	s.cookies.Delete(s.w, name)
	s.deleted[name] = true
	delete(s.written, name)
}
