package apiclient

import (
	"log/slog"
	"net/http"
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithRefreshEndpoint overrides the path the renewal call posts to.
func WithRefreshEndpoint(path string) Option {
	return func(c *Client) { c.refreshEndpoint = path }
}

// WithOnAuthError registers a callback fired when the session transitions
// to signed-out because of an auth failure. It fires at most once per
// transition no matter how many concurrent requests observed the failure;
// wire navigation to the sign-in page here.
func WithOnAuthError(fn func()) Option {
	return func(c *Client) { c.onAuthError = fn }
}

// WithOnRenewal registers a callback fired after a successful credential
// renewal has been applied to the session.
func WithOnRenewal(fn func(accessToken string)) Option {
	return func(c *Client) { c.onRenewal = fn }
}
