package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/fanvault/accesskit/pkg/logger"
	"github.com/fanvault/accesskit/pkg/session"
)

// renewalKey groups concurrent renewal attempts into a single flight.
const renewalKey = "credential.renewal"

// Client calls the platform API with the session's bearer credential and
// renews it transparently on expiry. Safe for concurrent use.
type Client struct {
	base            *url.URL
	http            *http.Client
	sess            *session.Manager
	log             *slog.Logger
	refreshEndpoint string
	onAuthError     func()
	onRenewal       func(accessToken string)

	renewals singleflight.Group
}

// New creates a client for the given base URL over the given session manager.
func New(baseURL string, sess *session.Manager, opts ...Option) (*Client, error) {
	cfg := DefaultConfig()
	cfg.BaseURL = baseURL
	return NewFromConfig(cfg, sess, opts...)
}

// NewFromConfig creates a client from an environment-driven Config.
func NewFromConfig(cfg Config, sess *session.Manager, opts ...Option) (*Client, error) {
	if sess == nil {
		return nil, errors.New("apiclient: nil session manager")
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, errors.Join(errors.New("apiclient: invalid base url"), err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, errors.New("apiclient: base url must be absolute")
	}

	c := &Client{
		base:            base,
		http:            &http.Client{Timeout: cfg.Timeout},
		sess:            sess,
		log:             logger.Discard(),
		refreshEndpoint: cfg.RefreshEndpoint,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Get issues a GET and decodes the JSON response into out (may be nil).
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST with a JSON body and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT with a JSON body and decodes the response into out.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Patch issues a PATCH with a JSON body and decodes the response into out.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

// Delete issues a DELETE and decodes the JSON response into out (may be nil).
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

// do runs a request through the renewal interceptor: at most one renewal
// and one replay per call, then the outcome is final.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return errors.Join(errors.New("apiclient: encoding request body"), err)
		}
	}

	status, respBody, err := c.send(ctx, method, path, payload, c.sess.AccessToken())
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized {
		if c.sess.RefreshToken() == "" {
			return c.failAuth(status)
		}

		if err := c.renew(ctx); err != nil {
			authErr := c.failAuth(status)
			c.log.Warn("credential renewal failed",
				logger.Component("apiclient"),
				logger.Error(err),
			)
			return errors.Join(authErr, err)
		}

		// Replay once with the renewed credential.
		status, respBody, err = c.send(ctx, method, path, payload, c.sess.AccessToken())
		if err != nil {
			return err
		}
		if status == http.StatusUnauthorized || status == http.StatusForbidden {
			return c.failAuth(status)
		}
	} else if status == http.StatusForbidden {
		return c.failAuth(status)
	}

	if status < 200 || status > 299 {
		return parseError(status, respBody)
	}
	return decodeBody(respBody, out)
}

// send performs one HTTP exchange and returns status and body. The bearer
// credential is passed in by the caller so the replay after a renewal picks
// up the fresh one.
func (c *Client) send(ctx context.Context, method, path string, payload []byte, bearer string) (int, []byte, error) {
	req, err := c.newRequest(ctx, method, path, payload)
	if err != nil {
		return 0, nil, err
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, errors.Join(ErrNetwork, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return 0, nil, errors.Join(ErrNetwork, err)
	}
	return resp.StatusCode, respBody, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, payload []byte) (*http.Request, error) {
	target, err := c.resolve(path)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, errors.Join(errors.New("apiclient: building request"), err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) resolve(path string) (string, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return "", errors.Join(errors.New("apiclient: invalid endpoint path"), err)
	}
	if ref.IsAbs() {
		return "", errors.New("apiclient: endpoint path must be relative")
	}
	if !strings.HasPrefix(ref.Path, "/") {
		ref.Path = "/" + ref.Path
	}
	return c.base.ResolveReference(ref).String(), nil
}

// failAuth clears the session and fires the auth-error callback, but only
// when this call is the one that actually cleared it. Concurrent failures
// collapse to a single notification.
func (c *Client) failAuth(status int) error {
	if c.sess.ClearAuth() && c.onAuthError != nil {
		c.onAuthError()
	}
	return errors.Join(ErrAuthRequired, newError(status, "authentication required", "auth_required", nil))
}

// decodeBody unmarshals a successful response into out; out == nil means the
// caller does not care about the payload.
func decodeBody(body []byte, out any) error {
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.Join(errors.New("apiclient: decoding response body"), err)
	}
	return nil
}

// parseError normalizes a non-2xx response into *Error, tolerating bodies
// that are not the standard error envelope.
func parseError(status int, body []byte) error {
	var envelope struct {
		Message string         `json:"message"`
		Error   string         `json:"error"`
		Code    string         `json:"code"`
		Details map[string]any `json:"details"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		message := envelope.Message
		if message == "" {
			message = envelope.Error
		}
		return newError(status, message, envelope.Code, envelope.Details)
	}
	return newError(status, "", "", nil)
}
