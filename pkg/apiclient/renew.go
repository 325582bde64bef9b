package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fanvault/accesskit/pkg/logger"
)

// renewRequest and renewResponse are the refresh endpoint's wire shapes. An
// omitted refreshToken in the response means the server did not rotate it.
type renewRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type renewResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// renew obtains fresh credentials and applies them to the session. Concurrent
// callers share one flight: whoever arrives first performs the exchange,
// everyone gets its outcome. The session epoch is captured before the network
// call so a session cleared mid-flight rejects the result.
func (c *Client) renew(ctx context.Context) error {
	_, err, _ := c.renewals.Do(renewalKey, func() (any, error) {
		epoch := c.sess.Epoch()
		refresh := c.sess.RefreshToken()
		if refresh == "" {
			return nil, ErrRenewalFailed
		}

		payload, err := json.Marshal(renewRequest{RefreshToken: refresh})
		if err != nil {
			return nil, errors.Join(ErrRenewalFailed, err)
		}

		// The refresh call itself carries no bearer credential.
		status, body, err := c.send(ctx, http.MethodPost, c.refreshEndpoint, payload, "")
		if err != nil {
			return nil, errors.Join(ErrRenewalFailed, err)
		}
		if status < 200 || status > 299 {
			return nil, errors.Join(ErrRenewalFailed, parseError(status, body))
		}

		var renewed renewResponse
		if err := decodeBody(body, &renewed); err != nil {
			return nil, errors.Join(ErrRenewalFailed, err)
		}
		if renewed.AccessToken == "" {
			return nil, errors.Join(ErrRenewalFailed, errors.New("refresh response carried no access credential"))
		}

		if err := c.sess.ApplyRenewal(epoch, renewed.AccessToken, renewed.RefreshToken); err != nil {
			return nil, errors.Join(ErrRenewalFailed, err)
		}

		c.log.Debug("credential renewed", logger.Component("apiclient"))
		if c.onRenewal != nil {
			c.onRenewal(renewed.AccessToken)
		}
		return nil, nil
	})
	return err
}
