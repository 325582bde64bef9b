package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrAuthRequired is terminal: the session is cleared and the user must
	// sign in again.
	ErrAuthRequired = errors.New("apiclient: authentication required")

	// ErrRenewalFailed indicates the refresh call failed or returned no
	// usable credential.
	ErrRenewalFailed = errors.New("apiclient: credential renewal failed")

	// ErrNetwork indicates a transport-level failure with no HTTP response.
	ErrNetwork = errors.New("apiclient: network error")
)

// Error is the normalized API error shape surfaced to application code.
type Error struct {
	Status  int            `json:"status"`
	Message string         `json:"message"`
	Code    string         `json:"code,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// newError builds an *Error, substituting the standard status text when the
// response body carried no message.
func newError(status int, message, code string, details map[string]any) *Error {
	if message == "" {
		message = http.StatusText(status)
		if message == "" {
			message = "unknown error"
		}
	}
	return &Error{Status: status, Message: message, Code: code, Details: details}
}
