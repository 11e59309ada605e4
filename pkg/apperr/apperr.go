package apperr

import (
	"errors"
	"net/http"
)

// Error is a status-tagged error. Components wrap their failures in one of
// the constructors below and let it bubble; the terminal HTTP responder
// maps the tag to a response, defaulting to 500 for anything untagged.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, message string, err error) *Error {
	return &Error{Status: status, Message: message, Err: err}
}

// InvalidToken marks a session token that failed to verify or parse.
func InvalidToken(err error) *Error {
	return New(http.StatusUnauthorized, "invalid token", err)
}

// Unauthorized is the uniform policy-failure error.
func Unauthorized() *Error {
	return New(http.StatusUnauthorized, "unauthorized", nil)
}

// OAuthExchange marks a rejection by the identity provider (bad or reused
// authorization code, malformed provider response).
func OAuthExchange(reason string) *Error {
	return New(http.StatusInternalServerError, "oauth exchange failed: "+reason, nil)
}

// UpstreamUnavailable marks a network-level failure talking to the
// identity provider.
func UpstreamUnavailable(err error) *Error {
	return New(http.StatusInternalServerError, "identity provider unavailable", err)
}

// Persistence marks a database failure.
func Persistence(err error) *Error {
	return New(http.StatusInternalServerError, "persistence failure", err)
}

// Extract returns the status and message the responder should use for err.
// Untagged errors surface their own message with a 500.
func Extract(err error) (int, string) {
	var e *Error
	if errors.As(err, &e) {
		return e.Status, e.Message
	}
	return http.StatusInternalServerError, err.Error()
}
