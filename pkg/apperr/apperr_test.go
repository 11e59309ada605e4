package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTagged(t *testing.T) {
	status, msg := Extract(Unauthorized())
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "unauthorized", msg)

	status, msg = Extract(OAuthExchange("bad_verification_code"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Contains(t, msg, "bad_verification_code")
}

func TestExtractWrapped(t *testing.T) {
	err := fmt.Errorf("handling request: %w", InvalidToken(errors.New("bad signature")))
	status, msg := Extract(err)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "invalid token", msg)
}

func TestExtractUntaggedDefaultsTo500(t *testing.T) {
	status, msg := Extract(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "boom", msg)
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	assert.ErrorIs(t, UpstreamUnavailable(cause), cause)
}
