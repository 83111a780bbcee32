package common

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestAPIError_WithDetailsLeavesSentinelUntouched(t *testing.T) {
	derived := ErrBadRequest.WithDetails("missing field")

	assert.Equal(t, "missing field", derived.Details)
	assert.Nil(t, ErrBadRequest.Details)
	assert.True(t, errors.Is(derived, ErrBadRequest))
	assert.False(t, errors.Is(derived, ErrNotFound))
}

func TestIsAPIError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("lookup failed: %w", ErrNotFound)

	apiErr, ok := IsAPIError(wrapped)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)

	_, ok = IsAPIError(errors.New("plain"))
	assert.False(t, ok)
}

func TestRespondWithError_WrapsUnknownErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondWithError(c, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_SERVER_ERROR")
	assert.Contains(t, w.Body.String(), "boom")
}

func TestGetTokenFromContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := map[string]string{
		"Bearer abc": "abc",
		"bearer abc": "abc",
		"Basic abc":  "",
		"Bearer":     "",
		"":           "",
	}
	for header, want := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			c.Request.Header.Set(AuthorizationHeader, header)
		}
		assert.Equal(t, want, GetTokenFromContext(c), "header %q", header)
	}
}
