package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleServiceError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: intensity must be between 1 and 10", ErrValidation), http.StatusBadRequest},
		{ErrInvalidPage, http.StatusBadRequest},
		{ErrInvalidCredentials, http.StatusUnauthorized},
		{ErrSessionExpired, http.StatusUnauthorized},
		{ErrUnauthenticated, http.StatusUnauthorized},
		{fmt.Errorf("%w: delete denied", ErrNotAuthorized), http.StatusForbidden},
		{fmt.Errorf("%w: mood entry x", ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: email already registered", ErrDuplicateIdentity), http.StatusConflict},
		{ErrUpstreamUnavailable, http.StatusServiceUnavailable},
		{ErrDatabaseError, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("trace_id", "trace-1")

		HandleServiceError(c, tc.err)

		assert.Equal(t, tc.status, w.Code, tc.err.Error())
		var body APIResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.False(t, body.Success)
		assert.Equal(t, tc.status, body.Code)
		assert.Equal(t, "trace-1", body.TraceID)
	}
}

func TestHandleServiceError_SurfacesValidationDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleServiceError(c, fmt.Errorf("%w: intensity must be between 1 and 10", ErrValidation))

	var body APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "intensity must be between 1 and 10", body.Message)
}
