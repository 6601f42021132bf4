package apperrors

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

func TestIsMatchesCopies(t *testing.T) {
	withDetails := ErrPendingApproval.WithDetails(map[string]string{"user_id": "u1"})
	assert.True(t, Is(withDetails, ErrPendingApproval))
	assert.Nil(t, ErrPendingApproval.Details, "predefined error must not be mutated")

	wrapped := fmt.Errorf("login: %w", ErrInvalidCredentials)
	assert.True(t, Is(wrapped, ErrInvalidCredentials))
	assert.False(t, Is(wrapped, ErrPendingApproval))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := StorageFailure(cause)

	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "connection reset")

	raw, err2 := json.Marshal(err)
	require.NoError(t, err2)
	assert.NotContains(t, string(raw), "connection reset")
}

func TestHandleError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name    string
		err     error
		debug   bool
		status  int
		message string
	}{
		{"domain error", ErrGigNotFound, false, http.StatusNotFound, ErrGigNotFound.Message},
		{"plain error", errors.New("boom"), true, http.StatusInternalServerError, "Internal server error"},
		{"hidden details", InternalError(errors.New("secret")).WithDetails("stack"), false, http.StatusInternalServerError, "Internal server error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			prev := Debug
			Debug = tc.debug
			defer func() { Debug = prev }()

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			HandleError(c, tc.err)

			assert.Equal(t, tc.status, w.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.message, body.Error.Message)
			if !tc.debug {
				assert.Nil(t, body.Error.Details)
			}
		})
	}
}
