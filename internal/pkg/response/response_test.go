package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"tutorhub/internal/pkg/apperr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err    error
		status int
		code   string
	}{
		{apperr.Validation("bad date"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{apperr.Unauthorized("not authorized"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{apperr.Forbidden("nope"), http.StatusForbidden, "FORBIDDEN"},
		{apperr.NotFound("tutor not found"), http.StatusNotFound, "NOT_FOUND"},
		{apperr.Conflict("slot already booked"), http.StatusConflict, "CONFLICT"},
		{errors.New("db is down"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		FromError(c, tc.err)

		assert.Equal(t, tc.status, w.Code, tc.err.Error())

		var body struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
			Error   struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.False(t, body.Success)
		assert.Equal(t, tc.code, body.Error.Code)
	}
}

func TestFromError_HidesInternalMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	FromError(c, errors.New("pq: connection refused"))

	assert.NotContains(t, w.Body.String(), "connection refused")
	require.Len(t, c.Errors, 1)
	assert.Contains(t, c.Errors[0].Error(), "connection refused")
}
