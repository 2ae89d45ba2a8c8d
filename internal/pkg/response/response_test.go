package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	xerrors "rentorio-service/internal/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err    error
		status int
	}{
		{xerrors.ErrNotFound, http.StatusNotFound},
		{xerrors.ErrConflict, http.StatusConflict},
		{xerrors.ErrInvalidInput, http.StatusBadRequest},
		{xerrors.ErrForbidden, http.StatusForbidden},
		{xerrors.ErrUnauthorized, http.StatusUnauthorized},
		{xerrors.ErrRateLimited, http.StatusTooManyRequests},
		{assert.AnError, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		FromError(c, xerrors.Wrap(tc.err, "op failed"), "request failed")
		assert.Equal(t, tc.status, w.Code, "error %v", tc.err)

		var body Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.False(t, body.Success)
		assert.Equal(t, "request failed", body.Message)
		assert.NotEmpty(t, body.Error)
	}
}

func TestSuccessEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Success(c, http.StatusCreated, "created", gin.H{"id": 1})
	assert.Equal(t, http.StatusCreated, w.Code)

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "created", body.Message)
	assert.Empty(t, body.Error)
	assert.NotNil(t, body.Data)
}
