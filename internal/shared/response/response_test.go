package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"foodgram-backend/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(err error) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/recipes/1", nil)
	FromError(c, err)
	return w
}

func TestFromError_StatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{apperror.NotFound("RECIPE_NOT_FOUND", "recipe not found"), http.StatusNotFound},
		{apperror.AlreadyExists("FAVORITE_EXISTS", "already in favorites"), http.StatusBadRequest},
		{apperror.InvalidState("SELF_SUBSCRIPTION", "cannot subscribe to yourself"), http.StatusBadRequest},
		{apperror.Invalid("name", "cannot be blank"), http.StatusBadRequest},
		{apperror.ErrUnauthorized, http.StatusUnauthorized},
		{apperror.ErrForbidden, http.StatusForbidden},
		{fmt.Errorf("wrapped: %w", apperror.ErrForbidden), http.StatusForbidden},
		{errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := serve(tc.err)
		assert.Equal(t, tc.want, w.Code, tc.err.Error())
	}
}

func TestFromError_HidesInternalCause(t *testing.T) {
	w := serve(errors.New("pq: password authentication failed"))

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Internal server error", body.Error.Message)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestFromError_ValidationDetails(t *testing.T) {
	w := serve(apperror.Invalid("cooking_time", "must be no less than 1"))

	var body struct {
		Error struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
	assert.Equal(t, "must be no less than 1", body.Error.Details["cooking_time"])
}

func TestNewPage_NilResults(t *testing.T) {
	p := NewPage[int](0, nil)
	assert.NotNil(t, p.Results)
	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"count":0,"results":[]}`, string(b))
}
