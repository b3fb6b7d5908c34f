package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"foodgram-backend/internal/config"
	"foodgram-backend/pkg/cache"
	"foodgram-backend/pkg/container"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContainer(t *testing.T) (*container.Container, pgxmock.PgxPoolIface) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	cfg := &config.Config{
		App:        config.AppConfig{Version: "test"},
		JWT:        config.JWTConfig{Secret: "router-test-secret", AccessTokenExpiry: 60},
		CORS:       config.CORSConfig{AllowedOrigins: []string{"*"}},
		Pagination: config.PaginationConfig{DefaultLimit: 6, MaxLimit: 100},
		Cache:      config.CacheConfig{ReferenceTTL: time.Minute},
	}
	return container.Build(cfg, mock, cache.Noop{}), mock
}

func request(t *testing.T, r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	return requestJSON(t, r, method, path, token, "")
}

func requestJSON(t *testing.T, r http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	c, mock := testContainer(t)
	mock.ExpectExec(`SELECT 1`).WillReturnResult(pgxmock.NewResult("SELECT", 1))

	w := request(t, SetupRouter(c), http.MethodGet, "/api/v1/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"ok"`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDownloadRouteCoexistsWithRecipeID(t *testing.T) {
	c, mock := testContainer(t)
	router := SetupRouter(c)

	token, err := c.JWTManager.GenerateAccessToken(7, "user")
	require.NoError(t, err)

	mock.ExpectQuery(`FROM shopping_cart sc`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"recipe_id", "id", "name", "measurement_unit", "amount"}).
			AddRow(int64(1), int64(10), "Flour", "g", 300))

	w := request(t, router, http.MethodGet, "/api/v1/recipes/download_shopping_cart", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "attachment; filename=shopping-list.txt", w.Header().Get("Content-Disposition"))
	assert.Equal(t, "Foodgram shopping list\n\nFlour (g) - 300\n", w.Body.String())

	mock.ExpectQuery(`FROM recipes r JOIN users u ON u\.id = r\.author_id WHERE r\.id = \$4`).
		WithArgs(int64(0), int64(0), int64(0), int64(5)).
		WillReturnError(pgx.ErrNoRows)

	w = request(t, router, http.MethodGet, "/api/v1/recipes/5", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthBoundaries(t *testing.T) {
	c, mock := testContainer(t)
	router := SetupRouter(c)

	userToken, err := c.JWTManager.GenerateAccessToken(7, "user")
	require.NoError(t, err)

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"download needs a token", http.MethodGet, "/api/v1/recipes/download_shopping_cart", "", http.StatusUnauthorized},
		{"me needs a token", http.MethodGet, "/api/v1/users/me", "", http.StatusUnauthorized},
		{"favorite needs a token", http.MethodPost, "/api/v1/recipes/1/favorite", "", http.StatusUnauthorized},
		{"garbage token on public route", http.MethodGet, "/api/v1/tags", "garbage", http.StatusUnauthorized},
		{"self subscription", http.MethodPost, "/api/v1/users/7/subscribe", userToken, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, request(t, router, tc.method, tc.path, tc.token).Code)
		})
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTagCreate_AdminOnly(t *testing.T) {
	c, mock := testContainer(t)
	router := SetupRouter(c)

	userToken, err := c.JWTManager.GenerateAccessToken(7, "user")
	require.NoError(t, err)

	body := `{"name":"Breakfast","color":"#E26C2D","slug":"breakfast"}`
	w := requestJSON(t, router, http.MethodPost, "/api/v1/tags", userToken, body)
	assert.Equal(t, http.StatusForbidden, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
