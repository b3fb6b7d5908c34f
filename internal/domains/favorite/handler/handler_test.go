package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"foodgram-backend/internal/domains/favorite/model"
	recipemodel "foodgram-backend/internal/domains/recipe/model"
	"foodgram-backend/internal/shared/actor"
	"foodgram-backend/internal/shared/middleware"
	"foodgram-backend/internal/shared/permission"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	addErr    error
	removeErr error
}

func (s stubService) Add(ctx context.Context, a actor.Actor, recipeID int64) (*recipemodel.ShortRecipe, error) {
	if s.addErr != nil {
		return nil, s.addErr
	}
	return &recipemodel.ShortRecipe{ID: recipeID, Name: "Soup", CookingTime: 30}, nil
}

func (s stubService) Remove(ctx context.Context, a actor.Actor, recipeID int64) error {
	return s.removeErr
}

func newRouter(svc stubService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextKeyActor, actor.New(2, actor.RoleUser))
	})
	h := NewFavoriteHandler(svc)
	r.POST("/recipes/:id/favorite", h.Add)
	r.DELETE("/recipes/:id/favorite", h.Remove)
	return r
}

func do(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestAdd_ReturnsShortRecipe(t *testing.T) {
	w := do(newRouter(stubService{}), http.MethodPost, "/recipes/5/favorite")
	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Data recipemodel.ShortRecipe `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(5), body.Data.ID)
}

func TestStatusCodes(t *testing.T) {
	cases := []struct {
		name   string
		svc    stubService
		method string
		path   string
		want   int
	}{
		{"duplicate add", stubService{addErr: model.ErrAlreadyFavorited}, http.MethodPost, "/recipes/5/favorite", http.StatusBadRequest},
		{"missing recipe", stubService{addErr: recipemodel.ErrRecipeNotFound}, http.MethodPost, "/recipes/404/favorite", http.StatusNotFound},
		{"anonymous", stubService{addErr: permission.ErrUnauthorized}, http.MethodPost, "/recipes/5/favorite", http.StatusUnauthorized},
		{"bad id", stubService{}, http.MethodPost, "/recipes/abc/favorite", http.StatusBadRequest},
		{"remove", stubService{}, http.MethodDelete, "/recipes/5/favorite", http.StatusNoContent},
		{"remove absent", stubService{removeErr: model.ErrNotFavorited}, http.MethodDelete, "/recipes/5/favorite", http.StatusBadRequest},
		{"remove missing recipe", stubService{removeErr: recipemodel.ErrRecipeNotFound}, http.MethodDelete, "/recipes/404/favorite", http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, do(newRouter(tc.svc), tc.method, tc.path).Code)
		})
	}
}
