package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"foodgram-backend/internal/domains/ingredient/model"
	"foodgram-backend/internal/domains/ingredient/service"
	"foodgram-backend/internal/shared/actor"
	"foodgram-backend/internal/shared/permission"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	service.Service

	gotFilter model.Filter
	createErr error
}

func (s *stubService) List(ctx context.Context, filter model.Filter) ([]model.Ingredient, error) {
	s.gotFilter = filter
	return []model.Ingredient{{ID: 1, Name: "flour", MeasurementUnit: "g"}}, nil
}

func (s *stubService) Create(ctx context.Context, a actor.Actor, req model.CreateIngredientRequest) (*model.Ingredient, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &model.Ingredient{ID: 9, Name: req.Name, MeasurementUnit: req.MeasurementUnit}, nil
}

func newRouter(svc *stubService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewIngredientHandler(svc)
	r.GET("/ingredients", h.List)
	r.POST("/ingredients", h.Create)
	return r
}

func TestList_NamePrefix(t *testing.T) {
	svc := &stubService{}
	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ingredients?name=fl", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "fl", svc.gotFilter.NamePrefix)
	assert.Contains(t, w.Body.String(), `"measurement_unit":"g"`)
}

func TestCreate(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"admin", nil, http.StatusCreated},
		{"not admin", permission.ErrForbidden, http.StatusForbidden},
		{"duplicate", model.ErrIngredientExists, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/ingredients", strings.NewReader(`{"name":"salt","measurement_unit":"g"}`))
			req.Header.Set("Content-Type", "application/json")
			newRouter(&stubService{createErr: tc.err}).ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}
