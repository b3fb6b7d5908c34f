package handler

import (
	"net/http"

	"foodgram-backend/internal/domains/ingredient/model"
	"foodgram-backend/internal/domains/ingredient/service"
	"foodgram-backend/internal/shared/apperror"
	"foodgram-backend/internal/shared/middleware"
	"foodgram-backend/internal/shared/response"
	"foodgram-backend/internal/shared/utils"

	"github.com/gin-gonic/gin"
)

type IngredientHandler struct {
	service service.Service
}

func NewIngredientHandler(svc service.Service) *IngredientHandler {
	return &IngredientHandler{service: svc}
}

// ========== GET /ingredients?name= ==========
func (h *IngredientHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), model.Filter{NamePrefix: c.Query("name")})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// ========== GET /ingredients/:id ==========
func (h *IngredientHandler) Get(c *gin.Context) {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	item, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, item)
}

// ========== POST /ingredients ==========
func (h *IngredientHandler) Create(c *gin.Context) {
	var req model.CreateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.ErrBadRequest.Wrap(err))
		return
	}

	item, err := h.service.Create(c.Request.Context(), middleware.CurrentActor(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, item)
}

// ========== PATCH /ingredients/:id ==========
func (h *IngredientHandler) Update(c *gin.Context) {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	var req model.UpdateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.ErrBadRequest.Wrap(err))
		return
	}

	item, err := h.service.Update(c.Request.Context(), middleware.CurrentActor(c), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, item)
}

// ========== DELETE /ingredients/:id ==========
func (h *IngredientHandler) Delete(c *gin.Context) {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.CurrentActor(c), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.NoContent(c)
}
