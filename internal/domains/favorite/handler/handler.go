package handler

import (
	"errors"
	"net/http"

	"foodgram-backend/internal/domains/favorite/model"
	"foodgram-backend/internal/domains/favorite/service"
	"foodgram-backend/internal/shared/middleware"
	"foodgram-backend/internal/shared/response"
	"foodgram-backend/internal/shared/utils"

	"github.com/gin-gonic/gin"
)

type FavoriteHandler struct {
	service service.Service
}

func NewFavoriteHandler(svc service.Service) *FavoriteHandler {
	return &FavoriteHandler{service: svc}
}

// ========== POST /recipes/:id/favorite ==========
func (h *FavoriteHandler) Add(c *gin.Context) {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	short, err := h.service.Add(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, short)
}

// ========== DELETE /recipes/:id/favorite ==========
func (h *FavoriteHandler) Remove(c *gin.Context) {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	if err := h.service.Remove(c.Request.Context(), middleware.CurrentActor(c), id); err != nil {
		if errors.Is(err, model.ErrNotFavorited) {
			response.Rejected(c, http.StatusBadRequest, err)
			return
		}
		response.FromError(c, err)
		return
	}
	response.NoContent(c)
}
