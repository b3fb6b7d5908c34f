package handler

import (
	"errors"
	"net/http"

	"foodgram-backend/internal/domains/cart/model"
	"foodgram-backend/internal/domains/cart/service"
	"foodgram-backend/internal/domains/cart/shoppinglist"
	"foodgram-backend/internal/shared/middleware"
	"foodgram-backend/internal/shared/response"
	"foodgram-backend/internal/shared/utils"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	service service.Service
}

func NewCartHandler(svc service.Service) *CartHandler {
	return &CartHandler{service: svc}
}

// ========== POST /recipes/:id/shopping_cart ==========
func (h *CartHandler) Add(c *gin.Context) {
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

// ========== DELETE /recipes/:id/shopping_cart ==========
func (h *CartHandler) Remove(c *gin.Context) {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	if err := h.service.Remove(c.Request.Context(), middleware.CurrentActor(c), id); err != nil {
		if errors.Is(err, model.ErrNotInCart) {
			response.Rejected(c, http.StatusBadRequest, err)
			return
		}
		response.FromError(c, err)
		return
	}
	response.NoContent(c)
}

// ========== GET /recipes/download_shopping_cart ==========
func (h *CartHandler) Download(c *gin.Context) {
	body, err := h.service.Download(c.Request.Context(), middleware.CurrentActor(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Attachment(c, shoppinglist.Filename, shoppinglist.ContentType, body)
}
