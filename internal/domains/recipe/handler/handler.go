package handler

import (
	"net/http"
	"strconv"

	"foodgram-backend/internal/domains/recipe/model"
	"foodgram-backend/internal/domains/recipe/service"
	"foodgram-backend/internal/shared/apperror"
	"foodgram-backend/internal/shared/middleware"
	"foodgram-backend/internal/shared/response"
	"foodgram-backend/internal/shared/utils"

	"github.com/gin-gonic/gin"
)

type RecipeHandler struct {
	service service.Service
	limits  utils.PageLimits
}

func NewRecipeHandler(svc service.Service, limits utils.PageLimits) *RecipeHandler {
	return &RecipeHandler{service: svc, limits: limits}
}

// ========== GET /recipes?author=&tags=&is_favorited=&is_in_shopping_cart=&limit=&offset= ==========
func (h *RecipeHandler) List(c *gin.Context) {
	filter, err := h.parseFilter(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	items, total, err := h.service.List(c.Request.Context(), middleware.CurrentActor(c), filter)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, response.NewPage(total, items))
}

func (h *RecipeHandler) parseFilter(c *gin.Context) (model.Filter, error) {
	p, err := h.limits.Window(c)
	if err != nil {
		return model.Filter{}, err
	}

	filter := model.Filter{
		TagSlugs:         c.QueryArray("tags"),
		IsFavorited:      utils.QueryFlag(c, "is_favorited"),
		IsInShoppingCart: utils.QueryFlag(c, "is_in_shopping_cart"),
		Limit:            p.Limit,
		Offset:           p.Offset,
	}

	if raw := c.Query("author"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return model.Filter{}, apperror.Invalid("author", "must be a positive integer")
		}
		filter.AuthorID = id
	}
	return filter, nil
}

// ========== GET /recipes/:id ==========
func (h *RecipeHandler) Get(c *gin.Context) {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	item, err := h.service.Get(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, item)
}

// ========== POST /recipes ==========
func (h *RecipeHandler) Create(c *gin.Context) {
	var req model.CreateRecipeRequest
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

// ========== PATCH /recipes/:id ==========
func (h *RecipeHandler) Update(c *gin.Context) {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	var req model.UpdateRecipeRequest
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

// ========== DELETE /recipes/:id ==========
func (h *RecipeHandler) Delete(c *gin.Context) {
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
