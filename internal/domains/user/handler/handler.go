package handler

import (
	"errors"
	"net/http"

	"foodgram-backend/internal/domains/user/model"
	"foodgram-backend/internal/domains/user/service"
	"foodgram-backend/internal/shared/apperror"
	"foodgram-backend/internal/shared/middleware"
	"foodgram-backend/internal/shared/response"
	"foodgram-backend/internal/shared/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service service.Service
	limits  utils.PageLimits
}

func NewUserHandler(svc service.Service, limits utils.PageLimits) *UserHandler {
	return &UserHandler{service: svc, limits: limits}
}

// ========== POST /users ==========
func (h *UserHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.ErrBadRequest.Wrap(err))
		return
	}

	u, err := h.service.Register(c.Request.Context(), middleware.CurrentActor(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, u)
}

// ========== GET /users?page=&limit= ==========
func (h *UserHandler) List(c *gin.Context) {
	p, err := h.limits.Page(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	users, total, err := h.service.List(c.Request.Context(), middleware.CurrentActor(c), model.ListFilter{
		Limit:  p.Limit,
		Offset: p.Offset,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, response.NewPage(total, users))
}

// ========== GET /users/me ==========
func (h *UserHandler) Me(c *gin.Context) {
	u, err := h.service.GetMe(c.Request.Context(), middleware.CurrentActor(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u)
}

// ========== GET /users/:id ==========
func (h *UserHandler) Get(c *gin.Context) {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	u, err := h.service.Get(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u)
}

// ========== DELETE /users/:id ==========
func (h *UserHandler) Delete(c *gin.Context) {
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

// ========== GET /users/subscriptions?page=&limit=&recipes_limit= ==========
func (h *UserHandler) Subscriptions(c *gin.Context) {
	p, err := h.limits.Page(c)
	if err != nil {
		response.FromError(c, err)
		return
	}
	recipesLimit, err := utils.QueryInt(c, "recipes_limit", -1)
	if err != nil {
		response.FromError(c, err)
		return
	}

	subs, total, err := h.service.ListSubscriptions(c.Request.Context(), middleware.CurrentActor(c), model.SubscriptionFilter{
		Limit:        p.Limit,
		Offset:       p.Offset,
		RecipesLimit: recipesLimit,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, response.NewPage(total, subs))
}

// ========== POST /users/:id/subscribe ==========
func (h *UserHandler) Subscribe(c *gin.Context) {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	recipesLimit, err := utils.QueryInt(c, "recipes_limit", -1)
	if err != nil {
		response.FromError(c, err)
		return
	}

	sub, err := h.service.Subscribe(c.Request.Context(), middleware.CurrentActor(c), id, recipesLimit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, sub)
}

// ========== DELETE /users/:id/subscribe ==========
func (h *UserHandler) Unsubscribe(c *gin.Context) {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	if err := h.service.Unsubscribe(c.Request.Context(), middleware.CurrentActor(c), id); err != nil {
		// removing an absent subscription is a bad request, not a missing resource
		if errors.Is(err, model.ErrNotSubscribed) {
			response.Rejected(c, http.StatusBadRequest, err)
			return
		}
		response.FromError(c, err)
		return
	}
	response.NoContent(c)
}
