package middleware

import (
	"strings"

	"foodgram-backend/internal/shared/actor"
	"foodgram-backend/internal/shared/response"
	"foodgram-backend/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const (
	ContextKeyActor  = "actor"
	ContextKeyUserID = "user_id"
)

// TokenValidator is satisfied by *jwt.Manager.
type TokenValidator interface {
	ValidateAccessToken(token string) (*jwt.Claims, error)
}

// AuthMiddleware - bắt buộc Bearer token hợp lệ
func AuthMiddleware(v TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Unauthorized(c, "authentication credentials were not provided")
			return
		}

		claims, err := v.ValidateAccessToken(token)
		if err != nil {
			response.Unauthorized(c, "invalid token")
			return
		}

		setActor(c, actorOf(claims))
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the actor when a valid token is present and
// falls back to anonymous otherwise. A malformed or invalid token is still a 401.
func OptionalAuthMiddleware(v TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			setActor(c, actor.Anonymous())
			c.Next()
			return
		}

		token, ok := bearerToken(header)
		if !ok {
			response.Unauthorized(c, "invalid authorization header format")
			return
		}

		claims, err := v.ValidateAccessToken(token)
		if err != nil {
			response.Unauthorized(c, "invalid token")
			return
		}

		setActor(c, actorOf(claims))
		c.Next()
	}
}

// CurrentActor returns the actor resolved by the auth middlewares.
func CurrentActor(c *gin.Context) actor.Actor {
	if v, ok := c.Get(ContextKeyActor); ok {
		if a, ok := v.(actor.Actor); ok {
			return a
		}
	}
	return actor.Anonymous()
}

func actorOf(claims *jwt.Claims) actor.Actor {
	return actor.New(claims.UserID, claims.Role).WithSuperuser(claims.IsSuperuser)
}

func setActor(c *gin.Context, a actor.Actor) {
	c.Set(ContextKeyActor, a)
	if a.IsAuthenticated() {
		c.Set(ContextKeyUserID, a.UserID)
	}
}

// bearerToken extracts the token from "Bearer <token>"
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
