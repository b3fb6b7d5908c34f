package main

import (
	"context"
	"net/http"
	"time"

	"foodgram-backend/internal/shared/middleware"
	"foodgram-backend/pkg/container"

	"github.com/gin-gonic/gin"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.CORS.AllowedOrigins),
	)

	// optional: anonymous callers pass, a bad token is still 401
	optional := middleware.OptionalAuthMiddleware(c.JWTManager)
	auth := middleware.AuthMiddleware(c.JWTManager)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupTagRoutes(v1, c, optional, auth)
		setupIngredientRoutes(v1, c, optional, auth)
		setupRecipeRoutes(v1, c, optional, auth)
		setupUserRoutes(v1, c, optional, auth)
	}

	return router
}

// ========================================
// TAG ROUTES
// ========================================
func setupTagRoutes(v1 *gin.RouterGroup, c *container.Container, optional, auth gin.HandlerFunc) {
	tags := v1.Group("/tags")
	{
		tags.GET("", optional, c.TagHandler.List)
		tags.GET("/:id", optional, c.TagHandler.Get)

		// admin only, enforced by the capability table
		tags.POST("", auth, c.TagHandler.Create)
		tags.PATCH("/:id", auth, c.TagHandler.Update)
		tags.DELETE("/:id", auth, c.TagHandler.Delete)
	}
}

// ========================================
// INGREDIENT ROUTES
// ========================================
func setupIngredientRoutes(v1 *gin.RouterGroup, c *container.Container, optional, auth gin.HandlerFunc) {
	ingredients := v1.Group("/ingredients")
	{
		ingredients.GET("", optional, c.IngredientHandler.List)
		ingredients.GET("/:id", optional, c.IngredientHandler.Get)

		ingredients.POST("", auth, c.IngredientHandler.Create)
		ingredients.PATCH("/:id", auth, c.IngredientHandler.Update)
		ingredients.DELETE("/:id", auth, c.IngredientHandler.Delete)
	}
}

// ========================================
// RECIPE ROUTES
// ========================================
func setupRecipeRoutes(v1 *gin.RouterGroup, c *container.Container, optional, auth gin.HandlerFunc) {
	recipes := v1.Group("/recipes")
	{
		recipes.GET("", optional, c.RecipeHandler.List)
		recipes.GET("/download_shopping_cart", auth, c.CartHandler.Download)
		recipes.GET("/:id", optional, c.RecipeHandler.Get)

		recipes.POST("", auth, c.RecipeHandler.Create)
		recipes.PATCH("/:id", auth, c.RecipeHandler.Update)
		recipes.DELETE("/:id", auth, c.RecipeHandler.Delete)

		recipes.POST("/:id/favorite", auth, c.FavoriteHandler.Add)
		recipes.DELETE("/:id/favorite", auth, c.FavoriteHandler.Remove)

		recipes.POST("/:id/shopping_cart", auth, c.CartHandler.Add)
		recipes.DELETE("/:id/shopping_cart", auth, c.CartHandler.Remove)
	}
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container, optional, auth gin.HandlerFunc) {
	users := v1.Group("/users")
	{
		users.POST("", optional, c.UserHandler.Register)
		users.GET("", optional, c.UserHandler.List)
		users.GET("/me", auth, c.UserHandler.Me)
		users.GET("/subscriptions", auth, c.UserHandler.Subscriptions)
		users.GET("/:id", optional, c.UserHandler.Get)
		users.DELETE("/:id", auth, c.UserHandler.Delete)

		users.POST("/:id/subscribe", auth, c.UserHandler.Subscribe)
		users.DELETE("/:id/subscribe", auth, c.UserHandler.Unsubscribe)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		dbStatus := "ok"
		if err := appCtx.PingDatabase(ctx); err != nil {
			dbStatus = "error: " + err.Error()
			health["status"] = "degraded"
		}

		redisStatus := "ok"
		if err := appCtx.Cache.Ping(ctx); err != nil {
			redisStatus = "error: " + err.Error()
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		if appCtx.DB != nil {
			if stats, err := appCtx.DB.Stats(); err == nil {
				health["pool"] = stats
			}
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}
		c.JSON(statusCode, health)
	}
}
