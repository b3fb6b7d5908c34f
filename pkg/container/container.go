package container

import (
	"context"
	"fmt"
	"time"

	"foodgram-backend/internal/config"
	infraCache "foodgram-backend/internal/infrastructure/cache"
	"foodgram-backend/internal/infrastructure/database"
	"foodgram-backend/internal/shared/utils"
	"foodgram-backend/pkg/cache"
	pkgdb "foodgram-backend/pkg/database"
	"foodgram-backend/pkg/jwt"

	cartHandler "foodgram-backend/internal/domains/cart/handler"
	cartRepo "foodgram-backend/internal/domains/cart/repository"
	cartService "foodgram-backend/internal/domains/cart/service"
	favoriteHandler "foodgram-backend/internal/domains/favorite/handler"
	favoriteRepo "foodgram-backend/internal/domains/favorite/repository"
	favoriteService "foodgram-backend/internal/domains/favorite/service"
	ingredientHandler "foodgram-backend/internal/domains/ingredient/handler"
	ingredientRepo "foodgram-backend/internal/domains/ingredient/repository"
	ingredientService "foodgram-backend/internal/domains/ingredient/service"
	recipeHandler "foodgram-backend/internal/domains/recipe/handler"
	recipeRepo "foodgram-backend/internal/domains/recipe/repository"
	recipeService "foodgram-backend/internal/domains/recipe/service"
	tagHandler "foodgram-backend/internal/domains/tag/handler"
	tagRepo "foodgram-backend/internal/domains/tag/repository"
	tagService "foodgram-backend/internal/domains/tag/service"
	userHandler "foodgram-backend/internal/domains/user/handler"
	userRepo "foodgram-backend/internal/domains/user/repository"
	userService "foodgram-backend/internal/domains/user/service"

	"github.com/rs/zerolog/log"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds the whole dependency graph.
// Order: config -> infrastructure -> repositories -> services -> handlers.
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *database.PostgresDB // nil when built over an external pool
	Pool       pkgdb.Pool
	Cache      cache.Cache
	JWTManager *jwt.Manager

	// Repositories
	TagRepo        tagRepo.Repository
	IngredientRepo ingredientRepo.Repository
	UserRepo       userRepo.Repository
	RecipeRepo     recipeRepo.Repository
	FavoriteRepo   favoriteRepo.Repository
	CartRepo       cartRepo.Repository

	// Services
	TagService        tagService.Service
	IngredientService ingredientService.Service
	UserService       userService.Service
	RecipeService     recipeService.Service
	FavoriteService   favoriteService.Service
	CartService       cartService.Service

	// Handlers
	TagHandler        *tagHandler.TagHandler
	IngredientHandler *ingredientHandler.IngredientHandler
	UserHandler       *userHandler.UserHandler
	RecipeHandler     *recipeHandler.RecipeHandler
	FavoriteHandler   *favoriteHandler.FavoriteHandler
	CartHandler       *cartHandler.CartHandler
}

// ========================================
// CONSTRUCTORS
// ========================================

// NewContainer loads config, connects PostgreSQL and Redis and wires every domain.
func NewContainer() (*Container, error) {
	log.Info().Msg("Initializing DI container")

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log.Info().Str("environment", cfg.App.Environment).Msg("Config loaded")

	db, err := ConnectDatabase(context.Background())
	if err != nil {
		return nil, err
	}

	c := Build(cfg, db.Pool, connectCache(cfg))
	c.DB = db

	log.Info().Msg("DI container initialized")
	return c, nil
}

// ConnectDatabase opens the pgx pool from DB_* variables. Shared with the CLI.
func ConnectDatabase(ctx context.Context) (*database.PostgresDB, error) {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	return db, nil
}

// connectCache returns Redis when reachable, a Noop cache otherwise.
// Redis is not critical: the reference lists are read-through.
func connectCache(cfg *config.Config) cache.Cache {
	if !cfg.Redis.Enabled {
		log.Info().Msg("Redis disabled, caching off")
		return cache.Noop{}
	}

	rc := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rc.Connect(ctx); err != nil {
		log.Warn().Err(err).Str("host", cfg.Redis.Host).Msg("Redis connection failed (non-critical), caching off")
		_ = rc.Close()
		return cache.Noop{}
	}

	log.Info().Str("host", cfg.Redis.Host).Msg("Redis connected")
	return rc
}

// Build wires repositories, services and handlers over an open pool.
func Build(cfg *config.Config, pool pkgdb.Pool, c cache.Cache) *Container {
	if c == nil {
		c = cache.Noop{}
	}

	ct := &Container{
		Config:     cfg,
		Pool:       pool,
		Cache:      c,
		JWTManager: jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTTL()),
	}

	ct.initRepositories()
	ct.initServices()
	ct.initHandlers()
	return ct
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initRepositories() {
	ttl := c.Config.Cache.ReferenceTTL

	c.TagRepo = tagRepo.NewPostgresRepository(c.Pool, c.Cache, ttl)
	c.IngredientRepo = ingredientRepo.NewPostgresRepository(c.Pool, c.Cache, ttl)
	c.UserRepo = userRepo.NewPostgresRepository(c.Pool)
	c.RecipeRepo = recipeRepo.NewPostgresRepository(c.Pool)
	c.FavoriteRepo = favoriteRepo.NewPostgresRepository(c.Pool)
	c.CartRepo = cartRepo.NewPostgresRepository(c.Pool)
}

func (c *Container) initServices() {
	c.TagService = tagService.NewService(c.TagRepo)
	c.IngredientService = ingredientService.NewService(c.IngredientRepo)
	c.UserService = userService.NewService(c.UserRepo)
	c.RecipeService = recipeService.NewService(c.RecipeRepo)

	// toggles resolve their target through the recipe repository
	c.FavoriteService = favoriteService.NewService(c.FavoriteRepo, c.RecipeRepo)
	c.CartService = cartService.NewService(c.CartRepo, c.RecipeRepo)
}

func (c *Container) initHandlers() {
	limits := utils.PageLimits{
		Default: c.Config.Pagination.DefaultLimit,
		Max:     c.Config.Pagination.MaxLimit,
	}

	c.TagHandler = tagHandler.NewTagHandler(c.TagService)
	c.IngredientHandler = ingredientHandler.NewIngredientHandler(c.IngredientService)
	c.UserHandler = userHandler.NewUserHandler(c.UserService, limits)
	c.RecipeHandler = recipeHandler.NewRecipeHandler(c.RecipeService, limits)
	c.FavoriteHandler = favoriteHandler.NewFavoriteHandler(c.FavoriteService)
	c.CartHandler = cartHandler.NewCartHandler(c.CartService)
}

// ========================================
// HELPER METHODS
// ========================================

// PingDatabase checks the pool with a trivial round trip.
func (c *Container) PingDatabase(ctx context.Context) error {
	if c.DB != nil {
		return c.DB.Ping(ctx)
	}
	if c.Pool == nil {
		return fmt.Errorf("database not configured")
	}
	_, err := c.Pool.Exec(ctx, "SELECT 1")
	return err
}

// Cleanup releases pools on shutdown.
func (c *Container) Cleanup() {
	log.Info().Msg("Cleaning up container resources")

	if c.DB != nil {
		c.DB.Close()
		log.Info().Msg("Database connections closed")
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis")
		} else {
			log.Info().Msg("Redis connections closed")
		}
	}
}
