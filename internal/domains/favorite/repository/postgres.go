package repository

import (
	"context"

	"foodgram-backend/internal/domains/favorite/model"
	recipemodel "foodgram-backend/internal/domains/recipe/model"
	"foodgram-backend/internal/shared/relation"
	pkgdb "foodgram-backend/pkg/database"
)

type Repository interface {
	Add(ctx context.Context, userID, recipeID int64) error
	Remove(ctx context.Context, userID, recipeID int64) error
}

var favorites = relation.Pair{
	Table:             "favorites",
	OwnerColumn:       "user_id",
	TargetColumn:      "recipe_id",
	TargetFK:          "fk_favorites_recipe",
	ErrExists:         model.ErrAlreadyFavorited,
	ErrMissing:        model.ErrNotFavorited,
	ErrTargetNotFound: recipemodel.ErrRecipeNotFound,
}

type postgresRepository struct {
	db pkgdb.DBTX
}

func NewPostgresRepository(db pkgdb.DBTX) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Add(ctx context.Context, userID, recipeID int64) error {
	return favorites.Add(ctx, r.db, userID, recipeID)
}

func (r *postgresRepository) Remove(ctx context.Context, userID, recipeID int64) error {
	return favorites.Remove(ctx, r.db, userID, recipeID)
}
