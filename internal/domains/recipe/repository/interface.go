package repository

import (
	"context"

	"foodgram-backend/internal/domains/recipe/model"
	tagmodel "foodgram-backend/internal/domains/tag/model"
)

type Repository interface {
	// List returns one page of recipes, newest first, with flags relative to viewerID.
	List(ctx context.Context, viewerID int64, filter model.Filter) ([]model.RecipeRow, int64, error)
	GetByID(ctx context.Context, id, viewerID int64) (*model.RecipeRow, error)
	// Get loads the bare row, for ownership checks.
	Get(ctx context.Context, id int64) (*model.Recipe, error)

	Tags(ctx context.Context, recipeIDs []int64) (map[int64][]tagmodel.Tag, error)
	Ingredients(ctx context.Context, recipeIDs []int64) (map[int64][]model.IngredientAmount, error)

	// Create and Update write the row and its associations in one transaction.
	// nil ingredients or tags on Update leave that set untouched.
	Create(ctx context.Context, rec *model.Recipe, ingredients []model.IngredientInput, tagIDs []int64) (*model.Recipe, error)
	Update(ctx context.Context, rec *model.Recipe, ingredients *[]model.IngredientInput, tagIDs *[]int64) (*model.Recipe, error)
	Delete(ctx context.Context, id int64) error
}
