package repository

import (
	"context"
	"fmt"

	"foodgram-backend/internal/domains/cart/model"
	"foodgram-backend/internal/domains/cart/shoppinglist"
	recipemodel "foodgram-backend/internal/domains/recipe/model"
	"foodgram-backend/internal/shared/relation"
	pkgdb "foodgram-backend/pkg/database"
)

type Repository interface {
	Add(ctx context.Context, userID, recipeID int64) error
	Remove(ctx context.Context, userID, recipeID int64) error
	// IngredientLines returns every ingredient line of every carted recipe in one query.
	IngredientLines(ctx context.Context, userID int64) ([]shoppinglist.IngredientLine, error)
}

var shoppingCart = relation.Pair{
	Table:             "shopping_cart",
	OwnerColumn:       "user_id",
	TargetColumn:      "recipe_id",
	TargetFK:          "fk_shopping_cart_recipe",
	ErrExists:         model.ErrAlreadyInCart,
	ErrMissing:        model.ErrNotInCart,
	ErrTargetNotFound: recipemodel.ErrRecipeNotFound,
}

type postgresRepository struct {
	db pkgdb.DBTX
}

func NewPostgresRepository(db pkgdb.DBTX) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Add(ctx context.Context, userID, recipeID int64) error {
	return shoppingCart.Add(ctx, r.db, userID, recipeID)
}

func (r *postgresRepository) Remove(ctx context.Context, userID, recipeID int64) error {
	return shoppingCart.Remove(ctx, r.db, userID, recipeID)
}

func (r *postgresRepository) IngredientLines(ctx context.Context, userID int64) ([]shoppinglist.IngredientLine, error) {
	query := `
        SELECT sc.recipe_id, i.id, i.name, i.measurement_unit, ri.amount
        FROM shopping_cart sc
        JOIN recipe_ingredients ri ON ri.recipe_id = sc.recipe_id
        JOIN ingredients i ON i.id = ri.ingredient_id
        WHERE sc.user_id = $1
    `

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart ingredients: %w", err)
	}
	defer rows.Close()

	lines := make([]shoppinglist.IngredientLine, 0)
	for rows.Next() {
		var l shoppinglist.IngredientLine
		if err := rows.Scan(&l.RecipeID, &l.IngredientID, &l.Name, &l.Unit, &l.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan cart ingredient: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cart ingredients: %w", err)
	}

	return lines, nil
}
