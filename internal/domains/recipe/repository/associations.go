package repository

import (
	"context"
	"fmt"

	"foodgram-backend/internal/domains/recipe/model"
	"foodgram-backend/internal/infrastructure/database"
	pkgdb "foodgram-backend/pkg/database"
)

// replaceIngredients makes the recipe's ingredient set equal to items:
// rows outside the new set are deleted, the rest upserted in one statement.
func replaceIngredients(ctx context.Context, db pkgdb.DBTX, recipeID int64, items []model.IngredientInput) error {
	ids := make([]int64, 0, len(items))
	amounts := make([]int32, 0, len(items))
	for _, i := range items {
		ids = append(ids, i.ID)
		amounts = append(amounts, int32(i.Amount))
	}

	deleteSQL := `
        DELETE FROM recipe_ingredients
        WHERE recipe_id = $1 AND NOT (ingredient_id = ANY($2))
    `
	if _, err := db.Exec(ctx, deleteSQL, recipeID, ids); err != nil {
		return fmt.Errorf("failed to prune recipe ingredients: %w", err)
	}

	upsertSQL := `
        INSERT INTO recipe_ingredients (recipe_id, ingredient_id, amount)
        SELECT $1, unnest($2::bigint[]), unnest($3::int[])
        ON CONFLICT ON CONSTRAINT uq_recipe_ingredients
        DO UPDATE SET amount = EXCLUDED.amount
    `
	if _, err := db.Exec(ctx, upsertSQL, recipeID, ids, amounts); err != nil {
		if database.IsForeignKeyViolation(err, "fk_recipe_ingredients_ingredient") {
			return model.ErrIngredientNotFound.Wrap(err)
		}
		return fmt.Errorf("failed to upsert recipe ingredients: %w", err)
	}
	return nil
}

// replaceTags is replaceIngredients for the tag set.
func replaceTags(ctx context.Context, db pkgdb.DBTX, recipeID int64, tagIDs []int64) error {
	deleteSQL := `
        DELETE FROM recipe_tags
        WHERE recipe_id = $1 AND NOT (tag_id = ANY($2))
    `
	if _, err := db.Exec(ctx, deleteSQL, recipeID, tagIDs); err != nil {
		return fmt.Errorf("failed to prune recipe tags: %w", err)
	}

	insertSQL := `
        INSERT INTO recipe_tags (recipe_id, tag_id)
        SELECT $1, unnest($2::bigint[])
        ON CONFLICT ON CONSTRAINT uq_recipe_tags DO NOTHING
    `
	if _, err := db.Exec(ctx, insertSQL, recipeID, tagIDs); err != nil {
		if database.IsForeignKeyViolation(err, "fk_recipe_tags_tag") {
			return model.ErrTagNotFound.Wrap(err)
		}
		return fmt.Errorf("failed to insert recipe tags: %w", err)
	}
	return nil
}
