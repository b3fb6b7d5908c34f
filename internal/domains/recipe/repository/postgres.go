package repository

import (
	"context"
	"fmt"

	"foodgram-backend/internal/domains/recipe/model"
	tagmodel "foodgram-backend/internal/domains/tag/model"
	"foodgram-backend/internal/infrastructure/database"
	pkgdb "foodgram-backend/pkg/database"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

const (
	isSubscribedExpr = "EXISTS (SELECT 1 FROM subscriptions s WHERE s.user_id = ? AND s.author_id = r.author_id) AS is_subscribed"
	isFavoritedExpr  = "EXISTS (SELECT 1 FROM favorites f WHERE f.user_id = ? AND f.recipe_id = r.id) AS is_favorited"
	inCartExpr       = "EXISTS (SELECT 1 FROM shopping_cart sc WHERE sc.user_id = ? AND sc.recipe_id = r.id) AS is_in_shopping_cart"
)

var rowColumns = []string{
	"r.id", "r.author_id", "r.name", "r.text", "r.image", "r.cooking_time", "r.pub_date",
	"u.id", "u.username", "u.email", "u.first_name", "u.last_name", "u.role", "u.is_superuser", "u.date_joined",
}

type postgresRepository struct {
	db   pkgdb.Pool
	psql sq.StatementBuilderType
}

func NewPostgresRepository(db pkgdb.Pool) Repository {
	return &postgresRepository{
		db:   db,
		psql: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// filtered applies the list filters shared by the page and count queries.
func filtered(qb sq.SelectBuilder, viewerID int64, f model.Filter) sq.SelectBuilder {
	if f.AuthorID > 0 {
		qb = qb.Where(sq.Eq{"r.author_id": f.AuthorID})
	}
	if len(f.TagSlugs) > 0 {
		qb = qb.Where(sq.Expr(
			"EXISTS (SELECT 1 FROM recipe_tags rt JOIN tags t ON t.id = rt.tag_id WHERE rt.recipe_id = r.id AND t.slug = ANY(?))",
			f.TagSlugs,
		))
	}
	// caller-relative filters mean nothing for anonymous callers
	if viewerID > 0 && f.IsFavorited {
		qb = qb.Where(sq.Expr("EXISTS (SELECT 1 FROM favorites ff WHERE ff.user_id = ? AND ff.recipe_id = r.id)", viewerID))
	}
	if viewerID > 0 && f.IsInShoppingCart {
		qb = qb.Where(sq.Expr("EXISTS (SELECT 1 FROM shopping_cart fc WHERE fc.user_id = ? AND fc.recipe_id = r.id)", viewerID))
	}
	return qb
}

func (r *postgresRepository) rowQuery(viewerID int64) sq.SelectBuilder {
	return r.psql.
		Select(rowColumns...).
		Column(sq.Expr(isSubscribedExpr, viewerID)).
		Column(sq.Expr(isFavoritedExpr, viewerID)).
		Column(sq.Expr(inCartExpr, viewerID)).
		From("recipes r").
		Join("users u ON u.id = r.author_id")
}

func scanRow(row pgx.Row) (model.RecipeRow, error) {
	var rr model.RecipeRow
	a := &rr.Author
	err := row.Scan(
		&rr.ID, &rr.AuthorID, &rr.Name, &rr.Text, &rr.Image, &rr.CookingTime, &rr.PubDate,
		&a.ID, &a.Username, &a.Email, &a.FirstName, &a.LastName, &a.Role, &a.IsSuperuser, &a.DateJoined,
		&a.IsSubscribed, &rr.IsFavorited, &rr.IsInShoppingCart,
	)
	return rr, err
}

func (r *postgresRepository) List(ctx context.Context, viewerID int64, filter model.Filter) ([]model.RecipeRow, int64, error) {
	countSQL, countArgs, err := filtered(r.psql.Select("COUNT(*)").From("recipes r"), viewerID, filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build recipe count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count recipes: %w", err)
	}

	query, args, err := filtered(r.rowQuery(viewerID), viewerID, filter).
		OrderBy("r.pub_date DESC", "r.id DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build recipe list query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer rows.Close()

	out := make([]model.RecipeRow, 0, filter.Limit)
	for rows.Next() {
		rr, err := scanRow(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan recipe: %w", err)
		}
		out = append(out, rr)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate recipes: %w", err)
	}

	return out, total, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id, viewerID int64) (*model.RecipeRow, error) {
	query, args, err := r.rowQuery(viewerID).Where(sq.Eq{"r.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build recipe query: %w", err)
	}

	rr, err := scanRow(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if database.IsNoRows(err) {
			return nil, model.ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return &rr, nil
}

func (r *postgresRepository) Get(ctx context.Context, id int64) (*model.Recipe, error) {
	query := `
        SELECT id, author_id, name, text, image, cooking_time, pub_date
        FROM recipes
        WHERE id = $1
    `

	var rec model.Recipe
	err := r.db.QueryRow(ctx, query, id).
		Scan(&rec.ID, &rec.AuthorID, &rec.Name, &rec.Text, &rec.Image, &rec.CookingTime, &rec.PubDate)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, model.ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return &rec, nil
}

func (r *postgresRepository) Tags(ctx context.Context, recipeIDs []int64) (map[int64][]tagmodel.Tag, error) {
	out := make(map[int64][]tagmodel.Tag, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return out, nil
	}

	query := `
        SELECT rt.recipe_id, t.id, t.name, t.color, t.slug
        FROM recipe_tags rt
        JOIN tags t ON t.id = rt.tag_id
        WHERE rt.recipe_id = ANY($1)
        ORDER BY rt.recipe_id, t.id
    `

	rows, err := r.db.Query(ctx, query, recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipe tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			recipeID int64
			t        tagmodel.Tag
		)
		if err := rows.Scan(&recipeID, &t.ID, &t.Name, &t.Color, &t.Slug); err != nil {
			return nil, fmt.Errorf("failed to scan recipe tag: %w", err)
		}
		out[recipeID] = append(out[recipeID], t)
	}
	return out, rows.Err()
}

func (r *postgresRepository) Ingredients(ctx context.Context, recipeIDs []int64) (map[int64][]model.IngredientAmount, error) {
	out := make(map[int64][]model.IngredientAmount, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return out, nil
	}

	query := `
        SELECT ri.recipe_id, i.id, i.name, i.measurement_unit, ri.amount
        FROM recipe_ingredients ri
        JOIN ingredients i ON i.id = ri.ingredient_id
        WHERE ri.recipe_id = ANY($1)
        ORDER BY ri.recipe_id, i.name, i.id
    `

	rows, err := r.db.Query(ctx, query, recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipe ingredients: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			recipeID int64
			ia       model.IngredientAmount
		)
		if err := rows.Scan(&recipeID, &ia.ID, &ia.Name, &ia.MeasurementUnit, &ia.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan recipe ingredient: %w", err)
		}
		out[recipeID] = append(out[recipeID], ia)
	}
	return out, rows.Err()
}

func (r *postgresRepository) Create(ctx context.Context, rec *model.Recipe, ingredients []model.IngredientInput, tagIDs []int64) (*model.Recipe, error) {
	return pkgdb.WithTransactionResult(ctx, r.db, func(tx pgx.Tx) (*model.Recipe, error) {
		query := `
            INSERT INTO recipes (author_id, name, text, image, cooking_time)
            VALUES ($1, $2, $3, $4, $5)
            RETURNING id, pub_date
        `

		created := *rec
		if err := tx.QueryRow(ctx, query, rec.AuthorID, rec.Name, rec.Text, rec.Image, rec.CookingTime).
			Scan(&created.ID, &created.PubDate); err != nil {
			return nil, fmt.Errorf("failed to insert recipe: %w", err)
		}

		if err := replaceIngredients(ctx, tx, created.ID, ingredients); err != nil {
			return nil, err
		}
		if err := replaceTags(ctx, tx, created.ID, tagIDs); err != nil {
			return nil, err
		}
		return &created, nil
	})
}

func (r *postgresRepository) Update(ctx context.Context, rec *model.Recipe, ingredients *[]model.IngredientInput, tagIDs *[]int64) (*model.Recipe, error) {
	return pkgdb.WithTransactionResult(ctx, r.db, func(tx pgx.Tx) (*model.Recipe, error) {
		query := `
            UPDATE recipes
            SET name = $2, text = $3, image = $4, cooking_time = $5
            WHERE id = $1
        `

		tag, err := tx.Exec(ctx, query, rec.ID, rec.Name, rec.Text, rec.Image, rec.CookingTime)
		if err != nil {
			return nil, fmt.Errorf("failed to update recipe: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil, model.ErrRecipeNotFound
		}

		if ingredients != nil {
			if err := replaceIngredients(ctx, tx, rec.ID, *ingredients); err != nil {
				return nil, err
			}
		}
		if tagIDs != nil {
			if err := replaceTags(ctx, tx, rec.ID, *tagIDs); err != nil {
				return nil, err
			}
		}
		return rec, nil
	})
}

// Delete cascades to associations, favorites and cart rows.
func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrRecipeNotFound
	}
	return nil
}
