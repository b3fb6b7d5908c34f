package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"foodgram-backend/internal/domains/ingredient/model"
	"foodgram-backend/internal/infrastructure/database"
	"foodgram-backend/pkg/cache"
	pkgdb "foodgram-backend/pkg/database"

	sq "github.com/Masterminds/squirrel"
	"github.com/rs/zerolog/log"
)

// Cache key constants
const (
	listKeyPrefix = "ingredients:list:"
	cachePattern  = "ingredients:*"
)

type postgresRepository struct {
	db    pkgdb.DBTX
	cache cache.Cache
	ttl   time.Duration
	psql  sq.StatementBuilderType
}

// NewPostgresRepository creates the ingredient repository. The reference list
// is cached for ttl and invalidated on every write.
func NewPostgresRepository(db pkgdb.DBTX, c cache.Cache, ttl time.Duration) Repository {
	if c == nil {
		c = cache.Noop{}
	}
	return &postgresRepository{
		db:    db,
		cache: c,
		ttl:   ttl,
		psql:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *postgresRepository) List(ctx context.Context, filter model.Filter) ([]model.Ingredient, error) {
	prefix := strings.ToLower(strings.TrimSpace(filter.NamePrefix))
	cacheKey := listKeyPrefix + prefix

	var cached []model.Ingredient
	if hit, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return cached, nil
	} else if err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("ingredient cache read failed")
	}

	qb := r.psql.
		Select("id", "name", "measurement_unit").
		From("ingredients").
		OrderBy("name ASC", "id ASC")
	if prefix != "" {
		qb = qb.Where(sq.Like{"lower(name)": escapeLike(prefix) + "%"})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ingredient list query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	defer rows.Close()

	items := make([]model.Ingredient, 0)
	for rows.Next() {
		var i model.Ingredient
		if err := rows.Scan(&i.ID, &i.Name, &i.MeasurementUnit); err != nil {
			return nil, fmt.Errorf("failed to scan ingredient: %w", err)
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ingredients: %w", err)
	}

	if err := r.cache.Set(ctx, cacheKey, items, r.ttl); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("ingredient cache write failed")
	}

	return items, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Ingredient, error) {
	query := `SELECT id, name, measurement_unit FROM ingredients WHERE id = $1`

	var i model.Ingredient
	if err := r.db.QueryRow(ctx, query, id).Scan(&i.ID, &i.Name, &i.MeasurementUnit); err != nil {
		if database.IsNoRows(err) {
			return nil, model.ErrIngredientNotFound
		}
		return nil, fmt.Errorf("failed to get ingredient by id: %w", err)
	}
	return &i, nil
}

func (r *postgresRepository) Create(ctx context.Context, i *model.Ingredient) (*model.Ingredient, error) {
	query := `
        INSERT INTO ingredients (name, measurement_unit)
        VALUES ($1, $2)
        RETURNING id, name, measurement_unit
    `

	var created model.Ingredient
	err := r.db.QueryRow(ctx, query, i.Name, i.MeasurementUnit).
		Scan(&created.ID, &created.Name, &created.MeasurementUnit)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, model.ErrIngredientExists.Wrap(err)
		}
		return nil, fmt.Errorf("failed to create ingredient: %w", err)
	}

	r.invalidate(ctx)
	return &created, nil
}

func (r *postgresRepository) Update(ctx context.Context, i *model.Ingredient) (*model.Ingredient, error) {
	query := `
        UPDATE ingredients SET name = $2, measurement_unit = $3
        WHERE id = $1
        RETURNING id, name, measurement_unit
    `

	var updated model.Ingredient
	err := r.db.QueryRow(ctx, query, i.ID, i.Name, i.MeasurementUnit).
		Scan(&updated.ID, &updated.Name, &updated.MeasurementUnit)
	if err != nil {
		switch {
		case database.IsNoRows(err):
			return nil, model.ErrIngredientNotFound
		case database.IsUniqueViolation(err):
			return nil, model.ErrIngredientExists.Wrap(err)
		}
		return nil, fmt.Errorf("failed to update ingredient: %w", err)
	}

	r.invalidate(ctx)
	return &updated, nil
}

// Delete cascades to recipe_ingredients.
func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM ingredients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete ingredient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrIngredientNotFound
	}

	r.invalidate(ctx)
	return nil
}

func (r *postgresRepository) BulkInsert(ctx context.Context, items []model.Ingredient) (int64, error) {
	if len(items) == 0 {
		return 0, nil
	}

	names := make([]string, len(items))
	units := make([]string, len(items))
	for idx, i := range items {
		names[idx] = i.Name
		units[idx] = i.MeasurementUnit
	}

	query := `
        INSERT INTO ingredients (name, measurement_unit)
        SELECT * FROM unnest($1::text[], $2::text[])
        ON CONFLICT ON CONSTRAINT uq_ingredients_name_unit DO NOTHING
    `

	tag, err := r.db.Exec(ctx, query, names, units)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk insert ingredients: %w", err)
	}

	r.invalidate(ctx)
	return tag.RowsAffected(), nil
}

func (r *postgresRepository) invalidate(ctx context.Context) {
	if err := r.cache.DeletePattern(ctx, cachePattern); err != nil {
		log.Warn().Err(err).Msg("ingredient cache invalidation failed")
	}
}

// escapeLike escapes LIKE wildcards in user input
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
