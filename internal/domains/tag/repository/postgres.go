package repository

import (
	"context"
	"fmt"
	"time"

	"foodgram-backend/internal/domains/tag/model"
	"foodgram-backend/internal/infrastructure/database"
	"foodgram-backend/pkg/cache"
	pkgdb "foodgram-backend/pkg/database"

	"github.com/rs/zerolog/log"
)

const listCacheKey = "tags:list"

type postgresRepository struct {
	db    pkgdb.DBTX
	cache cache.Cache
	ttl   time.Duration
}

func NewPostgresRepository(db pkgdb.DBTX, c cache.Cache, ttl time.Duration) Repository {
	if c == nil {
		c = cache.Noop{}
	}
	return &postgresRepository{db: db, cache: c, ttl: ttl}
}

func (r *postgresRepository) List(ctx context.Context) ([]model.Tag, error) {
	var cached []model.Tag
	if hit, err := r.cache.Get(ctx, listCacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	rows, err := r.db.Query(ctx, `SELECT id, name, color, slug FROM tags ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	tags := make([]model.Tag, 0)
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color, &t.Slug); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tags: %w", err)
	}

	if err := r.cache.Set(ctx, listCacheKey, tags, r.ttl); err != nil {
		log.Warn().Err(err).Msg("tag cache write failed")
	}
	return tags, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Tag, error) {
	var t model.Tag
	err := r.db.QueryRow(ctx, `SELECT id, name, color, slug FROM tags WHERE id = $1`, id).
		Scan(&t.ID, &t.Name, &t.Color, &t.Slug)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, model.ErrTagNotFound
		}
		return nil, fmt.Errorf("failed to get tag by id: %w", err)
	}
	return &t, nil
}

func (r *postgresRepository) Create(ctx context.Context, t *model.Tag) (*model.Tag, error) {
	query := `
        INSERT INTO tags (name, color, slug)
        VALUES ($1, $2, $3)
        RETURNING id, name, color, slug
    `

	var created model.Tag
	err := r.db.QueryRow(ctx, query, t.Name, t.Color, t.Slug).
		Scan(&created.ID, &created.Name, &created.Color, &created.Slug)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, model.ErrTagExists.Wrap(err)
		}
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}

	r.invalidate(ctx)
	return &created, nil
}

func (r *postgresRepository) Update(ctx context.Context, t *model.Tag) (*model.Tag, error) {
	query := `
        UPDATE tags SET name = $2, color = $3, slug = $4
        WHERE id = $1
        RETURNING id, name, color, slug
    `

	var updated model.Tag
	err := r.db.QueryRow(ctx, query, t.ID, t.Name, t.Color, t.Slug).
		Scan(&updated.ID, &updated.Name, &updated.Color, &updated.Slug)
	if err != nil {
		switch {
		case database.IsNoRows(err):
			return nil, model.ErrTagNotFound
		case database.IsUniqueViolation(err):
			return nil, model.ErrTagExists.Wrap(err)
		}
		return nil, fmt.Errorf("failed to update tag: %w", err)
	}

	r.invalidate(ctx)
	return &updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrTagNotFound
	}

	r.invalidate(ctx)
	return nil
}

func (r *postgresRepository) invalidate(ctx context.Context) {
	if err := r.cache.Delete(ctx, listCacheKey); err != nil {
		log.Warn().Err(err).Msg("tag cache invalidation failed")
	}
}
