package repository

import (
	"context"

	"foodgram-backend/internal/domains/tag/model"
)

type Repository interface {
	// List returns every tag ordered by id.
	List(ctx context.Context) ([]model.Tag, error)
	GetByID(ctx context.Context, id int64) (*model.Tag, error)
	Create(ctx context.Context, t *model.Tag) (*model.Tag, error)
	Update(ctx context.Context, t *model.Tag) (*model.Tag, error)
	Delete(ctx context.Context, id int64) error
}
