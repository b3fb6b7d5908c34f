package repository

import (
	"context"

	"foodgram-backend/internal/domains/ingredient/model"
)

// Repository is the ingredient data access contract.
type Repository interface {
	// List returns ingredients ordered by name, filtered by a case-insensitive name prefix.
	List(ctx context.Context, filter model.Filter) ([]model.Ingredient, error)
	// GetByID returns ErrIngredientNotFound when absent.
	GetByID(ctx context.Context, id int64) (*model.Ingredient, error)
	Create(ctx context.Context, i *model.Ingredient) (*model.Ingredient, error)
	Update(ctx context.Context, i *model.Ingredient) (*model.Ingredient, error)
	Delete(ctx context.Context, id int64) error
	// BulkInsert skips rows whose (name, unit) already exists and returns the number inserted.
	BulkInsert(ctx context.Context, items []model.Ingredient) (int64, error)
}
