package repository

import (
	"context"

	recipemodel "foodgram-backend/internal/domains/recipe/model"
	"foodgram-backend/internal/domains/user/model"
)

// SubscriptionRow is a followed author with their recipe count.
type SubscriptionRow struct {
	model.User
	RecipesCount int64
}

type Repository interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	// GetByID loads a user with is_subscribed computed for viewerID (0 = anonymous).
	GetByID(ctx context.Context, id, viewerID int64) (*model.UserWithSubscription, error)
	List(ctx context.Context, viewerID int64, filter model.ListFilter) ([]model.UserWithSubscription, int64, error)
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)

	Subscribe(ctx context.Context, userID, authorID int64) error
	Unsubscribe(ctx context.Context, userID, authorID int64) error
	// GetSubscription loads one author in subscription form.
	GetSubscription(ctx context.Context, authorID int64) (*SubscriptionRow, error)
	ListSubscriptions(ctx context.Context, userID int64, filter model.SubscriptionFilter) ([]SubscriptionRow, int64, error)
	// RecipesByAuthors returns the newest recipes of each author, at most limit each (limit < 0: all).
	RecipesByAuthors(ctx context.Context, authorIDs []int64, limit int) (map[int64][]recipemodel.ShortRecipe, error)
}
