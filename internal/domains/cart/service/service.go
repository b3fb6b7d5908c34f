package service

import (
	"context"

	"foodgram-backend/internal/domains/cart/repository"
	"foodgram-backend/internal/domains/cart/shoppinglist"
	recipemodel "foodgram-backend/internal/domains/recipe/model"
	"foodgram-backend/internal/shared/actor"
	"foodgram-backend/internal/shared/permission"

	"github.com/rs/zerolog/log"
)

// RecipeFinder loads the recipe a toggle targets.
type RecipeFinder interface {
	Get(ctx context.Context, id int64) (*recipemodel.Recipe, error)
}

type Service interface {
	Add(ctx context.Context, a actor.Actor, recipeID int64) (*recipemodel.ShortRecipe, error)
	Remove(ctx context.Context, a actor.Actor, recipeID int64) error
	// Download renders the aggregated shopping list of the caller's cart.
	Download(ctx context.Context, a actor.Actor) ([]byte, error)
}

type service struct {
	repo    repository.Repository
	recipes RecipeFinder
}

func NewService(repo repository.Repository, recipes RecipeFinder) Service {
	return &service{repo: repo, recipes: recipes}
}

func (s *service) Add(ctx context.Context, a actor.Actor, recipeID int64) (*recipemodel.ShortRecipe, error) {
	rec, err := s.target(ctx, a, recipeID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Add(ctx, a.UserID, recipeID); err != nil {
		return nil, err
	}

	short := rec.Short()
	return &short, nil
}

func (s *service) Remove(ctx context.Context, a actor.Actor, recipeID int64) error {
	if _, err := s.target(ctx, a, recipeID); err != nil {
		return err
	}
	return s.repo.Remove(ctx, a.UserID, recipeID)
}

func (s *service) Download(ctx context.Context, a actor.Actor) ([]byte, error) {
	if err := permission.Check(a, permission.ActionDownloadCart, permission.NoTarget); err != nil {
		return nil, err
	}

	lines, err := s.repo.IngredientLines(ctx, a.UserID)
	if err != nil {
		return nil, err
	}

	totals := shoppinglist.Aggregate(lines)
	log.Debug().
		Int64("user_id", a.UserID).
		Int("lines", len(lines)).
		Int("ingredients", len(totals)).
		Msg("Shopping list rendered")

	return shoppinglist.Render(totals), nil
}

func (s *service) target(ctx context.Context, a actor.Actor, recipeID int64) (*recipemodel.Recipe, error) {
	if !a.IsAuthenticated() {
		return nil, permission.ErrUnauthorized
	}

	rec, err := s.recipes.Get(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if err := permission.CheckOwned(a, permission.ActionToggleCart, rec.AuthorID); err != nil {
		return nil, err
	}
	return rec, nil
}
