package service

import (
	"context"

	"foodgram-backend/internal/domains/favorite/repository"
	recipemodel "foodgram-backend/internal/domains/recipe/model"
	"foodgram-backend/internal/shared/actor"
	"foodgram-backend/internal/shared/permission"
)

// RecipeFinder loads the recipe a toggle targets.
type RecipeFinder interface {
	Get(ctx context.Context, id int64) (*recipemodel.Recipe, error)
}

type Service interface {
	Add(ctx context.Context, a actor.Actor, recipeID int64) (*recipemodel.ShortRecipe, error)
	Remove(ctx context.Context, a actor.Actor, recipeID int64) error
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

// target resolves the recipe and checks the caller may toggle it.
func (s *service) target(ctx context.Context, a actor.Actor, recipeID int64) (*recipemodel.Recipe, error) {
	if !a.IsAuthenticated() {
		return nil, permission.ErrUnauthorized
	}

	rec, err := s.recipes.Get(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if err := permission.CheckOwned(a, permission.ActionToggleFavorite, rec.AuthorID); err != nil {
		return nil, err
	}
	return rec, nil
}
