package service

import (
	"context"

	"foodgram-backend/internal/domains/recipe/model"
	"foodgram-backend/internal/domains/recipe/repository"
	"foodgram-backend/internal/shared/actor"
	"foodgram-backend/internal/shared/apperror"
	"foodgram-backend/internal/shared/permission"
)

type Service interface {
	List(ctx context.Context, a actor.Actor, filter model.Filter) ([]model.RecipeResponse, int64, error)
	Get(ctx context.Context, a actor.Actor, id int64) (*model.RecipeResponse, error)
	Create(ctx context.Context, a actor.Actor, req model.CreateRecipeRequest) (*model.RecipeResponse, error)
	Update(ctx context.Context, a actor.Actor, id int64, req model.UpdateRecipeRequest) (*model.RecipeResponse, error)
	Delete(ctx context.Context, a actor.Actor, id int64) error
}

type service struct {
	repo repository.Repository
}

func NewService(repo repository.Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, a actor.Actor, filter model.Filter) ([]model.RecipeResponse, int64, error) {
	if err := permission.Check(a, permission.ActionRead, permission.NoTarget); err != nil {
		return nil, 0, err
	}

	rows, total, err := s.repo.List(ctx, a.UserID, filter)
	if err != nil {
		return nil, 0, err
	}

	out, err := s.hydrate(ctx, rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (s *service) Get(ctx context.Context, a actor.Actor, id int64) (*model.RecipeResponse, error) {
	row, err := s.repo.GetByID(ctx, id, a.UserID)
	if err != nil {
		return nil, err
	}
	if err := permission.CheckOwned(a, permission.ActionRead, row.AuthorID); err != nil {
		return nil, err
	}

	out, err := s.hydrate(ctx, []model.RecipeRow{*row})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (s *service) Create(ctx context.Context, a actor.Actor, req model.CreateRecipeRequest) (*model.RecipeResponse, error) {
	if err := permission.Check(a, permission.ActionCreateRecipe, permission.NoTarget); err != nil {
		return nil, err
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.NewValidation(err)
	}

	rec, err := s.repo.Create(ctx, &model.Recipe{
		AuthorID:    a.UserID,
		Name:        req.Name,
		Text:        req.Text,
		Image:       req.Image,
		CookingTime: req.CookingTime,
	}, req.Ingredients, req.Tags)
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, a, rec.ID)
}

func (s *service) Update(ctx context.Context, a actor.Actor, id int64, req model.UpdateRecipeRequest) (*model.RecipeResponse, error) {
	if !a.IsAuthenticated() {
		return nil, permission.ErrUnauthorized
	}

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := permission.CheckOwned(a, permission.ActionUpdateRecipe, current.AuthorID); err != nil {
		return nil, err
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.NewValidation(err)
	}

	req.Apply(current)
	if _, err := s.repo.Update(ctx, current, req.Ingredients, req.Tags); err != nil {
		return nil, err
	}

	return s.Get(ctx, a, id)
}

func (s *service) Delete(ctx context.Context, a actor.Actor, id int64) error {
	if !a.IsAuthenticated() {
		return permission.ErrUnauthorized
	}

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := permission.CheckOwned(a, permission.ActionDeleteRecipe, current.AuthorID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}

// hydrate attaches tags and ingredients with one query each, whatever the page size.
func (s *service) hydrate(ctx context.Context, rows []model.RecipeRow) ([]model.RecipeResponse, error) {
	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}

	tags, err := s.repo.Tags(ctx, ids)
	if err != nil {
		return nil, err
	}
	ingredients, err := s.repo.Ingredients(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]model.RecipeResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Response(tags[r.ID], ingredients[r.ID]))
	}
	return out, nil
}
