package service

import (
	"context"

	recipemodel "foodgram-backend/internal/domains/recipe/model"
	"foodgram-backend/internal/domains/user/model"
	"foodgram-backend/internal/domains/user/repository"
	"foodgram-backend/internal/shared/actor"
	"foodgram-backend/internal/shared/apperror"
	"foodgram-backend/internal/shared/permission"
)

// SubscriptionResponse is a followed author with their latest recipes.
type SubscriptionResponse struct {
	model.UserResponse
	Recipes      []recipemodel.ShortRecipe `json:"recipes"`
	RecipesCount int64                     `json:"recipes_count"`
}

type Service interface {
	Register(ctx context.Context, a actor.Actor, req model.RegisterRequest) (*model.UserResponse, error)
	GetMe(ctx context.Context, a actor.Actor) (*model.UserResponse, error)
	Get(ctx context.Context, a actor.Actor, id int64) (*model.UserResponse, error)
	List(ctx context.Context, a actor.Actor, filter model.ListFilter) ([]model.UserResponse, int64, error)
	Delete(ctx context.Context, a actor.Actor, id int64) error

	Subscribe(ctx context.Context, a actor.Actor, authorID int64, recipesLimit int) (*SubscriptionResponse, error)
	Unsubscribe(ctx context.Context, a actor.Actor, authorID int64) error
	ListSubscriptions(ctx context.Context, a actor.Actor, filter model.SubscriptionFilter) ([]SubscriptionResponse, int64, error)
}

type service struct {
	repo repository.Repository
}

func NewService(repo repository.Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, a actor.Actor, req model.RegisterRequest) (*model.UserResponse, error) {
	if err := permission.Check(a, permission.ActionRegister, permission.NoTarget); err != nil {
		return nil, err
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.NewValidation(err)
	}

	u, err := s.repo.Create(ctx, &model.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      actor.RoleUser,
	})
	if err != nil {
		return nil, err
	}

	resp := model.UserWithSubscription{User: *u}.Response()
	return &resp, nil
}

func (s *service) GetMe(ctx context.Context, a actor.Actor) (*model.UserResponse, error) {
	if err := permission.Check(a, permission.ActionReadMe, permission.NoTarget); err != nil {
		return nil, err
	}
	return s.get(ctx, a, a.UserID)
}

func (s *service) Get(ctx context.Context, a actor.Actor, id int64) (*model.UserResponse, error) {
	if err := permission.CheckOwned(a, permission.ActionRead, id); err != nil {
		return nil, err
	}
	return s.get(ctx, a, id)
}

func (s *service) get(ctx context.Context, a actor.Actor, id int64) (*model.UserResponse, error) {
	u, err := s.repo.GetByID(ctx, id, a.UserID)
	if err != nil {
		return nil, err
	}
	resp := u.Response()
	return &resp, nil
}

func (s *service) List(ctx context.Context, a actor.Actor, filter model.ListFilter) ([]model.UserResponse, int64, error) {
	if err := permission.Check(a, permission.ActionRead, permission.NoTarget); err != nil {
		return nil, 0, err
	}

	users, total, err := s.repo.List(ctx, a.UserID, filter)
	if err != nil {
		return nil, 0, err
	}

	out := make([]model.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, u.Response())
	}
	return out, total, nil
}

func (s *service) Delete(ctx context.Context, a actor.Actor, id int64) error {
	if err := permission.CheckOwned(a, permission.ActionDeleteUser, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ========================================
// SUBSCRIPTIONS
// ========================================

func (s *service) Subscribe(ctx context.Context, a actor.Actor, authorID int64, recipesLimit int) (*SubscriptionResponse, error) {
	if err := permission.CheckOwned(a, permission.ActionToggleSubscribe, authorID); err != nil {
		return nil, err
	}
	if a.Owns(authorID) {
		return nil, model.ErrSelfSubscription
	}

	if err := s.repo.Subscribe(ctx, a.UserID, authorID); err != nil {
		return nil, err
	}

	row, err := s.repo.GetSubscription(ctx, authorID)
	if err != nil {
		return nil, err
	}

	subs, err := s.withRecipes(ctx, []repository.SubscriptionRow{*row}, recipesLimit)
	if err != nil {
		return nil, err
	}
	return &subs[0], nil
}

func (s *service) Unsubscribe(ctx context.Context, a actor.Actor, authorID int64) error {
	if err := permission.CheckOwned(a, permission.ActionToggleSubscribe, authorID); err != nil {
		return err
	}
	if a.Owns(authorID) {
		return model.ErrSelfSubscription
	}

	exists, err := s.repo.Exists(ctx, authorID)
	if err != nil {
		return err
	}
	if !exists {
		return model.ErrAuthorNotFound
	}

	return s.repo.Unsubscribe(ctx, a.UserID, authorID)
}

func (s *service) ListSubscriptions(ctx context.Context, a actor.Actor, filter model.SubscriptionFilter) ([]SubscriptionResponse, int64, error) {
	if err := permission.Check(a, permission.ActionListSubscriptions, permission.NoTarget); err != nil {
		return nil, 0, err
	}

	rows, total, err := s.repo.ListSubscriptions(ctx, a.UserID, filter)
	if err != nil {
		return nil, 0, err
	}

	out, err := s.withRecipes(ctx, rows, filter.RecipesLimit)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// withRecipes attaches the latest recipes of every author in one query.
// Subscription rows are always is_subscribed for the caller.
func (s *service) withRecipes(ctx context.Context, rows []repository.SubscriptionRow, recipesLimit int) ([]SubscriptionResponse, error) {
	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}

	recipes, err := s.repo.RecipesByAuthors(ctx, ids, recipesLimit)
	if err != nil {
		return nil, err
	}

	out := make([]SubscriptionResponse, 0, len(rows))
	for _, r := range rows {
		list := recipes[r.ID]
		if list == nil {
			list = []recipemodel.ShortRecipe{}
		}
		out = append(out, SubscriptionResponse{
			UserResponse: model.UserWithSubscription{User: r.User, IsSubscribed: true}.Response(),
			Recipes:      list,
			RecipesCount: r.RecipesCount,
		})
	}
	return out, nil
}
