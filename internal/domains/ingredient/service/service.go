package service

import (
	"context"

	"foodgram-backend/internal/domains/ingredient/model"
	"foodgram-backend/internal/domains/ingredient/repository"
	"foodgram-backend/internal/shared/actor"
	"foodgram-backend/internal/shared/apperror"
	"foodgram-backend/internal/shared/permission"
)

// Service is the ingredient use-case layer.
type Service interface {
	List(ctx context.Context, filter model.Filter) ([]model.Ingredient, error)
	Get(ctx context.Context, id int64) (*model.Ingredient, error)
	Create(ctx context.Context, a actor.Actor, req model.CreateIngredientRequest) (*model.Ingredient, error)
	Update(ctx context.Context, a actor.Actor, id int64, req model.UpdateIngredientRequest) (*model.Ingredient, error)
	Delete(ctx context.Context, a actor.Actor, id int64) error
	Import(ctx context.Context, items []model.CreateIngredientRequest) (int64, error)
}

type service struct {
	repo repository.Repository
}

func NewService(repo repository.Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, filter model.Filter) ([]model.Ingredient, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Get(ctx context.Context, id int64) (*model.Ingredient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, a actor.Actor, req model.CreateIngredientRequest) (*model.Ingredient, error) {
	if err := permission.Check(a, permission.ActionManageReference, permission.NoTarget); err != nil {
		return nil, err
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.NewValidation(err)
	}

	return s.repo.Create(ctx, &model.Ingredient{Name: req.Name, MeasurementUnit: req.MeasurementUnit})
}

func (s *service) Update(ctx context.Context, a actor.Actor, id int64, req model.UpdateIngredientRequest) (*model.Ingredient, error) {
	if err := permission.Check(a, permission.ActionManageReference, permission.NoTarget); err != nil {
		return nil, err
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.NewValidation(err)
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Apply(current)

	return s.repo.Update(ctx, current)
}

func (s *service) Delete(ctx context.Context, a actor.Actor, id int64) error {
	if err := permission.Check(a, permission.ActionManageReference, permission.NoTarget); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Import validates every row before inserting any. Used by the CLI loader,
// which runs with operator privileges and has no actor.
func (s *service) Import(ctx context.Context, items []model.CreateIngredientRequest) (int64, error) {
	rows := make([]model.Ingredient, 0, len(items))
	for idx := range items {
		items[idx].Normalize()
		if err := items[idx].Validate(); err != nil {
			return 0, apperror.NewValidation(err)
		}
		rows = append(rows, model.Ingredient{Name: items[idx].Name, MeasurementUnit: items[idx].MeasurementUnit})
	}
	return s.repo.BulkInsert(ctx, rows)
}
