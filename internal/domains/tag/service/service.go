package service

import (
	"context"

	"foodgram-backend/internal/domains/tag/model"
	"foodgram-backend/internal/domains/tag/repository"
	"foodgram-backend/internal/shared/actor"
	"foodgram-backend/internal/shared/apperror"
	"foodgram-backend/internal/shared/permission"
	"foodgram-backend/internal/shared/utils"
)

type Service interface {
	List(ctx context.Context) ([]model.Tag, error)
	Get(ctx context.Context, id int64) (*model.Tag, error)
	Create(ctx context.Context, a actor.Actor, req model.CreateTagRequest) (*model.Tag, error)
	Update(ctx context.Context, a actor.Actor, id int64, req model.UpdateTagRequest) (*model.Tag, error)
	Delete(ctx context.Context, a actor.Actor, id int64) error
}

type service struct {
	repo repository.Repository
}

func NewService(repo repository.Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]model.Tag, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id int64) (*model.Tag, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, a actor.Actor, req model.CreateTagRequest) (*model.Tag, error) {
	if err := permission.Check(a, permission.ActionManageReference, permission.NoTarget); err != nil {
		return nil, err
	}

	req.Normalize()
	if req.Slug == "" {
		req.Slug = utils.GenerateSlug(req.Name)
	}
	if err := req.Validate(); err != nil {
		return nil, apperror.NewValidation(err)
	}

	return s.repo.Create(ctx, &model.Tag{Name: req.Name, Color: req.Color, Slug: req.Slug})
}

func (s *service) Update(ctx context.Context, a actor.Actor, id int64, req model.UpdateTagRequest) (*model.Tag, error) {
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
