package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	apperrors "github.com/jwalitptl/marketplace-api/pkg/errors"

	"github.com/jwalitptl/marketplace-api/internal/model"
	"github.com/jwalitptl/marketplace-api/internal/repository"
)

type Service struct {
	repo     repository.ServiceRepository
	userRepo repository.UserRepository
}

func NewService(repo repository.ServiceRepository, userRepo repository.UserRepository) *Service {
	return &Service{repo: repo, userRepo: userRepo}
}

func (s *Service) CreateService(ctx context.Context, providerID uuid.UUID, req *model.CreateServiceRequest) (*model.Service, error) {
	provider, err := s.userRepo.Get(ctx, providerID)
	if err != nil || !provider.IsProvider() {
		return nil, apperrors.NotFound("provider", err)
	}

	duration := req.DurationMinutes
	if duration <= 0 {
		duration = model.DefaultServiceDuration
	}

	svc := &model.Service{
		ProviderID:      providerID,
		CategoryID:      req.CategoryID,
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DiscountPrice:   req.DiscountPrice,
		DurationMinutes: duration,
		IsActive:        true,
	}
	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return svc, nil
}

func (s *Service) GetService(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) UpdateService(ctx context.Context, providerID, id uuid.UUID, req *model.UpdateServiceRequest) (*model.Service, error) {
	svc, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc.ProviderID != providerID {
		return nil, apperrors.Forbidden("not your service")
	}

	if req.CategoryID != nil {
		svc.CategoryID = req.CategoryID
	}
	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.DiscountPrice != nil {
		svc.DiscountPrice = req.DiscountPrice
	}
	if req.DurationMinutes != nil {
		svc.DurationMinutes = *req.DurationMinutes
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *Service) DeleteService(ctx context.Context, providerID, id uuid.UUID) error {
	svc, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if svc.ProviderID != providerID {
		return apperrors.Forbidden("not your service")
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) SearchServices(ctx context.Context, filters *model.ServiceFilters) ([]*model.Service, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) CreateCategory(ctx context.Context, category *model.Category) error {
	if category.Name == "" {
		return apperrors.BadRequest("category name is required", nil)
	}
	return s.repo.CreateCategory(ctx, category)
}

func (s *Service) ListCategories(ctx context.Context) ([]*model.Category, error) {
	return s.repo.ListCategories(ctx)
}
