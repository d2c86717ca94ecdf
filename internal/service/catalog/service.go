// Package catalog manages the salon's service offerings. Services are soft
// deleted so historical appointment snapshots keep resolving.
package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ksaito/salon-api/internal/model"
	"github.com/ksaito/salon-api/internal/repository"
	apperrors "github.com/ksaito/salon-api/pkg/errors"
)

type Service struct {
	repo repository.ServiceRepository
}

func NewService(repo repository.ServiceRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filter model.ServiceFilter) ([]*model.Service, error) {
	services, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	activity := filter.Activity
	if activity == "" {
		activity = model.ServiceFilterActive
	}

	out := make([]*model.Service, 0, len(services))
	for _, svc := range services {
		switch activity {
		case model.ServiceFilterActive:
			if !svc.IsActive {
				continue
			}
		case model.ServiceFilterInactive:
			if svc.IsActive {
				continue
			}
		}
		if filter.Category != "" && svc.Category != filter.Category {
			continue
		}
		out = append(out, svc)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (*model.Service, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req *model.CreateServiceRequest) (*model.Service, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidation("service name is required")
	}
	if req.DurationMinutes <= 0 {
		return nil, apperrors.NewValidation("duration must be positive")
	}
	if req.Price < 0 {
		return nil, apperrors.NewValidation("price must not be negative")
	}
	if err := s.checkNameUnique(ctx, name, ""); err != nil {
		return nil, err
	}

	now := time.Now()
	svc := &model.Service{
		ID:              uuid.New().String(),
		Name:            name,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Category:        req.Category,
		Description:     req.Description,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return svc, nil
}

func (s *Service) Update(ctx context.Context, id string, req *model.UpdateServiceRequest) (*model.Service, error) {
	svc, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidation("service name is required")
		}
		svc.Name = name
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 {
			return nil, apperrors.NewValidation("duration must be positive")
		}
		svc.DurationMinutes = *req.DurationMinutes
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, apperrors.NewValidation("price must not be negative")
		}
		svc.Price = *req.Price
	}
	if req.Category != nil {
		svc.Category = *req.Category
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}

	// Uniqueness is only enforced among active services, so a rename and a
	// reactivation both need the check.
	if svc.IsActive {
		if err := s.checkNameUnique(ctx, svc.Name, svc.ID); err != nil {
			return nil, err
		}
	}

	svc.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}
	return svc, nil
}

// Deactivate flips the active flag. The record is never removed from storage.
func (s *Service) Deactivate(ctx context.Context, id string) (*model.Service, error) {
	svc, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	svc.IsActive = false
	svc.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to deactivate service: %w", err)
	}
	return svc, nil
}

func (s *Service) checkNameUnique(ctx context.Context, name, excludeID string) error {
	services, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list services: %w", err)
	}
	for _, existing := range services {
		if existing.IsActive && existing.ID != excludeID && existing.Name == name {
			return apperrors.NewValidationf("an active service named %q already exists", name)
		}
	}
	return nil
}
