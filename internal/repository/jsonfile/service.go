package jsonfile

import (
	"context"

	"github.com/ksaito/salon-api/internal/model"
	apperrors "github.com/ksaito/salon-api/pkg/errors"
)

type ServiceRepository struct {
	col *collection[model.Service]
}

func NewServiceRepository(store *Store) *ServiceRepository {
	return &ServiceRepository{col: newCollection[model.Service](store, "services.json", "services")}
}

func (r *ServiceRepository) Create(ctx context.Context, svc *model.Service) error {
	return r.col.mutate(ctx, func(items []model.Service) ([]model.Service, error) {
		return append(items, *svc), nil
	})
}

func (r *ServiceRepository) Get(ctx context.Context, id string) (*model.Service, error) {
	items, err := r.col.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			svc := items[i]
			return &svc, nil
		}
	}
	return nil, apperrors.NewNotFound("service", nil)
}

func (r *ServiceRepository) Update(ctx context.Context, svc *model.Service) error {
	return r.col.mutate(ctx, func(items []model.Service) ([]model.Service, error) {
		for i := range items {
			if items[i].ID == svc.ID {
				items[i] = *svc
				return items, nil
			}
		}
		return nil, apperrors.NewNotFound("service", nil)
	})
}

func (r *ServiceRepository) List(ctx context.Context) ([]*model.Service, error) {
	items, err := r.col.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*model.Service, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out, nil
}
