package jsonfile

import (
	"context"

	"github.com/ksaito/salon-api/internal/model"
	apperrors "github.com/ksaito/salon-api/pkg/errors"
)

type CustomerRepository struct {
	col *collection[model.Customer]
}

func NewCustomerRepository(store *Store) *CustomerRepository {
	return &CustomerRepository{col: newCollection[model.Customer](store, "customers.json", "customers")}
}

func (r *CustomerRepository) Create(ctx context.Context, customer *model.Customer) error {
	return r.col.mutate(ctx, func(items []model.Customer) ([]model.Customer, error) {
		return append(items, *customer), nil
	})
}

func (r *CustomerRepository) Get(ctx context.Context, id string) (*model.Customer, error) {
	items, err := r.col.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			customer := items[i]
			return &customer, nil
		}
	}
	return nil, apperrors.NewNotFound("customer", nil)
}

func (r *CustomerRepository) Update(ctx context.Context, customer *model.Customer) error {
	return r.col.mutate(ctx, func(items []model.Customer) ([]model.Customer, error) {
		for i := range items {
			if items[i].ID == customer.ID {
				items[i] = *customer
				return items, nil
			}
		}
		return nil, apperrors.NewNotFound("customer", nil)
	})
}

func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	return r.col.mutate(ctx, func(items []model.Customer) ([]model.Customer, error) {
		for i := range items {
			if items[i].ID == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, apperrors.NewNotFound("customer", nil)
	})
}

func (r *CustomerRepository) List(ctx context.Context) ([]*model.Customer, error) {
	items, err := r.col.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*model.Customer, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out, nil
}
