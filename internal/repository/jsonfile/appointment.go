package jsonfile

import (
	"context"

	"github.com/ksaito/salon-api/internal/model"
	apperrors "github.com/ksaito/salon-api/pkg/errors"
)

type AppointmentRepository struct {
	col *collection[model.Appointment]
}

func NewAppointmentRepository(store *Store) *AppointmentRepository {
	return &AppointmentRepository{col: newCollection[model.Appointment](store, "appointments.json", "appointments")}
}

func (r *AppointmentRepository) Create(ctx context.Context, apt *model.Appointment) error {
	return r.col.mutate(ctx, func(items []model.Appointment) ([]model.Appointment, error) {
		return append(items, *apt), nil
	})
}

func (r *AppointmentRepository) Get(ctx context.Context, id string) (*model.Appointment, error) {
	items, err := r.col.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			apt := items[i]
			return &apt, nil
		}
	}
	return nil, apperrors.NewNotFound("appointment", nil)
}

func (r *AppointmentRepository) Update(ctx context.Context, apt *model.Appointment) error {
	return r.col.mutate(ctx, func(items []model.Appointment) ([]model.Appointment, error) {
		for i := range items {
			if items[i].ID == apt.ID {
				items[i] = *apt
				return items, nil
			}
		}
		return nil, apperrors.NewNotFound("appointment", nil)
	})
}

func (r *AppointmentRepository) Delete(ctx context.Context, id string) error {
	return r.col.mutate(ctx, func(items []model.Appointment) ([]model.Appointment, error) {
		for i := range items {
			if items[i].ID == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, apperrors.NewNotFound("appointment", nil)
	})
}

func (r *AppointmentRepository) List(ctx context.Context) ([]*model.Appointment, error) {
	items, err := r.col.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*model.Appointment, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out, nil
}

func (r *AppointmentRepository) ListByClient(ctx context.Context, clientID string) ([]*model.Appointment, error) {
	items, err := r.col.load(ctx)
	if err != nil {
		return nil, err
	}
	var out []*model.Appointment
	for i := range items {
		if items[i].ClientID == clientID {
			out = append(out, &items[i])
		}
	}
	return out, nil
}
