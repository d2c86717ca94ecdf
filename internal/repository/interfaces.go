package repository

import (
	"context"

	"github.com/ksaito/salon-api/internal/model"
)

// All repository interfaces in one file
type (
	// ServiceRepository handles catalog storage. Records are never removed;
	// deactivation is an update.
	ServiceRepository interface {
		Create(ctx context.Context, svc *model.Service) error
		Get(ctx context.Context, id string) (*model.Service, error)
		Update(ctx context.Context, svc *model.Service) error
		List(ctx context.Context) ([]*model.Service, error)
	}

	AppointmentRepository interface {
		Create(ctx context.Context, apt *model.Appointment) error
		Get(ctx context.Context, id string) (*model.Appointment, error)
		Update(ctx context.Context, apt *model.Appointment) error
		Delete(ctx context.Context, id string) error
		List(ctx context.Context) ([]*model.Appointment, error)
		ListByClient(ctx context.Context, clientID string) ([]*model.Appointment, error)
	}

	CustomerRepository interface {
		Create(ctx context.Context, customer *model.Customer) error
		Get(ctx context.Context, id string) (*model.Customer, error)
		Update(ctx context.Context, customer *model.Customer) error
		Delete(ctx context.Context, id string) error
		List(ctx context.Context) ([]*model.Customer, error)
	}

	// SettingsRepository stores the calendar display settings document. Get
	// reports found=false when nothing has been saved yet.
	SettingsRepository interface {
		Get(ctx context.Context) (model.CalendarSettings, bool, error)
		Save(ctx context.Context, settings model.CalendarSettings) error
	}
)
