// Package booking owns the appointment aggregate: creation, edits, the
// status lifecycle and the derived totals.
package booking

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ksaito/salon-api/internal/model"
	"github.com/ksaito/salon-api/internal/repository"
	apperrors "github.com/ksaito/salon-api/pkg/errors"
	"github.com/ksaito/salon-api/pkg/metrics"
)

type Service struct {
	repo      repository.AppointmentRepository
	customers repository.CustomerRepository
	catalog   repository.ServiceRepository
	metrics   *metrics.Metrics
}

func NewService(repo repository.AppointmentRepository, customers repository.CustomerRepository, catalog repository.ServiceRepository, m *metrics.Metrics) *Service {
	return &Service{
		repo:      repo,
		customers: customers,
		catalog:   catalog,
		metrics:   m,
	}
}

func (s *Service) Create(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	now := time.Now()
	apt := &model.Appointment{
		ID:         uuid.New().String(),
		Start:      req.Start,
		ClientID:   req.ClientID,
		ClientName: strings.TrimSpace(req.ClientName),
		Phone:      req.Phone,
		Note:       req.Note,
		Status:     model.AppointmentStatusScheduled,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.resolveClient(ctx, apt); err != nil {
		return nil, err
	}
	if apt.ClientName == "" {
		return nil, apperrors.NewValidation("client name is required")
	}

	services, err := s.buildServices(ctx, req.Services)
	if err != nil {
		return nil, err
	}
	apt.Services = services

	titleOverridden := req.Title != ""
	if titleOverridden {
		apt.Title = req.Title
	}
	apt.Recompute(titleOverridden)

	if err := s.repo.Create(ctx, apt); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}
	if s.metrics != nil {
		s.metrics.AppointmentsCreated.Inc()
	}
	return apt, nil
}

func (s *Service) Get(ctx context.Context, id string) (*model.Appointment, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, filter model.AppointmentFilter) ([]*model.Appointment, error) {
	appointments, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	out := make([]*model.Appointment, 0, len(appointments))
	for _, apt := range appointments {
		if filter.ClientID != "" && apt.ClientID != filter.ClientID {
			continue
		}
		if filter.Status != "" && apt.Status != filter.Status {
			continue
		}
		if !filter.From.IsZero() && apt.Start.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && apt.Start.After(filter.To) {
			continue
		}
		out = append(out, apt)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})
	return out, nil
}

// Update merges the patch over the existing record. Appointments that have
// left the scheduled state can no longer be edited.
func (s *Service) Update(ctx context.Context, id string, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if apt.Status.Terminal() {
		return nil, apperrors.NewInvalidTransition(fmt.Sprintf("cannot edit a %s appointment", apt.Status))
	}

	titleOverridden := apt.Title != model.DeriveTitle(apt.Services)
	if req.Title != nil {
		apt.Title = *req.Title
		titleOverridden = *req.Title != ""
	}
	if req.Start != nil {
		apt.Start = *req.Start
	}
	if req.ClientID != nil {
		apt.ClientID = *req.ClientID
		if err := s.resolveClient(ctx, apt); err != nil {
			return nil, err
		}
	}
	if req.ClientName != nil {
		if strings.TrimSpace(*req.ClientName) == "" {
			return nil, apperrors.NewValidation("client name is required")
		}
		apt.ClientName = strings.TrimSpace(*req.ClientName)
	}
	if req.Phone != nil {
		apt.Phone = *req.Phone
	}
	if req.Note != nil {
		apt.Note = *req.Note
	}
	if req.Services != nil {
		services, err := s.buildServices(ctx, req.Services)
		if err != nil {
			return nil, err
		}
		apt.Services = services
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, apperrors.NewValidationf("unknown status %q", *req.Status)
		}
		apt.Status = *req.Status
	}

	apt.Recompute(titleOverridden)
	apt.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, apt); err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}
	if req.Status != nil && s.metrics != nil {
		s.metrics.AppointmentsByStatus.WithLabelValues(string(apt.Status)).Inc()
	}
	return apt, nil
}

// Complete marks a scheduled appointment completed. Completed is terminal.
func (s *Service) Complete(ctx context.Context, id string) (*model.Appointment, error) {
	return s.transition(ctx, id, model.AppointmentStatusCompleted)
}

// Cancel marks a scheduled appointment cancelled. Cancelled is terminal.
func (s *Service) Cancel(ctx context.Context, id string) (*model.Appointment, error) {
	return s.transition(ctx, id, model.AppointmentStatusCancelled)
}

func (s *Service) transition(ctx context.Context, id string, to model.AppointmentStatus) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if apt.Status != model.AppointmentStatusScheduled {
		return nil, apperrors.NewInvalidTransition(
			fmt.Sprintf("cannot transition a %s appointment to %s", apt.Status, to))
	}

	apt.Status = to
	apt.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, apt); err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}
	if s.metrics != nil {
		s.metrics.AppointmentsByStatus.WithLabelValues(string(to)).Inc()
	}
	return apt, nil
}

// Delete removes the record entirely, unlike the catalog's soft delete.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// resolveClient fills missing contact fields from the customer record when a
// client id is given.
func (s *Service) resolveClient(ctx context.Context, apt *model.Appointment) error {
	if apt.ClientID == "" {
		return nil
	}
	customer, err := s.customers.Get(ctx, apt.ClientID)
	if err != nil {
		return err
	}
	if apt.ClientName == "" {
		apt.ClientName = customer.Name
	}
	if apt.Phone == "" {
		apt.Phone = customer.Phone
	}
	return nil
}

// buildServices turns the submitted selection into persisted snapshots,
// filling omitted fields from the current catalog.
func (s *Service) buildServices(ctx context.Context, reqs []model.AppointmentServiceRequest) ([]model.AppointmentService, error) {
	services := make([]model.AppointmentService, 0, len(reqs))
	for _, req := range reqs {
		snapshot := model.AppointmentService{ID: req.ID, Name: req.Name}

		if req.Name == "" || req.Duration == nil || req.Price == nil {
			svc, err := s.catalog.Get(ctx, req.ID)
			if err != nil {
				return nil, err
			}
			snapshot.Name = svc.Name
			snapshot.Duration = svc.DurationMinutes
			snapshot.Price = svc.Price
			if req.Name != "" {
				snapshot.Name = req.Name
			}
		}
		if req.Duration != nil {
			snapshot.Duration = *req.Duration
		}
		if req.Price != nil {
			snapshot.Price = *req.Price
		}

		if snapshot.Duration <= 0 {
			return nil, apperrors.NewValidationf("service %s duration must be positive", req.ID)
		}
		if snapshot.Price < 0 {
			return nil, apperrors.NewValidationf("service %s price must not be negative", req.ID)
		}
		services = append(services, snapshot)
	}
	return services, nil
}
