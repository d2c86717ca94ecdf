// Package customer manages customer records and their derived statistics.
package customer

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
)

type Service struct {
	repo         repository.CustomerRepository
	appointments repository.AppointmentRepository
}

func NewService(repo repository.CustomerRepository, appointments repository.AppointmentRepository) *Service {
	return &Service{repo: repo, appointments: appointments}
}

func (s *Service) List(ctx context.Context, filter model.CustomerFilter) ([]*model.CustomerWithStats, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	appointments, err := s.appointments.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	byClient := make(map[string][]*model.Appointment)
	for _, apt := range appointments {
		byClient[apt.ClientID] = append(byClient[apt.ClientID], apt)
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]*model.CustomerWithStats, 0, len(customers))
	for _, c := range customers {
		if search != "" && !matches(c, search) {
			continue
		}
		out = append(out, &model.CustomerWithStats{
			Customer: *c,
			Stats:    ProjectStats(byClient[c.ID]),
		})
	}

	sortCustomers(out, filter.Sort)
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (*model.CustomerDetail, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	appointments, err := s.appointments.ListByClient(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	sort.SliceStable(appointments, func(i, j int) bool {
		return appointments[i].Start.After(appointments[j].Start)
	})

	return &model.CustomerDetail{
		Customer:     *c,
		Stats:        ProjectStats(appointments),
		Appointments: appointments,
	}, nil
}

func (s *Service) Create(ctx context.Context, req *model.CreateCustomerRequest) (*model.Customer, error) {
	if err := s.checkPhoneUnique(ctx, req.Phone, ""); err != nil {
		return nil, err
	}

	now := time.Now()
	c := &model.Customer{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(req.Name),
		Kana:      req.Kana,
		Phone:     req.Phone,
		Email:     req.Email,
		Note:      req.Note,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if c.Name == "" {
		return nil, apperrors.NewValidation("customer name is required")
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return c, nil
}

func (s *Service) Update(ctx context.Context, id string, req *model.UpdateCustomerRequest) (*model.Customer, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidation("customer name is required")
		}
		c.Name = name
	}
	if req.Kana != nil {
		c.Kana = *req.Kana
	}
	if req.Phone != nil {
		if err := s.checkPhoneUnique(ctx, *req.Phone, c.ID); err != nil {
			return nil, err
		}
		c.Phone = *req.Phone
	}
	if req.Email != nil {
		c.Email = *req.Email
	}
	if req.Note != nil {
		c.Note = *req.Note
	}

	c.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	return c, nil
}

// Delete removes the customer and returns the removed record.
func (s *Service) Delete(ctx context.Context, id string) (*model.Customer, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete customer: %w", err)
	}
	return c, nil
}

func (s *Service) checkPhoneUnique(ctx context.Context, phone, excludeID string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return apperrors.NewValidation("phone number is required")
	}
	customers, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list customers: %w", err)
	}
	for _, existing := range customers {
		if existing.ID != excludeID && existing.Phone == phone {
			return apperrors.NewValidationf("a customer with phone number %s already exists", phone)
		}
	}
	return nil
}

func matches(c *model.Customer, search string) bool {
	return strings.Contains(strings.ToLower(c.Name), search) ||
		strings.Contains(strings.ToLower(c.Kana), search) ||
		strings.Contains(c.Phone, search)
}

func sortCustomers(customers []*model.CustomerWithStats, key string) {
	switch key {
	case model.CustomerSortLastVisit:
		sort.SliceStable(customers, func(i, j int) bool {
			a, b := customers[i].Stats.LastVisit, customers[j].Stats.LastVisit
			switch {
			case a == nil:
				return false
			case b == nil:
				return true
			default:
				return a.After(*b)
			}
		})
	case model.CustomerSortVisits:
		sort.SliceStable(customers, func(i, j int) bool {
			return customers[i].Stats.TotalVisits > customers[j].Stats.TotalVisits
		})
	case model.CustomerSortSpent:
		sort.SliceStable(customers, func(i, j int) bool {
			return customers[i].Stats.TotalSpent > customers[j].Stats.TotalSpent
		})
	default:
		sort.SliceStable(customers, func(i, j int) bool {
			return sortName(customers[i]) < sortName(customers[j])
		})
	}
}

// sortName prefers the kana reading when present.
func sortName(c *model.CustomerWithStats) string {
	if c.Kana != "" {
		return c.Kana
	}
	return c.Name
}
