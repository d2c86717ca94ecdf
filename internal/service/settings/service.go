// Package settings stores the calendar display preferences as an explicit,
// validated settings document.
package settings

import (
	"context"
	"fmt"

	"github.com/ksaito/salon-api/internal/model"
	"github.com/ksaito/salon-api/internal/repository"
	apperrors "github.com/ksaito/salon-api/pkg/errors"
)

var allowedSlotIntervals = map[int]bool{5: true, 10: true, 15: true, 30: true, 60: true}

type Service struct {
	repo repository.SettingsRepository
}

func NewService(repo repository.SettingsRepository) *Service {
	return &Service{repo: repo}
}

// Get returns the stored settings, or the defaults when nothing has been
// saved yet.
func (s *Service) Get(ctx context.Context) (model.CalendarSettings, error) {
	settings, found, err := s.repo.Get(ctx)
	if err != nil {
		return model.CalendarSettings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	if !found {
		return model.DefaultCalendarSettings(), nil
	}
	return settings, nil
}

func (s *Service) Update(ctx context.Context, req *model.UpdateCalendarSettingsRequest) (model.CalendarSettings, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return model.CalendarSettings{}, err
	}

	if req.TimeRangeStart != nil {
		settings.TimeRangeStart = *req.TimeRangeStart
	}
	if req.TimeRangeEnd != nil {
		settings.TimeRangeEnd = *req.TimeRangeEnd
	}
	if req.DayRange != nil {
		settings.DayRange = *req.DayRange
	}
	if req.TimeSlotInterval != nil {
		settings.TimeSlotInterval = *req.TimeSlotInterval
	}
	if req.ShowWeekends != nil {
		settings.ShowWeekends = *req.ShowWeekends
	}

	if err := validate(settings); err != nil {
		return model.CalendarSettings{}, err
	}
	if err := s.repo.Save(ctx, settings); err != nil {
		return model.CalendarSettings{}, fmt.Errorf("failed to save settings: %w", err)
	}
	return settings, nil
}

func validate(settings model.CalendarSettings) error {
	if settings.TimeRangeStart < 0 || settings.TimeRangeEnd > 24 {
		return apperrors.NewValidation("time range must be within 0 and 24")
	}
	if settings.TimeRangeStart >= settings.TimeRangeEnd {
		return apperrors.NewValidation("time range start must be before its end")
	}
	if settings.DayRange < 1 || settings.DayRange > 31 {
		return apperrors.NewValidation("day range must be between 1 and 31")
	}
	if !allowedSlotIntervals[settings.TimeSlotInterval] {
		return apperrors.NewValidation("time slot interval must be one of 5, 10, 15, 30 or 60 minutes")
	}
	return nil
}
