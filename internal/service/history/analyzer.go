// Package history aggregates a customer's completed appointments into
// per-service usage statistics and adjustment suggestions for the booking
// flow.
package history

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/ksaito/salon-api/internal/model"
	"github.com/ksaito/salon-api/internal/repository"
	apperrors "github.com/ksaito/salon-api/pkg/errors"
)

// Trend statistics cover this many most-recent uses.
const recentTrendWindow = 3

type Analyzer struct {
	appointments repository.AppointmentRepository
	services     repository.ServiceRepository
}

func NewAnalyzer(appointments repository.AppointmentRepository, services repository.ServiceRepository) *Analyzer {
	return &Analyzer{appointments: appointments, services: services}
}

// History returns a customer's appointments, most recent first. With
// completedOnly set, scheduled and cancelled appointments are excluded.
func (a *Analyzer) History(ctx context.Context, customerID string, completedOnly bool) ([]*model.Appointment, error) {
	appointments, err := a.appointments.ListByClient(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	if completedOnly {
		filtered := appointments[:0]
		for _, apt := range appointments {
			if apt.Status == model.AppointmentStatusCompleted {
				filtered = append(filtered, apt)
			}
		}
		appointments = filtered
	}

	sort.SliceStable(appointments, func(i, j int) bool {
		return appointments[i].Start.After(appointments[j].Start)
	})
	return appointments, nil
}

// usage is one historical (duration, price) tuple, collected most recent
// first.
type usage struct {
	duration int
	price    int
	name     string
}

// Analyze computes one HistoricalAdjustment per requested service over the
// customer's completed appointments. Services the customer never used are
// omitted from the result entirely.
func (a *Analyzer) Analyze(ctx context.Context, customerID string, serviceIDs []string) ([]model.HistoricalAdjustment, error) {
	completed, err := a.History(ctx, customerID, true)
	if err != nil {
		return nil, err
	}

	results := make([]model.HistoricalAdjustment, 0, len(serviceIDs))
	for _, serviceID := range serviceIDs {
		var usages []usage
		for _, apt := range completed {
			for _, svc := range apt.Services {
				if svc.ID == serviceID {
					usages = append(usages, usage{duration: svc.Duration, price: svc.Price, name: svc.Name})
				}
			}
		}
		if len(usages) == 0 {
			continue
		}

		record := model.HistoricalAdjustment{
			ServiceID:           serviceID,
			ServiceName:         usages[0].name,
			Frequency:           len(usages),
			AverageDuration:     roundedMean(usages, func(u usage) int { return u.duration }),
			AveragePrice:        roundedMean(usages, func(u usage) int { return u.price }),
			MostCommonDuration:  mostCommon(usages, func(u usage) int { return u.duration }),
			MostCommonPrice:     mostCommon(usages, func(u usage) int { return u.price }),
			LatestDuration:      usages[0].duration,
			LatestPrice:         usages[0].price,
			RecentTrendDuration: roundedMean(recent(usages), func(u usage) int { return u.duration }),
			RecentTrendPrice:    roundedMean(recent(usages), func(u usage) int { return u.price }),
		}

		if svc, err := a.services.Get(ctx, serviceID); err == nil {
			record.ServiceName = svc.Name
			record.BaseDuration = svc.DurationMinutes
			record.BasePrice = svc.Price
		} else if !apperrors.IsNotFound(err) {
			return nil, fmt.Errorf("failed to resolve service %s: %w", serviceID, err)
		}

		results = append(results, record)
	}
	return results, nil
}

// SuggestLatest builds an override directive reapplying the customer's most
// recent values for the service.
func SuggestLatest(h model.HistoricalAdjustment) model.AdjustmentDirective {
	duration := h.LatestDuration
	price := h.LatestPrice
	return model.AdjustmentDirective{
		Mode:     model.AdjustOverride,
		Duration: &duration,
		Price:    &price,
		Reason:   "same as last visit",
	}
}

// SuggestAverage builds an override directive applying the historical
// averages for the service.
func SuggestAverage(h model.HistoricalAdjustment) model.AdjustmentDirective {
	duration := h.AverageDuration
	price := h.AveragePrice
	return model.AdjustmentDirective{
		Mode:     model.AdjustOverride,
		Duration: &duration,
		Price:    &price,
		Reason:   fmt.Sprintf("historical average (%d visits)", h.Frequency),
	}
}

func recent(usages []usage) []usage {
	if len(usages) > recentTrendWindow {
		return usages[:recentTrendWindow]
	}
	return usages
}

func roundedMean(usages []usage, value func(usage) int) int {
	if len(usages) == 0 {
		return 0
	}
	sum := 0
	for _, u := range usages {
		sum += value(u)
	}
	return int(math.Round(float64(sum) / float64(len(usages))))
}

// mostCommon returns the value with the highest frequency. On ties the first
// value reaching the maximum, in encounter order, wins.
func mostCommon(usages []usage, value func(usage) int) int {
	counts := make(map[int]int, len(usages))
	for _, u := range usages {
		counts[value(u)]++
	}
	best, bestCount := 0, 0
	for _, u := range usages {
		if v := value(u); counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best
}
