// Package adjustment computes per-service and bulk price/duration overrides
// from catalog base values. The engine is a pure function of (base, directive);
// it never touches storage.
package adjustment

import (
	"math"

	"github.com/ksaito/salon-api/internal/model"
	"github.com/ksaito/salon-api/pkg/metrics"
)

// Business rules for adjusted values
const (
	// MinDurationMinutes is a hard floor regardless of the requested delta.
	MinDurationMinutes = 5
	MinPrice           = 0
)

type Engine struct {
	metrics *metrics.Metrics
}

func NewEngine(m *metrics.Metrics) *Engine {
	return &Engine{metrics: m}
}

// Apply produces a new AdjustableService with the directive applied. The
// input is not mutated.
func (e *Engine) Apply(svc model.AdjustableService, d model.AdjustmentDirective) model.AdjustableService {
	switch d.Mode {
	case model.AdjustPercentage:
		svc.AdjustedPrice = clampPrice(roundToInt(float64(svc.BasePrice) * (1 + d.Percent/100)))
	case model.AdjustFixed:
		svc.AdjustedPrice = clampPrice(svc.BasePrice + d.Amount)
	case model.AdjustTime:
		svc.AdjustedDuration = clampDuration(svc.BaseDuration + d.Minutes)
	case model.AdjustOverride:
		if d.Duration != nil {
			svc.AdjustedDuration = clampDuration(*d.Duration)
		}
		if d.Price != nil {
			svc.AdjustedPrice = clampPrice(*d.Price)
		}
	case model.AdjustReset:
		svc.AdjustedDuration = svc.BaseDuration
		svc.AdjustedPrice = svc.BasePrice
	}

	svc.IsAdjusted = svc.AdjustedDuration != svc.BaseDuration || svc.AdjustedPrice != svc.BasePrice
	switch {
	case d.Mode == model.AdjustReset, !svc.IsAdjusted:
		svc.AdjustmentReason = ""
	case d.Reason != "":
		svc.AdjustmentReason = d.Reason
	}

	if e.metrics != nil {
		e.metrics.AdjustmentsApplied.WithLabelValues(string(d.Mode)).Inc()
	}
	return svc
}

// BulkApply applies one directive uniformly across the selection.
func (e *Engine) BulkApply(svcs []model.AdjustableService, d model.AdjustmentDirective) []model.AdjustableService {
	out := make([]model.AdjustableService, len(svcs))
	for i, svc := range svcs {
		out[i] = e.Apply(svc, d)
	}
	return out
}

// Preview shows, per service and in total, current vs. new values with
// signed deltas. Nothing is mutated.
func (e *Engine) Preview(svcs []model.AdjustableService, d model.AdjustmentDirective) model.AdjustmentPreview {
	preview := model.AdjustmentPreview{Rows: make([]model.AdjustmentPreviewRow, 0, len(svcs))}
	for _, svc := range svcs {
		adjusted := e.Apply(svc, d)
		row := model.AdjustmentPreviewRow{
			ServiceID:     svc.ServiceID,
			Name:          svc.Name,
			OldDuration:   svc.AdjustedDuration,
			NewDuration:   adjusted.AdjustedDuration,
			DurationDelta: adjusted.AdjustedDuration - svc.AdjustedDuration,
			OldPrice:      svc.AdjustedPrice,
			NewPrice:      adjusted.AdjustedPrice,
			PriceDelta:    adjusted.AdjustedPrice - svc.AdjustedPrice,
		}
		preview.Rows = append(preview.Rows, row)

		preview.Total.OldDuration += row.OldDuration
		preview.Total.NewDuration += row.NewDuration
		preview.Total.OldPrice += row.OldPrice
		preview.Total.NewPrice += row.NewPrice
	}
	preview.Total.DurationDelta = preview.Total.NewDuration - preview.Total.OldDuration
	preview.Total.PriceDelta = preview.Total.NewPrice - preview.Total.OldPrice
	return preview
}

// FromService snapshots a catalog entry into the booking flow's working shape.
func FromService(svc *model.Service) model.AdjustableService {
	return model.AdjustableService{
		ServiceID:        svc.ID,
		Name:             svc.Name,
		Category:         svc.Category,
		BaseDuration:     svc.DurationMinutes,
		AdjustedDuration: svc.DurationMinutes,
		BasePrice:        svc.Price,
		AdjustedPrice:    svc.Price,
	}
}

func roundToInt(v float64) int {
	return int(math.Round(v))
}

func clampPrice(price int) int {
	if price < MinPrice {
		return MinPrice
	}
	return price
}

func clampDuration(minutes int) int {
	if minutes < MinDurationMinutes {
		return MinDurationMinutes
	}
	return minutes
}
