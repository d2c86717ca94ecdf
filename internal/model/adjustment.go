package model

// AdjustableService wraps a catalog snapshot taken at selection time with the
// booking flow's working values. It never persists standalone; on save it
// collapses into an AppointmentService and the adjustment metadata is lost.
type AdjustableService struct {
	ServiceID        string `json:"serviceId"`
	Name             string `json:"name"`
	Category         string `json:"category,omitempty"`
	BaseDuration     int    `json:"baseDuration"`
	AdjustedDuration int    `json:"adjustedDuration"`
	BasePrice        int    `json:"basePrice"`
	AdjustedPrice    int    `json:"adjustedPrice"`
	IsAdjusted       bool   `json:"isAdjusted"`
	AdjustmentReason string `json:"adjustmentReason,omitempty"`
}

// Flatten collapses the working values into the persisted snapshot shape.
func (s AdjustableService) Flatten() AppointmentService {
	return AppointmentService{
		ID:       s.ServiceID,
		Name:     s.Name,
		Duration: s.AdjustedDuration,
		Price:    s.AdjustedPrice,
	}
}

// AdjustmentMode selects how a directive maps base values to adjusted ones.
type AdjustmentMode string

const (
	AdjustPercentage AdjustmentMode = "percentage"
	AdjustFixed      AdjustmentMode = "fixed"
	AdjustTime       AdjustmentMode = "time"
	AdjustOverride   AdjustmentMode = "override"
	AdjustReset      AdjustmentMode = "reset"
)

func (m AdjustmentMode) Valid() bool {
	switch m {
	case AdjustPercentage, AdjustFixed, AdjustTime, AdjustOverride, AdjustReset:
		return true
	}
	return false
}

// AdjustmentDirective describes one adjustment. Which fields are read depends
// on Mode: Percent for percentage, Amount for fixed, Minutes for time, and
// Duration/Price for override.
type AdjustmentDirective struct {
	Mode     AdjustmentMode `json:"mode" binding:"required"`
	Percent  float64        `json:"percent,omitempty"`
	Amount   int            `json:"amount,omitempty"`
	Minutes  int            `json:"minutes,omitempty"`
	Duration *int           `json:"duration,omitempty"`
	Price    *int           `json:"price,omitempty"`
	Reason   string         `json:"reason,omitempty"`
}

// AdjustmentPreviewRow shows one service's original vs. new values with
// signed deltas.
type AdjustmentPreviewRow struct {
	ServiceID     string `json:"serviceId"`
	Name          string `json:"name"`
	OldDuration   int    `json:"oldDuration"`
	NewDuration   int    `json:"newDuration"`
	DurationDelta int    `json:"durationDelta"`
	OldPrice      int    `json:"oldPrice"`
	NewPrice      int    `json:"newPrice"`
	PriceDelta    int    `json:"priceDelta"`
}

type AdjustmentPreview struct {
	Rows  []AdjustmentPreviewRow `json:"rows"`
	Total AdjustmentPreviewRow   `json:"total"`
}

type BulkAdjustmentRequest struct {
	Services  []AdjustableService `json:"services" binding:"required,min=1"`
	Directive AdjustmentDirective `json:"directive" binding:"required"`
}
