package model

import "time"

// Service is a catalog entry. Deactivation is a soft flag flip so historical
// appointments referencing the service stay valid.
type Service struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"durationMinutes"`
	Price           int       `json:"price"` // smallest currency unit
	Category        string    `json:"category"`
	Description     string    `json:"description,omitempty"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Activity filter values for listing services.
const (
	ServiceFilterActive   = "active"
	ServiceFilterInactive = "inactive"
	ServiceFilterAll      = "all"
)

type ServiceFilter struct {
	Activity string `form:"activity"`
	Category string `form:"category"`
}

type CreateServiceRequest struct {
	Name            string `json:"name" binding:"required"`
	DurationMinutes int    `json:"durationMinutes" binding:"required,gt=0"`
	Price           int    `json:"price" binding:"gte=0"`
	Category        string `json:"category"`
	Description     string `json:"description"`
}

type UpdateServiceRequest struct {
	Name            *string `json:"name"`
	DurationMinutes *int    `json:"durationMinutes" binding:"omitempty,gt=0"`
	Price           *int    `json:"price" binding:"omitempty,gte=0"`
	Category        *string `json:"category"`
	Description     *string `json:"description"`
	IsActive        *bool   `json:"isActive"`
}
