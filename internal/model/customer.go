package model

import "time"

type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Kana      string    `json:"kana,omitempty"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CustomerStats is derived from a customer's completed appointments on every
// read. It is never persisted.
type CustomerStats struct {
	TotalVisits      int        `json:"totalVisits"`
	TotalSpent       int        `json:"totalSpent"`
	AverageSpent     int        `json:"averageSpent"`
	LastVisit        *time.Time `json:"lastVisit,omitempty"`
	FavoriteServices []string   `json:"favoriteServices"`
}

// CustomerWithStats is the list-view shape.
type CustomerWithStats struct {
	Customer
	Stats CustomerStats `json:"stats"`
}

// CustomerDetail is the detail-view shape: the customer, the projection and
// the full appointment history.
type CustomerDetail struct {
	Customer
	Stats        CustomerStats  `json:"stats"`
	Appointments []*Appointment `json:"appointments"`
}

// Customer list sort keys.
const (
	CustomerSortName      = "name"
	CustomerSortLastVisit = "last_visit"
	CustomerSortVisits    = "visits"
	CustomerSortSpent     = "spent"
)

type CustomerFilter struct {
	Search string `form:"search"`
	Sort   string `form:"sort"`
}

type CreateCustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Kana  string `json:"kana"`
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
	Note  string `json:"note"`
}

type UpdateCustomerRequest struct {
	Name  *string `json:"name"`
	Kana  *string `json:"kana"`
	Phone *string `json:"phone"`
	Email *string `json:"email" binding:"omitempty,email"`
	Note  *string `json:"note"`
}
