package model

import (
	"strings"
	"time"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Valid reports whether s is a known status value.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is defined out of s.
func (s AppointmentStatus) Terminal() bool {
	return s == AppointmentStatusCompleted || s == AppointmentStatusCancelled
}

// AppointmentService is the persisted snapshot of a selected service. It is a
// copy, not a reference: later catalog changes never retroactively affect
// past appointments.
type AppointmentService struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Duration int    `json:"duration"`
	Price    int    `json:"price"`
}

type Appointment struct {
	ID            string               `json:"id"`
	Title         string               `json:"title"`
	Start         time.Time            `json:"start"`
	End           time.Time            `json:"end"`
	ClientID      string               `json:"clientId,omitempty"`
	ClientName    string               `json:"clientName"`
	Phone         string               `json:"phone,omitempty"`
	Services      []AppointmentService `json:"services"`
	TotalPrice    int                  `json:"totalPrice"`
	TotalDuration int                  `json:"totalDuration"`
	Note          string               `json:"note,omitempty"`
	Status        AppointmentStatus    `json:"status"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

// Recompute refreshes the derived fields from the current service selection.
// Title is only rederived when it has not been explicitly overridden.
func (a *Appointment) Recompute(titleOverridden bool) {
	a.TotalPrice = 0
	a.TotalDuration = 0
	for _, svc := range a.Services {
		a.TotalPrice += svc.Price
		a.TotalDuration += svc.Duration
	}
	a.End = a.Start.Add(time.Duration(a.TotalDuration) * time.Minute)
	if !titleOverridden {
		a.Title = DeriveTitle(a.Services)
	}
}

// DeriveTitle joins the selected services' names with " & ".
func DeriveTitle(services []AppointmentService) string {
	names := make([]string, 0, len(services))
	for _, svc := range services {
		names = append(names, svc.Name)
	}
	return strings.Join(names, " & ")
}

type AppointmentFilter struct {
	ClientID string            `form:"client_id"`
	Status   AppointmentStatus `form:"status"`
	From     time.Time         `form:"from" time_format:"2006-01-02"`
	To       time.Time         `form:"to" time_format:"2006-01-02"`
}

type CreateAppointmentRequest struct {
	Title      string                      `json:"title"`
	Start      time.Time                   `json:"start" binding:"required"`
	ClientID   string                      `json:"clientId"`
	ClientName string                      `json:"clientName"`
	Phone      string                      `json:"phone"`
	Services   []AppointmentServiceRequest `json:"services" binding:"required,min=1,dive"`
	Note       string                      `json:"note"`
}

// AppointmentServiceRequest carries a selected service, already adjusted by
// the booking flow. Name, duration and price default to the catalog values
// when omitted.
type AppointmentServiceRequest struct {
	ID       string `json:"id" binding:"required"`
	Name     string `json:"name"`
	Duration *int   `json:"duration" binding:"omitempty,gte=5"`
	Price    *int   `json:"price" binding:"omitempty,gte=0"`
}

type UpdateAppointmentRequest struct {
	Title      *string                     `json:"title"`
	Start      *time.Time                  `json:"start"`
	ClientID   *string                     `json:"clientId"`
	ClientName *string                     `json:"clientName"`
	Phone      *string                     `json:"phone"`
	Services   []AppointmentServiceRequest `json:"services" binding:"omitempty,min=1,dive"`
	Note       *string                     `json:"note"`
	Status     *AppointmentStatus          `json:"status"`
}
