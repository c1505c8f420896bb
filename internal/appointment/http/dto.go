package http

import (
	"time"

	"github.com/ouestimmo/agency-booking-backend/internal/appointment"
	"github.com/ouestimmo/agency-booking-backend/internal/pkg/request"
	propHttp "github.com/ouestimmo/agency-booking-backend/internal/property/http"
)

// ListAppointmentsRequest defines query parameters for listing appointments.
type ListAppointmentsRequest struct {
	request.ListParams
	PropertyID string     `form:"property_id" binding:"omitempty,uuid"`
	Status     string     `form:"status" binding:"omitempty,oneof=pending confirmed cancelled"`
	DateFrom   *time.Time `form:"date_from" time_format:"2006-01-02"`
	DateTo     *time.Time `form:"date_to" time_format:"2006-01-02"`
	SortBy     string     `form:"sort_by" binding:"omitempty,oneof=scheduled_at created_at status"`
}

// Validate performs custom validation for ListAppointmentsRequest.
func (r *ListAppointmentsRequest) Validate() error {
	if r.DateFrom != nil && r.DateTo != nil {
		if r.DateFrom.After(*r.DateTo) {
			return appointment.ErrInvalidRange
		}
	}
	return nil
}

type AppointmentResponse struct {
	ID            string                `json:"id"`
	Property      *propHttp.PropertyTag `json:"property,omitempty"`
	ScheduledAt   time.Time             `json:"scheduled_at"`
	DurationMins  int                   `json:"duration_mins"`
	MarginMins    int                   `json:"margin_mins"`
	VisitorName   string                `json:"visitor_name"`
	VisitorEmail  string                `json:"visitor_email"`
	VisitorPhone  string                `json:"visitor_phone,omitempty"`
	DelegateAgent *string               `json:"delegate_agent,omitempty"`
	Status        string                `json:"status"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

func NewAppointmentResponse(a *appointment.Appointment) AppointmentResponse {
	resp := AppointmentResponse{
		ID:            a.ID,
		ScheduledAt:   a.ScheduledAt,
		DurationMins:  a.DurationMins,
		MarginMins:    a.MarginMins,
		VisitorName:   a.VisitorName,
		VisitorEmail:  a.VisitorEmail,
		VisitorPhone:  a.VisitorPhone,
		DelegateAgent: a.DelegateAgent,
		Status:        string(a.Status),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
	if a.PropertyID != nil {
		resp.Property = &propHttp.PropertyTag{ID: *a.PropertyID, Reference: a.PropertyRef}
	}
	return resp
}

type CreateAppointmentRequest struct {
	PropertyID    *string   `json:"property_id" binding:"omitempty,uuid"`
	ScheduledAt   time.Time `json:"scheduled_at" binding:"required"`
	VisitorName   string    `json:"visitor_name" binding:"required"`
	VisitorEmail  string    `json:"visitor_email" binding:"required,email"`
	VisitorPhone  string    `json:"visitor_phone"`
	DelegateAgent *string   `json:"delegate_agent"`
}

// Validate performs custom validation for CreateAppointmentRequest.
func (r *CreateAppointmentRequest) Validate() error {
	if r.ScheduledAt.Before(time.Now()) {
		return appointment.ErrScheduledPast
	}
	return nil
}
