package appointment

import (
	"net/http"
	"time"

	"github.com/ouestimmo/agency-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "appointment not found")
	ErrTimeConflict  = apperror.New(http.StatusConflict, "time slot already booked")
	ErrClosedDay     = apperror.New(http.StatusConflict, "the agency is closed at the requested time")
	ErrScheduledPast = apperror.New(http.StatusBadRequest, "cannot book a visit in the past")
	ErrInvalidRange  = apperror.New(http.StatusBadRequest, "date_from must be before date_to")
	ErrInvalidStatus = apperror.New(http.StatusBadRequest, "invalid appointment status")
	ErrMissingEmail  = apperror.New(http.StatusBadRequest, "visitor email is required")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Appointment is a booked visit. PropertyID is nil for a general consultation
// at the agency (no specific property, no travel constraint).
//
// BlockedFrom/BlockedUntil persist the interval
// [scheduled_at - margin, scheduled_at + duration + margin) so the overlap
// re-check at write time is a plain interval comparison in SQL.
type Appointment struct {
	ID            string
	PropertyID    *string
	PropertyRef   string // Joined listing reference, empty for general visits
	ScheduledAt   time.Time
	DurationMins  int
	MarginMins    int
	BlockedFrom   time.Time
	BlockedUntil  time.Time
	VisitorName   string
	VisitorEmail  string
	VisitorPhone  string
	DelegateAgent *string // Agent conducting the visit instead of the default one
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsGeneral reports whether the visit targets no specific property.
func (a *Appointment) IsGeneral() bool {
	return a.PropertyID == nil
}

// Filter defines parameters for listing appointments.
type Filter struct {
	PropertyID string
	Status     string
	DateFrom   *time.Time
	DateTo     *time.Time
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
}
