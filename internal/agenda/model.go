package agenda

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ouestimmo/agency-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "availability rule not found")
	ErrInvalidWindow    = apperror.New(http.StatusBadRequest, "opening time must be before closing time")
	ErrInvalidClock     = apperror.New(http.StatusBadRequest, "times must use the HH:MM format")
	ErrInvalidSlotEvery = apperror.New(http.StatusBadRequest, "slot granularity must be a positive number of minutes")
	ErrInvalidDuration  = apperror.New(http.StatusBadRequest, "visit duration must be a positive number of minutes")
	ErrInvalidMargin    = apperror.New(http.StatusBadRequest, "safety margin cannot be negative")
)

// Rule is a recurring weekly availability template. Visits can only be booked
// at instants generated from an active rule matching the requested weekday.
type Rule struct {
	ID                string
	Weekday           time.Weekday // 0 = Sunday .. 6 = Saturday
	OpensAt           string       // Format: HH:MM
	ClosesAt          string       // Format: HH:MM
	SlotEveryMins     int          // Minutes between offered start times
	VisitDurationMins int
	MarginMins        int // Buffer before/after a visit, no other visit allowed
	Active            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Filter defines parameters for listing rules.
type Filter struct {
	Weekday    *time.Weekday
	ActiveOnly bool
	Page       int
	PageSize   int
}

// ParseClock converts an "HH:MM" string to minutes since midnight.
func ParseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, ErrInvalidClock
	}
	if h < 0 || h > 23 || m < 0 || m > 59 || len(s) != 5 || s[2] != ':' {
		return 0, ErrInvalidClock
	}
	return h*60 + m, nil
}
