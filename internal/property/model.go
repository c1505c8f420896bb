package property

import (
	"net/http"
	"strings"
	"time"

	"github.com/ouestimmo/agency-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "property not found")
	ErrEmptyAddress  = apperror.New(http.StatusBadRequest, "street, postal code and city are required")
	ErrInvalidPostal = apperror.New(http.StatusBadRequest, "postal code must be 5 digits")
)

// Property represents a listing managed by the agency. The address fields are
// the routing input used when checking whether an agent can travel between
// two visits.
type Property struct {
	ID         string
	Reference  string // Public listing reference (e.g., OI-2024-0042)
	Title      string
	Street     string
	PostalCode string
	City       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// RoutingAddress renders the address the way the routing provider expects it.
func (p *Property) RoutingAddress() string {
	return strings.Join([]string{p.Street, p.PostalCode + " " + p.City}, ", ")
}

// Department returns the first two digits of the postal code, which identify
// the administrative department in France.
func (p *Property) Department() string {
	if len(p.PostalCode) < 2 {
		return p.PostalCode
	}
	return p.PostalCode[:2]
}

// Filter defines parameters for listing properties.
type Filter struct {
	City     string
	Keyword  string // Search in Title or Street
	Page     int
	PageSize int
}
