package http

import (
	"time"

	"github.com/ouestimmo/agency-booking-backend/internal/pkg/request"
	"github.com/ouestimmo/agency-booking-backend/internal/property"
)

// ListPropertiesRequest defines query parameters for listing properties.
type ListPropertiesRequest struct {
	request.ListParams
	City    string `form:"city"`
	Keyword string `form:"keyword"`
}

// Validate performs custom validation for ListPropertiesRequest.
func (r *ListPropertiesRequest) Validate() error {
	return nil
}

type PropertyResponse struct {
	ID         string    `json:"id"`
	Reference  string    `json:"reference"`
	Title      string    `json:"title"`
	Street     string    `json:"street"`
	PostalCode string    `json:"postal_code"`
	City       string    `json:"city"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewResponse(p *property.Property) PropertyResponse {
	return PropertyResponse{
		ID:         p.ID,
		Reference:  p.Reference,
		Title:      p.Title,
		Street:     p.Street,
		PostalCode: p.PostalCode,
		City:       p.City,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// PropertyTag is the compact form embedded in other modules' responses.
type PropertyTag struct {
	ID        string `json:"id"`
	Reference string `json:"reference,omitempty"`
}

type CreatePropertyRequest struct {
	Reference  string `json:"reference" binding:"required"`
	Title      string `json:"title"`
	Street     string `json:"street" binding:"required"`
	PostalCode string `json:"postal_code" binding:"required"`
	City       string `json:"city" binding:"required"`
}

type UpdatePropertyRequest struct {
	Title      *string `json:"title"`
	Street     *string `json:"street"`
	PostalCode *string `json:"postal_code"`
	City       *string `json:"city"`
}
