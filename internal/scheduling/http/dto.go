package http

import (
	"github.com/ouestimmo/agency-booking-backend/internal/scheduling"
)

// ListSlotsRequest defines query parameters for the available-slots endpoint.
// An omitted property_id means a general consultation at the agency.
type ListSlotsRequest struct {
	Date       string `form:"date" binding:"required,datetime=2006-01-02"`
	PropertyID string `form:"property_id" binding:"omitempty,uuid"`
}

type SlotResponse struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
	Priority  int    `json:"priority"`
}

func NewSlotResponse(s scheduling.Slot) SlotResponse {
	return SlotResponse{
		Time:      s.Start.Format("15:04"),
		Available: true,
		Priority:  s.Priority,
	}
}

type SlotListResponse struct {
	Date  string         `json:"date"`
	Slots []SlotResponse `json:"slots"`
}
