package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ouestimmo/agency-booking-backend/internal/pkg/response"
	"github.com/ouestimmo/agency-booking-backend/internal/scheduling"
)

type Handler struct {
	service *scheduling.Service
}

func NewHandler(service *scheduling.Service) *Handler {
	return &Handler{service: service}
}

// ListSlots returns the bookable slots for a date, ordered by priority then
// time. A closed or fully booked day yields an empty list, not an error.
func (h *Handler) ListSlots(c *gin.Context) {
	var req ListSlotsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	day, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if day.Before(today) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date cannot be in the past"})
		return
	}

	target := scheduling.GeneralTarget()
	if req.PropertyID != "" {
		target = scheduling.PropertyTarget(req.PropertyID)
	}

	slots, err := h.service.AvailableSlots(c.Request.Context(), target, day)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]SlotResponse, len(slots))
	for i, s := range slots {
		items[i] = NewSlotResponse(s)
	}

	c.JSON(http.StatusOK, SlotListResponse{Date: req.Date, Slots: items})
}
