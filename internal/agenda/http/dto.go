package http

import (
	"time"

	"github.com/ouestimmo/agency-booking-backend/internal/agenda"
	"github.com/ouestimmo/agency-booking-backend/internal/pkg/request"
)

// ListRulesRequest defines query parameters for listing availability rules.
type ListRulesRequest struct {
	request.ListParams
	Weekday    *int `form:"weekday" binding:"omitempty,min=0,max=6"`
	ActiveOnly bool `form:"active_only"`
}

type RuleResponse struct {
	ID                string    `json:"id"`
	Weekday           int       `json:"weekday"`
	OpensAt           string    `json:"opens_at"`
	ClosesAt          string    `json:"closes_at"`
	SlotEveryMins     int       `json:"slot_every_mins"`
	VisitDurationMins int       `json:"visit_duration_mins"`
	MarginMins        int       `json:"margin_mins"`
	Active            bool      `json:"active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func NewResponse(r *agenda.Rule) RuleResponse {
	return RuleResponse{
		ID:                r.ID,
		Weekday:           int(r.Weekday),
		OpensAt:           r.OpensAt,
		ClosesAt:          r.ClosesAt,
		SlotEveryMins:     r.SlotEveryMins,
		VisitDurationMins: r.VisitDurationMins,
		MarginMins:        r.MarginMins,
		Active:            r.Active,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

type CreateRuleRequest struct {
	Weekday           int    `json:"weekday" binding:"min=0,max=6"`
	OpensAt           string `json:"opens_at" binding:"required"`
	ClosesAt          string `json:"closes_at" binding:"required"`
	SlotEveryMins     int    `json:"slot_every_mins" binding:"required"`
	VisitDurationMins int    `json:"visit_duration_mins" binding:"required"`
	MarginMins        int    `json:"margin_mins"`
	Active            bool   `json:"active"`
}

type UpdateRuleRequest struct {
	OpensAt           *string `json:"opens_at"`
	ClosesAt          *string `json:"closes_at"`
	SlotEveryMins     *int    `json:"slot_every_mins"`
	VisitDurationMins *int    `json:"visit_duration_mins"`
	MarginMins        *int    `json:"margin_mins"`
	Active            *bool   `json:"active"`
}
