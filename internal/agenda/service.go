package agenda

import (
	"context"
	"time"
)

type CreateRequest struct {
	Weekday           int
	OpensAt           string
	ClosesAt          string
	SlotEveryMins     int
	VisitDurationMins int
	MarginMins        int
	Active            bool
}

type UpdateRequest struct {
	OpensAt           *string
	ClosesAt          *string
	SlotEveryMins     *int
	VisitDurationMins *int
	MarginMins        *int
	Active            *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Rule, error)
	GetByID(ctx context.Context, id string) (*Rule, error)
	List(ctx context.Context, filter Filter) ([]*Rule, int, error)
	// ListForWeekday returns the active rules for a weekday, ordered by
	// opening time. This is the read path of the slot computation.
	ListForWeekday(ctx context.Context, weekday time.Weekday) ([]*Rule, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Rule, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func validateWindow(r *Rule) error {
	open, err := ParseClock(r.OpensAt)
	if err != nil {
		return err
	}
	closing, err := ParseClock(r.ClosesAt)
	if err != nil {
		return err
	}
	if closing <= open {
		return ErrInvalidWindow
	}
	if r.SlotEveryMins <= 0 {
		return ErrInvalidSlotEvery
	}
	if r.VisitDurationMins <= 0 {
		return ErrInvalidDuration
	}
	if r.MarginMins < 0 {
		return ErrInvalidMargin
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Rule, error) {
	r := &Rule{
		Weekday:           time.Weekday(req.Weekday),
		OpensAt:           req.OpensAt,
		ClosesAt:          req.ClosesAt,
		SlotEveryMins:     req.SlotEveryMins,
		VisitDurationMins: req.VisitDurationMins,
		MarginMins:        req.MarginMins,
		Active:            req.Active,
	}

	if err := validateWindow(r); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Rule, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Rule, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) ListForWeekday(ctx context.Context, weekday time.Weekday) ([]*Rule, error) {
	return s.repo.ListForWeekday(ctx, weekday)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Rule, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.OpensAt != nil {
		r.OpensAt = *req.OpensAt
	}
	if req.ClosesAt != nil {
		r.ClosesAt = *req.ClosesAt
	}
	if req.SlotEveryMins != nil {
		r.SlotEveryMins = *req.SlotEveryMins
	}
	if req.VisitDurationMins != nil {
		r.VisitDurationMins = *req.VisitDurationMins
	}
	if req.MarginMins != nil {
		r.MarginMins = *req.MarginMins
	}
	if req.Active != nil {
		r.Active = *req.Active
	}

	if err := validateWindow(r); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
