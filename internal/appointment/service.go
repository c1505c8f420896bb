package appointment

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ouestimmo/agency-booking-backend/internal/agenda"
	"github.com/ouestimmo/agency-booking-backend/internal/mailer"
	"github.com/ouestimmo/agency-booking-backend/internal/property"
)

type CreateRequest struct {
	PropertyID    *string // nil for a general consultation
	ScheduledAt   time.Time
	VisitorName   string
	VisitorEmail  string
	VisitorPhone  string
	DelegateAgent *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Appointment, error)
	GetByID(ctx context.Context, id string) (*Appointment, error)
	List(ctx context.Context, filter Filter) ([]*Appointment, int, error)
	ListForDate(ctx context.Context, day time.Time) ([]*Appointment, error)
	Confirm(ctx context.Context, id string) (*Appointment, error)
	Cancel(ctx context.Context, id string) (*Appointment, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo        Repository
	propService property.Service
	ruleService agenda.Service
	sender      mailer.Sender
	logger      *zap.Logger
}

func NewService(
	repo Repository,
	propService property.Service,
	ruleService agenda.Service,
	sender mailer.Sender,
	logger *zap.Logger,
) Service {
	return &service{
		repo:        repo,
		propService: propService,
		ruleService: ruleService,
		sender:      sender,
		logger:      logger,
	}
}

// effectiveRule picks the rule whose opening window contains the requested
// time of day; when none does, the first rule of the day applies.
func effectiveRule(rules []*agenda.Rule, at time.Time) *agenda.Rule {
	minuteOfDay := at.Hour()*60 + at.Minute()
	for _, r := range rules {
		open, err := agenda.ParseClock(r.OpensAt)
		if err != nil {
			continue
		}
		closing, err := agenda.ParseClock(r.ClosesAt)
		if err != nil {
			continue
		}
		if minuteOfDay >= open && minuteOfDay <= closing {
			return r
		}
	}
	return rules[0]
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Appointment, error) {
	if strings.TrimSpace(req.VisitorEmail) == "" {
		return nil, ErrMissingEmail
	}
	if req.ScheduledAt.Before(time.Now()) {
		return nil, ErrScheduledPast
	}

	// Validate the property exists when the visit targets one.
	if req.PropertyID != nil {
		if _, err := s.propService.GetByID(ctx, *req.PropertyID); err != nil {
			return nil, err
		}
	}

	rules, err := s.ruleService.ListForWeekday(ctx, req.ScheduledAt.Weekday())
	if err != nil {
		return nil, err
	}
	if len(rules) == 0 {
		return nil, ErrClosedDay
	}
	rule := effectiveRule(rules, req.ScheduledAt)

	margin := time.Duration(rule.MarginMins) * time.Minute
	duration := time.Duration(rule.VisitDurationMins) * time.Minute

	a := &Appointment{
		PropertyID:    req.PropertyID,
		ScheduledAt:   req.ScheduledAt,
		DurationMins:  rule.VisitDurationMins,
		MarginMins:    rule.MarginMins,
		BlockedFrom:   req.ScheduledAt.Add(-margin),
		BlockedUntil:  req.ScheduledAt.Add(duration + margin),
		VisitorName:   strings.TrimSpace(req.VisitorName),
		VisitorEmail:  strings.TrimSpace(req.VisitorEmail),
		VisitorPhone:  strings.TrimSpace(req.VisitorPhone),
		DelegateAgent: req.DelegateAgent,
		Status:        StatusPending,
	}

	// Advisory check: the slot list the visitor browsed may be stale by the
	// time the form is submitted. The database constraint in Create closes
	// the remaining race.
	hasOverlap, err := s.repo.HasOverlap(ctx, a.BlockedFrom, a.BlockedUntil, "")
	if err != nil {
		return nil, err
	}
	if hasOverlap {
		return nil, ErrTimeConflict
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.notify(a, "Your visit request", requestReceivedBody(a))
	return a, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Appointment, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) ListForDate(ctx context.Context, day time.Time) ([]*Appointment, error) {
	return s.repo.ListForDate(ctx, day)
}

func (s *service) Confirm(ctx context.Context, id string) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status == StatusCancelled {
		return nil, ErrInvalidStatus
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusConfirmed); err != nil {
		return nil, err
	}
	a.Status = StatusConfirmed

	s.notify(a, "Your visit is confirmed", confirmedBody(a))
	return a, nil
}

func (s *service) Cancel(ctx context.Context, id string) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusCancelled); err != nil {
		return nil, err
	}
	a.Status = StatusCancelled

	s.notify(a, "Your visit is cancelled", cancelledBody(a))
	return a, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// notify sends a status email to the visitor. Failures are logged, never
// surfaced: mail delivery must not fail the booking flow.
func (s *service) notify(a *Appointment, subject, body string) {
	if err := s.sender.Send(a.VisitorEmail, subject, body); err != nil {
		s.logger.Warn("appointment notification failed",
			zap.String("appointment_id", a.ID),
			zap.String("to", a.VisitorEmail),
			zap.Error(err),
		)
	}
}
