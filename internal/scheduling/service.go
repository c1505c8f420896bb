package scheduling

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/ouestimmo/agency-booking-backend/internal/agenda"
	"github.com/ouestimmo/agency-booking-backend/internal/appointment"
	"github.com/ouestimmo/agency-booking-backend/internal/property"
	"github.com/ouestimmo/agency-booking-backend/internal/routing"
)

// RuleSource provides the active availability rules for a weekday.
type RuleSource interface {
	ListForWeekday(ctx context.Context, weekday time.Weekday) ([]*agenda.Rule, error)
}

// AppointmentSource provides the non-cancelled appointments of a day.
type AppointmentSource interface {
	ListForDate(ctx context.Context, day time.Time) ([]*appointment.Appointment, error)
}

// PropertySource resolves property records by id.
type PropertySource interface {
	GetByID(ctx context.Context, id string) (*property.Property, error)
}

// Service computes the bookable slots of a day. It gathers read-only
// snapshots from the stores, then runs the three pure stages: rule expansion,
// conflict detection, ranking.
type Service struct {
	rules    RuleSource
	appts    AppointmentSource
	props    PropertySource
	detector *Detector
	logger   *zap.Logger
}

func NewService(
	rules RuleSource,
	appts AppointmentSource,
	props PropertySource,
	oracle routing.Oracle,
	logger *zap.Logger,
) *Service {
	return &Service{
		rules:    rules,
		appts:    appts,
		props:    props,
		detector: NewDetector(oracle, logger),
		logger:   logger,
	}
}

// AvailableSlots returns the ordered bookable slots for the target on the
// given calendar day. An empty result means the day is closed or fully
// booked; it is not an error. An unknown target property is.
func (s *Service) AvailableSlots(ctx context.Context, target Target, day time.Time) ([]Slot, error) {
	rules, err := s.rules.ListForWeekday(ctx, day.Weekday())
	if err != nil {
		return nil, err
	}

	candidates := ExpandRules(day, rules)
	if len(candidates) == 0 {
		return nil, nil
	}

	appts, err := s.appts.ListForDate(ctx, day)
	if err != nil {
		return nil, err
	}

	var targetProp *property.Property
	if id, ok := target.PropertyID(); ok {
		targetProp, err = s.props.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
	}

	props, err := s.snapshotProperties(ctx, appts)
	if err != nil {
		return nil, err
	}

	// Candidates are evaluated one at a time: each check may call the
	// rate-limited travel oracle, so there is no concurrency to exploit.
	var open []Candidate
	for _, c := range candidates {
		if s.detector.IsBlocked(ctx, c, targetProp, appts, props) {
			continue
		}
		open = append(open, c)
	}

	return Rank(open, targetProp, appts, props), nil
}

// snapshotProperties loads the properties referenced by the day's
// appointments once, so conflict detection and ranking work over a fixed
// read-only view. An appointment whose listing has been removed since cannot
// constrain travel; it is skipped with a warning.
func (s *Service) snapshotProperties(
	ctx context.Context,
	appts []*appointment.Appointment,
) (map[string]*property.Property, error) {
	props := make(map[string]*property.Property)

	for _, a := range appts {
		if a.PropertyID == nil {
			continue
		}
		if _, ok := props[*a.PropertyID]; ok {
			continue
		}

		p, err := s.props.GetByID(ctx, *a.PropertyID)
		if err != nil {
			if errors.Is(err, property.ErrNotFound) {
				s.logger.Warn("appointment references missing property",
					zap.String("appointment_id", a.ID),
					zap.String("property_id", *a.PropertyID),
				)
				continue
			}
			return nil, err
		}
		props[*a.PropertyID] = p
	}

	return props, nil
}
