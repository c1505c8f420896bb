package scheduling

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ouestimmo/agency-booking-backend/internal/appointment"
	"github.com/ouestimmo/agency-booking-backend/internal/property"
	"github.com/ouestimmo/agency-booking-backend/internal/routing"
)

// travelCheckWindow bounds the temporal neighborhood around an existing
// appointment within which travel feasibility is verified. Beyond it the
// agent always has time to drive, so the oracle is not consulted.
const travelCheckWindow = 180 * time.Minute

// Detector decides whether a candidate instant is blocked by the day's
// existing appointments, either by blocked-interval overlap or because the
// agent could not physically travel between the two properties in the gap.
type Detector struct {
	oracle routing.Oracle
	logger *zap.Logger
}

func NewDetector(oracle routing.Oracle, logger *zap.Logger) *Detector {
	return &Detector{oracle: oracle, logger: logger}
}

// IsBlocked checks the candidate against every same-day appointment and
// short-circuits on the first blocking reason. target is nil for a general
// consultation. props is a read-only snapshot of the properties referenced by
// the day's appointments.
//
// The temporal check is free and runs first; the travel check costs a call to
// the rate-limited oracle and only runs for appointments within
// travelCheckWindow that target a different identified property. An oracle
// failure is logged and treated as "no travel constraint known": a routing
// outage must degrade availability gracefully, not wipe it out.
func (d *Detector) IsBlocked(
	ctx context.Context,
	cand Candidate,
	target *property.Property,
	appts []*appointment.Appointment,
	props map[string]*property.Property,
) bool {
	candFrom, candUntil := cand.BlockedInterval()

	for _, appt := range appts {
		// Half-open interval overlap: [a,b) and [c,d) intersect iff a < d && c < b.
		if candFrom.Before(appt.BlockedUntil) && appt.BlockedFrom.Before(candUntil) {
			return true
		}

		if target == nil || appt.PropertyID == nil {
			continue
		}
		if *appt.PropertyID == target.ID {
			// Same property, no travel needed.
			continue
		}

		gap := cand.Start.Sub(appt.ScheduledAt)
		if gap < 0 {
			gap = -gap
		}
		if gap > travelCheckWindow {
			continue
		}

		neighbor, ok := props[*appt.PropertyID]
		if !ok {
			continue
		}

		if d.travelBlocked(ctx, cand, candUntil, target, appt, neighbor) {
			return true
		}
	}

	return false
}

func (d *Detector) travelBlocked(
	ctx context.Context,
	cand Candidate,
	candUntil time.Time,
	target *property.Property,
	appt *appointment.Appointment,
	neighbor *property.Property,
) bool {
	var est routing.Estimate
	var err error

	if cand.Start.After(appt.ScheduledAt) {
		// Agent drives from the existing visit to the candidate's property.
		est, err = d.oracle.TravelTime(ctx, neighbor.RoutingAddress(), target.RoutingAddress())
		if err != nil {
			d.logTravelFailure(appt, err)
			return false
		}
		earliest := appt.BlockedUntil.Add(est.Duration)
		return cand.Start.Before(earliest)
	}

	// Candidate comes first: the agent must reach the existing visit in time.
	est, err = d.oracle.TravelTime(ctx, target.RoutingAddress(), neighbor.RoutingAddress())
	if err != nil {
		d.logTravelFailure(appt, err)
		return false
	}
	latest := appt.ScheduledAt.Add(-est.Duration)
	return candUntil.After(latest)
}

func (d *Detector) logTravelFailure(appt *appointment.Appointment, err error) {
	d.logger.Warn("travel time lookup failed, slot not penalized",
		zap.String("appointment_id", appt.ID),
		zap.Error(err),
	)
}
