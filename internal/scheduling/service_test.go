package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ouestimmo/agency-booking-backend/internal/agenda"
	"github.com/ouestimmo/agency-booking-backend/internal/appointment"
	"github.com/ouestimmo/agency-booking-backend/internal/property"
)

type fakeRules struct {
	rules []*agenda.Rule
	err   error
}

func (f *fakeRules) ListForWeekday(_ context.Context, weekday time.Weekday) ([]*agenda.Rule, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*agenda.Rule
	for _, r := range f.rules {
		if r.Active && r.Weekday == weekday {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeAppointments struct {
	appts []*appointment.Appointment
	err   error
}

func (f *fakeAppointments) ListForDate(_ context.Context, _ time.Time) ([]*appointment.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.appts, nil
}

type fakeProperties struct {
	props map[string]*property.Property
}

func (f *fakeProperties) GetByID(_ context.Context, id string) (*property.Property, error) {
	if p, ok := f.props[id]; ok {
		return p, nil
	}
	return nil, property.ErrNotFound
}

func newTestService(
	rules []*agenda.Rule,
	appts []*appointment.Appointment,
	props map[string]*property.Property,
	oracle *scriptedOracle,
) *Service {
	return NewService(
		&fakeRules{rules: rules},
		&fakeAppointments{appts: appts},
		&fakeProperties{props: props},
		oracle,
		zap.NewNop(),
	)
}

func mondayRules() []*agenda.Rule {
	return []*agenda.Rule{
		rule(time.Monday, "09:00", "12:00", 30, 45, 15),
	}
}

func TestAvailableSlots_OpenDayNoAppointments(t *testing.T) {
	target := prop("t", "1 rue de Rivoli", "75001", "Paris")
	svc := newTestService(mondayRules(), nil, snapshot(target), &scriptedOracle{})

	slots, err := svc.AvailableSlots(context.Background(), PropertyTarget(target.ID), monday)

	require.NoError(t, err)
	require.Len(t, slots, 7)
	assert.True(t, slots[0].Start.Equal(mondayAt(9, 0)))
	assert.True(t, slots[6].Start.Equal(mondayAt(12, 0)))
	for _, s := range slots {
		assert.Equal(t, 0, s.Priority)
	}
}

func TestAvailableSlots_ExistingAppointmentCarvesOutSlots(t *testing.T) {
	target := prop("t", "1 rue de Rivoli", "75001", "Paris")
	existing := bookedAt("appt-1", target, mondayAt(10, 0), 45, 15) // blocks [09:45, 11:00)

	oracle := &scriptedOracle{}
	svc := newTestService(mondayRules(), []*appointment.Appointment{existing}, snapshot(target), oracle)

	slots, err := svc.AvailableSlots(context.Background(), PropertyTarget(target.ID), monday)

	require.NoError(t, err)
	// Every candidate whose own blocked interval touches [09:45, 11:00) is
	// gone; 11:30 and 12:00 are the only survivors.
	require.Len(t, slots, 2)
	assert.True(t, slots[0].Start.Equal(mondayAt(11, 30)))
	assert.True(t, slots[1].Start.Equal(mondayAt(12, 0)))
	// 11:30 is 90 minutes from the 10:00 visit at the same address.
	assert.Equal(t, 15, slots[0].Priority)
	assert.Equal(t, 0, slots[1].Priority)
	assert.Zero(t, oracle.calls)
}

func TestAvailableSlots_TravelTimeRemovesTightSlots(t *testing.T) {
	target := prop("t", "1 rue de Rivoli", "75001", "Paris")
	other := prop("o", "99 rue de la Republique", "69002", "Lyon")
	// Blocks [09:45, 11:00); candidate 11:30 leaves a 30 minute gap.
	existing := bookedAt("appt-1", other, mondayAt(10, 0), 45, 15)

	tests := []struct {
		name   string
		travel time.Duration
		want   []time.Time
	}{
		{"short drive keeps both", 20 * time.Minute, []time.Time{mondayAt(11, 30), mondayAt(12, 0)}},
		{"long drive eats the first", 45 * time.Minute, []time.Time{mondayAt(12, 0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oracle := &scriptedOracle{durations: map[string]time.Duration{
				other.RoutingAddress() + "->" + target.RoutingAddress(): tt.travel,
			}}
			svc := newTestService(mondayRules(),
				[]*appointment.Appointment{existing}, snapshot(target, other), oracle)

			slots, err := svc.AvailableSlots(context.Background(), PropertyTarget(target.ID), monday)

			require.NoError(t, err)
			require.Len(t, slots, len(tt.want))
			for i, s := range slots {
				assert.True(t, s.Start.Equal(tt.want[i]), "slot %d: got %s", i, s.Start)
			}
		})
	}
}

func TestAvailableSlots_OracleFailureKeepsSlots(t *testing.T) {
	target := prop("t", "1 rue de Rivoli", "75001", "Paris")
	other := prop("o", "99 rue de la Republique", "69002", "Lyon")
	existing := bookedAt("appt-1", other, mondayAt(10, 0), 45, 15)

	oracle := &scriptedOracle{err: errors.New("osrm unreachable")}
	svc := newTestService(mondayRules(),
		[]*appointment.Appointment{existing}, snapshot(target, other), oracle)

	slots, err := svc.AvailableSlots(context.Background(), PropertyTarget(target.ID), monday)

	require.NoError(t, err)
	require.Len(t, slots, 2, "routing outage leaves temporal filtering only")
}

func TestAvailableSlots_ClosedDay(t *testing.T) {
	svc := newTestService(mondayRules(), nil, nil, &scriptedOracle{})

	tuesday := monday.AddDate(0, 0, 1)
	slots, err := svc.AvailableSlots(context.Background(), GeneralTarget(), tuesday)

	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestAvailableSlots_UnknownProperty(t *testing.T) {
	svc := newTestService(mondayRules(), nil, nil, &scriptedOracle{})

	_, err := svc.AvailableSlots(context.Background(), PropertyTarget("missing"), monday)

	assert.ErrorIs(t, err, property.ErrNotFound)
}

func TestAvailableSlots_GeneralConsultationIgnoresGeography(t *testing.T) {
	other := prop("o", "99 rue de la Republique", "69002", "Lyon")
	existing := bookedAt("appt-1", other, mondayAt(10, 0), 45, 15)

	oracle := &scriptedOracle{}
	svc := newTestService(mondayRules(),
		[]*appointment.Appointment{existing}, snapshot(other), oracle)

	slots, err := svc.AvailableSlots(context.Background(), GeneralTarget(), monday)

	require.NoError(t, err)
	require.Len(t, slots, 2, "the blocked interval still applies without a target property")
	assert.Zero(t, oracle.calls)
}

func TestAvailableSlots_OrphanedAppointmentStillBlocksTime(t *testing.T) {
	target := prop("t", "1 rue de Rivoli", "75001", "Paris")
	// References a property that has since been removed from the catalogue.
	orphan := bookedAt("appt-1", prop("gone", "x", "75002", "Paris"), mondayAt(10, 0), 45, 15)

	oracle := &scriptedOracle{}
	svc := newTestService(mondayRules(),
		[]*appointment.Appointment{orphan}, snapshot(target), oracle)

	slots, err := svc.AvailableSlots(context.Background(), PropertyTarget(target.ID), monday)

	require.NoError(t, err)
	require.Len(t, slots, 2, "the time stays blocked, only the travel check is skipped")
	assert.Zero(t, oracle.calls)
}

func TestAvailableSlots_IdempotentAcrossCalls(t *testing.T) {
	target := prop("t", "1 rue de Rivoli", "75001", "Paris")
	existing := bookedAt("appt-1", target, mondayAt(10, 0), 45, 15)

	svc := newTestService(mondayRules(),
		[]*appointment.Appointment{existing}, snapshot(target), &scriptedOracle{})

	first, err := svc.AvailableSlots(context.Background(), PropertyTarget(target.ID), monday)
	require.NoError(t, err)
	second, err := svc.AvailableSlots(context.Background(), PropertyTarget(target.ID), monday)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAvailableSlots_RuleStoreFailure(t *testing.T) {
	boom := errors.New("db down")
	svc := NewService(
		&fakeRules{err: boom},
		&fakeAppointments{},
		&fakeProperties{},
		&scriptedOracle{},
		zap.NewNop(),
	)

	_, err := svc.AvailableSlots(context.Background(), GeneralTarget(), monday)
	assert.ErrorIs(t, err, boom)
}
