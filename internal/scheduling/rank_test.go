package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ouestimmo/agency-booking-backend/internal/appointment"
)

func TestRank_ProximityBonuses(t *testing.T) {
	target := prop("t", "1 rue de Rivoli", "75001", "Paris")

	tests := []struct {
		name     string
		neighbor func() (postal, city string)
		want     int
	}{
		{"same city and postal code", func() (string, string) { return "75001", "Paris" }, 15},
		{"same city, other arrondissement", func() (string, string) { return "75008", "Paris" }, 8},
		{"same city, case differs", func() (string, string) { return "75008", "PARIS" }, 8},
		{"other department", func() (string, string) { return "13001", "Marseille" }, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			postal, city := tt.neighbor()
			neighbor := prop("n", "2 rue Voisine", postal, city)
			existing := bookedAt("appt-1", neighbor, mondayAt(10, 0), 30, 0)

			slots := Rank(
				[]Candidate{candidate(mondayAt(11, 0), 30, 0)},
				target,
				[]*appointment.Appointment{existing},
				snapshot(neighbor),
			)

			require.Len(t, slots, 1)
			assert.Equal(t, tt.want, slots[0].Priority)
		})
	}
}

func TestRank_SameDepartmentBonus(t *testing.T) {
	target := prop("t", "10 la Canebiere", "13001", "Marseille")
	neighbor := prop("n", "3 cours Mirabeau", "13100", "Aix-en-Provence")
	existing := bookedAt("appt-1", neighbor, mondayAt(10, 0), 30, 0)

	slots := Rank(
		[]Candidate{candidate(mondayAt(11, 0), 30, 0)},
		target,
		[]*appointment.Appointment{existing},
		snapshot(neighbor),
	)

	require.Len(t, slots, 1)
	assert.Equal(t, 3, slots[0].Priority)
}

func TestRank_ProximityWindowLimitsNeighbors(t *testing.T) {
	target := prop("t", "1 rue de Rivoli", "75001", "Paris")
	neighbor := prop("n", "2 rue Voisine", "75001", "Paris")
	// 16:00 is more than 90 minutes from both candidates.
	existing := bookedAt("appt-1", neighbor, mondayAt(16, 0), 30, 0)

	slots := Rank(
		[]Candidate{
			candidate(mondayAt(9, 0), 30, 0),
			candidate(mondayAt(14, 45), 30, 0),
		},
		target,
		[]*appointment.Appointment{existing},
		snapshot(neighbor),
	)

	require.Len(t, slots, 2)
	assert.Equal(t, 15, slots[0].Priority, "14:45 is within 90 minutes of the 16:00 visit")
	assert.True(t, slots[0].Start.Equal(mondayAt(14, 45)))
	assert.Equal(t, 0, slots[1].Priority)
}

func TestRank_BonusesAccumulate(t *testing.T) {
	target := prop("t", "1 rue de Rivoli", "75001", "Paris")
	near := prop("n1", "2 rue Voisine", "75001", "Paris")
	sameCity := prop("n2", "5 avenue Foch", "75116", "Paris")

	existing := []*appointment.Appointment{
		bookedAt("appt-1", near, mondayAt(9, 30), 30, 0),
		bookedAt("appt-2", sameCity, mondayAt(11, 0), 30, 0),
	}

	slots := Rank(
		[]Candidate{candidate(mondayAt(10, 15), 30, 0)},
		target,
		existing,
		snapshot(near, sameCity),
	)

	require.Len(t, slots, 1)
	assert.Equal(t, 15+8, slots[0].Priority)
}

func TestRank_OrdersByPriorityThenTime(t *testing.T) {
	target := prop("t", "1 rue de Rivoli", "75001", "Paris")
	neighbor := prop("n", "2 rue Voisine", "75001", "Paris")
	existing := bookedAt("appt-1", neighbor, mondayAt(12, 0), 30, 0)

	slots := Rank(
		[]Candidate{
			candidate(mondayAt(9, 0), 30, 0),  // far from the 12:00 visit
			candidate(mondayAt(11, 0), 30, 0), // within 90 minutes, bonus 15
			candidate(mondayAt(10, 0), 30, 0), // far as well
		},
		target,
		[]*appointment.Appointment{existing},
		snapshot(neighbor),
	)

	require.Len(t, slots, 3)
	assert.True(t, slots[0].Start.Equal(mondayAt(11, 0)), "highest priority first")
	assert.True(t, slots[1].Start.Equal(mondayAt(9, 0)), "ties resolved chronologically")
	assert.True(t, slots[2].Start.Equal(mondayAt(10, 0)))
}

func TestRank_GeneralConsultationChronological(t *testing.T) {
	neighbor := prop("n", "2 rue Voisine", "75001", "Paris")
	existing := bookedAt("appt-1", neighbor, mondayAt(10, 0), 30, 0)

	slots := Rank(
		[]Candidate{
			candidate(mondayAt(9, 0), 30, 0),
			candidate(mondayAt(9, 30), 30, 0),
			candidate(mondayAt(10, 30), 30, 0),
		},
		nil,
		[]*appointment.Appointment{existing},
		snapshot(neighbor),
	)

	require.Len(t, slots, 3)
	last := time.Time{}
	for _, s := range slots {
		assert.Equal(t, 0, s.Priority)
		assert.True(t, s.Start.After(last))
		last = s.Start
	}
}
