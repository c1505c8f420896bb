package scheduling

import (
	"sort"
	"strings"
	"time"

	"github.com/ouestimmo/agency-booking-backend/internal/appointment"
	"github.com/ouestimmo/agency-booking-backend/internal/property"
)

// proximityWindow is how far around a candidate (both directions) same-day
// appointments count as neighbors for the ranking bonus.
const proximityWindow = 90 * time.Minute

// Proximity bonuses per neighboring appointment.
const (
	bonusSameCityAndPostal = 15
	bonusSameCity          = 8
	bonusSameDepartment    = 3
)

// Slot is an available visit start with its ranking score. Higher priority
// means booking it keeps the agent's day geographically tighter.
type Slot struct {
	Start    time.Time
	Priority int
}

// Rank scores the surviving candidates and orders them by descending
// priority, ties broken by ascending time. General consultations earn no
// bonus and come out in chronological order. No candidate is ever excluded
// here; ranking only reorders.
func Rank(
	cands []Candidate,
	target *property.Property,
	appts []*appointment.Appointment,
	props map[string]*property.Property,
) []Slot {
	slots := make([]Slot, 0, len(cands))

	for _, c := range cands {
		priority := 0
		if target != nil {
			for _, appt := range appts {
				if appt.PropertyID == nil {
					continue
				}
				gap := c.Start.Sub(appt.ScheduledAt)
				if gap < 0 {
					gap = -gap
				}
				if gap > proximityWindow {
					continue
				}
				neighbor, ok := props[*appt.PropertyID]
				if !ok {
					continue
				}
				priority += proximityBonus(target, neighbor)
			}
		}
		slots = append(slots, Slot{Start: c.Start, Priority: priority})
	}

	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].Priority != slots[j].Priority {
			return slots[i].Priority > slots[j].Priority
		}
		return slots[i].Start.Before(slots[j].Start)
	})
	return slots
}

func proximityBonus(target, neighbor *property.Property) int {
	sameCity := strings.EqualFold(
		strings.TrimSpace(target.City),
		strings.TrimSpace(neighbor.City),
	)

	switch {
	case sameCity && target.PostalCode == neighbor.PostalCode:
		return bonusSameCityAndPostal
	case sameCity:
		return bonusSameCity
	case target.Department() == neighbor.Department():
		return bonusSameDepartment
	default:
		return 0
	}
}
