package scheduling

import (
	"sort"
	"time"

	"github.com/ouestimmo/agency-booking-backend/internal/agenda"
)

// Candidate is a tentative visit start generated from an availability rule,
// not yet checked against existing appointments. Duration and Margin come
// from the rule that generated the instant.
type Candidate struct {
	Start    time.Time
	Duration time.Duration
	Margin   time.Duration
}

// BlockedInterval returns the half-open interval [Start-Margin,
// Start+Duration+Margin) during which no other visit may be placed.
func (c Candidate) BlockedInterval() (time.Time, time.Time) {
	return c.Start.Add(-c.Margin), c.Start.Add(c.Duration + c.Margin)
}

// ExpandRules turns the weekly rules into concrete candidate instants for one
// calendar day. Only active rules matching the day's weekday contribute;
// each generates every instant from its opening time up to and including its
// closing time, stepped by its granularity. When several rules emit the same
// instant, the first rule wins. The result is ordered by time.
//
// An empty result means the agency is closed that day; it is not an error.
func ExpandRules(day time.Time, rules []*agenda.Rule) []Candidate {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	var candidates []Candidate
	seen := make(map[int]struct{})

	for _, r := range rules {
		if !r.Active || r.Weekday != day.Weekday() {
			continue
		}

		open, err := agenda.ParseClock(r.OpensAt)
		if err != nil {
			continue
		}
		closing, err := agenda.ParseClock(r.ClosesAt)
		if err != nil || closing < open || r.SlotEveryMins <= 0 {
			// Malformed rules are rejected at write time; skip here.
			continue
		}

		for minute := open; minute <= closing; minute += r.SlotEveryMins {
			if _, dup := seen[minute]; dup {
				continue
			}
			seen[minute] = struct{}{}
			candidates = append(candidates, Candidate{
				Start:    dayStart.Add(time.Duration(minute) * time.Minute),
				Duration: time.Duration(r.VisitDurationMins) * time.Minute,
				Margin:   time.Duration(r.MarginMins) * time.Minute,
			})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Start.Before(candidates[j].Start)
	})
	return candidates
}
