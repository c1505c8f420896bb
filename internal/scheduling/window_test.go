package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ouestimmo/agency-booking-backend/internal/agenda"
)

// 2026-03-02 is a Monday.
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func mondayAt(hour, minute int) time.Time {
	return time.Date(2026, 3, 2, hour, minute, 0, 0, time.UTC)
}

func rule(weekday time.Weekday, opens, closes string, every, duration, margin int) *agenda.Rule {
	return &agenda.Rule{
		Weekday:           weekday,
		OpensAt:           opens,
		ClosesAt:          closes,
		SlotEveryMins:     every,
		VisitDurationMins: duration,
		MarginMins:        margin,
		Active:            true,
	}
}

func TestExpandRules_SingleRule(t *testing.T) {
	rules := []*agenda.Rule{
		rule(time.Monday, "09:00", "12:00", 30, 45, 15),
	}

	candidates := ExpandRules(monday, rules)

	require.Len(t, candidates, 7)
	want := []time.Time{
		mondayAt(9, 0), mondayAt(9, 30), mondayAt(10, 0), mondayAt(10, 30),
		mondayAt(11, 0), mondayAt(11, 30), mondayAt(12, 0),
	}
	for i, c := range candidates {
		assert.True(t, c.Start.Equal(want[i]), "candidate %d: got %s", i, c.Start)
		assert.Equal(t, 45*time.Minute, c.Duration)
		assert.Equal(t, 15*time.Minute, c.Margin)
	}
}

func TestExpandRules_NoMatchingRule(t *testing.T) {
	rules := []*agenda.Rule{
		rule(time.Tuesday, "09:00", "12:00", 30, 45, 15),
	}

	candidates := ExpandRules(monday, rules)
	assert.Empty(t, candidates, "a day without rules has no candidates")
}

func TestExpandRules_InactiveRuleIgnored(t *testing.T) {
	r := rule(time.Monday, "09:00", "12:00", 30, 45, 15)
	r.Active = false

	candidates := ExpandRules(monday, []*agenda.Rule{r})
	assert.Empty(t, candidates)
}

func TestExpandRules_ClosingInstantIncluded(t *testing.T) {
	rules := []*agenda.Rule{
		rule(time.Monday, "09:00", "10:00", 30, 30, 0),
	}

	candidates := ExpandRules(monday, rules)

	require.Len(t, candidates, 3)
	assert.True(t, candidates[2].Start.Equal(mondayAt(10, 0)),
		"closing time itself is offered as a start")
}

func TestExpandRules_MultipleRulesPerRuleSettings(t *testing.T) {
	// Morning: hour-long visits. Afternoon: short visits, finer grid.
	rules := []*agenda.Rule{
		rule(time.Monday, "09:00", "11:00", 60, 60, 15),
		rule(time.Monday, "14:00", "15:00", 30, 20, 5),
	}

	candidates := ExpandRules(monday, rules)
	require.Len(t, candidates, 6)

	// Each candidate carries the duration/margin of the rule that made it.
	assert.Equal(t, 60*time.Minute, candidates[0].Duration)
	assert.Equal(t, 15*time.Minute, candidates[0].Margin)
	assert.Equal(t, 20*time.Minute, candidates[3].Duration)
	assert.Equal(t, 5*time.Minute, candidates[3].Margin)
}

func TestExpandRules_OverlappingRulesDeduplicated(t *testing.T) {
	rules := []*agenda.Rule{
		rule(time.Monday, "09:00", "10:00", 30, 45, 15),
		rule(time.Monday, "09:30", "10:30", 30, 20, 5),
	}

	candidates := ExpandRules(monday, rules)

	// 09:00 09:30 10:00 from the first rule, 10:30 from the second.
	require.Len(t, candidates, 4)
	assert.True(t, candidates[1].Start.Equal(mondayAt(9, 30)))
	assert.Equal(t, 45*time.Minute, candidates[1].Duration, "first rule wins duplicates")
	assert.Equal(t, 20*time.Minute, candidates[3].Duration)
}

func TestCandidate_BlockedInterval(t *testing.T) {
	c := Candidate{
		Start:    mondayAt(10, 0),
		Duration: 45 * time.Minute,
		Margin:   15 * time.Minute,
	}

	from, until := c.BlockedInterval()
	assert.True(t, from.Equal(mondayAt(9, 45)))
	assert.True(t, until.Equal(mondayAt(11, 0)))
}
