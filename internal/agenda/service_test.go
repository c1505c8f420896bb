package agenda

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	Repository
	created *Rule
	byID    map[string]*Rule
}

func (r *fakeRepo) Create(_ context.Context, rule *Rule) error {
	rule.ID = "rule-1"
	r.created = rule
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Rule, error) {
	if rule, ok := r.byID[id]; ok {
		copied := *rule
		return &copied, nil
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) Update(_ context.Context, rule *Rule) error {
	r.byID[rule.ID] = rule
	return nil
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"09:00", 540, false},
		{"00:00", 0, false},
		{"23:59", 1439, false},
		{"12:30", 750, false},
		{"9:00", 0, true},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"12-30", 0, true},
		{"", 0, true},
		{"noon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidClock)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCreate_Validation(t *testing.T) {
	valid := CreateRequest{
		Weekday:           int(time.Monday),
		OpensAt:           "09:00",
		ClosesAt:          "12:00",
		SlotEveryMins:     30,
		VisitDurationMins: 45,
		MarginMins:        15,
		Active:            true,
	}

	tests := []struct {
		name    string
		mutate  func(*CreateRequest)
		wantErr error
	}{
		{"valid", func(*CreateRequest) {}, nil},
		{"closes before opens", func(r *CreateRequest) { r.ClosesAt = "08:00" }, ErrInvalidWindow},
		{"closes equals opens", func(r *CreateRequest) { r.ClosesAt = "09:00" }, ErrInvalidWindow},
		{"bad opening clock", func(r *CreateRequest) { r.OpensAt = "9am" }, ErrInvalidClock},
		{"zero granularity", func(r *CreateRequest) { r.SlotEveryMins = 0 }, ErrInvalidSlotEvery},
		{"zero duration", func(r *CreateRequest) { r.VisitDurationMins = 0 }, ErrInvalidDuration},
		{"negative margin", func(r *CreateRequest) { r.MarginMins = -5 }, ErrInvalidMargin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{}
			svc := NewService(repo)

			req := valid
			tt.mutate(&req)
			rule, err := svc.Create(context.Background(), req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, repo.created)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, time.Monday, rule.Weekday)
			assert.Equal(t, "rule-1", rule.ID)
		})
	}
}

func TestUpdate_PartialAndRevalidated(t *testing.T) {
	existing := &Rule{
		ID:                "rule-1",
		Weekday:           time.Monday,
		OpensAt:           "09:00",
		ClosesAt:          "12:00",
		SlotEveryMins:     30,
		VisitDurationMins: 45,
		MarginMins:        15,
		Active:            true,
	}
	repo := &fakeRepo{byID: map[string]*Rule{"rule-1": existing}}
	svc := NewService(repo)

	closes := "13:00"
	duration := 60
	updated, err := svc.Update(context.Background(), "rule-1", UpdateRequest{
		ClosesAt:          &closes,
		VisitDurationMins: &duration,
	})

	require.NoError(t, err)
	assert.Equal(t, "13:00", updated.ClosesAt)
	assert.Equal(t, 60, updated.VisitDurationMins)
	assert.Equal(t, "09:00", updated.OpensAt, "untouched fields survive")

	// A partial update cannot leave the rule in an invalid state.
	bad := "08:00"
	_, err = svc.Update(context.Background(), "rule-1", UpdateRequest{ClosesAt: &bad})
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := NewService(&fakeRepo{byID: map[string]*Rule{}})

	active := false
	_, err := svc.Update(context.Background(), "missing", UpdateRequest{Active: &active})
	assert.ErrorIs(t, err, ErrNotFound)
}
