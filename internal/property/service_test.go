package property

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	Repository
	created *Property
	byID    map[string]*Property
}

func (r *fakeRepo) Create(_ context.Context, p *Property) error {
	p.ID = "prop-1"
	r.created = p
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Property, error) {
	if p, ok := r.byID[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) Update(_ context.Context, p *Property) error {
	r.byID[p.ID] = p
	return nil
}

func TestCreate(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	p, err := svc.Create(context.Background(), CreateRequest{
		Reference:  " OI-2024-0042 ",
		Title:      "T3 lumineux",
		Street:     " 1 rue de Rivoli ",
		PostalCode: "75001",
		City:       "Paris",
	})

	require.NoError(t, err)
	assert.Equal(t, "prop-1", p.ID)
	assert.Equal(t, "OI-2024-0042", p.Reference)
	assert.Equal(t, "1 rue de Rivoli", p.Street)
}

func TestCreate_AddressValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CreateRequest)
		wantErr error
	}{
		{"missing street", func(r *CreateRequest) { r.Street = "  " }, ErrEmptyAddress},
		{"missing city", func(r *CreateRequest) { r.City = "" }, ErrEmptyAddress},
		{"missing postal code", func(r *CreateRequest) { r.PostalCode = "" }, ErrEmptyAddress},
		{"short postal code", func(r *CreateRequest) { r.PostalCode = "7500" }, ErrInvalidPostal},
		{"non-numeric postal code", func(r *CreateRequest) { r.PostalCode = "7500A" }, ErrInvalidPostal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := CreateRequest{
				Street:     "1 rue de Rivoli",
				PostalCode: "75001",
				City:       "Paris",
			}
			tt.mutate(&req)

			_, err := NewService(&fakeRepo{}).Create(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUpdate(t *testing.T) {
	existing := &Property{
		ID:         "prop-1",
		Street:     "1 rue de Rivoli",
		PostalCode: "75001",
		City:       "Paris",
	}
	repo := &fakeRepo{byID: map[string]*Property{"prop-1": existing}}
	svc := NewService(repo)

	street := "3 rue de Rivoli"
	p, err := svc.Update(context.Background(), "prop-1", UpdateRequest{Street: &street})
	require.NoError(t, err)
	assert.Equal(t, "3 rue de Rivoli", p.Street)
	assert.Equal(t, "Paris", p.City)

	bad := "750"
	_, err = svc.Update(context.Background(), "prop-1", UpdateRequest{PostalCode: &bad})
	assert.ErrorIs(t, err, ErrInvalidPostal)

	empty := " "
	_, err = svc.Update(context.Background(), "prop-1", UpdateRequest{City: &empty})
	assert.ErrorIs(t, err, ErrEmptyAddress)
}

func TestRoutingAddress(t *testing.T) {
	p := &Property{Street: "1 rue de Rivoli", PostalCode: "75001", City: "Paris"}
	assert.Equal(t, "1 rue de Rivoli, 75001 Paris", p.RoutingAddress())
}

func TestDepartment(t *testing.T) {
	assert.Equal(t, "75", (&Property{PostalCode: "75001"}).Department())
	assert.Equal(t, "13", (&Property{PostalCode: "13100"}).Department())
	assert.Equal(t, "7", (&Property{PostalCode: "7"}).Department())
}
