package property

import (
	"context"
	"strings"
)

type CreateRequest struct {
	Reference  string
	Title      string
	Street     string
	PostalCode string
	City       string
}

type UpdateRequest struct {
	Title      *string
	Street     *string
	PostalCode *string
	City       *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Property, error)
	GetByID(ctx context.Context, id string) (*Property, error)
	List(ctx context.Context, filter Filter) ([]*Property, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Property, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func validPostalCode(code string) bool {
	if len(code) != 5 {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Property, error) {
	street := strings.TrimSpace(req.Street)
	city := strings.TrimSpace(req.City)
	postal := strings.TrimSpace(req.PostalCode)

	if street == "" || city == "" || postal == "" {
		return nil, ErrEmptyAddress
	}
	if !validPostalCode(postal) {
		return nil, ErrInvalidPostal
	}

	p := &Property{
		Reference:  strings.TrimSpace(req.Reference),
		Title:      strings.TrimSpace(req.Title),
		Street:     street,
		PostalCode: postal,
		City:       city,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Property, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Property, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Property, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		p.Title = strings.TrimSpace(*req.Title)
	}
	if req.Street != nil {
		p.Street = strings.TrimSpace(*req.Street)
	}
	if req.PostalCode != nil {
		postal := strings.TrimSpace(*req.PostalCode)
		if !validPostalCode(postal) {
			return nil, ErrInvalidPostal
		}
		p.PostalCode = postal
	}
	if req.City != nil {
		p.City = strings.TrimSpace(*req.City)
	}

	if p.Street == "" || p.City == "" {
		return nil, ErrEmptyAddress
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
