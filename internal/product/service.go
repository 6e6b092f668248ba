package product

import (
	"context"
	"strings"
)

const featuredLimit = 8

type Service interface {
	List(ctx context.Context) ([]*Product, error)
	Get(ctx context.Context, id int64) (*Product, error)
	Featured(ctx context.Context) ([]*Product, error)
	Create(ctx context.Context, p *Product) (int64, error)
	Update(ctx context.Context, id int64, p *Product) error
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*Stats, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]*Product, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) Get(ctx context.Context, id int64) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Featured(ctx context.Context) ([]*Product, error) {
	return s.repo.GetFeatured(ctx, featuredLimit)
}

func validate(p *Product) error {
	if strings.TrimSpace(p.Name) == "" || p.Price < 0 || p.Stock < 0 {
		return ErrInvalidProduct
	}
	return nil
}

func (s *service) Create(ctx context.Context, p *Product) (int64, error) {
	if err := validate(p); err != nil {
		return 0, err
	}
	return s.repo.Create(ctx, p)
}

func (s *service) Update(ctx context.Context, id int64, p *Product) error {
	if err := validate(p); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, p)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	return s.repo.GetStats(ctx)
}
