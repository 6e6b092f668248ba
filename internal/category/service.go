package category

import (
	"context"
	"strings"

	"flowermart-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context) ([]*Category, error)
	Get(ctx context.Context, id int64) (*Category, error)
	Create(ctx context.Context, name, description string) (int64, error)
	Update(ctx context.Context, id int64, name, description string) error
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]*Category, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) Get(ctx context.Context, id int64) (*Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, name, description string) (int64, error) {
	if strings.TrimSpace(name) == "" {
		return 0, ErrNameRequired
	}
	return s.repo.Create(ctx, name, description)
}

func (s *service) Update(ctx context.Context, id int64, name, description string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}
	return s.repo.Update(ctx, id, name, description)
}

// Delete refuses while products still reference the category.
func (s *service) Delete(ctx context.Context, id int64) error {
	count, err := s.repo.CountProducts(ctx, id)
	if err != nil {
		logger.FromCtx(ctx).Error("product count check failed",
			zap.Int64("category_id", id),
			zap.Error(err),
		)
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	return s.repo.Delete(ctx, id)
}
