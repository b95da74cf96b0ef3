package category

import (
	"context"
	"time"

	"github.com/wordly-app/backend/internal/domain"
	"github.com/wordly-app/backend/internal/pkg/id"
)

type Service interface {
	List(ctx context.Context) ([]domain.Category, error)
	Create(ctx context.Context, name string) (*domain.Category, error)
}

type categoryStore interface {
	Scan(ctx context.Context) ([]domain.Category, error)
	Put(ctx context.Context, c *domain.Category) error
}

type service struct {
	repo categoryStore
}

func NewService(repo categoryStore) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]domain.Category, error) {
	return s.repo.Scan(ctx)
}

func (s *service) Create(ctx context.Context, name string) (*domain.Category, error) {
	c := &domain.Category{
		CategoryID: id.New(),
		Name:       name,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.Put(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
