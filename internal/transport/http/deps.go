package http

import (
	"context"

	"github.com/wordly-app/backend/internal/domain"
)

// UserRepository is the minimal interface the router requires from a user store.
type UserRepository interface {
	Put(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

// PendingRegistrationStore is the minimal interface the router requires from
// the keyed pending-registration store.
type PendingRegistrationStore interface {
	Save(ctx context.Context, email string, p *domain.PendingRegistration) error
	Get(ctx context.Context, email string) (*domain.PendingRegistration, error)
	Delete(ctx context.Context, email string) error
}

// CategoryRepository is the minimal interface the router requires from a category store.
type CategoryRepository interface {
	Put(ctx context.Context, c *domain.Category) error
	Scan(ctx context.Context) ([]domain.Category, error)
}
