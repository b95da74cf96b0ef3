package user

import (
	"context"
	"fmt"
	"time"

	"github.com/wordly-app/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldFirstName    = "first_name"
	fieldLastName     = "last_name"
	fieldPhone        = "phone"
	fieldEmail        = "email"
	fieldDOB          = "dob"
	fieldProfileImage = "profile_image"
	fieldPreferences  = "preferences"
	fieldPasswordHash = "password_hash"
)

type Service interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, req domain.UpdateProfileRequest) (*domain.User, error)
	UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	UpdatePreferences(ctx context.Context, userID string, preferences []string) ([]string, error)
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type service struct {
	repo userStore
}

func NewService(repo userStore) Service {
	return &service{repo: repo}
}

func (s *service) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.Get(ctx, userID)
}

// UpdateProfile applies the non-nil fields. A password supplied here is
// hashed like everywhere else; plaintext never reaches the store.
func (s *service) UpdateProfile(ctx context.Context, userID string, req domain.UpdateProfileRequest) (*domain.User, error) {
	if _, err := s.repo.Get(ctx, userID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates[fieldFirstName] = *req.FirstName
	}
	if req.LastName != nil {
		updates[fieldLastName] = *req.LastName
	}
	if req.Phone != nil {
		updates[fieldPhone] = *req.Phone
	}
	if req.Email != nil {
		updates[fieldEmail] = *req.Email
	}
	if req.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			return nil, fmt.Errorf("dob must be in YYYY-MM-DD format: %w", domain.ErrBadRequest)
		}
		updates[fieldDOB] = dob.Format(time.RFC3339)
	}
	if req.ProfileImage != nil {
		updates[fieldProfileImage] = *req.ProfileImage
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		updates[fieldPasswordHash] = string(hash)
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, userID, updates); err != nil {
			return nil, err
		}
	}
	return s.repo.Get(ctx, userID)
}

func (s *service) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(currentPassword)); err != nil {
		return fmt.Errorf("current password is incorrect: %w", domain.ErrBadRequest)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.Update(ctx, userID, map[string]interface{}{fieldPasswordHash: string(hash)})
}

func (s *service) UpdatePreferences(ctx context.Context, userID string, preferences []string) ([]string, error) {
	if _, err := s.repo.Get(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, userID, map[string]interface{}{fieldPreferences: preferences}); err != nil {
		return nil, err
	}
	return preferences, nil
}
