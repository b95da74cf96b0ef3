package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/wordly-app/backend/internal/domain"
	jwtinfra "github.com/wordly-app/backend/internal/infrastructure/jwt"
	"github.com/wordly-app/backend/internal/pkg/id"
	"github.com/wordly-app/backend/internal/pkg/otp"
	"golang.org/x/crypto/bcrypt"
)

// Service implements the account lifecycle: registration held in the
// ephemeral store until OTP verification, then login and stateless
// refresh-token rotation.
type Service interface {
	Register(ctx context.Context, req domain.RegisterRequest) error
	VerifyOTP(ctx context.Context, email, code string) (*domain.User, *domain.TokenPair, error)
	ResendOTP(ctx context.Context, email string) error
	Login(ctx context.Context, email, password string) (*domain.User, *domain.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
}

type pendingStore interface {
	Save(ctx context.Context, email string, p *domain.PendingRegistration) error
	Get(ctx context.Context, email string) (*domain.PendingRegistration, error)
	Delete(ctx context.Context, email string) error
}

type userStore interface {
	Put(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
}

type mailer interface {
	SendEmail(to, subject, htmlBody string) error
}

type tokenProvider interface {
	SignAccess(userID string) (string, error)
	SignRefresh(userID string) (string, error)
	VerifyRefresh(token string) (*jwtinfra.Claims, error)
}

type service struct {
	pendingRepo pendingStore
	userRepo    userStore
	mailer      mailer
	tokens      tokenProvider
}

type ServiceDeps struct {
	PendingRepo pendingStore
	UserRepo    userStore
	Mailer      mailer
	Tokens      tokenProvider
}

func NewService(deps ServiceDeps) Service {
	return &service{
		pendingRepo: deps.PendingRepo,
		userRepo:    deps.UserRepo,
		mailer:      deps.Mailer,
		tokens:      deps.Tokens,
	}
}

// Register validates the submission, parks it in the ephemeral store and
// emails the OTP. Nothing touches the durable user store until VerifyOTP.
func (s *service) Register(ctx context.Context, req domain.RegisterRequest) error {
	if req.Password != req.ConfirmPassword {
		return fmt.Errorf("passwords do not match: %w", domain.ErrBadRequest)
	}
	// Both lookups must positively confirm the address is free. A store
	// error here is not a free address; proceeding on one could mint a
	// second account for a confirmed email once the OTP is verified.
	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return fmt.Errorf("email or phone already exists: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("check email: %w", err)
	}
	if _, err := s.userRepo.GetByPhone(ctx, req.Phone); err == nil {
		return fmt.Errorf("email or phone already exists: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("check phone: %w", err)
	}

	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return fmt.Errorf("dob must be in YYYY-MM-DD format: %w", domain.ErrBadRequest)
	}

	code, err := otp.New()
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	pending := &domain.PendingRegistration{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Email:        req.Email,
		DateOfBirth:  dob,
		PasswordHash: string(hash),
		Preferences:  req.Preferences,
		OTP:          code,
	}
	if err := s.pendingRepo.Save(ctx, req.Email, pending); err != nil {
		return err
	}
	return s.mailer.SendEmail(req.Email, "Email Verification OTP", otpEmailBody(code, false))
}

// VerifyOTP promotes a pending registration to a durable user and issues the
// first token pair. Not idempotent: the pending entry is deleted on success,
// so a repeat call with the same code fails as expired.
func (s *service) VerifyOTP(ctx context.Context, email, code string) (*domain.User, *domain.TokenPair, error) {
	pending, err := s.pendingRepo.Get(ctx, email)
	if err != nil {
		return nil, nil, fmt.Errorf("otp expired or invalid: %w", domain.ErrNotFound)
	}
	if pending.OTP != code {
		return nil, nil, fmt.Errorf("invalid otp: %w", domain.ErrBadRequest)
	}

	now := time.Now().UTC()
	u := &domain.User{
		UserID:       id.New(),
		FirstName:    pending.FirstName,
		LastName:     pending.LastName,
		Phone:        pending.Phone,
		Email:        pending.Email,
		DateOfBirth:  pending.DateOfBirth,
		PasswordHash: pending.PasswordHash,
		Preferences:  pending.Preferences,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Put(ctx, u); err != nil {
		return nil, nil, err
	}
	if err := s.pendingRepo.Delete(ctx, email); err != nil {
		// The entry still expires on its own; a retry would just fail the
		// duplicate-account check.
		slog.Warn("failed to delete pending registration", "email", email, "err", err)
	}

	pair, err := s.issuePair(u.UserID)
	if err != nil {
		return nil, nil, err
	}
	return u, pair, nil
}

// ResendOTP replaces the code on an existing pending registration and resets
// its TTL. There is nothing to resend once the entry has expired.
func (s *service) ResendOTP(ctx context.Context, email string) error {
	pending, err := s.pendingRepo.Get(ctx, email)
	if err != nil {
		return fmt.Errorf("otp expired or invalid: %w", domain.ErrNotFound)
	}
	code, err := otp.New()
	if err != nil {
		return err
	}
	pending.OTP = code
	if err := s.pendingRepo.Save(ctx, email, pending); err != nil {
		return err
	}
	return s.mailer.SendEmail(email, "Resend OTP", otpEmailBody(code, true))
}

func (s *service) Login(ctx context.Context, email, password string) (*domain.User, *domain.TokenPair, error) {
	// Unknown email and wrong password yield the identical error so the
	// endpoint cannot be used to enumerate accounts.
	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid credentials: %w", domain.ErrBadRequest)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, nil, fmt.Errorf("invalid credentials: %w", domain.ErrBadRequest)
	}
	pair, err := s.issuePair(u.UserID)
	if err != nil {
		return nil, nil, err
	}
	return u, pair, nil
}

// Refresh mints a brand-new token pair from a valid refresh token. The old
// refresh token is not invalidated server-side; nothing tracks issued tokens,
// so it stays usable until its own expiry.
func (s *service) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("no refresh token provided: %w", domain.ErrUnauthorized)
	}
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", domain.ErrUnauthorized)
	}
	if _, err := s.userRepo.Get(ctx, claims.UserID); err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", domain.ErrUnauthorized)
	}
	return s.issuePair(claims.UserID)
}

func (s *service) issuePair(userID string) (*domain.TokenPair, error) {
	access, err := s.tokens.SignAccess(userID)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.SignRefresh(userID)
	if err != nil {
		return nil, err
	}
	return &domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func otpEmailBody(code string, resend bool) string {
	lead := "Your OTP for email verification is"
	if resend {
		lead = "Your new OTP for email verification is"
	}
	return fmt.Sprintf(
		"<p>%s: <strong>%s</strong></p>"+
			"<p>This OTP is valid for 10 minutes.</p>"+
			"<p>If you didn't request this, please ignore this email.</p>",
		lead, code,
	)
}
