package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordly-app/backend/internal/domain"
)

// fakeAuthService holds one pending registration in memory so a test can
// walk the register, verify, login flow end to end through the handlers.
type fakeAuthService struct {
	pendingEmail string
	pendingOTP   string
	user         *domain.User
}

func (f *fakeAuthService) Register(_ context.Context, req domain.RegisterRequest) error {
	f.pendingEmail = req.Email
	f.pendingOTP = "123456"
	return nil
}

func (f *fakeAuthService) VerifyOTP(_ context.Context, email, code string) (*domain.User, *domain.TokenPair, error) {
	if email != f.pendingEmail {
		return nil, nil, domain.ErrNotFound
	}
	if code != f.pendingOTP {
		return nil, nil, domain.ErrBadRequest
	}
	f.user = &domain.User{
		UserID:       "01ARZ3NDEKTSV4RRFFQ69G5FAV",
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        email,
		Phone:        "+15550100",
		PasswordHash: "$2a$10$secret",
		Preferences:  []string{"tech"},
	}
	return f.user, &domain.TokenPair{AccessToken: "access-1", RefreshToken: "refresh-1"}, nil
}

func (f *fakeAuthService) ResendOTP(_ context.Context, email string) error {
	if email != f.pendingEmail {
		return domain.ErrNotFound
	}
	return nil
}

func (f *fakeAuthService) Login(_ context.Context, email, password string) (*domain.User, *domain.TokenPair, error) {
	if f.user == nil || email != f.user.Email {
		return nil, nil, domain.ErrBadRequest
	}
	return f.user, &domain.TokenPair{AccessToken: "access-2", RefreshToken: "refresh-2"}, nil
}

func (f *fakeAuthService) Refresh(_ context.Context, refreshToken string) (*domain.TokenPair, error) {
	if refreshToken != "refresh-1" && refreshToken != "refresh-2" {
		return nil, domain.ErrUnauthorized
	}
	return &domain.TokenPair{AccessToken: "access-3", RefreshToken: "refresh-3"}, nil
}

func postJSON(t *testing.T, h http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(buf))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestRegistrationFlow(t *testing.T) {
	svc := &fakeAuthService{}
	h := NewAuthHandler(svc, 15*time.Minute, 7*24*time.Hour)

	rec := postJSON(t, h.Register, domain.RegisterRequest{
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Phone:           "+15550100",
		Email:           "ada@example.com",
		DateOfBirth:     "1815-12-10",
		Password:        "hunter22hunter22",
		ConfirmPassword: "hunter22hunter22",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// Wrong code leaves the registration pending.
	rec = postJSON(t, h.VerifyOTP, domain.VerifyOTPRequest{Email: "ada@example.com", OTP: "000000"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, h.VerifyOTP, domain.VerifyOTPRequest{Email: "ada@example.com", OTP: "123456"})
	require.Equal(t, http.StatusCreated, rec.Code)

	cookies := rec.Result().Cookies()
	names := map[string]*http.Cookie{}
	for _, c := range cookies {
		names[c.Name] = c
	}
	require.Contains(t, names, "accessToken")
	require.Contains(t, names, "refreshToken")
	for _, c := range names {
		assert.True(t, c.HttpOnly)
		assert.True(t, c.Secure)
		assert.Equal(t, http.SameSiteNoneMode, c.SameSite)
	}
	assert.Equal(t, int((15 * time.Minute).Seconds()), names["accessToken"].MaxAge)

	// Password material must never leak into the body.
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "$2a$")

	var env UserEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NotNil(t, env.User)
	assert.Equal(t, "ada@example.com", env.User.Email)
}

func TestRegisterRejectsInvalidPayload(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{}, time.Minute, time.Hour)

	rec := postJSON(t, h.Register, domain.RegisterRequest{Email: "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVerifyOTPRequiresSixDigits(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{}, time.Minute, time.Hour)

	rec := postJSON(t, h.VerifyOTP, domain.VerifyOTPRequest{Email: "ada@example.com", OTP: "123"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRefreshWithoutCookie(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{}, time.Minute, time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	h.Refresh(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefreshRotatesPair(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{}, time.Minute, time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.AddCookie(&http.Cookie{Name: "refreshToken", Value: "refresh-1"})
	rec := httptest.NewRecorder()
	h.Refresh(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var access, refresh string
	for _, c := range rec.Result().Cookies() {
		switch c.Name {
		case "accessToken":
			access = c.Value
		case "refreshToken":
			refresh = c.Value
		}
	}
	assert.Equal(t, "access-3", access)
	assert.Equal(t, "refresh-3", refresh)
}

func TestRefreshRejectsUnknownToken(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{}, time.Minute, time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.AddCookie(&http.Cookie{Name: "refreshToken", Value: "forged"})
	rec := httptest.NewRecorder()
	h.Refresh(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutClearsCookies(t *testing.T) {
	h := NewAuthHandler(&fakeAuthService{}, time.Minute, time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cleared := 0
	for _, c := range rec.Result().Cookies() {
		if strings.Contains("accessToken refreshToken", c.Name) {
			assert.Equal(t, -1, c.MaxAge)
			assert.Empty(t, c.Value)
			cleared++
		}
	}
	assert.Equal(t, 2, cleared)
}
