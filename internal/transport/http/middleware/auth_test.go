package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wordly-app/backend/internal/config"
	"github.com/wordly-app/backend/internal/domain"
	jwtinfra "github.com/wordly-app/backend/internal/infrastructure/jwt"
)

func newTestProvider(t *testing.T) *jwtinfra.Provider {
	t.Helper()
	p, err := jwtinfra.NewProvider(&config.Config{
		JWTAccessSecret:  "test-access-secret",
		JWTRefreshSecret: "test-refresh-secret",
		AccessTokenTTL:   15 * time.Minute,
		RefreshTokenTTL:  7 * 24 * time.Hour,
	})
	require.NoError(t, err)
	return p
}

type stubUserStore struct {
	users map[string]*domain.User
}

func (s *stubUserStore) Get(_ context.Context, userID string) (*domain.User, error) {
	if u, ok := s.users[userID]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func okHandler(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func TestAuth_MissingCookie(t *testing.T) {
	p := newTestProvider(t)
	store := &stubUserStore{users: map[string]*domain.User{}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	Auth(p, store)(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuth_BadToken(t *testing.T) {
	p := newTestProvider(t)
	store := &stubUserStore{users: map[string]*domain.User{}}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookieName, Value: "not-a-real-token"})
	rr := httptest.NewRecorder()
	Auth(p, store)(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuth_RefreshTokenRejectedAsAccess(t *testing.T) {
	p := newTestProvider(t)
	store := &stubUserStore{users: map[string]*domain.User{"u1": {UserID: "u1"}}}

	refresh, err := p.SignRefresh("u1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookieName, Value: refresh})
	rr := httptest.NewRecorder()
	Auth(p, store)(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuth_UserNoLongerExists(t *testing.T) {
	p := newTestProvider(t)
	store := &stubUserStore{users: map[string]*domain.User{}}

	token, err := p.SignAccess("deleted-user")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookieName, Value: token})
	rr := httptest.NewRecorder()
	Auth(p, store)(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuth_ValidToken_InjectsUser(t *testing.T) {
	p := newTestProvider(t)
	store := &stubUserStore{users: map[string]*domain.User{
		"u1": {UserID: "u1", Email: "a@x.com", FirstName: "Ada"},
	}}

	token, err := p.SignAccess("u1")
	require.NoError(t, err)

	var got *domain.User
	handler := func(w http.ResponseWriter, r *http.Request) {
		u, ok := UserFromContext(r.Context())
		require.True(t, ok)
		got = u
		w.WriteHeader(http.StatusOK)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookieName, Value: token})
	rr := httptest.NewRecorder()
	Auth(p, store)(http.HandlerFunc(handler)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, got)
	assert.Equal(t, "a@x.com", got.Email)
}
