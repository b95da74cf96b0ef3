package jwtinfra

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wordly-app/backend/internal/config"
)

func newTestProvider(t *testing.T, accessTTL time.Duration) *Provider {
	t.Helper()
	p, err := NewProvider(&config.Config{
		JWTAccessSecret:  "access-secret-for-tests",
		JWTRefreshSecret: "refresh-secret-for-tests",
		AccessTokenTTL:   accessTTL,
		RefreshTokenTTL:  7 * 24 * time.Hour,
	})
	require.NoError(t, err)
	return p
}

func TestNewProvider_RequiresSecrets(t *testing.T) {
	_, err := NewProvider(&config.Config{})
	assert.Error(t, err)

	_, err = NewProvider(&config.Config{JWTAccessSecret: "same", JWTRefreshSecret: "same"})
	assert.Error(t, err)
}

func TestAccessToken_RoundTrip(t *testing.T) {
	p := newTestProvider(t, 15*time.Minute)

	token, err := p.SignAccess("user-1")
	require.NoError(t, err)

	claims, err := p.VerifyAccess(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestRefreshToken_RoundTrip(t *testing.T) {
	p := newTestProvider(t, 15*time.Minute)

	token, err := p.SignRefresh("user-1")
	require.NoError(t, err)

	claims, err := p.VerifyRefresh(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestTokenClasses_AreNotInterchangeable(t *testing.T) {
	p := newTestProvider(t, 15*time.Minute)

	access, err := p.SignAccess("user-1")
	require.NoError(t, err)
	refresh, err := p.SignRefresh("user-1")
	require.NoError(t, err)

	_, err = p.VerifyRefresh(access)
	assert.Error(t, err, "access token must not verify as refresh")
	_, err = p.VerifyAccess(refresh)
	assert.Error(t, err, "refresh token must not verify as access")
}

func TestAccessToken_Expires(t *testing.T) {
	p := newTestProvider(t, -time.Minute) // already expired at issue time

	token, err := p.SignAccess("user-1")
	require.NoError(t, err)

	_, err = p.VerifyAccess(token)
	assert.Error(t, err)
}

func TestVerify_GarbageToken(t *testing.T) {
	p := newTestProvider(t, 15*time.Minute)

	_, err := p.VerifyAccess("not-a-token")
	assert.Error(t, err)
}
