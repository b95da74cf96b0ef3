package handler

import (
	"net/http"
	"time"

	"github.com/wordly-app/backend/internal/domain"
	"github.com/wordly-app/backend/internal/transport/http/middleware"
)

const refreshCookieName = "refreshToken"

// setAuthCookies attaches the token pair as httpOnly cookies. SameSite=None
// with Secure lets the browser client send them cross-site; tokens are never
// placed in the response body.
func setAuthCookies(w http.ResponseWriter, pair domain.TokenPair, accessTTL, refreshTTL time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessCookieName,
		Value:    pair.AccessToken,
		Path:     "/",
		MaxAge:   int(accessTTL.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    pair.RefreshToken,
		Path:     "/",
		MaxAge:   int(refreshTTL.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

// clearAuthCookies expires both cookies. Logout does not touch server state;
// the refresh token simply stops being presented.
func clearAuthCookies(w http.ResponseWriter) {
	for _, name := range []string{middleware.AccessCookieName, refreshCookieName} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteNoneMode,
		})
	}
}
