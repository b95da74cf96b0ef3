package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/wordly-app/backend/internal/application/auth"
	"github.com/wordly-app/backend/internal/domain"
	"github.com/wordly-app/backend/internal/pkg/validate"
)

// AuthHandler serves the registration and session lifecycle endpoints.
type AuthHandler struct {
	svc        auth.Service
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthHandler(svc auth.Service, accessTTL, refreshTTL time.Duration) *AuthHandler {
	return &AuthHandler{svc: svc, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.Register(r.Context(), req); err != nil {
		status, msg := statusFromErr(err)
		writeError(w, status, msg)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "OTP sent to email", Success: true})
}

func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	user, pair, err := h.svc.VerifyOTP(r.Context(), req.Email, req.OTP)
	if err != nil {
		status, msg := statusFromErr(err)
		writeError(w, status, msg)
		return
	}
	setAuthCookies(w, *pair, h.accessTTL, h.refreshTTL)
	writeJSON(w, http.StatusCreated, UserEnvelope{
		Message: "user registered successfully",
		Success: true,
		User:    toSafeUser(user),
	})
}

func (h *AuthHandler) ResendOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.ResendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.ResendOTP(r.Context(), req.Email); err != nil {
		status, msg := statusFromErr(err)
		writeError(w, status, msg)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "OTP resent to email", Success: true})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	user, pair, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		status, msg := statusFromErr(err)
		writeError(w, status, msg)
		return
	}
	setAuthCookies(w, *pair, h.accessTTL, h.refreshTTL)
	writeJSON(w, http.StatusOK, UserEnvelope{
		Message: "login successful",
		Success: true,
		User:    toSafeUser(user),
	})
}

// Refresh rotates the token pair from the refresh cookie. A missing cookie
// is a plain 401 so the client interceptor can surface session expiry
// without a round of guessing.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		writeError(w, http.StatusUnauthorized, "no refresh token provided")
		return
	}
	pair, err := h.svc.Refresh(r.Context(), cookie.Value)
	if err != nil {
		status, msg := statusFromErr(err)
		writeError(w, status, msg)
		return
	}
	setAuthCookies(w, *pair, h.accessTTL, h.refreshTTL)
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "token refreshed", Success: true})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	clearAuthCookies(w)
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "logged out successfully", Success: true})
}
