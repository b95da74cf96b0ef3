package handler

import (
	"encoding/json"
	"net/http"

	"github.com/wordly-app/backend/internal/application/user"
	"github.com/wordly-app/backend/internal/domain"
	"github.com/wordly-app/backend/internal/pkg/validate"
	"github.com/wordly-app/backend/internal/transport/http/middleware"
)

// UserHandler serves the authenticated profile endpoints. Every route here
// sits behind the auth middleware, so the user is always in the context.
type UserHandler struct {
	svc user.Service
}

func NewUserHandler(svc user.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, UserEnvelope{Success: true, User: toSafeUser(u)})
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	updated, err := h.svc.UpdateProfile(r.Context(), u.UserID, req)
	if err != nil {
		status, msg := statusFromErr(err)
		writeError(w, status, msg)
		return
	}
	writeJSON(w, http.StatusOK, UserEnvelope{
		Message: "profile updated successfully",
		Success: true,
		User:    toSafeUser(updated),
	})
}

func (h *UserHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.svc.UpdatePassword(r.Context(), u.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		status, msg := statusFromErr(err)
		writeError(w, status, msg)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "password updated successfully", Success: true})
}

func (h *UserHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.UpdatePreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	prefs, err := h.svc.UpdatePreferences(r.Context(), u.UserID, req.Preferences)
	if err != nil {
		status, msg := statusFromErr(err)
		writeError(w, status, msg)
		return
	}
	writeJSON(w, http.StatusOK, PreferencesEnvelope{
		Message:     "preferences updated successfully",
		Preferences: prefs,
	})
}
