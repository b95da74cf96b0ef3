package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/wordly-app/backend/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Success bool   `json:"success,omitempty"`
}

// UserEnvelope wraps responses that carry the caller's profile.
type UserEnvelope struct {
	Message string    `json:"message,omitempty"`
	Success bool      `json:"success,omitempty"`
	User    *SafeUser `json:"user,omitempty"`
}

// PreferencesEnvelope wraps preference-update responses.
type PreferencesEnvelope struct {
	Message     string   `json:"message"`
	Preferences []string `json:"preferences"`
}

// CategoryEnvelope wraps category-create responses.
type CategoryEnvelope struct {
	Message  string           `json:"message"`
	Category *domain.Category `json:"category"`
}

// SafeUser is the public projection of a user: everything except the
// password hash.
type SafeUser struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Preferences  []string  `json:"preferences"`
	DateOfBirth  time.Time `json:"dob"`
	ProfileImage string    `json:"profileImage"`
}

func toSafeUser(u *domain.User) *SafeUser {
	if u == nil {
		return nil
	}
	prefs := u.Preferences
	if prefs == nil {
		prefs = []string{}
	}
	return &SafeUser{
		ID:           u.UserID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		Phone:        u.Phone,
		Preferences:  prefs,
		DateOfBirth:  u.DateOfBirth,
		ProfileImage: u.ProfileImage,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// statusFromErr maps domain sentinels to the HTTP statuses the auth surface
// uses: everything client-caused is 400, missing/expired credentials are
// 401, anything unrecognized is a 500 with an opaque message.
func statusFromErr(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrBadRequest),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrNotFound):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "server error"
	}
}
