package apiclient

import (
	"context"
	"net/http"
	"time"
)

// User is the profile shape the server returns. Password material is never
// present.
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Preferences  []string  `json:"preferences"`
	DateOfBirth  time.Time `json:"dob"`
	ProfileImage string    `json:"profileImage"`
}

type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type RegisterParams struct {
	FirstName       string   `json:"firstName"`
	LastName        string   `json:"lastName"`
	Phone           string   `json:"phone"`
	Email           string   `json:"email"`
	DateOfBirth     string   `json:"dob"`
	Password        string   `json:"password"`
	ConfirmPassword string   `json:"confirmPassword"`
	Preferences     []string `json:"preferences,omitempty"`
}

type UpdateProfileParams struct {
	FirstName    *string `json:"firstName,omitempty"`
	LastName     *string `json:"lastName,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Email        *string `json:"email,omitempty"`
	DateOfBirth  *string `json:"dob,omitempty"`
	Password     *string `json:"password,omitempty"`
	ProfileImage *string `json:"profileImage,omitempty"`
}

type userEnvelope struct {
	User *User `json:"user"`
}

// Register submits a new registration. The account is not created until
// VerifyOTP succeeds.
func (c *Client) Register(ctx context.Context, params RegisterParams) error {
	return c.do(ctx, http.MethodPost, "/auth/register", params, nil)
}

// VerifyOTP confirms the emailed code. On success the client is logged in:
// the session cookies land in the jar.
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) (*User, error) {
	body := map[string]string{"email": email, "otp": otp}
	var env userEnvelope
	if err := c.do(ctx, http.MethodPost, "/auth/verify-otp", body, &env); err != nil {
		return nil, err
	}
	return env.User, nil
}

func (c *Client) ResendOTP(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.do(ctx, http.MethodPost, "/auth/resend-otp", body, nil)
}

func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	body := map[string]string{"email": email, "password": password}
	var env userEnvelope
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &env); err != nil {
		return nil, err
	}
	return env.User, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

func (c *Client) Me(ctx context.Context) (*User, error) {
	var env userEnvelope
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, &env); err != nil {
		return nil, err
	}
	return env.User, nil
}

func (c *Client) UpdateProfile(ctx context.Context, params UpdateProfileParams) (*User, error) {
	var env userEnvelope
	if err := c.do(ctx, http.MethodPut, "/users/profile", params, &env); err != nil {
		return nil, err
	}
	return env.User, nil
}

func (c *Client) UpdatePassword(ctx context.Context, current, updated string) error {
	body := map[string]string{"currentPassword": current, "newPassword": updated}
	return c.do(ctx, http.MethodPut, "/users/password", body, nil)
}

func (c *Client) UpdatePreferences(ctx context.Context, preferences []string) ([]string, error) {
	body := map[string][]string{"preferences": preferences}
	var env struct {
		Preferences []string `json:"preferences"`
	}
	if err := c.do(ctx, http.MethodPut, "/users/preferences", body, &env); err != nil {
		return nil, err
	}
	return env.Preferences, nil
}

func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var env struct {
		Categories []Category `json:"categories"`
	}
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &env); err != nil {
		return nil, err
	}
	return env.Categories, nil
}
