package domain

import "time"

// User is a confirmed account. A User record only comes into existence once
// the registrant has proven control of their email address via OTP.
type User struct {
	UserID       string    `json:"id" dynamodbav:"user_id"`
	FirstName    string    `json:"firstName" dynamodbav:"first_name"`
	LastName     string    `json:"lastName" dynamodbav:"last_name"`
	Phone        string    `json:"phone" dynamodbav:"phone"`
	Email        string    `json:"email" dynamodbav:"email"`
	DateOfBirth  time.Time `json:"dob" dynamodbav:"dob"`
	PasswordHash string    `json:"-" dynamodbav:"password_hash"`
	ProfileImage string    `json:"profileImage" dynamodbav:"profile_image"`
	// Preferences holds category IDs the user wants in their feed.
	Preferences []string  `json:"preferences" dynamodbav:"preferences"`
	CreatedAt   time.Time `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" dynamodbav:"updated_at"`
}

// TokenPair is the credential pair issued on login, OTP verification
// and refresh. Neither half is persisted server-side; validity is purely
// signature plus expiry.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type RegisterRequest struct {
	FirstName       string   `json:"firstName" validate:"required"`
	LastName        string   `json:"lastName" validate:"required"`
	Phone           string   `json:"phone" validate:"required"`
	Email           string   `json:"email" validate:"required,email"`
	DateOfBirth     string   `json:"dob" validate:"required"` // expected format: YYYY-MM-DD
	Password        string   `json:"password" validate:"required,min=8,max=72"`
	ConfirmPassword string   `json:"confirmPassword" validate:"required"`
	Preferences     []string `json:"preferences"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6"`
}

type ResendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	FirstName    *string `json:"firstName"`
	LastName     *string `json:"lastName"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email" validate:"omitempty,email"`
	DateOfBirth  *string `json:"dob"` // expected format: YYYY-MM-DD
	Password     *string `json:"password" validate:"omitempty,min=8,max=72"`
	ProfileImage *string `json:"profileImage"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=72"`
}

type UpdatePreferencesRequest struct {
	Preferences []string `json:"preferences" validate:"required"`
}
