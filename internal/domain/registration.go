package domain

import "time"

// PendingRegistration is the provisional registration payload held in the
// ephemeral store between submission and OTP verification. At most one live
// entry exists per email; a resubmit or resend overwrites it. The password
// arrives here already hashed — plaintext is never written anywhere.
type PendingRegistration struct {
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	DateOfBirth  time.Time `json:"dob"`
	PasswordHash string    `json:"passwordHash"`
	Preferences  []string  `json:"preferences"`
	OTP          string    `json:"otp"`
}
