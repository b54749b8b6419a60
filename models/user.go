package models

import "time"

// User represents an account entity used for authentication and authorization.
// Secret fields (password hash and one-time token digests) are never serialized.
type User struct {
	// ID is the unique identifier of the user.
	ID int64 `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Email is the unique, lowercase-normalized email address.
	Email string `json:"email"`

	// PasswordHash stores the bcrypt hash of the user's password.
	PasswordHash string `json:"-"`

	// IsVerified reports whether the email address was confirmed.
	// Unverified users cannot log in.
	IsVerified bool `json:"isVerified"`

	// VerificationToken is the digest of the pending email-verification token.
	VerificationToken        *string    `json:"-"`
	VerificationTokenExpires *time.Time `json:"-"`

	// ResetToken is the digest of the pending password-reset token.
	ResetToken        *string    `json:"-"`
	ResetTokenExpires *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Sanitized returns a copy of the user with the password hash and all
// one-time token fields cleared. Only sanitized users leave the service layer.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	u.VerificationToken = nil
	u.VerificationTokenExpires = nil
	u.ResetToken = nil
	u.ResetTokenExpires = nil
	return u
}
