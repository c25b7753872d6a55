// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered user in the system.
// It contains authentication credentials and the password-reset token pair.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey" json:"id"`

	// FirstName is the user's given name, used in emails and invoices.
	FirstName string `gorm:"size:100;not null" json:"firstName"`

	// LastName is the user's family name.
	LastName string `gorm:"size:100;not null" json:"lastName"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users and is stored lower-cased.
	Email string `gorm:"uniqueIndex;size:255;not null" json:"email"`

	// Password is the bcrypt hash of the user's password.
	// This never stores plaintext passwords.
	Password string `gorm:"size:255;not null" json:"-"`

	// ResetToken is the pending password-reset token, nil when none is
	// outstanding. ResetToken and ResetTokenExpiresAt are always set or
	// cleared together.
	ResetToken *string `gorm:"index;size:64" json:"-"`

	// ResetTokenExpiresAt is the reset token's expiry time.
	ResetTokenExpiresAt *time.Time `json:"-"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time `json:"-"`

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time `json:"-"`
}

// FullName returns the user's display name for emails and invoices.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// HasValidResetToken reports whether the user holds a reset token that has
// not passed its expiry at the given time.
func (u *User) HasValidResetToken(now time.Time) bool {
	return u.ResetToken != nil && u.ResetTokenExpiresAt != nil && now.Before(*u.ResetTokenExpiresAt)
}
