// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered account in the credential store.
type User struct {
	// ID is the opaque unique identifier, always handled in string form.
	ID string `gorm:"primaryKey;size:36"`

	// Name is the display name given at registration.
	Name string `gorm:"size:255;not null"`

	// Email is the login identifier. It is unique and compared case-sensitively.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// PasswordHash is the bcrypt hash of the password.
	// It is never returned to clients.
	PasswordHash string `gorm:"column:password;size:255;not null" json:"-"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}
