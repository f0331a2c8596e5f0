// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User is a registered account. Transactions, positions and watchlist
// entries are all scoped to a user's ID.
type User struct {
	ID uint `gorm:"primaryKey"`

	// Email is the login identifier, unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password holds the bcrypt hash, never the plaintext.
	Password string `gorm:"size:255;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
