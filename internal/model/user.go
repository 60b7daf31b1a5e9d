// Package model defines domain entities for the application.
package model

import "time"

// User represents a registered account. Email and DisplayName are each
// globally unique; PasswordHash is opaque to everything but the auth package.
type User struct {
	ID           int64
	Email        string
	DisplayName  string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}
