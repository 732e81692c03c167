package model

import "time"

// UserID uniquely identifies a user across the system
type UserID string

// User is an account supplied by the identity layer.
// Created at signup and immutable thereafter.
type User struct {
	ID          UserID
	DisplayName string
	Email       string
	CreatedAt   time.Time
}

// Credentials holds a user's login secrets
// Stored separately so password hashes never travel with session data
type Credentials struct {
	UserID       UserID
	Email        string
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
}
