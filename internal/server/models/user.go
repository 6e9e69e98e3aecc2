// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is an account record. PasswordHash is a bcrypt hash and must never
// leave the server; Public is the only outward representation.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// PublicUser is the external representation of a User: identity fields only,
// no credential material and no session list.
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Public returns the serializable view of the user.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email}
}
