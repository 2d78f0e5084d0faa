// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — plain data carriers with
// struct tags describing how they serialize to JSON and map to DB columns.
package model

import "time"

// User represents a registered account.
//
// WHY PasswordHash AND NOT Password?
// The stored value is a bcrypt hash, never the plaintext. The `json:"-"` tag
// guarantees the hash can never leak into a JSON response, no matter which
// struct ends up being encoded.
type User struct {
	ID           string    `json:"id"        db:"id"`
	Username     string    `json:"username"  db:"username"` // unique, case-sensitive, ≤20 chars
	PasswordHash string    `json:"-"         db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
