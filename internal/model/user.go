// Package model defines domain entities for the application.
package model

import "time"

// User represents a row in the users table.
// ID is assigned by the server on insert and never changes afterwards;
// username and email are unique across all rows.
type User struct {
	ID        uint64    `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
