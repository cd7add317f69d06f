package model

import "time"

// Profile holds the extended, optional information attached to a user.
// Exactly one profile may exist per user; deleting the user cascades to it.
type Profile struct {
	ID        uint64    `db:"id" json:"id"`
	UserID    uint64    `db:"user_id" json:"user_id"`
	FullName  string    `db:"full_name" json:"full_name"`
	Bio       *string   `db:"bio" json:"bio,omitempty"`
	AvatarURL *string   `db:"avatar_url" json:"avatar_url,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
