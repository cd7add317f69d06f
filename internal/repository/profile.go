package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sqltour/sqltour/internal/model"
)

// ErrProfileNotFound is returned when no profile exists for a user.
var ErrProfileNotFound = errors.New("profile not found")

const (
	insertProfileSQL = `
		INSERT INTO profiles (user_id, full_name, bio, avatar_url)
		VALUES (?, ?, ?, ?)
	`

	selectAllProfilesSQL = `
		SELECT id, user_id, full_name, bio, avatar_url, created_at, updated_at
		FROM profiles
		ORDER BY id
	`

	selectProfileByUserIDSQL = `
		SELECT id, user_id, full_name, bio, avatar_url, created_at, updated_at
		FROM profiles
		WHERE user_id = ?
	`

	updateProfileSQL = `
		UPDATE profiles
		SET full_name = ?, bio = ?, avatar_url = ?
		WHERE user_id = ?
	`

	deleteProfileSQL = `
		DELETE FROM profiles
		WHERE user_id = ?
	`
)

// InsertProfile inserts a profile for an existing user and returns the
// server-assigned ID.
func InsertProfile(ctx context.Context, q sqlx.ExtContext, p *model.Profile) (uint64, error) {
	res, err := q.ExecContext(ctx, insertProfileSQL, p.UserID, p.FullName, p.Bio, p.AvatarURL)
	if err != nil {
		return 0, fmt.Errorf("failed to insert profile: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted profile ID: %w", err)
	}

	return uint64(id), nil
}

// CreateProfile inserts a profile outside a transaction.
func (r *Repository) CreateProfile(ctx context.Context, p *model.Profile) (uint64, error) {
	return InsertProfile(ctx, r.db, p)
}

// ListProfiles retrieves all profiles ordered by ID.
func (r *Repository) ListProfiles(ctx context.Context) ([]model.Profile, error) {
	var profiles []model.Profile
	if err := r.db.SelectContext(ctx, &profiles, selectAllProfilesSQL); err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

// GetProfileByUserID retrieves the profile attached to a user.
func (r *Repository) GetProfileByUserID(ctx context.Context, userID uint64) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.GetContext(ctx, &profile, selectProfileByUserIDSQL, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile by user ID: %w", err)
	}
	return &profile, nil
}

// UpdateProfile replaces the mutable profile fields for a user.
func UpdateProfile(ctx context.Context, q sqlx.ExtContext, p *model.Profile) error {
	res, err := q.ExecContext(ctx, updateProfileSQL, p.FullName, p.Bio, p.AvatarURL, p.UserID)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrProfileNotFound
	}

	return nil
}

// UpdateProfile replaces profile fields outside a transaction.
func (r *Repository) UpdateProfile(ctx context.Context, p *model.Profile) error {
	return UpdateProfile(ctx, r.db, p)
}

// DeleteProfileByUserID removes a user's profile.
func DeleteProfileByUserID(ctx context.Context, q sqlx.ExtContext, userID uint64) error {
	if _, err := q.ExecContext(ctx, deleteProfileSQL, userID); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}

// DeleteProfileByUserID removes a user's profile outside a transaction.
func (r *Repository) DeleteProfileByUserID(ctx context.Context, userID uint64) error {
	return DeleteProfileByUserID(ctx, r.db, userID)
}
