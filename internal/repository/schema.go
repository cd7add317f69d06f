package repository

import (
	"context"
	"fmt"
)

// Table definitions. Timestamps are maintained by the server: created_at
// is set on insert and updated_at refreshes on every update.
const (
	createUsersTableSQL = `
		CREATE TABLE IF NOT EXISTS users (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			username VARCHAR(50) NOT NULL UNIQUE,
			email VARCHAR(100) NOT NULL UNIQUE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci
	`

	createProfilesTableSQL = `
		CREATE TABLE IF NOT EXISTS profiles (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			user_id BIGINT UNSIGNED NOT NULL UNIQUE,
			full_name VARCHAR(100) NOT NULL,
			bio TEXT,
			avatar_url VARCHAR(255),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci
	`
)

// EnsureSchema creates the users and profiles tables if they do not exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createUsersTableSQL); err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, createProfilesTableSQL); err != nil {
		return fmt.Errorf("failed to create profiles table: %w", err)
	}
	return nil
}

// DropSchema removes both tables. Intended for tests.
func (r *Repository) DropSchema(ctx context.Context) error {
	// profiles first: it holds the foreign key.
	if _, err := r.db.ExecContext(ctx, "DROP TABLE IF EXISTS profiles"); err != nil {
		return fmt.Errorf("failed to drop profiles table: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, "DROP TABLE IF EXISTS users"); err != nil {
		return fmt.Errorf("failed to drop users table: %w", err)
	}
	return nil
}
