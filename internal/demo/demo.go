// Package demo drives the sequential CRUD walkthrough.
package demo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sqltour/sqltour/internal/repository"
	"github.com/sqltour/sqltour/internal/service"
)

// Run executes every step of the walkthrough in order: schema bootstrap,
// insert, listing, point lookup, email update, oldest-user delete, the
// rollback demonstration, a user+profile transaction and a final listing.
//
// A missing row on the point lookup is logged at WARN and the run
// continues; any other failure aborts the run.
func Run(ctx context.Context, logger *slog.Logger, repo *repository.Repository, users *service.UserService) error {
	// 1. Schema bootstrap
	if err := repo.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("schema bootstrap: %w", err)
	}
	logger.Info("users and profiles tables ready")

	// 2. Insert a user
	id, err := users.RegisterRandomUser(ctx)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}

	// 3. List all users
	all, err := repo.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	logger.Info("listed users", "count", len(all))
	for _, u := range all {
		logger.Debug("user row",
			"id", u.ID,
			"username", u.Username,
			"email", u.Email,
			"created_at", u.CreatedAt,
			"updated_at", u.UpdatedAt,
		)
	}

	// 4. Look up the freshly inserted user
	user, err := repo.GetUserByID(ctx, id)
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		logger.Warn("user not found", "id", id)
	case err != nil:
		return fmt.Errorf("get user by ID: %w", err)
	default:
		logger.Info("found user", "id", user.ID, "username", user.Username, "email", user.Email)
	}

	// 5. Update the email and verify
	newEmail, err := users.RefreshEmail(ctx, id)
	if err != nil {
		return fmt.Errorf("update email: %w", err)
	}
	updated, err := repo.GetUserByID(ctx, id)
	if err != nil {
		return fmt.Errorf("verify email update: %w", err)
	}
	if updated.Email != newEmail {
		return fmt.Errorf("email mismatch after update: got %q, want %q", updated.Email, newEmail)
	}
	logger.Info("update verified", "id", updated.ID, "email", updated.Email)

	// 6. Delete the earliest-created user
	removed, err := users.RemoveOldestUser(ctx)
	if err != nil {
		if errors.Is(err, service.ErrNoUsers) {
			logger.Warn("no users left to delete")
		} else {
			return fmt.Errorf("delete oldest user: %w", err)
		}
	} else if _, err := repo.GetUserByID(ctx, removed.ID); !errors.Is(err, repository.ErrUserNotFound) {
		if err != nil {
			return fmt.Errorf("verify delete: %w", err)
		}
		return fmt.Errorf("user %d still present after delete", removed.ID)
	}

	// 7. Rollback demonstration
	if _, err := users.RegisterRandomUser(ctx); err != nil {
		return fmt.Errorf("seed user for rollback demo: %w", err)
	}
	count, err := users.DemonstrateRollback(ctx)
	if err != nil {
		return fmt.Errorf("rollback demonstration: %w", err)
	}
	logger.Info("rollback demonstration complete", "users", count)

	// 8. User + profile in one transaction
	bio := "Generated during the walkthrough"
	avatar := "https://example.com/avatar.png"
	userID, profileID, err := users.CreateUserWithProfile(ctx, "Walkthrough User", &bio, &avatar)
	if err != nil {
		return fmt.Errorf("create user with profile: %w", err)
	}
	profile, err := repo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("read back profile: %w", err)
	}
	logger.Info("profile attached", "user_id", userID, "profile_id", profileID, "full_name", profile.FullName)

	// 9. Final listing
	final, err := repo.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("final listing: %w", err)
	}
	for _, u := range final {
		logger.Info("final user row", "id", u.ID, "username", u.Username, "email", u.Email)
	}
	logger.Info("walkthrough complete", "users", len(final))

	return nil
}
