// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/sqltour/sqltour/internal/model"
	"github.com/sqltour/sqltour/internal/randdata"
	"github.com/sqltour/sqltour/internal/repository"
)

// ErrNoUsers is returned when an operation needs at least one existing user.
var ErrNoUsers = errors.New("no users in table")

// UserService runs the mutating use-cases, each inside its own
// transaction.
type UserService struct {
	repo   *repository.Repository
	logger *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(repo *repository.Repository, logger *slog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// RegisterRandomUser inserts a user with generated credentials and returns
// the assigned ID.
func (s *UserService) RegisterRandomUser(ctx context.Context) (uint64, error) {
	username := randdata.Username()
	email := randdata.Email()

	var id uint64
	err := s.repo.WithTx(ctx, func(tx *sqlx.Tx) error {
		s.logger.Debug("inserting user", "username", username, "email", email)
		var err error
		id, err = repository.InsertUser(ctx, tx, username, email)
		return err
	})
	if err != nil {
		s.logger.Error("insert user failed, transaction rolled back", "error", err)
		return 0, err
	}

	s.logger.Info("user inserted", "id", id, "username", username)
	return id, nil
}

// RefreshEmail reads the user's current address and rewrites it with an
// "updated_" prefix. The server refreshes updated_at as a side effect.
func (s *UserService) RefreshEmail(ctx context.Context, id uint64) (string, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return "", err
	}

	newEmail := "updated_" + user.Email
	err = s.repo.WithTx(ctx, func(tx *sqlx.Tx) error {
		return repository.UpdateUserEmail(ctx, tx, id, newEmail)
	})
	if err != nil {
		s.logger.Error("email update failed, transaction rolled back", "id", id, "error", err)
		return "", err
	}

	s.logger.Info("email updated", "id", id, "email", newEmail)
	return newEmail, nil
}

// RemoveOldestUser deletes the earliest-created user and returns it.
func (s *UserService) RemoveOldestUser(ctx context.Context) (*model.User, error) {
	oldest, err := s.repo.OldestUser(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrNoUsers
		}
		return nil, err
	}

	err = s.repo.WithTx(ctx, func(tx *sqlx.Tx) error {
		return repository.DeleteUser(ctx, tx, oldest.ID)
	})
	if err != nil {
		s.logger.Error("delete failed, transaction rolled back", "id", oldest.ID, "error", err)
		return nil, err
	}

	s.logger.Info("oldest user deleted", "id", oldest.ID, "username", oldest.Username)
	return oldest, nil
}

// CreateUserWithProfile inserts a user and their profile in a single
// transaction; either both rows exist afterwards or neither does.
func (s *UserService) CreateUserWithProfile(ctx context.Context, fullName string, bio, avatarURL *string) (userID, profileID uint64, err error) {
	username := randdata.Username()
	email := randdata.Email()

	err = s.repo.WithTx(ctx, func(tx *sqlx.Tx) error {
		userID, err = repository.InsertUser(ctx, tx, username, email)
		if err != nil {
			return err
		}

		profileID, err = repository.InsertProfile(ctx, tx, &model.Profile{
			UserID:    userID,
			FullName:  fullName,
			Bio:       bio,
			AvatarURL: avatarURL,
		})
		return err
	})
	if err != nil {
		s.logger.Error("user+profile creation failed, transaction rolled back", "error", err)
		return 0, 0, err
	}

	s.logger.Info("user and profile created", "user_id", userID, "profile_id", profileID)
	return userID, profileID, nil
}

// DemonstrateRollback deliberately inserts a row that violates the email
// uniqueness constraint, verifies the transaction rolled back and reports
// the unchanged row count.
func (s *UserService) DemonstrateRollback(ctx context.Context) (int, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return 0, err
	}
	if len(users) == 0 {
		return 0, ErrNoUsers
	}

	before := len(users)
	duplicate := users[0].Email
	s.logger.Info("attempting duplicate email insert", "email", duplicate)

	err = s.repo.WithTx(ctx, func(tx *sqlx.Tx) error {
		_, err := repository.InsertUser(ctx, tx, randdata.Username(), duplicate)
		return err
	})
	if err == nil {
		return 0, errors.New("duplicate email insert unexpectedly succeeded")
	}
	if !errors.Is(err, repository.ErrEmailExists) {
		return 0, fmt.Errorf("expected uniqueness violation, got: %w", err)
	}

	after, err := s.repo.CountUsers(ctx)
	if err != nil {
		return 0, err
	}
	if after != before {
		return 0, fmt.Errorf("row count changed across rollback: %d -> %d", before, after)
	}

	s.logger.Info("transaction rolled back, row count unchanged", "count", after)
	return after, nil
}
