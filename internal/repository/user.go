package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/sqltour/sqltour/internal/model"
)

// Common errors for user repository operations.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUsernameExists = errors.New("username already exists")
	ErrEmailExists    = errors.New("email already exists")
)

const (
	insertUserSQL = `
		INSERT INTO users (username, email)
		VALUES (?, ?)
	`

	selectAllUsersSQL = `
		SELECT id, username, email, created_at, updated_at
		FROM users
		ORDER BY id
	`

	selectUserByIDSQL = `
		SELECT id, username, email, created_at, updated_at
		FROM users
		WHERE id = ?
	`

	selectOldestUserSQL = `
		SELECT id, username, email, created_at, updated_at
		FROM users
		ORDER BY created_at ASC, id ASC
		LIMIT 1
	`

	updateUserEmailSQL = `
		UPDATE users
		SET email = ?
		WHERE id = ?
	`

	deleteUserSQL = `
		DELETE FROM users
		WHERE id = ?
	`

	countUsersSQL = `SELECT COUNT(*) FROM users`
)

// InsertUser inserts a new user and returns the server-assigned ID.
// It accepts any execution context so the same statement runs against
// the pool or inside a transaction.
func InsertUser(ctx context.Context, q sqlx.ExtContext, username, email string) (uint64, error) {
	res, err := q.ExecContext(ctx, insertUserSQL, username, email)
	if err != nil {
		if dup := mapDuplicateEntry(err); dup != nil {
			return 0, dup
		}
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted user ID: %w", err)
	}

	return uint64(id), nil
}

// CreateUser inserts a new user into the database.
func (r *Repository) CreateUser(ctx context.Context, username, email string) (uint64, error) {
	return InsertUser(ctx, r.db, username, email)
}

// ListUsers retrieves all users ordered by ID.
func (r *Repository) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.SelectContext(ctx, &users, selectAllUsersSQL); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetUserByID retrieves a user by their ID.
// Returns ErrUserNotFound when no row matches; callers decide whether
// that is fatal.
func (r *Repository) GetUserByID(ctx context.Context, id uint64) (*model.User, error) {
	return getUserByID(ctx, r.db, id)
}

func getUserByID(ctx context.Context, q sqlx.QueryerContext, id uint64) (*model.User, error) {
	var user model.User
	err := sqlx.GetContext(ctx, q, &user, selectUserByIDSQL, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return &user, nil
}

// OldestUser retrieves the earliest-created user, or ErrUserNotFound when
// the table is empty.
func (r *Repository) OldestUser(ctx context.Context) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, selectOldestUserSQL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get oldest user: %w", err)
	}
	return &user, nil
}

// UpdateUserEmail changes a user's email address. The updated_at column
// refreshes server-side.
func UpdateUserEmail(ctx context.Context, q sqlx.ExtContext, id uint64, email string) error {
	res, err := q.ExecContext(ctx, updateUserEmailSQL, email, id)
	if err != nil {
		if dup := mapDuplicateEntry(err); dup != nil {
			return dup
		}
		return fmt.Errorf("failed to update user email: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// UpdateUserEmail changes a user's email address outside a transaction.
func (r *Repository) UpdateUserEmail(ctx context.Context, id uint64, email string) error {
	return UpdateUserEmail(ctx, r.db, id, email)
}

// DeleteUser removes a user by ID. Profiles referencing the user are
// removed by the foreign key cascade.
func DeleteUser(ctx context.Context, q sqlx.ExtContext, id uint64) error {
	res, err := q.ExecContext(ctx, deleteUserSQL, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// DeleteUser removes a user by ID outside a transaction.
func (r *Repository) DeleteUser(ctx context.Context, id uint64) error {
	return DeleteUser(ctx, r.db, id)
}

// CountUsers returns the number of rows in the users table.
func (r *Repository) CountUsers(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, countUsersSQL); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// mapDuplicateEntry translates a MySQL duplicate-key error (1062) into
// the matching sentinel, or returns nil for other errors.
func mapDuplicateEntry(err error) error {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) || mysqlErr.Number != 1062 {
		return nil
	}

	// The violated key is named at the end of the message, e.g.
	// "Duplicate entry 'alice' for key 'users.username'" (or
	// "for key 'username'" before 8.0). Only the key name decides the
	// sentinel; the duplicated value also appears in the message and
	// may itself contain "username" or "email".
	switch {
	case strings.HasSuffix(mysqlErr.Message, ".username'"),
		strings.HasSuffix(mysqlErr.Message, "'username'"):
		return ErrUsernameExists
	case strings.HasSuffix(mysqlErr.Message, ".email'"),
		strings.HasSuffix(mysqlErr.Message, "'email'"):
		return ErrEmailExists
	}
	return fmt.Errorf("duplicate entry: %w", err)
}
