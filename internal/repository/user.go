package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/subtrack/subtrack/internal/model"
)

// Common errors for user repository operations.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUsernameExists  = errors.New("username already exists")
	ErrVersionConflict = errors.New("version conflict")
)

// CreateUser inserts a new user. The store assigns the id, sets version 0
// and fills the timestamps. A username collision returns ErrUsernameExists.
func (r *Repository) CreateUser(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (username)
		VALUES ($1)
		RETURNING id, version, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query, user.Username).Scan(
		&user.ID,
		&user.Version,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrUsernameExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUserByID retrieves a user by their ID.
func (r *Repository) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	query := `
		SELECT id, username, version, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user model.User
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.Version,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return &user, nil
}

// GetUserByUsername retrieves a user by their username (exact match).
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `
		SELECT id, username, version, created_at, updated_at
		FROM users
		WHERE username = $1
	`

	var user model.User
	err := r.pool.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.Version,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return &user, nil
}

// UpdateUser replaces the username of the given user. The write is
// version-checked: it only succeeds if user.Version still matches the row.
// On success the store increments the version and the new value is written
// back into user. A mismatch returns ErrVersionConflict; this also covers a
// row deleted between read and write.
func (r *Repository) UpdateUser(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users
		SET username = $2, version = version + 1, updated_at = now()
		WHERE id = $1 AND version = $3
		RETURNING version, updated_at
	`

	err := r.pool.QueryRow(ctx, query, user.ID, user.Username, user.Version).Scan(
		&user.Version,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrVersionConflict
		}
		if isUniqueViolation(err) {
			return ErrUsernameExists
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

// DeleteUserCascade deletes a user and all subscriptions they own as one
// transaction: children first, then a version-checked delete of the user.
// If the user row no longer matches (id, version), the transaction is rolled
// back and ErrVersionConflict is returned.
func (r *Repository) DeleteUserCascade(ctx context.Context, id, version int64) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM subscriptions WHERE user_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete subscriptions of user: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1 AND version = $2`, id, version)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrVersionConflict
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit user delete: %w", err)
	}

	return nil
}
