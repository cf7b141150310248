package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/subtrack/subtrack/internal/model"
)

// Common errors for subscription repository operations.
var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrSubscriptionExists   = errors.New("subscription already exists")
)

// CreateSubscription inserts a new subscription. The store assigns the id
// and sets version 0. A duplicate (owner, name) pair returns
// ErrSubscriptionExists; a missing owner returns ErrUserNotFound.
func (r *Repository) CreateSubscription(ctx context.Context, sub *model.Subscription) error {
	query := `
		INSERT INTO subscriptions (name, user_id)
		VALUES ($1, $2)
		RETURNING id, version, created_at
	`

	err := r.pool.QueryRow(ctx, query, sub.Name, sub.UserID).Scan(
		&sub.ID,
		&sub.Version,
		&sub.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrSubscriptionExists
		}
		if isForeignKeyViolation(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	return nil
}

// GetSubscriptionByID retrieves a subscription by its ID.
func (r *Repository) GetSubscriptionByID(ctx context.Context, id int64) (*model.Subscription, error) {
	query := `
		SELECT id, name, user_id, version, created_at
		FROM subscriptions
		WHERE id = $1
	`

	sub, err := scanSubscription(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("failed to get subscription by ID: %w", err)
	}

	return sub, nil
}

// GetSubscriptionByOwnerAndName retrieves a subscription by its owner and name.
func (r *Repository) GetSubscriptionByOwnerAndName(ctx context.Context, ownerID int64, name string) (*model.Subscription, error) {
	query := `
		SELECT id, name, user_id, version, created_at
		FROM subscriptions
		WHERE user_id = $1 AND name = $2
	`

	sub, err := scanSubscription(r.pool.QueryRow(ctx, query, ownerID, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("failed to get subscription by owner and name: %w", err)
	}

	return sub, nil
}

// ListSubscriptionsByOwner retrieves all subscriptions of a user.
// An unknown owner yields an empty slice, never an error.
func (r *Repository) ListSubscriptionsByOwner(ctx context.Context, ownerID int64) ([]*model.Subscription, error) {
	query := `
		SELECT id, name, user_id, version, created_at
		FROM subscriptions
		WHERE user_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	defer rows.Close()

	subs := make([]*model.Subscription, 0)
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		subs = append(subs, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subscriptions: %w", err)
	}

	return subs, nil
}

// DeleteSubscription deletes a subscription scoped to (owner, id) with a
// version check. The delete predicate is the authority: if the row is gone
// or belongs to another owner, zero rows are affected and nil is returned.
// Only a surviving row with the same owner but a different version reports
// ErrVersionConflict.
func (r *Repository) DeleteSubscription(ctx context.Context, ownerID, id, version int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM subscriptions WHERE id = $1 AND user_id = $2 AND version = $3`,
		id, ownerID, version,
	)
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	// Zero rows: concurrently modified, concurrently removed, or owned by
	// someone else. Re-read to tell the cases apart.
	var currentOwner, currentVersion int64
	err = r.pool.QueryRow(ctx,
		`SELECT user_id, version FROM subscriptions WHERE id = $1`, id,
	).Scan(&currentOwner, &currentVersion)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("failed to recheck subscription: %w", err)
	}

	if currentOwner == ownerID && currentVersion != version {
		return ErrVersionConflict
	}
	return nil
}

// TopSubscriptionNames returns the n most frequent subscription names in
// descending count order. Count decides membership only; presentation
// ordering is applied by the caller.
func (r *Repository) TopSubscriptionNames(ctx context.Context, n int) ([]string, error) {
	query := `
		SELECT name
		FROM subscriptions
		GROUP BY name
		ORDER BY COUNT(*) DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query top subscriptions: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0, n)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan subscription name: %w", err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subscription names: %w", err)
	}

	return names, nil
}

// scanSubscription scans a single row into a Subscription model.
func scanSubscription(row pgx.Row) (*model.Subscription, error) {
	var sub model.Subscription
	err := row.Scan(
		&sub.ID,
		&sub.Name,
		&sub.UserID,
		&sub.Version,
		&sub.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}
