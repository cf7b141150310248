// Package model defines domain entities for the application.
package model

import "time"

// Subscription represents a named subscription exclusively owned by one user.
// The (UserID, Name) pair is unique; the store enforces it with a composite
// unique constraint.
type Subscription struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	UserID    int64     `json:"user_id"`
	Version   int64     `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
