// Package model defines domain entities for the application.
package model

import "time"

// User represents an account that owns subscriptions.
// Version is owned by the storage layer: it starts at 0 on insert and is
// incremented on every successful write; domain services only read and
// compare it to detect staleness.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Version   int64     `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
